package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/piano-sampler/internal/output"
	"github.com/cwbudde/piano-sampler/note"
	"github.com/cwbudde/piano-sampler/piano"
	"github.com/cwbudde/piano-sampler/preset"
	"golang.org/x/term"
)

var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func main() {
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	samplesDir := flag.String("samples", "", "Comma-separated sample directories searched before the defaults")
	workers := flag.String("workers", "", "Parallel sample decoders: integer >= 1 or 'auto' (overrides preset)")
	bufferMS := flag.Int("buffer-ms", 0, "Audio device buffer in milliseconds (0 = driver default)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	initLogger(*debug)

	cfg, err := loadConfig(*presetPath, *samplesDir, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPiano(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stream := output.NewStream(p, cfg.Params.MaxBlockFrames)
	dev, err := output.OpenDevice(stream, p.SampleRate(), time.Duration(*bufferMS)*time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()
	dev.Start()
	logger.Info("audio started", "sample_rate", p.SampleRate(), "channels", p.Channels())

	if err := runKeyboard(ctx, os.Stdin, os.Stdout, p, note.DefaultLayout()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := dev.Err(); err != nil {
		logger.Warn("audio device reported an error", "err", err)
	}
}

func loadConfig(presetPath, samplesDir, workers string) (*preset.Preset, error) {
	cfg := preset.Default()
	if presetPath != "" {
		var err error
		cfg, err = preset.LoadJSON(presetPath)
		if err != nil {
			return nil, fmt.Errorf("loading preset %q: %w", presetPath, err)
		}
	}
	if samplesDir != "" {
		var dirs []string
		for _, d := range strings.Split(samplesDir, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
		cfg.Library.Dirs = append(dirs, cfg.Library.Dirs...)
	}
	if workers != "" {
		n, err := preset.ParseWorkers(workers)
		if err != nil {
			return nil, fmt.Errorf("invalid -workers: %w", err)
		}
		cfg.Library.Workers = n
	}
	return cfg, nil
}

func buildPiano(ctx context.Context, cfg *preset.Preset) (*piano.Piano, error) {
	p, report, err := cfg.Build(ctx, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("sample library ready", "loaded", len(report.Loaded), "missing", len(report.Missing), "failed", len(report.Failed))
	return p, nil
}

// noteSink is the part of the engine the keyboard loop drives.
type noteSink interface {
	PlayNote(noteID string) bool
	SetPedal(pedal piano.Pedal, down bool)
}

// runKeyboard reads key presses from in until quit, EOF or ctx is done.
// When in is a terminal it is switched to raw mode for the duration.
func runKeyboard(ctx context.Context, in *os.File, out io.Writer, p noteSink, layout *note.Layout) error {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw terminal: %w", err)
		}
		defer term.Restore(fd, old)
	}

	fmt.Fprint(out, "rows 1..= / q..] / a..\\ play C3..B5, n = soft pedal, m = damper pedal, Esc quits\r\n")

	keys := make(chan []byte)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(keys)
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				select {
				case keys <- append([]byte(nil), buf[:n]...):
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	k := &keyboard{sink: p, layout: layout, out: out}
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok || k.handle(b) {
				return nil
			}
		}
	}
}
