package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/piano-sampler/analysis"
	"github.com/cwbudde/piano-sampler/internal/wavio"
	"github.com/cwbudde/piano-sampler/preset"
)

func main() {
	events := flag.String("events", "0:C4", "Comma-separated time:action list, e.g. 0:damper+,0:C4,0.5:E4,2:damper-")
	duration := flag.Float64("duration", 2.0, "Duration in seconds")
	decayDBFS := flag.Float64("decay-dbfs", math.Inf(1), "Auto-stop when block RMS falls below this dBFS (e.g. -90). Disabled by default")
	decayHoldBlocks := flag.Int("decay-hold-blocks", 6, "Consecutive below-threshold blocks required to stop in auto-decay mode")
	minDuration := flag.Float64("min-duration", 0.5, "Minimum render duration in seconds when using -decay-dbfs")
	maxDuration := flag.Float64("max-duration", 20.0, "Maximum render duration in seconds when using -decay-dbfs")
	blockSize := flag.Int("block", 128, "Frames per render call")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	samplesDir := flag.String("samples", "", "Comma-separated sample directories searched before the defaults")
	exact := flag.Bool("exact", false, "Write the engine's int16 output verbatim instead of via float conversion")
	stats := flag.Bool("stats", false, "Print level, centroid and decay statistics of the render")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	script, err := parseScript(*events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -events: %v\n", err)
		os.Exit(1)
	}

	cfg := preset.Default()
	if *presetPath != "" {
		cfg, err = preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
	}
	if *samplesDir != "" {
		cfg.Library.Dirs = append(strings.Split(*samplesDir, ","), cfg.Library.Dirs...)
	}

	p, _, err := cfg.Build(context.Background(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rc := renderConfig{
		blockFrames:   *blockSize,
		duration:      *duration,
		autoStop:      !math.IsInf(*decayDBFS, 1),
		thresholdDBFS: *decayDBFS,
		holdBlocks:    *decayHoldBlocks,
		minDuration:   *minDuration,
		maxDuration:   *maxDuration,
	}
	fmt.Printf("Rendering %d events at %d Hz, %d channels...\n", len(script), p.SampleRate(), p.Channels())
	samples := render(p, script, rc, logger)
	frames := len(samples) / p.Channels()
	if rc.autoStop {
		fmt.Printf("Auto-stop at %d frames (%.3fs), threshold %.1f dBFS\n", frames, float64(frames)/float64(p.SampleRate()), *decayDBFS)
	}

	if *exact {
		err = wavio.WritePCM16(*output, samples, p.SampleRate(), p.Channels())
	} else {
		err = wavio.WriteInterleavedWAV(*output, wavio.Int16ToFloat32(nil, samples), p.SampleRate(), p.Channels())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, frames)

	if *stats {
		printSummary(analysis.Analyze(samples, p.Channels(), p.SampleRate()), fundamentals(script))
	}
}

func printSummary(s analysis.Summary, notes []pitch) {
	fmt.Printf("peak:     %.2f dBFS\n", s.PeakDBFS)
	fmt.Printf("rms:      %.2f dBFS\n", s.RMSDBFS)
	fmt.Printf("clipped:  %d samples\n", s.Clipped)
	fmt.Printf("centroid: %.1f Hz\n", s.CentroidHz)
	for _, n := range notes {
		fmt.Printf("note:     %s %.1f Hz (centroid %.2fx)\n", n.note, n.hz, s.CentroidHz/n.hz)
	}
	if math.IsNaN(s.DecayDBPerS) {
		fmt.Println("decay:    n/a")
	} else {
		fmt.Printf("decay:    %.2f dB/s\n", s.DecayDBPerS)
	}
}
