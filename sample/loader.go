package sample

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/cwbudde/piano-sampler/note"
	"golang.org/x/sync/errgroup"
)

// LoadReport summarises a Load call.
type LoadReport struct {
	Requested int
	Loaded    []string
	Missing   []string
	Failed    map[string]error
}

type loadConfig struct {
	workers    int
	targetRate int
	logger     *slog.Logger
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithWorkers bounds the number of files decoded in parallel. Zero or less
// means one per CPU.
func WithWorkers(n int) LoadOption {
	return func(c *loadConfig) { c.workers = n }
}

// WithTargetRate resamples assets whose rate differs from hz while loading.
func WithTargetRate(hz int) LoadOption {
	return func(c *loadConfig) { c.targetRate = hz }
}

// WithLogger sets the logger used for skipped notes.
func WithLogger(l *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = l }
}

type loadResult struct {
	asset *Asset
	err   error
}

// Load resolves and decodes every note in parallel. Notes that are missing
// or fail to decode are logged and left out of the library; only context
// cancellation makes Load fail.
func Load(ctx context.Context, notes []note.Note, r *Resolver, opts ...LoadOption) (*Library, *LoadReport, error) {
	cfg := loadConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}
	if r == nil {
		r = NewResolver()
	}

	results := make([]loadResult, len(notes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, n := range notes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = loadOne(n, r, cfg.targetRate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	report := &LoadReport{Requested: len(notes), Failed: make(map[string]error)}
	assets := make([]*Asset, 0, len(notes))
	for i, res := range results {
		name := notes[i].String()
		switch {
		case errors.Is(res.err, ErrMissingAsset):
			cfg.logger.Warn("sample missing", "note", name, "err", res.err)
			report.Missing = append(report.Missing, name)
		case res.err != nil:
			cfg.logger.Warn("sample skipped", "note", name, "err", res.err)
			report.Failed[name] = res.err
		default:
			if res.asset.Truncated {
				cfg.logger.Warn("sample data truncated", "note", name, "frames", res.asset.Frames())
			}
			cfg.logger.Debug("sample ready", "note", name, "seconds", res.asset.Seconds(),
				"rate", res.asset.SampleRate, "channels", res.asset.Channels)
			assets = append(assets, res.asset)
			report.Loaded = append(report.Loaded, name)
		}
	}
	cfg.logger.Info("samples loaded", "loaded", len(report.Loaded), "requested", report.Requested)
	return NewLibrary(assets...), report, nil
}

func loadOne(n note.Note, r *Resolver, targetRate int) loadResult {
	path, err := r.Resolve(n)
	if err != nil {
		return loadResult{err: err}
	}
	a, err := DecodeFile(path)
	if err != nil {
		return loadResult{err: err}
	}
	a.Note = n.String()
	if targetRate > 0 && a.SampleRate != targetRate {
		a, err = Resample(a, targetRate)
		if err != nil {
			return loadResult{err: err}
		}
	}
	return loadResult{asset: a}
}
