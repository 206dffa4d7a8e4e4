package preset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cwbudde/piano-sampler/piano"
	"github.com/cwbudde/piano-sampler/sample"
)

// Build loads the preset's sample library and constructs a piano for it.
// An empty library is an error. When ChannelsFromSamples is set the output
// channel count follows the first loaded sample.
func (p *Preset) Build(ctx context.Context, logger *slog.Logger) (*piano.Piano, *sample.LoadReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := p.Library.Resolver()
	opts := append(p.Library.LoadOptions(p.Params.SampleRate), sample.WithLogger(logger))
	lib, report, err := sample.Load(ctx, p.Library.Notes(), r, opts...)
	if err != nil {
		return nil, report, err
	}
	if lib.Len() == 0 {
		return nil, report, fmt.Errorf("%w: no samples for %s..%s in %s",
			sample.ErrMissingAsset, p.Library.Low, p.Library.High, strings.Join(r.Dirs, ", "))
	}

	params := *p.Params
	if p.ChannelsFromSamples {
		params.Channels = lib.First().Channels
	}
	pn, err := piano.NewPiano(lib, &params, piano.WithLogger(logger))
	if err != nil {
		return nil, report, err
	}
	return pn, report, nil
}
