package piano

import (
	"log/slog"
	"math"

	"github.com/cwbudde/piano-sampler/dsp"
	"github.com/cwbudde/piano-sampler/sample"
)

// AssetSource looks up the recording for a note.
type AssetSource interface {
	AssetFor(noteID string) (*sample.Asset, bool)
}

// Option configures a Piano.
type Option func(*Piano)

// WithLogger sets the logger for unexpected render conditions.
func WithLogger(l *slog.Logger) Option {
	return func(p *Piano) { p.logger = l }
}

// Piano mixes triggered sample voices into interleaved 16-bit output.
// PlayNote and SetPedal may be called from any goroutine; Render must only
// be called from a single render goroutine.
type Piano struct {
	sampleRate int
	channels   int
	params     Params
	library    AssetSource
	logger     *slog.Logger

	queue  *onsetQueue
	active *voiceSet
	damper pedalFlag
	soft   pedalFlag

	mix           []int32
	lowpass       *dsp.OnePole
	damperRate    float64
	releaseRate   float64
	ceilingFrames int
}

// NewPiano creates an engine over lib. A nil params uses NewDefaultParams;
// invalid params return an error.
func NewPiano(lib AssetSource, params *Params, opts ...Option) (*Piano, error) {
	if params == nil {
		params = NewDefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	sr := params.SampleRate
	p := &Piano{
		sampleRate:    sr,
		channels:      params.Channels,
		params:        *params,
		library:       lib,
		logger:        slog.Default(),
		queue:         newOnsetQueue(params.VoiceCapacity),
		active:        newVoiceSet(params.VoiceCapacity),
		mix:           make([]int32, params.MaxBlockFrames*params.Channels),
		lowpass:       dsp.NewOnePoleLowpass(params.SoftCutoffHz, sr, params.Channels),
		damperRate:    1.0 / (float64(sr) * params.DamperDecaySeconds),
		releaseRate:   1.0 / (float64(sr) * params.ReleaseDecaySeconds),
		ceilingFrames: int(math.Round(float64(sr) * params.NoteCeilingSeconds)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger.Debug("piano ready", "sample_rate", sr, "channels", p.channels,
		"soft_alpha", p.lowpass.Alpha(), "ceiling_frames", p.ceilingFrames)
	return p, nil
}

// SampleRate returns the output sample rate.
func (p *Piano) SampleRate() int { return p.sampleRate }

// Channels returns the number of interleaved output channels.
func (p *Piano) Channels() int { return p.channels }

// PlayNote starts a new voice for noteID from position zero. Earlier voices
// of the same note keep playing. Unknown notes are ignored and reported
// by the false return value.
func (p *Piano) PlayNote(noteID string) bool {
	if p.library == nil {
		return false
	}
	a, ok := p.library.AssetFor(noteID)
	if !ok || a == nil || a.Frames() == 0 {
		p.logger.Debug("note has no sample", "note", noteID)
		return false
	}
	p.queue.enqueue(newVoice(a))
	return true
}

// SetPedal presses (down = true) or releases a pedal.
func (p *Piano) SetPedal(pedal Pedal, down bool) {
	switch pedal {
	case PedalDamper:
		p.damper.set(down)
	case PedalSoft:
		p.soft.set(down)
	}
}

// SetSustainPedal sets damper pedal state (true = down, false = up).
func (p *Piano) SetSustainPedal(down bool) { p.damper.set(down) }

// SetSoftPedal sets una corda / soft pedal state (true = down, false = up).
func (p *Piano) SetSoftPedal(down bool) { p.soft.set(down) }

// SustainPedal reports whether the damper pedal is down.
func (p *Piano) SustainPedal() bool { return p.damper.get() }

// SoftPedal reports whether the soft pedal is down.
func (p *Piano) SoftPedal() bool { return p.soft.get() }

// Render fills out with len(out)/Channels() interleaved frames. It does not
// allocate unless out is larger than the pre-sized mix buffer, which is
// logged and handled by growing the buffer.
func (p *Piano) Render(out []int16) {
	frames := len(out) / p.channels
	n := frames * p.channels
	if len(p.mix) < n {
		p.logger.Warn("render block exceeds mix buffer, resizing",
			"frames", frames, "capacity_frames", len(p.mix)/p.channels)
		p.mix = make([]int32, n)
	}
	mix := p.mix[:n]
	clear(mix)

	p.active.mu.Lock()
	p.queue.drainInto(p.active)
	damper := p.damper.get()
	p.mixVoices(mix, frames, damper)
	p.active.mu.Unlock()

	if p.soft.get() {
		p.writeSoft(out[:n], mix)
	} else {
		p.lowpass.Reset()
		for i, s := range mix {
			out[i] = clamp16(s)
		}
	}
	clear(out[n:])
}

// Process renders numFrames into a newly allocated buffer. Intended for
// offline rendering and tests, not for the audio callback.
func (p *Piano) Process(numFrames int) []int16 {
	out := make([]int16, numFrames*p.channels)
	p.Render(out)
	return out
}

// ActiveVoices returns the number of voices in the active set.
func (p *Piano) ActiveVoices() int {
	p.active.mu.Lock()
	defer p.active.mu.Unlock()
	return len(p.active.voices)
}

// PendingVoices returns the number of voices waiting for the next render.
func (p *Piano) PendingVoices() int {
	return p.queue.len()
}

// VoiceStates returns a snapshot of the active voices.
func (p *Piano) VoiceStates() []VoiceState {
	p.active.mu.Lock()
	defer p.active.mu.Unlock()
	out := make([]VoiceState, len(p.active.voices))
	for i := range p.active.voices {
		out[i] = p.active.voices[i].state()
	}
	return out
}

func clamp16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
