package piano

import "fmt"

// Params holds the engine settings. Decay and ceiling times are in seconds
// of output audio.
type Params struct {
	SampleRate     int
	Channels       int
	MaxBlockFrames int // mix buffer is pre-sized for this many frames
	VoiceCapacity  int // initial capacity of the pending and active lists

	SoftCutoffHz float64
	SoftGain     float64

	SustainBoost        float64
	DamperDecaySeconds  float64 // sustain fade while the damper pedal is down
	ReleaseDecaySeconds float64 // sustain fade after the damper pedal is released
	NoteCeilingSeconds  float64 // undamped notes are cut after this long
}

// NewDefaultParams creates default parameters.
func NewDefaultParams() *Params {
	return &Params{
		SampleRate:          44100,
		Channels:            2,
		MaxBlockFrames:      512,
		VoiceCapacity:       64,
		SoftCutoffHz:        2500,
		SoftGain:            0.79,
		SustainBoost:        1.1,
		DamperDecaySeconds:  5.0,
		ReleaseDecaySeconds: 0.5,
		NoteCeilingSeconds:  1.0,
	}
}

// Validate reports the first out-of-range field.
func (p *Params) Validate() error {
	if p == nil {
		return fmt.Errorf("nil params")
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0, got %d", p.SampleRate)
	}
	if p.Channels < 1 || p.Channels > 8 {
		return fmt.Errorf("channels must be in [1,8], got %d", p.Channels)
	}
	if p.MaxBlockFrames < 1 {
		return fmt.Errorf("max block frames must be >= 1, got %d", p.MaxBlockFrames)
	}
	if p.VoiceCapacity < 0 {
		return fmt.Errorf("voice capacity must be >= 0, got %d", p.VoiceCapacity)
	}
	if p.SoftCutoffHz <= 0 || p.SoftCutoffHz >= float64(p.SampleRate)/2 {
		return fmt.Errorf("soft cutoff must be in (0,%d), got %g", p.SampleRate/2, p.SoftCutoffHz)
	}
	if p.SoftGain < 0 || p.SoftGain > 1 {
		return fmt.Errorf("soft gain must be in [0,1], got %g", p.SoftGain)
	}
	if p.SustainBoost < 0 {
		return fmt.Errorf("sustain boost must be >= 0, got %g", p.SustainBoost)
	}
	if p.DamperDecaySeconds <= 0 || p.ReleaseDecaySeconds <= 0 {
		return fmt.Errorf("decay times must be > 0, got %g/%g", p.DamperDecaySeconds, p.ReleaseDecaySeconds)
	}
	if p.NoteCeilingSeconds <= 0 {
		return fmt.Errorf("note ceiling must be > 0, got %g", p.NoteCeilingSeconds)
	}
	return nil
}
