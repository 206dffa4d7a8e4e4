package dsp

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// OnePole is a single-pole IIR lowpass, y = alpha*x + (1-alpha)*y, with
// independent state per channel. Process allocates nothing.
type OnePole struct {
	alpha float64
	state []float64
}

// NewOnePoleLowpass builds the filter with alpha = dt/(dt+RC) where
// RC = 1/(2*pi*cutoff) and dt = 1/sampleRate.
func NewOnePoleLowpass(cutoff float64, sampleRate int, channels int) *OnePole {
	if channels < 1 {
		channels = 1
	}
	return &OnePole{
		alpha: LowpassAlpha(cutoff, sampleRate),
		state: make([]float64, channels),
	}
}

// LowpassAlpha returns the smoothing coefficient for cutoff at sampleRate.
func LowpassAlpha(cutoff float64, sampleRate int) float64 {
	if cutoff <= 0 || sampleRate <= 0 {
		return 1
	}
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	dt := 1.0 / float64(sampleRate)
	return dt / (dt + rc)
}

// Alpha returns the smoothing coefficient.
func (f *OnePole) Alpha() float64 {
	return f.alpha
}

// Process filters one sample of channel ch.
func (f *OnePole) Process(ch int, x float64) float64 {
	y := f.alpha*x + (1-f.alpha)*f.state[ch]
	y = dspcore.FlushDenormals(y)
	f.state[ch] = y
	return y
}

// Reset zeroes every channel state.
func (f *OnePole) Reset() {
	for i := range f.state {
		f.state[i] = 0
	}
}
