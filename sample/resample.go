package sample

import (
	"fmt"
	"math"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
)

// Resample converts a to rate, channel by channel. It returns a unchanged
// when the rates already match.
func Resample(a *Asset, rate int) (*Asset, error) {
	if a == nil || rate <= 0 {
		return nil, fmt.Errorf("resample: invalid input (rate %d)", rate)
	}
	if a.SampleRate == rate || a.Frames() == 0 {
		return a, nil
	}

	ch := a.Channels
	frames := a.Frames()
	outCh := make([][]float64, ch)
	outFrames := -1
	in := make([]float64, frames)
	for c := 0; c < ch; c++ {
		for i := 0; i < frames; i++ {
			in[i] = float64(a.Data[i*ch+c])
		}
		r, err := dspresample.NewForRates(
			float64(a.SampleRate),
			float64(rate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, fmt.Errorf("resample %s: %w", a.Note, err)
		}
		outCh[c] = r.Process(in)
		if outFrames < 0 || len(outCh[c]) < outFrames {
			outFrames = len(outCh[c])
		}
	}

	data := make([]int16, outFrames*ch)
	for i := 0; i < outFrames; i++ {
		for c := 0; c < ch; c++ {
			data[i*ch+c] = clamp16(outCh[c][i])
		}
	}
	return &Asset{
		Note:       a.Note,
		Data:       data,
		SampleRate: rate,
		Channels:   ch,
		Truncated:  a.Truncated,
	}, nil
}

func clamp16(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
