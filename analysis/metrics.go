// Package analysis measures rendered piano output.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// Summary describes one rendered buffer.
type Summary struct {
	SampleRate  int     `json:"sample_rate"`
	Channels    int     `json:"channels"`
	Frames      int     `json:"frames"`
	PeakDBFS    float64 `json:"peak_dbfs"`
	RMSDBFS     float64 `json:"rms_dbfs"`
	Clipped     int     `json:"clipped_samples"`
	CentroidHz  float64 `json:"centroid_hz"`
	DecayDBPerS float64 `json:"decay_db_per_s"`
}

// Analyze summarises interleaved 16-bit audio. Spectral and decay figures
// are computed on the channel average; they are NaN when the buffer is too
// short.
func Analyze(interleaved []int16, channels int, sampleRate int) Summary {
	s := Summary{SampleRate: sampleRate, Channels: channels}
	if channels < 1 || sampleRate <= 0 {
		return s
	}
	s.Frames = len(interleaved) / channels
	s.PeakDBFS = LinToDB(PeakInt16(interleaved))
	s.RMSDBFS = LinToDB(RMSInt16(interleaved))
	for _, v := range interleaved {
		if v == math.MaxInt16 || v == math.MinInt16 {
			s.Clipped++
		}
	}

	mono := Mono(interleaved, channels)
	s.CentroidHz = math.NaN()
	if c, err := SpectralCentroid(mono, sampleRate); err == nil {
		s.CentroidHz = c
	}
	s.DecayDBPerS = DecaySlopeDBPerS(Envelope(mono, 256, 128), 128.0/float64(sampleRate))
	return s
}

// Mono averages interleaved channels and scales to [-1,1).
func Mono(interleaved []int16, channels int) []float64 {
	if channels < 1 {
		return nil
	}
	frames := len(interleaved) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(interleaved[i*channels+c])
		}
		out[i] = sum / float64(channels) / 32768
	}
	return out
}

// RMSInt16 returns the full-scale relative RMS of x.
func RMSInt16(x []int16) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, s := range x {
		v := float64(s) / 32768
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// PeakInt16 returns the full-scale relative peak of x.
func PeakInt16(x []int16) float64 {
	var peak float64
	for _, s := range x {
		if v := math.Abs(float64(s)) / 32768; v > peak {
			peak = v
		}
	}
	return peak
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// LinToDB converts a linear amplitude to decibels, floored at -240 dB.
func LinToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

// Envelope returns the RMS of overlapping frames of x.
func Envelope(x []float64, frame int, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * hop
		out[i] = RMS(x[start : start+frame])
	}
	return out
}

// DecaySlopeDBPerS fits a line to the envelope in dB from its peak down to
// 60 dB below it. It returns NaN when there is not enough decay to fit.
func DecaySlopeDBPerS(env []float64, hopSec float64) float64 {
	if len(env) < 8 || hopSec <= 0 {
		return math.NaN()
	}
	peak := -math.MaxFloat64
	peakIdx := 0
	for i, v := range env {
		if db := LinToDB(v); db > peak {
			peak = db
			peakIdx = i
		}
	}
	if peak <= LinToDB(0) {
		return math.NaN()
	}
	start := peakIdx + 1
	if start >= len(env)-4 {
		return math.NaN()
	}

	threshold := peak - 60.0
	end := len(env)
	for i := start; i < len(env); i++ {
		if LinToDB(env[i]) < threshold {
			end = i
			break
		}
	}
	if end-start < 6 {
		return math.NaN()
	}

	var sx, sy, sxx, sxy float64
	n := float64(end - start)
	for i := start; i < end; i++ {
		x := float64(i-start) * hopSec
		y := LinToDB(env[i])
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if math.Abs(den) < 1e-12 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}

const centroidFFTSize = 4096

// SpectralCentroid returns the magnitude-weighted mean frequency of x,
// averaged over Hann-windowed frames with 50% overlap. Buffers shorter than
// one frame are zero padded.
func SpectralCentroid(x []float64, sampleRate int) (float64, error) {
	if len(x) == 0 || sampleRate <= 0 {
		return 0, fmt.Errorf("empty signal")
	}
	plan, err := algofft.NewPlanReal64(centroidFFTSize)
	if err != nil {
		return 0, err
	}

	hann := make([]float64, centroidFFTSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(centroidFFTSize-1))
	}
	spec := make([]complex128, centroidFFTSize/2+1)
	buf := make([]float64, centroidFFTSize)
	binHz := float64(sampleRate) / float64(centroidFFTSize)

	var weighted, total float64
	hop := centroidFFTSize / 2
	for pos := 0; pos == 0 || pos+centroidFFTSize <= len(x); pos += hop {
		for i := range buf {
			buf[i] = 0
			if pos+i < len(x) {
				buf[i] = x[pos+i] * hann[i]
			}
		}
		plan.Forward(spec, buf)
		for k := 1; k < len(spec); k++ {
			mag := cmplx.Abs(spec[k])
			weighted += mag * float64(k) * binHz
			total += mag
		}
	}
	if total <= 1e-12 {
		return 0, fmt.Errorf("silent signal")
	}
	return weighted / total, nil
}
