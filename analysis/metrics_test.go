package analysis

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate int, frames int, amp float64) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestLevelsOfFullScaleSquare(t *testing.T) {
	x := make([]int16, 1000)
	for i := range x {
		x[i] = math.MaxInt16
		if i%2 == 1 {
			x[i] = math.MinInt16
		}
	}
	s := Analyze(x, 2, 44100)
	if math.Abs(s.RMSDBFS) > 0.01 || math.Abs(s.PeakDBFS) > 0.01 {
		t.Fatalf("expected 0 dBFS, got rms=%f peak=%f", s.RMSDBFS, s.PeakDBFS)
	}
	if s.Clipped != 1000 || s.Frames != 500 {
		t.Fatalf("unexpected counts: %+v", s)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	s := Analyze(make([]int16, 2048), 1, 44100)
	if s.RMSDBFS > -200 || s.PeakDBFS > -200 {
		t.Fatalf("silence should be at the floor: %+v", s)
	}
	if !math.IsNaN(s.CentroidHz) || !math.IsNaN(s.DecayDBPerS) {
		t.Fatalf("expected NaN centroid and decay for silence: %+v", s)
	}
	if s := Analyze([]int16{1, 2}, 0, 44100); s.Frames != 0 {
		t.Fatalf("invalid channel count should yield empty summary")
	}
}

func TestMonoAveragesChannels(t *testing.T) {
	got := Mono([]int16{16384, 0, -16384, -16384, 7}, 2)
	if len(got) != 2 || got[0] != 0.25 || got[1] != -0.5 {
		t.Fatalf("unexpected mono mix: %v", got)
	}
}

func TestSpectralCentroidTracksFrequency(t *testing.T) {
	for _, f := range []float64{440, 1000, 5000} {
		c, err := SpectralCentroid(sine(f, 44100, 44100, 0.5), 44100)
		if err != nil {
			t.Fatalf("SpectralCentroid: %v", err)
		}
		if math.Abs(c-f) > 50 {
			t.Fatalf("centroid for %.0f Hz sine: %f", f, c)
		}
	}
	if _, err := SpectralCentroid(make([]float64, 100), 44100); err == nil {
		t.Fatalf("expected error for silent input")
	}
	if _, err := SpectralCentroid(sine(1000, 44100, 1000, 0.5), 44100); err != nil {
		t.Fatalf("short input should be zero padded: %v", err)
	}
}

func TestDecaySlopeOfExponential(t *testing.T) {
	const sr = 44100
	tau := 0.5
	x := sine(440, sr, 2*sr, 0.8)
	for i := range x {
		x[i] *= math.Exp(-float64(i) / sr / tau)
	}
	got := DecaySlopeDBPerS(Envelope(x, 256, 128), 128.0/sr)
	want := -20 / math.Ln10 / tau
	if math.Abs(got-want) > 1 {
		t.Fatalf("decay slope mismatch: got=%f want=%f", got, want)
	}
	if !math.IsNaN(DecaySlopeDBPerS(nil, 0.01)) {
		t.Fatalf("expected NaN for empty envelope")
	}
}

func TestEnvelopeFrames(t *testing.T) {
	env := Envelope(make([]float64, 1000), 256, 128)
	if len(env) != 6 {
		t.Fatalf("expected 6 frames, got %d", len(env))
	}
	if Envelope(make([]float64, 10), 256, 128) != nil {
		t.Fatalf("short input should give nil envelope")
	}
}
