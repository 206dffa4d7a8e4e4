package piano

import (
	"io"
	"log/slog"
	"testing"

	"github.com/cwbudde/piano-sampler/sample"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func constAsset(note string, value int16, frames, rate, channels int) *sample.Asset {
	data := make([]int16, frames*channels)
	for i := range data {
		data[i] = value
	}
	return &sample.Asset{Note: note, Data: data, SampleRate: rate, Channels: channels}
}

func rampAsset(note string, frames, rate int) *sample.Asset {
	data := make([]int16, frames)
	for i := range data {
		data[i] = int16(i + 1)
	}
	return &sample.Asset{Note: note, Data: data, SampleRate: rate, Channels: 1}
}

func monoParams() *Params {
	p := NewDefaultParams()
	p.Channels = 1
	return p
}

func newTestPiano(t *testing.T, params *Params, assets ...*sample.Asset) *Piano {
	t.Helper()
	p, err := NewPiano(sample.NewLibrary(assets...), params, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewPiano: %v", err)
	}
	return p
}

func soleVoice(t *testing.T, p *Piano) VoiceState {
	t.Helper()
	states := p.VoiceStates()
	if len(states) != 1 {
		t.Fatalf("expected exactly one voice, got %d", len(states))
	}
	return states[0]
}

func checkPositions(t *testing.T, p *Piano) {
	t.Helper()
	for _, s := range p.VoiceStates() {
		if s.Position < 0 || s.Position > s.Length {
			t.Fatalf("voice %s position %d outside [0,%d]", s.Note, s.Position, s.Length)
		}
	}
}
