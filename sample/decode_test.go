package sample

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeOneSecondOfSilence(t *testing.T) {
	raw := buildWAV(pcmFmt(1, 44100), dataChunk(make([]int16, 44100)))
	a, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.SampleRate != 44100 || a.Channels != 1 {
		t.Fatalf("format mismatch: %d Hz %d ch", a.SampleRate, a.Channels)
	}
	if a.Len() != 44100 || a.Frames() != 44100 {
		t.Fatalf("expected 44100 samples, got %d", a.Len())
	}
	for i, s := range a.Data {
		if s != 0 {
			t.Fatalf("sample %d is %d, want 0", i, s)
		}
	}
	if a.Truncated {
		t.Fatalf("complete file flagged as truncated")
	}
	if a.Seconds() != 1 {
		t.Fatalf("expected 1s, got %f", a.Seconds())
	}
}

func TestDecodeStereoValuesAndUnknownChunks(t *testing.T) {
	samples := []int16{100, -100, 32767, -32768, 7, 8}
	raw := buildWAV(
		testChunk{id: "JUNK", body: []byte{1, 2, 3}},
		pcmFmt(2, 48000),
		testChunk{id: "LIST", body: []byte("INFOISFT")},
		dataChunk(samples),
	)
	a, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Channels != 2 || a.SampleRate != 48000 || a.Frames() != 3 {
		t.Fatalf("format mismatch: %+v", a)
	}
	for i := range samples {
		if a.Data[i] != samples[i] {
			t.Fatalf("sample %d mismatch: got=%d want=%d", i, a.Data[i], samples[i])
		}
	}
}

func TestDecodeDataBeforeFmt(t *testing.T) {
	raw := buildWAV(dataChunk([]int16{1, 2, 3, 4}), pcmFmt(1, 8000))
	a, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Len() != 4 || a.Data[3] != 4 {
		t.Fatalf("unexpected data: %v", a.Data)
	}
}

func TestDecodeExtendedFmtChunk(t *testing.T) {
	f := pcmFmt(1, 44100)
	f.body = append(f.body, 0, 0)
	raw := buildWAV(f, dataChunk([]int16{5, 6}))
	a, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Len() != 2 || a.Data[0] != 5 {
		t.Fatalf("unexpected data: %v", a.Data)
	}
}

func TestDecodeTruncatedDataKeepsWholeFrames(t *testing.T) {
	raw := buildWAV(pcmFmt(2, 44100), dataChunk([]int16{1, 2, 3, 4, 5, 6}))
	raw = raw[:len(raw)-3]
	a, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !a.Truncated {
		t.Fatalf("expected truncated flag")
	}
	if a.Frames() != 2 || a.Len() != 4 {
		t.Fatalf("expected 2 whole frames, got %d samples", a.Len())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrDecode},
		{"bad magic", buildRIFF("RIFX", "WAVE", pcmFmt(1, 44100), dataChunk([]int16{0})), ErrDecode},
		{"bad form", buildRIFF("RIFF", "AVI ", pcmFmt(1, 44100), dataChunk([]int16{0})), ErrDecode},
		{"no fmt", buildWAV(dataChunk([]int16{0, 0})), ErrDecode},
		{"no data", buildWAV(pcmFmt(1, 44100)), ErrDecode},
		{"short fmt", buildWAV(testChunk{id: "fmt ", body: []byte{1, 0, 1, 0}}, dataChunk([]int16{0})), ErrDecode},
		{"zero channels", buildWAV(pcmFmt(0, 44100), dataChunk([]int16{0})), ErrDecode},
		{"24 bit", buildWAV(fmtChunk(1, 1, 44100, 24), dataChunk([]int16{0, 0, 0})), ErrUnsupportedFormat},
		{"8 bit", buildWAV(fmtChunk(1, 1, 44100, 8), dataChunk([]int16{0})), ErrUnsupportedFormat},
		{"float", buildWAV(fmtChunk(3, 1, 44100, 16), dataChunk([]int16{0})), ErrUnsupportedFormat},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Decode(bytes.NewReader(tc.raw))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if a != nil {
				t.Fatalf("expected nil asset on error")
			}
		})
	}
}

func TestDecodeFileWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := DecodeFile(path)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
