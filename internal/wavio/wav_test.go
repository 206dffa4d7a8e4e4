package wavio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/piano-sampler/sample"
)

func TestWritePCM16RoundTripsExactly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stereo.wav")
	data := []int16{0, 0, 32767, -32768, 1, -1, 1234, -4321}
	if err := WritePCM16(path, data, 22050, 2); err != nil {
		t.Fatalf("WritePCM16: %v", err)
	}
	a, err := sample.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if a.SampleRate != 22050 || a.Channels != 2 {
		t.Fatalf("format mismatch: %d Hz %d ch", a.SampleRate, a.Channels)
	}
	if len(a.Data) != len(data) {
		t.Fatalf("length mismatch: got=%d want=%d", len(a.Data), len(data))
	}
	for i := range data {
		if a.Data[i] != data[i] {
			t.Fatalf("sample %d mismatch: got=%d want=%d", i, a.Data[i], data[i])
		}
	}
}

func TestWritePCM16RejectsPartialFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := WritePCM16(path, []int16{1, 2, 3}, 44100, 2); err == nil {
		t.Fatalf("expected error for partial frame")
	}
	if err := WritePCM16(path, []int16{1}, 44100, 0); err == nil {
		t.Fatalf("expected error for zero channels")
	}
}

func TestWriteInterleavedWAVCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := make([]float32, 2*441)
	for i := range samples {
		samples[i] = 0.25
	}
	if err := WriteInterleavedWAV(path, samples, 44100, 2); err != nil {
		t.Fatalf("WriteInterleavedWAV: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() < int64(44+len(samples)*2) {
		t.Fatalf("file too small: %d bytes", info.Size())
	}
}

func TestInt16ToFloat32ReusesBuffer(t *testing.T) {
	dst := make([]float32, 0, 8)
	got := Int16ToFloat32(dst, []int16{-32768, 0, 16384})
	if &got[0] != &dst[:1][0] {
		t.Fatalf("expected buffer reuse")
	}
	if got[0] != -1 || got[1] != 0 || got[2] != 0.5 {
		t.Fatalf("unexpected conversion: %v", got)
	}
}
