// Package wavio writes rendered and fixture audio to WAV files.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WriteInterleavedWAV writes float samples in [-1,1] as 16-bit PCM.
func WriteInterleavedWAV(path string, samples []float32, sampleRate int, channels int) error {
	if channels < 1 {
		return fmt.Errorf("invalid channel count %d", channels)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// WritePCM16 writes interleaved int16 samples without any conversion, so the
// file decodes back to exactly the same values.
func WritePCM16(path string, data []int16, sampleRate int, channels int) error {
	if channels < 1 {
		return fmt.Errorf("invalid channel count %d", channels)
	}
	if len(data)%channels != 0 {
		return fmt.Errorf("%d samples is not a whole number of %d-channel frames", len(data), channels)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	ints := make([]int, len(data))
	for i, s := range data {
		ints[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// Int16ToFloat32 scales PCM samples to [-1,1).
func Int16ToFloat32(dst []float32, src []int16) []float32 {
	if cap(dst) < len(src) {
		dst = make([]float32, len(src))
	}
	dst = dst[:len(src)]
	for i, s := range src {
		dst[i] = float32(s) / 32768
	}
	return dst
}
