package sample

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
)

const (
	wavFormatPCM  = 1
	fmtHeaderSize = 16
)

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Decode reads a RIFF/WAVE stream holding 16-bit linear PCM. Unknown chunks
// are skipped by their declared size. Errors wrap ErrDecode or
// ErrUnsupportedFormat.
func Decode(r io.Reader) (*Asset, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if p.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: form type %q is not WAVE", ErrDecode, p.Format[:])
	}

	var (
		haveFmt   bool
		payload   []byte
		haveData  bool
		truncated bool
	)
	for !(haveFmt && haveData) {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}

		switch ch.ID {
		case riff.FmtID:
			if ch.Size < fmtHeaderSize {
				return nil, fmt.Errorf("%w: fmt chunk is %d bytes", ErrDecode, ch.Size)
			}
			if err := ch.DecodeWavHeader(p); err != nil {
				return nil, fmt.Errorf("%w: fmt chunk: %v", ErrDecode, err)
			}
			haveFmt = true
		case riff.DataFormatID:
			payload, err = io.ReadAll(io.LimitReader(ch, int64(ch.Size)))
			if err != nil {
				return nil, fmt.Errorf("%w: data chunk: %v", ErrDecode, err)
			}
			truncated = len(payload) < ch.Size-1
			haveData = true
		default:
			ch.Drain()
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("%w: no fmt chunk", ErrDecode)
	}
	if p.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, p.WavAudioFormat)
	}
	if p.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, p.BitsPerSample)
	}
	if p.NumChannels == 0 || p.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrDecode, p.NumChannels, p.SampleRate)
	}
	if !haveData {
		return nil, fmt.Errorf("%w: no data chunk", ErrDecode)
	}

	channels := int(p.NumChannels)
	frames := len(payload) / (2 * channels)
	data := make([]int16, frames*channels)
	for i := range data {
		data[i] = int16(binary.LittleEndian.Uint16(payload[i*2:]))
	}
	return &Asset{
		Data:       data,
		SampleRate: int(p.SampleRate),
		Channels:   channels,
		Truncated:  truncated,
	}, nil
}
