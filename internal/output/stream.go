// Package output connects the render engine to an audio device.
package output

import "encoding/binary"

// Renderer produces interleaved 16-bit frames on demand.
type Renderer interface {
	Render(out []int16)
	Channels() int
}

// Stream exposes a Renderer as an io.Reader of signed 16-bit little-endian
// bytes. Each Read renders in blocks of at most blockFrames so the engine
// stays within its pre-sized buffers. A Stream is read by one goroutine.
type Stream struct {
	src         Renderer
	channels    int
	blockFrames int
	block       []int16
}

// NewStream pre-allocates a block buffer of blockFrames frames.
func NewStream(src Renderer, blockFrames int) *Stream {
	if blockFrames < 1 {
		blockFrames = 512
	}
	ch := src.Channels()
	return &Stream{
		src:         src,
		channels:    ch,
		blockFrames: blockFrames,
		block:       make([]int16, blockFrames*ch),
	}
}

// FrameBytes returns the size of one interleaved frame in bytes.
func (s *Stream) FrameBytes() int {
	return 2 * s.channels
}

// Read fills p with whole frames; a trailing partial frame is left unused.
func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / s.FrameBytes()
	written := 0
	for frames > 0 {
		n := min(frames, s.blockFrames)
		block := s.block[:n*s.channels]
		s.src.Render(block)
		for _, v := range block {
			binary.LittleEndian.PutUint16(p[written:], uint16(v))
			written += 2
		}
		frames -= n
	}
	return written, nil
}
