//go:build !headless

package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Device plays a Stream on the system audio output. oto's player goroutine
// becomes the render thread.
type Device struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mu      sync.Mutex
}

// OpenDevice creates the audio context for sampleRate and the stream's channels and
// attaches stream. bufferSize is the device latency hint; zero lets oto
// choose.
func OpenDevice(stream *Stream, sampleRate int, bufferSize time.Duration) (*Device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: stream.channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &Device{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
	}, nil
}

// Start begins pulling audio from the stream.
func (d *Device) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started && d.player != nil {
		d.player.Play()
		d.started = true
	}
}

// Err reports an asynchronous device error, if any.
func (d *Device) Err() error {
	if err := d.ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return d.player.Err()
	}
	return nil
}

// Close stops playback and releases the player.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	d.started = false
	return err
}
