//go:build headless

package output

import (
	"io"
	"sync"
	"time"
)

// Device pulls the stream at real-time pace without an audio device, for
// machines without sound output.
type Device struct {
	stream     *Stream
	sampleRate int
	stop       chan struct{}
	done       chan struct{}
	started    bool
	mu         sync.Mutex
}

// OpenDevice returns a device that discards the rendered audio.
func OpenDevice(stream *Stream, sampleRate int, _ time.Duration) (*Device, error) {
	return &Device{
		stream:     stream,
		sampleRate: sampleRate,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}, nil
}

// Start begins pulling audio from the stream.
func (d *Device) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.run()
}

func (d *Device) run() {
	defer close(d.done)
	frames := d.stream.blockFrames
	buf := make([]byte, frames*d.stream.FrameBytes())
	period := time.Duration(frames) * time.Second / time.Duration(d.sampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			_, _ = io.ReadFull(d.stream, buf)
		}
	}
}

// Err always returns nil.
func (d *Device) Err() error { return nil }

// Close stops the pulling goroutine.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return nil
	}
	close(d.stop)
	<-d.done
	d.started = false
	return nil
}
