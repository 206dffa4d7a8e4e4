package piano

import "github.com/cwbudde/piano-sampler/sample"

// Voice is one sounding instance of a note. It reads its asset's samples
// without copying them and is only touched by the render thread once queued.
type Voice struct {
	note       string
	data       []int16
	position   int // sample index into data, always at a frame boundary
	length     int
	channels   int
	sampleRate int
	phase      float64 // fractional source frame for the resampling path

	sustained     bool
	sustainVolume float64
	framesPlayed  int
}

func newVoice(a *sample.Asset) Voice {
	return Voice{
		note:          a.Note,
		data:          a.Data,
		length:        a.Frames() * a.Channels,
		channels:      a.Channels,
		sampleRate:    a.SampleRate,
		sustainVolume: 1.0,
	}
}

func (v *Voice) atEnd() bool {
	return v.position >= v.length
}

func (v *Voice) framesLeft() int {
	return (v.length - v.position) / v.channels
}

// VoiceState is a copy of a voice's playback state.
type VoiceState struct {
	Note          string
	Position      int
	Length        int
	Sustained     bool
	SustainVolume float64
	FramesPlayed  int
}

func (v *Voice) state() VoiceState {
	return VoiceState{
		Note:          v.note,
		Position:      v.position,
		Length:        v.length,
		Sustained:     v.sustained,
		SustainVolume: v.sustainVolume,
		FramesPlayed:  v.framesPlayed,
	}
}
