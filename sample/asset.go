// Package sample decodes, locates and holds the PCM recordings played by the
// piano engine.
package sample

// Asset is one decoded recording. It is never modified after decoding and is
// shared by every voice that plays its note.
type Asset struct {
	Note       string
	Data       []int16 // interleaved by channel
	SampleRate int
	Channels   int
	// Truncated is set when the data chunk ended before its declared size.
	Truncated bool
}

// Frames returns the number of whole frames in Data.
func (a *Asset) Frames() int {
	if a == nil || a.Channels <= 0 {
		return 0
	}
	return len(a.Data) / a.Channels
}

// Len returns the total number of samples across all channels.
func (a *Asset) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// Seconds returns the playing time at the asset's own rate.
func (a *Asset) Seconds() float64 {
	if a == nil || a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}
