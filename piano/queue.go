package piano

import "sync"

// onsetQueue hands new voices from the input thread to the render thread.
// Its lock is held for one append or one bulk move, never while mixing.
type onsetQueue struct {
	mu      sync.Mutex
	pending []Voice
}

func newOnsetQueue(capacity int) *onsetQueue {
	return &onsetQueue{pending: make([]Voice, 0, capacity)}
}

func (q *onsetQueue) enqueue(v Voice) {
	q.mu.Lock()
	q.pending = append(q.pending, v)
	q.mu.Unlock()
}

// drainInto moves every pending voice to the end of dst.
func (q *onsetQueue) drainInto(dst *voiceSet) {
	q.mu.Lock()
	if len(q.pending) > 0 {
		dst.voices = append(dst.voices, q.pending...)
		clear(q.pending)
		q.pending = q.pending[:0]
	}
	q.mu.Unlock()
}

func (q *onsetQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// voiceSet is the list of sounding voices. Only the render thread mutates
// it; mu is held for the whole mix pass and by inspection calls.
type voiceSet struct {
	mu     sync.Mutex
	voices []Voice
}

func newVoiceSet(capacity int) *voiceSet {
	return &voiceSet{voices: make([]Voice, 0, capacity)}
}

// remove drops voice i by moving the last voice into its slot. Callers
// iterating in reverse never revisit the moved voice.
func (s *voiceSet) remove(i int) {
	last := len(s.voices) - 1
	s.voices[i] = s.voices[last]
	s.voices[last] = Voice{}
	s.voices = s.voices[:last]
}
