// Package note names the keys of the sampled piano.
package note

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-approx"
)

// ErrInvalidNote is returned by Parse for malformed note names.
var ErrInvalidNote = errors.New("invalid note")

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var letterClass = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// Note is a pitch class (0 = C) in an octave, scientific pitch notation.
type Note struct {
	Class  int
	Octave int
}

// Parse reads names like "C4", "C#4", "Db4" or "bb3". Accidentals shift the
// pitch class and may carry into the neighbouring octave (B#3 is C4).
func Parse(s string) (Note, error) {
	raw := strings.TrimSpace(s)
	if len(raw) < 2 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	class, ok := letterClass[strings.ToUpper(raw[:1])[0]]
	if !ok {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	rest := raw[1:]
	switch rest[0] {
	case '#':
		class++
		rest = rest[1:]
	case 'b':
		class--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave < -1 || octave > 9 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	return FromSemitone((octave+1)*12 + class), nil
}

// MustParse is Parse for constant names; it panics on error.
func MustParse(s string) Note {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromSemitone converts a MIDI-style semitone number (60 = C4).
func FromSemitone(m int) Note {
	octave := m/12 - 1
	class := m % 12
	if class < 0 {
		class += 12
		octave--
	}
	return Note{Class: class, Octave: octave}
}

// Semitone returns the MIDI-style semitone number.
func (n Note) Semitone() int {
	return (n.Octave+1)*12 + n.Class
}

// String returns the canonical sharp spelling, e.g. "C#4".
func (n Note) String() string {
	return sharpNames[n.Class] + strconv.Itoa(n.Octave)
}

// FlatName returns the flat spelling used by sample file names, e.g. "Db4".
func (n Note) FlatName() string {
	return flatNames[n.Class] + strconv.Itoa(n.Octave)
}

// Frequency returns the equal-tempered frequency with A4 = 440 Hz.
func (n Note) Frequency() float32 {
	const a4Freq = 440.0
	const a4Semitone = 69
	exponent := float32(n.Semitone()-a4Semitone) / 12.0
	return a4Freq * pow2Approx(exponent)
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

// Range lists every note from lo to hi inclusive.
func Range(lo, hi Note) []Note {
	if hi.Semitone() < lo.Semitone() {
		return nil
	}
	out := make([]Note, 0, hi.Semitone()-lo.Semitone()+1)
	for m := lo.Semitone(); m <= hi.Semitone(); m++ {
		out = append(out, FromSemitone(m))
	}
	return out
}

// Canonical normalises any accepted spelling to the sharp form.
func Canonical(s string) (string, error) {
	n, err := Parse(s)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}
