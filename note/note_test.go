package note

import (
	"errors"
	"math"
	"testing"
)

func TestParseSpellings(t *testing.T) {
	tests := []struct {
		in       string
		semitone int
		sharp    string
		flat     string
	}{
		{"C4", 60, "C4", "C4"},
		{"C#4", 61, "C#4", "Db4"},
		{"Db4", 61, "C#4", "Db4"},
		{"bb3", 58, "A#3", "Bb3"},
		{"B#3", 60, "C4", "C4"},
		{"Cb4", 59, "B3", "B3"},
		{" a4 ", 69, "A4", "A4"},
		{"G#5", 80, "G#5", "Ab5"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			n, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if n.Semitone() != tc.semitone {
				t.Fatalf("semitone mismatch: got=%d want=%d", n.Semitone(), tc.semitone)
			}
			if n.String() != tc.sharp || n.FlatName() != tc.flat {
				t.Fatalf("spelling mismatch: got=%s/%s want=%s/%s", n, n.FlatName(), tc.sharp, tc.flat)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "C", "H4", "C#", "Cx4", "C10"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidNote) {
			t.Fatalf("Parse(%q): expected ErrInvalidNote, got %v", in, err)
		}
	}
}

func TestFrequencyA4AndOctaves(t *testing.T) {
	a4 := MustParse("A4").Frequency()
	if math.Abs(float64(a4)-440) > 2 {
		t.Fatalf("A4 frequency mismatch: %f", a4)
	}
	a5 := MustParse("A5").Frequency()
	if ratio := a5 / a4; math.Abs(float64(ratio)-2) > 0.02 {
		t.Fatalf("octave ratio mismatch: %f", ratio)
	}
}

func TestRangeCoversChromaticSpan(t *testing.T) {
	got := Range(MustParse("C3"), MustParse("B5"))
	if len(got) != 36 {
		t.Fatalf("expected 36 notes, got %d", len(got))
	}
	if got[0].String() != "C3" || got[35].String() != "B5" {
		t.Fatalf("unexpected bounds: %s..%s", got[0], got[35])
	}
	if Range(MustParse("C4"), MustParse("B3")) != nil {
		t.Fatalf("expected empty range for reversed bounds")
	}
}

func TestDefaultLayoutRows(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		key  rune
		want string
	}{
		{'1', "C3"},
		{'=', "B3"},
		{'q', "C4"},
		{'Q', "C4"},
		{'w', "C#4"},
		{']', "B4"},
		{'a', "C5"},
		{'\\', "B5"},
	}
	for _, tc := range tests {
		b := l.Lookup(tc.key)
		if b.Action != ActionNote || b.Note.String() != tc.want {
			t.Fatalf("key %q: got %+v want %s", tc.key, b, tc.want)
		}
	}
	if l.Lookup('n').Action != ActionToggleSoft || l.Lookup('M').Action != ActionToggleDamper {
		t.Fatalf("pedal keys not bound")
	}
	if l.Lookup(0x1b).Action != ActionQuit {
		t.Fatalf("escape not bound to quit")
	}
	if l.Lookup('z').Action != ActionNone {
		t.Fatalf("unbound key should be ActionNone")
	}
	if n := len(l.Notes()); n != 36 {
		t.Fatalf("expected 36 layout notes, got %d", n)
	}
}
