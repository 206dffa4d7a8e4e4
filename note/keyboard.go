package note

// Action is what a computer key does on the virtual keyboard.
type Action int

const (
	ActionNone Action = iota
	ActionNote
	ActionToggleSoft
	ActionToggleDamper
	ActionQuit
)

// Binding is the result of looking up a key.
type Binding struct {
	Action Action
	Note   Note
}

// Three rows of twelve keys, each row one chromatic octave starting at C.
var keyRows = []struct {
	keys   string
	octave int
}{
	{"1234567890-=", 3},
	{"qwertyuiop[]", 4},
	{"asdfghjkl;'\\", 5},
}

// Layout maps terminal key presses to keyboard actions.
type Layout struct {
	keys map[rune]Binding
}

// DefaultLayout covers C3..B5 on three rows, n/m for the soft and damper
// pedals, Esc and Ctrl-C to quit.
func DefaultLayout() *Layout {
	l := &Layout{keys: make(map[rune]Binding, 48)}
	for _, row := range keyRows {
		for i, r := range row.keys {
			l.keys[r] = Binding{Action: ActionNote, Note: Note{Class: i, Octave: row.octave}}
		}
	}
	for _, r := range "nN" {
		l.keys[r] = Binding{Action: ActionToggleSoft}
	}
	for _, r := range "mM" {
		l.keys[r] = Binding{Action: ActionToggleDamper}
	}
	l.keys[0x1b] = Binding{Action: ActionQuit}
	l.keys[0x03] = Binding{Action: ActionQuit}
	return l
}

// Lookup returns the binding for r; upper-case letters play like lower-case.
func (l *Layout) Lookup(r rune) Binding {
	if b, ok := l.keys[r]; ok {
		return b
	}
	if r >= 'A' && r <= 'Z' {
		return l.keys[r+('a'-'A')]
	}
	return Binding{}
}

// Notes lists every note reachable from the layout, lowest first.
func (l *Layout) Notes() []Note {
	return Range(Note{Class: 0, Octave: keyRows[0].octave}, Note{Class: 11, Octave: keyRows[len(keyRows)-1].octave})
}
