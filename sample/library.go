package sample

import (
	"sort"

	"github.com/cwbudde/piano-sampler/note"
)

// Library holds one asset per note. It is read-only after NewLibrary and
// safe for concurrent lookups.
type Library struct {
	assets map[string]*Asset
	notes  []string
}

// NewLibrary indexes assets by their canonical note name. Assets with an
// unparsable note name are ignored; for duplicate notes the first one wins.
func NewLibrary(assets ...*Asset) *Library {
	l := &Library{assets: make(map[string]*Asset, len(assets))}
	type entry struct {
		name     string
		semitone int
	}
	var entries []entry
	for _, a := range assets {
		if a == nil {
			continue
		}
		n, err := note.Parse(a.Note)
		if err != nil {
			continue
		}
		key := n.String()
		if _, dup := l.assets[key]; dup {
			continue
		}
		l.assets[key] = a
		entries = append(entries, entry{name: key, semitone: n.Semitone()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].semitone < entries[j].semitone })
	l.notes = make([]string, len(entries))
	for i, e := range entries {
		l.notes[i] = e.name
	}
	return l
}

// AssetFor returns the asset for noteID in either sharp or flat spelling.
func (l *Library) AssetFor(noteID string) (*Asset, bool) {
	if l == nil {
		return nil, false
	}
	if a, ok := l.assets[noteID]; ok {
		return a, true
	}
	key, err := note.Canonical(noteID)
	if err != nil {
		return nil, false
	}
	a, ok := l.assets[key]
	return a, ok
}

// Notes lists the loaded notes from lowest to highest.
func (l *Library) Notes() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.notes))
	copy(out, l.notes)
	return out
}

// Len returns the number of loaded notes.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.assets)
}

// First returns the lowest loaded asset, or nil for an empty library.
func (l *Library) First() *Asset {
	if l == nil || len(l.notes) == 0 {
		return nil
	}
	return l.assets[l.notes[0]]
}
