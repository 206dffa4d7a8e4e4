package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/cwbudde/piano-sampler/note"
	"github.com/cwbudde/piano-sampler/piano"
)

// keyboard turns terminal input into note and pedal events. Pedals toggle
// because a terminal reports no key releases.
type keyboard struct {
	sink   noteSink
	layout *note.Layout
	out    io.Writer
	soft   bool
	damper bool
}

// handle processes one read from the terminal and reports whether to quit.
// Multi-byte escape sequences such as arrow keys are ignored.
func (k *keyboard) handle(b []byte) bool {
	if len(b) > 1 && b[0] == 0x1b {
		return false
	}
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		bind := k.layout.Lookup(r)
		switch bind.Action {
		case note.ActionQuit:
			return true
		case note.ActionNote:
			if !k.sink.PlayNote(bind.Note.String()) {
				fmt.Fprintf(k.out, "%s: no sample\r\n", bind.Note)
				continue
			}
			fmt.Fprintf(k.out, "%s %.1f Hz\r\n", bind.Note, bind.Note.Frequency())
		case note.ActionToggleSoft:
			k.soft = !k.soft
			k.sink.SetPedal(piano.PedalSoft, k.soft)
			fmt.Fprintf(k.out, "soft pedal %s\r\n", onOff(k.soft))
		case note.ActionToggleDamper:
			k.damper = !k.damper
			k.sink.SetPedal(piano.PedalDamper, k.damper)
			fmt.Fprintf(k.out, "damper pedal %s\r\n", onOff(k.damper))
		}
	}
	return false
}

func onOff(down bool) string {
	if down {
		return "down"
	}
	return "up"
}
