package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/piano-sampler/note"
	"github.com/cwbudde/piano-sampler/piano"
)

type eventKind int

const (
	eventNote eventKind = iota
	eventPedal
)

// event is one timed action of a render script.
type event struct {
	at    float64 // seconds
	kind  eventKind
	note  string
	pedal piano.Pedal
	down  bool
}

// parseScript parses a comma-separated list of "time:action" items.
// An action is a note name (C4, Eb5), or damper+/damper-/soft+/soft-.
// Events come back ordered by time, ties in input order.
func parseScript(s string) ([]event, error) {
	var events []event
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ts, action, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("event %q: want time:action", item)
		}
		at, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
		if err != nil || at < 0 {
			return nil, fmt.Errorf("event %q: invalid time", item)
		}
		ev, err := parseAction(strings.TrimSpace(action))
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", item, err)
		}
		ev.at = at
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].at < events[j].at })
	return events, nil
}

func parseAction(a string) (event, error) {
	if n := len(a); n > 1 && (a[n-1] == '+' || a[n-1] == '-') {
		down := a[n-1] == '+'
		switch strings.ToLower(a[:n-1]) {
		case "damper", "sustain":
			return event{kind: eventPedal, pedal: piano.PedalDamper, down: down}, nil
		case "soft":
			return event{kind: eventPedal, pedal: piano.PedalSoft, down: down}, nil
		}
	}
	n, err := note.Parse(a)
	if err != nil {
		return event{}, err
	}
	return event{kind: eventNote, note: n.String()}, nil
}

// lastEventTime is the time of the final event, or 0 for an empty script.
func lastEventTime(events []event) float64 {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].at
}

// fundamentals returns the equal-tempered pitch of every distinct note in
// events, in first-played order.
func fundamentals(events []event) []pitch {
	var out []pitch
	seen := make(map[string]bool)
	for _, ev := range events {
		if ev.kind != eventNote || seen[ev.note] {
			continue
		}
		seen[ev.note] = true
		out = append(out, pitch{note: ev.note, hz: float64(note.MustParse(ev.note).Frequency())})
	}
	return out
}

type pitch struct {
	note string
	hz   float64
}
