package piano

import "testing"

func TestOnsetQueueDrainMovesEverythingInOrder(t *testing.T) {
	q := newOnsetQueue(2)
	set := newVoiceSet(2)
	for _, n := range []string{"C4", "D4", "E4"} {
		q.enqueue(Voice{note: n, channels: 1})
	}
	if q.len() != 3 {
		t.Fatalf("expected 3 pending, got %d", q.len())
	}
	q.drainInto(set)
	if q.len() != 0 {
		t.Fatalf("queue not emptied")
	}
	if len(set.voices) != 3 || set.voices[0].note != "C4" || set.voices[2].note != "E4" {
		t.Fatalf("unexpected active set: %+v", set.voices)
	}

	q.enqueue(Voice{note: "F4", channels: 1})
	q.drainInto(set)
	if len(set.voices) != 4 || set.voices[3].note != "F4" {
		t.Fatalf("second drain did not append: %+v", set.voices)
	}
	q.drainInto(set)
	if len(set.voices) != 4 {
		t.Fatalf("empty drain changed the set")
	}
}

func TestVoiceSetRemoveSwapsLast(t *testing.T) {
	set := newVoiceSet(4)
	for _, n := range []string{"A", "B", "C", "D"} {
		set.voices = append(set.voices, Voice{note: n})
	}
	set.remove(1)
	if len(set.voices) != 3 || set.voices[1].note != "D" {
		t.Fatalf("unexpected set after remove: %+v", set.voices)
	}
	set.remove(2)
	if len(set.voices) != 2 || set.voices[0].note != "A" || set.voices[1].note != "D" {
		t.Fatalf("unexpected set after removing last: %+v", set.voices)
	}
}
