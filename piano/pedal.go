package piano

import "sync"

// Pedal selects one of the two piano pedals.
type Pedal int

const (
	// PedalDamper holds finished notes in a slow fade.
	PedalDamper Pedal = iota
	// PedalSoft muffles and attenuates the output (una corda).
	PedalSoft
)

func (p Pedal) String() string {
	switch p {
	case PedalDamper:
		return "damper"
	case PedalSoft:
		return "soft"
	default:
		return "unknown"
	}
}

// pedalFlag is one pedal's state with its own lock, so toggling one pedal
// never contends with reads of the other.
type pedalFlag struct {
	mu   sync.Mutex
	down bool
}

func (f *pedalFlag) set(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *pedalFlag) get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.down
}
