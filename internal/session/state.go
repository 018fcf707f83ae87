package session

import (
	"fmt"

	"codeberg.org/snonux/flashy/internal/words"
)

// State is what the learner currently sees
type State int

const (
	StateIdle      State = iota // nothing drawn yet
	StateFront                  // source text visible, reveal pending
	StateBack                   // target text visible
	StateExhausted              // working set is empty
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFront:
		return "Front"
	case StateBack:
		return "Back"
	case StateExhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// Snapshot is a read-only view of the session for rendering
type Snapshot struct {
	State     State
	Card      words.Pair
	HasCard   bool
	Remaining int // words still in the working set
	Learned   int // words marked correct since start or reset
}

// Text returns the side of the card facing the learner
func (s Snapshot) Text() string {
	switch s.State {
	case StateFront:
		return s.Card.Source
	case StateBack:
		return s.Card.Target
	default:
		return ""
	}
}

// Status summarises the progress, e.g. "12 words left · 3 learned"
func (s Snapshot) Status() string {
	return fmt.Sprintf("%d words left · %d learned", s.Remaining, s.Learned)
}
