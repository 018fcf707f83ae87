package words

import (
	"fmt"
	"slices"
)

// Pair is one source/target translation pair. Two pairs are the same card
// when both fields match.
type Pair struct {
	Source string
	Target string
}

// String renders the pair in the "word = translation" form used by word lists
func (p Pair) String() string {
	return fmt.Sprintf("%s = %s", p.Source, p.Target)
}

// WorkingSet is the ordered list of pairs not yet learned
type WorkingSet []Pair

// Remove drops the first entry equal to p. Duplicates further down the list
// are kept. The backing array is reused.
func (ws WorkingSet) Remove(p Pair) (WorkingSet, bool) {
	i := slices.Index(ws, p)
	if i < 0 {
		return ws, false
	}
	return slices.Delete(ws, i, i+1), true
}

// Contains reports whether p is in the set
func (ws WorkingSet) Contains(p Pair) bool {
	return slices.Contains(ws, p)
}

// Clone returns a copy that shares no memory with ws
func (ws WorkingSet) Clone() WorkingSet {
	return slices.Clone(ws)
}
