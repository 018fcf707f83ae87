package testutil

import (
	"errors"
	"sync"

	"codeberg.org/snonux/flashy/internal/words"
)

// MemoryStore is an in-memory word store for session tests
type MemoryStore struct {
	mu sync.Mutex

	Source   words.WorkingSet
	Progress words.WorkingSet // nil means no progress saved yet

	SaveErr  error
	ResetErr error

	Saves  []words.WorkingSet // snapshot of every Save call
	Resets int
}

// NewMemoryStore creates a store seeded with the given source pairs
func NewMemoryStore(source ...words.Pair) *MemoryStore {
	return &MemoryStore{Source: source}
}

// Load returns the saved progress, or the source when nothing was saved
func (m *MemoryStore) Load() (words.WorkingSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Source == nil && m.Progress == nil {
		return nil, words.ErrSourceUnavailable
	}
	if m.Progress != nil {
		return m.Progress.Clone(), nil
	}
	return m.Source.Clone(), nil
}

// Save records ws as the new progress
func (m *MemoryStore) Save(ws words.WorkingSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Saves = append(m.Saves, ws.Clone())
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Progress = append(words.WorkingSet{}, ws...)
	return nil
}

// Reset drops the progress and returns the source
func (m *MemoryStore) Reset() (words.WorkingSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Resets++
	if m.ResetErr != nil {
		return nil, m.ResetErr
	}
	if m.Source == nil {
		return nil, words.ErrSourceUnavailable
	}
	m.Progress = nil
	return m.Source.Clone(), nil
}

// LastSave returns the most recent saved set
func (m *MemoryStore) LastSave() (words.WorkingSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Saves) == 0 {
		return nil, errors.New("nothing saved")
	}
	return m.Saves[len(m.Saves)-1], nil
}
