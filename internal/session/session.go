package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/flashy/internal/words"
)

// DefaultRevealDelay is how long the front of a card stays visible
const DefaultRevealDelay = 3 * time.Second

// Store persists the working set. *words.Store implements it.
type Store interface {
	Load() (words.WorkingSet, error)
	Save(words.WorkingSet) error
	Reset() (words.WorkingSet, error)
}

// Session holds the working set and the card on screen
type Session struct {
	store       Store
	logger      *zap.Logger
	rng         *rand.Rand
	scheduler   Scheduler
	revealDelay time.Duration

	mu         sync.Mutex
	working    words.WorkingSet
	current    words.Pair
	hasCard    bool
	state      State
	learned    int
	generation uint64 // bumped whenever the card on screen changes
	timer      Timer
	onChange   func(Snapshot)
}

// Option configures a Session
type Option func(*Session)

// WithRand makes card draws reproducible
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithScheduler replaces the wall clock used for the reveal timer
func WithScheduler(scheduler Scheduler) Option {
	return func(s *Session) {
		s.scheduler = scheduler
	}
}

// WithRevealDelay sets how long the front stays visible
func WithRevealDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.revealDelay = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnChange registers a callback that receives a snapshot after every
// transition. See SetOnChange.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// New creates a session. Call Start to load the words and draw a card.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store:       store,
		logger:      zap.NewNop(),
		scheduler:   SystemScheduler(),
		revealDelay: DefaultRevealDelay,
		state:       StateIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetOnChange registers a callback that receives a snapshot after every
// transition, including timer-driven reveals. It is called without the
// session lock held, possibly from the timer goroutine.
func (s *Session) SetOnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Start loads the working set and draws the first card
func (s *Session) Start() error {
	ws, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}

	s.mu.Lock()
	s.working = ws
	s.learned = 0
	s.logger.Info("Session started", zap.Int("words", len(ws)))
	s.advanceLocked()
	s.unlockAndNotify()

	return nil
}

// Advance cancels a pending reveal and draws a new card at random. The
// previous card may come up again. With an empty working set the session
// becomes exhausted and no timer is scheduled.
func (s *Session) Advance() {
	s.mu.Lock()
	s.advanceLocked()
	s.unlockAndNotify()
}

// Reveal turns the card over. It does nothing unless the front is showing.
func (s *Session) Reveal() {
	s.mu.Lock()
	if !s.revealLocked() {
		s.mu.Unlock()
		return
	}
	s.unlockAndNotify()
}

// MarkCorrect drops the current card from the working set, saves the set
// and draws the next card. It is a no-op when there is nothing to learn.
// A failed save is returned but the session still moves on.
func (s *Session) MarkCorrect() error {
	s.mu.Lock()
	if len(s.working) == 0 || !s.hasCard {
		s.mu.Unlock()
		return nil
	}

	ws, removed := s.working.Remove(s.current)
	if !removed {
		s.logger.Warn("Current card missing from working set", zap.Stringer("card", s.current))
	} else {
		s.working = ws
		s.learned++
	}

	var saveErr error
	if err := s.store.Save(s.working); err != nil {
		s.logger.Error("Failed to save progress", zap.Error(err))
		saveErr = fmt.Errorf("failed to save progress: %w", err)
	}

	s.logger.Debug("Marked correct",
		zap.Stringer("card", s.current),
		zap.Int("remaining", len(s.working)))

	s.advanceLocked()
	s.unlockAndNotify()

	return saveErr
}

// MarkWrong keeps the current card in the pool and draws the next one
func (s *Session) MarkWrong() {
	s.Advance()
}

// ResetProgress restores the full source list and draws a card. On error
// the session is left as it was.
func (s *Session) ResetProgress() error {
	s.mu.Lock()

	ws, err := s.store.Reset()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to reset progress: %w", err)
	}

	s.working = ws
	s.learned = 0
	s.logger.Info("Progress reset", zap.Int("words", len(ws)))
	s.advanceLocked()
	s.unlockAndNotify()

	return nil
}

// Snapshot returns the current view of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels the pending reveal
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.stopTimerLocked()
}

func (s *Session) advanceLocked() {
	s.generation++
	s.stopTimerLocked()

	if len(s.working) == 0 {
		s.current = words.Pair{}
		s.hasCard = false
		s.state = StateExhausted
		s.logger.Info("All words learned")
		return
	}

	s.current = s.working[s.pick(len(s.working))]
	s.hasCard = true
	s.state = StateFront

	gen := s.generation
	s.timer = s.scheduler.AfterFunc(s.revealDelay, func() {
		s.revealScheduled(gen)
	})
}

// revealScheduled runs on the timer. gen identifies the card the timer was
// armed for; anything else on screen means the timer is stale.
func (s *Session) revealScheduled(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.revealLocked() {
		s.mu.Unlock()
		return
	}
	s.unlockAndNotify()
}

func (s *Session) revealLocked() bool {
	if s.state != StateFront {
		return false
	}

	s.stopTimerLocked()
	s.state = StateBack
	return true
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) pick(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:     s.state,
		Card:      s.current,
		HasCard:   s.hasCard,
		Remaining: len(s.working),
		Learned:   s.learned,
	}
}

// unlockAndNotify releases the lock and hands a snapshot to the observer
func (s *Session) unlockAndNotify() {
	snap := s.snapshotLocked()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}
