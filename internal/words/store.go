package words

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrSourceUnavailable means the source word list could not be read, so
// there is nothing to learn
var ErrSourceUnavailable = errors.New("source word list unavailable")

// Options configures where a Store reads and writes
type Options struct {
	SourcePath   string  // Pristine word list, never written
	ProgressPath string  // Words still to learn, rewritten after every change
	Columns      Columns // Expected header of both files
	Sheet        string  // Sheet to read from .xlsx files ("" = first sheet)
}

// Store loads and persists the working set
type Store struct {
	opts      Options
	logger    *zap.Logger
	resetHook func(progressPath string) error
}

// NewStore creates a store. A zero Columns value means DefaultColumns.
func NewStore(opts Options, logger *zap.Logger) *Store {
	if opts.Columns == (Columns{}) {
		opts.Columns = DefaultColumns()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		opts:   opts,
		logger: logger,
	}
}

// Options returns the store configuration
func (s *Store) Options() Options {
	return s.opts
}

// SetResetHook registers a function that runs on the old progress file
// right before Reset clears it. A failing hook is logged and ignored.
func (s *Store) SetResetHook(hook func(progressPath string) error) {
	s.resetHook = hook
}

// Load returns the saved progress. A missing, empty, foreign or unparsable
// progress file means no progress yet and the full source list is returned
// instead. Rows with the wrong number of fields are never recovered from.
func (s *Store) Load() (WorkingSet, error) {
	ws, err := readTable(s.opts.ProgressPath, s.opts.Columns, s.opts.Sheet, s.logger)
	if err == nil {
		s.logger.Debug("Loaded progress file",
			zap.String("path", s.opts.ProgressPath),
			zap.Int("words", len(ws)))
		return ws, nil
	}

	if errors.Is(err, ErrMalformedRow) {
		return nil, fmt.Errorf("failed to load progress file: %w", err)
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrEmptyFile):
		s.logger.Debug("No progress yet, starting from source",
			zap.String("progress", s.opts.ProgressPath))
	default:
		s.logger.Warn("Ignoring unusable progress file",
			zap.String("progress", s.opts.ProgressPath),
			zap.Error(err))
	}

	return s.LoadSource()
}

// LoadSource reads the pristine source list
func (s *Store) LoadSource() (WorkingSet, error) {
	ws, err := readTable(s.opts.SourcePath, s.opts.Columns, s.opts.Sheet, s.logger)
	if err != nil {
		if errors.Is(err, ErrMalformedRow) {
			return nil, fmt.Errorf("failed to load source file: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	s.logger.Debug("Loaded source file",
		zap.String("path", s.opts.SourcePath),
		zap.Int("words", len(ws)))
	return ws, nil
}

// Save overwrites the progress file with ws. An empty set is written as a
// header-only file, which Load reads back as "everything learned".
func (s *Store) Save(ws WorkingSet) error {
	if err := WriteTable(s.opts.ProgressPath, s.opts.Columns, ws); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	s.logger.Debug("Saved progress",
		zap.String("path", s.opts.ProgressPath),
		zap.Int("words", len(ws)))
	return nil
}

// Reset empties the progress file and returns the full source list
func (s *Store) Reset() (WorkingSet, error) {
	if s.resetHook != nil {
		if _, err := os.Stat(s.opts.ProgressPath); err == nil {
			if err := s.resetHook(s.opts.ProgressPath); err != nil {
				s.logger.Warn("Reset hook failed", zap.Error(err))
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.opts.ProgressPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create progress directory: %w", err)
	}
	if err := os.WriteFile(s.opts.ProgressPath, nil, 0644); err != nil {
		return nil, fmt.Errorf("failed to clear progress file: %w", err)
	}

	s.logger.Info("Progress reset", zap.String("path", s.opts.ProgressPath))
	return s.LoadSource()
}
