package batch

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/flashy/internal/translation"
	"codeberg.org/snonux/flashy/internal/words"
)

// DefaultParallelism bounds concurrent translation requests
const DefaultParallelism = 4

// Failure is an entry that could not be completed
type Failure struct {
	Entry WordEntry
	Err   error
}

// Result of completing a word list
type Result struct {
	Pairs      words.WorkingSet // Complete pairs in file order
	Translated int              // How many halves came from the translator
	Failed     []Failure
}

// Complete fills in the missing half of every entry using tr. Columns name
// the two languages. Entries that cannot be translated are reported in
// Result.Failed and left out of Result.Pairs. A nil tr fails every entry
// that needs translation. Only a cancelled ctx is returned as an error.
func Complete(ctx context.Context, entries []WordEntry, tr translation.Translator, cols words.Columns, parallelism int, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	completed := make([]WordEntry, len(entries))
	errs := make([]error, len(entries))
	var translated atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, entry := range entries {
		if !entry.NeedsTarget() && !entry.NeedsSource() {
			completed[i] = entry
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			filled, err := completeEntry(gctx, entry, tr, cols)
			if err != nil {
				logger.Warn("Translation failed",
					zap.Int("line", entry.Line),
					zap.String("source", entry.Source),
					zap.String("target", entry.Target),
					zap.Error(err))
				errs[i] = err
				return nil
			}

			logger.Debug("Translated", zap.Stringer("pair", filled.Pair()))
			completed[i] = filled
			translated.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result := Result{Pairs: words.WorkingSet{}, Translated: int(translated.Load())}
	for i, entry := range entries {
		if errs[i] != nil {
			result.Failed = append(result.Failed, Failure{Entry: entry, Err: errs[i]})
			continue
		}
		result.Pairs = append(result.Pairs, completed[i].Pair())
	}

	return result, nil
}

func completeEntry(ctx context.Context, entry WordEntry, tr translation.Translator, cols words.Columns) (WordEntry, error) {
	if tr == nil {
		return entry, fmt.Errorf("no translator configured: %w", translation.ErrNoAPIKey)
	}

	if entry.NeedsTarget() {
		target, err := tr.Translate(ctx, entry.Source, cols.Source, cols.Target)
		if err != nil {
			return entry, err
		}
		entry.Target = target
		return entry, nil
	}

	source, err := tr.Translate(ctx, entry.Target, cols.Target, cols.Source)
	if err != nil {
		return entry, err
	}
	entry.Source = source
	return entry, nil
}
