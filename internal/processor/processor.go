package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/flashy/internal"
	"codeberg.org/snonux/flashy/internal/anki"
	"codeberg.org/snonux/flashy/internal/archive"
	"codeberg.org/snonux/flashy/internal/batch"
	"codeberg.org/snonux/flashy/internal/cli"
	"codeberg.org/snonux/flashy/internal/gui"
	"codeberg.org/snonux/flashy/internal/phonetic"
	"codeberg.org/snonux/flashy/internal/session"
	"codeberg.org/snonux/flashy/internal/translation"
	"codeberg.org/snonux/flashy/internal/tui"
	"codeberg.org/snonux/flashy/internal/words"
)

// Processor runs the mode selected on the command line
type Processor struct {
	flags  *cli.Flags
	logger *zap.Logger
	out    io.Writer

	// newTranslator builds the translator for imports; tests replace it
	newTranslator func(ctx context.Context) (translation.Translator, error)

	// newPhonetic builds the IPA fetcher for Anki notes; tests replace it
	newPhonetic func() (phoneticFetcher, error)
}

type phoneticFetcher interface {
	Fetch(ctx context.Context, word, language string) (string, error)
}

// NewProcessor creates a new processor. Reports are printed to stdout.
func NewProcessor(flags *cli.Flags, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Processor{
		flags:  flags,
		logger: logger,
		out:    os.Stdout,
	}
	p.newTranslator = p.configuredTranslator
	p.newPhonetic = p.configuredPhonetic
	return p
}

// Stats summarises learning progress
type Stats struct {
	Total     int // words in the source list
	Remaining int // words still to learn
	Learned   int
}

// Percent returns the learned share of the source list
func (s Stats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Learned) * 100 / float64(s.Total)
}

func (p *Processor) columns() words.Columns {
	return words.Columns{Source: p.flags.SourceColumn, Target: p.flags.TargetColumn}
}

// newStore creates the word store, archiving the old progress file on
// every reset when requested
func (p *Processor) newStore(logger *zap.Logger) *words.Store {
	store := words.NewStore(words.Options{
		SourcePath:   p.flags.SourceFile,
		ProgressPath: p.flags.ProgressFile,
		Columns:      p.columns(),
		Sheet:        p.flags.Sheet,
	}, logger)

	if p.flags.ArchiveOnReset {
		store.SetResetHook(func(progressPath string) error {
			archived, err := archive.ArchiveProgress(progressPath)
			if err != nil {
				return err
			}
			logger.Info("Archived progress before reset", zap.String("path", archived))
			return nil
		})
	}

	return store
}

func (p *Processor) startSession(logger *zap.Logger) (*session.Session, error) {
	s := session.New(p.newStore(logger),
		session.WithRevealDelay(p.flags.RevealDelay),
		session.WithLogger(logger),
	)
	if err := s.Start(); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return s, nil
}

// RunGUIMode launches the desktop application
func (p *Processor) RunGUIMode() error {
	app := gui.New(&gui.Config{
		Columns: p.columns(),
		Logger:  p.logger,
		Debug:   p.flags.Debug,
	})

	s, err := p.startSession(app.Logger())
	if err != nil {
		return err
	}

	app.Run(s)
	return nil
}

// RunTUIMode runs the trainer in the terminal. Log output goes to a file
// next to the progress file so it does not garble the screen.
func (p *Processor) RunTUIMode() error {
	logPath := filepath.Join(filepath.Dir(p.flags.ProgressFile), "flashy.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	logger, err := cli.NewLogger(p.flags.Debug, logPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := p.startSession(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(s, p.columns())
}

// ResetProgress restores the full word list
func (p *Processor) ResetProgress() error {
	ws, err := p.newStore(p.logger).Reset()
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Progress reset: %d words to learn\n", len(ws))
	return nil
}

// Archive copies the progress file into the archive directory
func (p *Processor) Archive() error {
	archived, err := archive.ArchiveProgress(p.flags.ProgressFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Progress archived to %s\n", archived)
	return nil
}

// Stats computes the learning statistics
func (p *Processor) Stats() (Stats, error) {
	store := p.newStore(p.logger)

	source, err := store.LoadSource()
	if err != nil {
		return Stats{}, err
	}
	remaining, err := store.Load()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:     len(source),
		Remaining: len(remaining),
		Learned:   len(source) - len(remaining),
	}
	if stats.Learned < 0 {
		stats.Learned = 0
	}
	return stats, nil
}

// PrintStats prints the learning statistics
func (p *Processor) PrintStats() error {
	stats, err := p.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Words in %s: %d\n", p.flags.SourceFile, stats.Total)
	fmt.Fprintf(p.out, "Still to learn: %d\n", stats.Remaining)
	fmt.Fprintf(p.out, "Learned: %d (%.1f%%)\n", stats.Learned, stats.Percent())
	return nil
}

// ImportBatch reads a word list, translates missing halves and merges the
// result into the output file (the source file unless --output is set)
func (p *Processor) ImportBatch(ctx context.Context) (batch.Result, error) {
	entries, err := batch.ReadBatchFile(p.flags.ImportFile)
	if err != nil {
		return batch.Result{}, err
	}

	tr, err := p.newTranslator(ctx)
	switch {
	case errors.Is(err, translation.ErrNoAPIKey):
		p.logger.Warn("No API key, words without a translation will be skipped",
			zap.String("translator", p.flags.Translator))
	case err != nil:
		return batch.Result{}, err
	default:
		tr = translation.NewCached(
			translation.NewBreaker(p.flags.Translator, tr, translation.DefaultBreakerSettings(), p.logger),
			nil)
	}

	result, err := batch.Complete(ctx, entries, tr, p.columns(), batch.DefaultParallelism, p.logger)
	if err != nil {
		return result, err
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(os.Stderr, "Skipping line %d: %v\n", failure.Entry.Line, failure.Err)
	}

	output := p.flags.OutputFile
	if output == "" {
		output = p.flags.SourceFile
	}

	merged, added, err := p.merge(output, result.Pairs)
	if err != nil {
		return result, err
	}
	if err := words.WriteTable(output, p.columns(), merged); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", output, err)
	}
	if isSameFile(output, p.flags.SourceFile) {
		if err := p.addToProgress(added); err != nil {
			return result, err
		}
	}

	fmt.Fprintf(p.out, "Imported %d new words into %s (%d translated, %d failed)\n",
		len(added), output, result.Translated, len(result.Failed))
	return result, nil
}

// addToProgress appends words new to the source list to the saved progress,
// so they are drawn without resetting. Without usable progress the session
// starts from the source list and already sees them.
func (p *Processor) addToProgress(added words.WorkingSet) error {
	if len(added) == 0 {
		return nil
	}

	ws, err := words.ReadTable(p.flags.ProgressFile, p.columns(), p.flags.Sheet)
	switch {
	case err == nil:
	case errors.Is(err, words.ErrMalformedRow):
		return fmt.Errorf("failed to load progress file: %w", err)
	default:
		p.logger.Debug("No usable progress, new words come from the source list",
			zap.String("progress", p.flags.ProgressFile),
			zap.Error(err))
		return nil
	}

	ws = append(ws, added...)
	if err := p.newStore(p.logger).Save(ws); err != nil {
		return err
	}

	p.logger.Info("Added imported words to progress",
		zap.String("progress", p.flags.ProgressFile),
		zap.Int("words", len(added)))
	return nil
}

func isSameFile(a, b string) bool {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(aInfo, bInfo)
}

// merge appends the pairs not yet in the existing output file and returns
// the merged list along with the pairs that were new
func (p *Processor) merge(output string, pairs words.WorkingSet) (words.WorkingSet, words.WorkingSet, error) {
	existing := words.WorkingSet{}
	if _, err := os.Stat(output); err == nil {
		existing, err = words.ReadTable(output, p.columns(), p.flags.Sheet)
		if err != nil && !errors.Is(err, words.ErrEmptyFile) {
			return nil, nil, fmt.Errorf("failed to read %s: %w", output, err)
		}
	}

	merged := existing.Clone()
	var added words.WorkingSet
	for _, pair := range pairs {
		if merged.Contains(pair) {
			continue
		}
		merged = append(merged, pair)
		added = append(added, pair)
	}
	return merged, added, nil
}

// configuredTranslator builds the translator named by --translator
func (p *Processor) configuredTranslator(ctx context.Context) (translation.Translator, error) {
	switch strings.ToLower(p.flags.Translator) {
	case "", "openai":
		key := cli.GetOpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("OpenAI: %w", translation.ErrNoAPIKey)
		}
		return translation.NewOpenAITranslator(key, p.flags.OpenAIModel), nil
	case "gemini":
		tr, err := translation.NewGeminiTranslator(ctx, cli.GetGeminiKey(), p.flags.GeminiModel)
		if err != nil {
			return nil, err
		}
		return tr, nil
	default:
		return nil, fmt.Errorf("unknown translator %q (want openai or gemini)", p.flags.Translator)
	}
}

// ExportAnki exports the words still to learn (or all words with
// --all-words) and returns the path of the written file
func (p *Processor) ExportAnki(ctx context.Context) (string, error) {
	store := p.newStore(p.logger)

	var ws words.WorkingSet
	var err error
	if p.flags.AllWords {
		ws, err = store.LoadSource()
	} else {
		ws, err = store.Load()
	}
	if err != nil {
		return "", err
	}

	outputPath := p.flags.AnkiFile
	defaultName := internal.SanitizeFilename(p.flags.DeckName) + ".apkg"
	if p.flags.AnkiCSV {
		defaultName = "anki_import.csv"
	}
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		outputPath = filepath.Join(outputPath, defaultName)
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
		Columns:        p.columns(),
	})
	gen.AddPairs(ws)

	if p.flags.Phonetic {
		if err := p.addPhonetics(ctx, gen.GetCards()); err != nil {
			return "", err
		}
	}

	if p.flags.AnkiCSV {
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		if err := gen.GenerateAPKG(outputPath, p.flags.DeckName); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	total, withNotes := gen.Stats()
	fmt.Fprintf(p.out, "Exported %d cards to %s\n", total, outputPath)
	if p.flags.Phonetic {
		fmt.Fprintf(p.out, "  %d cards with IPA notes\n", withNotes)
	}
	return outputPath, nil
}

// addPhonetics stores the IPA transcription of each source word in the
// card notes. Words that cannot be transcribed keep empty notes.
func (p *Processor) addPhonetics(ctx context.Context, cards []anki.Card) error {
	fetcher, err := p.newPhonetic()
	if err != nil {
		return err
	}

	language := p.columns().Source
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batch.DefaultParallelism)

	for i := range cards {
		g.Go(func() error {
			ipa, err := fetcher.Fetch(gctx, cards[i].Source, language)
			if err != nil {
				p.logger.Warn("No IPA transcription",
					zap.String("word", cards[i].Source),
					zap.Error(err))
				return nil
			}
			cards[i].Notes = ipa
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (p *Processor) configuredPhonetic() (phoneticFetcher, error) {
	key := cli.GetOpenAIKey()
	if key == "" {
		return nil, fmt.Errorf("--anki-phonetic: %w", phonetic.ErrNoAPIKey)
	}
	return phonetic.NewFetcher(key, p.flags.OpenAIModel), nil
}
