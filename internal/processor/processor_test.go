package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"codeberg.org/snonux/flashy/internal/cli"
	"codeberg.org/snonux/flashy/internal/phonetic"
	"codeberg.org/snonux/flashy/internal/testutil"
	"codeberg.org/snonux/flashy/internal/translation"
)

// dictionary is a translator backed by a map
type dictionary struct {
	mu    sync.Mutex
	words map[string]string
	calls int
}

func (d *dictionary) Translate(ctx context.Context, text, from, to string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls++
	if tr, ok := d.words[text]; ok {
		return tr, nil
	}
	return "", fmt.Errorf("no %s translation for %q", to, text)
}

// newTestProcessor returns a processor over a source list with two words
func newTestProcessor(t *testing.T) (*Processor, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	flags := cli.NewFlags()
	flags.SourceFile = filepath.Join(dir, "french_words.csv")
	flags.ProgressFile = filepath.Join(dir, "state", "words_to_learn.csv")

	testutil.WriteCSV(t, flags.SourceFile,
		[]string{"French", "English"},
		[]string{"chat", "cat"},
		[]string{"chien", "dog"},
	)

	p := NewProcessor(flags, testutil.NewTestLogger())
	out := &bytes.Buffer{}
	p.out = out
	return p, out
}

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags, nil)

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.logger == nil {
		t.Error("Logger not initialized")
	}
	if p.newTranslator == nil {
		t.Error("Translator factory not initialized")
	}
}

func TestStats_NoProgress(t *testing.T) {
	p, _ := newTestProcessor(t)

	stats, err := p.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 2 || stats.Remaining != 2 || stats.Learned != 0 {
		t.Errorf("Stats() = %+v, want 2 total, 2 remaining", stats)
	}
	if stats.Percent() != 0 {
		t.Errorf("Percent() = %v, want 0", stats.Percent())
	}
}

func TestPrintStats_WithProgress(t *testing.T) {
	p, out := newTestProcessor(t)
	testutil.WriteCSV(t, p.flags.ProgressFile,
		[]string{"French", "English"},
		[]string{"chien", "dog"},
	)

	if err := p.PrintStats(); err != nil {
		t.Fatalf("PrintStats() error = %v", err)
	}

	for _, want := range []string{"Still to learn: 1", "Learned: 1 (50.0%)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q does not contain %q", out.String(), want)
		}
	}
}

func TestStats_MissingSource(t *testing.T) {
	p, _ := newTestProcessor(t)
	p.flags.SourceFile = filepath.Join(t.TempDir(), "missing.csv")

	if _, err := p.Stats(); err == nil {
		t.Error("Expected error for missing source file")
	}
}

func TestStatsPercent(t *testing.T) {
	tests := []struct {
		stats Stats
		want  float64
	}{
		{Stats{}, 0},
		{Stats{Total: 4, Learned: 1}, 25},
		{Stats{Total: 3, Learned: 3}, 100},
	}

	for _, tt := range tests {
		if got := tt.stats.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %v, want %v", tt.stats, got, tt.want)
		}
	}
}

func TestResetProgress(t *testing.T) {
	p, out := newTestProcessor(t)
	testutil.WriteCSV(t, p.flags.ProgressFile, []string{"French", "English"})

	if err := p.ResetProgress(); err != nil {
		t.Fatalf("ResetProgress() error = %v", err)
	}

	if !strings.Contains(out.String(), "2 words to learn") {
		t.Errorf("unexpected output %q", out.String())
	}

	stats, err := p.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Remaining != 2 {
		t.Errorf("Remaining = %d after reset, want 2", stats.Remaining)
	}

	// No archive without --archive-on-reset
	testutil.AssertFileNotExists(t, filepath.Join(filepath.Dir(p.flags.ProgressFile), "archive"))
}

func TestResetProgress_ArchiveOnReset(t *testing.T) {
	p, _ := newTestProcessor(t)
	p.flags.ArchiveOnReset = true
	testutil.WriteCSV(t, p.flags.ProgressFile,
		[]string{"French", "English"},
		[]string{"chien", "dog"},
	)

	if err := p.ResetProgress(); err != nil {
		t.Fatalf("ResetProgress() error = %v", err)
	}

	archived, err := filepath.Glob(filepath.Join(filepath.Dir(p.flags.ProgressFile), "archive", "words_to_learn-*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archived) != 1 {
		t.Fatalf("Expected one archived progress file, got %v", archived)
	}
	testutil.AssertFileContains(t, archived[0], "chien,dog")
}

func TestArchive(t *testing.T) {
	p, out := newTestProcessor(t)

	if err := p.Archive(); err == nil {
		t.Error("Expected error when there is no progress file")
	}

	testutil.WriteCSV(t, p.flags.ProgressFile, []string{"French", "English"})
	if err := p.Archive(); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if !strings.Contains(out.String(), "Progress archived to") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestImportBatch(t *testing.T) {
	p, out := newTestProcessor(t)
	p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
	p.flags.OutputFile = filepath.Join(t.TempDir(), "imported.csv")

	testutil.CreateTestFile(t, p.flags.ImportFile, []byte(`# animals
chat = cat
maison
= bread
inconnu
`))

	dict := &dictionary{words: map[string]string{"maison": "house", "bread": "pain"}}
	p.newTranslator = func(context.Context) (translation.Translator, error) {
		return dict, nil
	}

	result, err := p.ImportBatch(context.Background())
	if err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}

	if result.Translated != 2 {
		t.Errorf("Translated = %d, want 2", result.Translated)
	}
	if len(result.Failed) != 1 || result.Failed[0].Entry.Source != "inconnu" {
		t.Errorf("Failed = %+v, want only 'inconnu'", result.Failed)
	}

	records := testutil.ReadCSV(t, p.flags.OutputFile)
	want := [][]string{
		{"French", "English"},
		{"chat", "cat"},
		{"maison", "house"},
		{"pain", "bread"},
	}
	if fmt.Sprint(records) != fmt.Sprint(want) {
		t.Errorf("output = %v, want %v", records, want)
	}
	if !strings.Contains(out.String(), "Imported 3 new words") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestImportBatch_MergesIntoSource(t *testing.T) {
	p, out := newTestProcessor(t)
	p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
	testutil.CreateTestFile(t, p.flags.ImportFile, []byte("chat = cat\noiseau = bird\n"))

	p.newTranslator = func(context.Context) (translation.Translator, error) {
		return &dictionary{}, nil
	}

	if _, err := p.ImportBatch(context.Background()); err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}

	records := testutil.ReadCSV(t, p.flags.SourceFile)
	if len(records) != 4 {
		t.Fatalf("Expected header and 3 words, got %v", records)
	}
	if records[3][0] != "oiseau" {
		t.Errorf("Expected 'oiseau' appended, got %v", records[3])
	}
	if !strings.Contains(out.String(), "Imported 1 new words") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestImportBatch_NewWordsJoinProgress(t *testing.T) {
	p, _ := newTestProcessor(t)
	p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
	testutil.CreateTestFile(t, p.flags.ImportFile, []byte("chat = cat\noiseau = bird\npoisson = fish\n"))
	testutil.WriteCSV(t, p.flags.ProgressFile, []string{"French", "English"}, []string{"chien", "dog"})

	p.newTranslator = func(context.Context) (translation.Translator, error) {
		return &dictionary{}, nil
	}

	if _, err := p.ImportBatch(context.Background()); err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}

	records := testutil.ReadCSV(t, p.flags.ProgressFile)
	want := [][]string{
		{"French", "English"},
		{"chien", "dog"},
		{"oiseau", "bird"},
		{"poisson", "fish"},
	}
	if fmt.Sprint(records) != fmt.Sprint(want) {
		t.Errorf("progress = %v, want %v", records, want)
	}

	stats, err := p.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 4 || stats.Remaining != 3 || stats.Learned != 1 {
		t.Errorf("Stats() = %+v, want 4 total, 3 remaining, 1 learned", stats)
	}
}

func TestImportBatch_OtherOutputLeavesProgress(t *testing.T) {
	p, _ := newTestProcessor(t)
	p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
	p.flags.OutputFile = filepath.Join(t.TempDir(), "imported.csv")
	testutil.CreateTestFile(t, p.flags.ImportFile, []byte("oiseau = bird\n"))
	testutil.WriteCSV(t, p.flags.ProgressFile, []string{"French", "English"}, []string{"chien", "dog"})

	p.newTranslator = func(context.Context) (translation.Translator, error) {
		return &dictionary{}, nil
	}

	if _, err := p.ImportBatch(context.Background()); err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}

	testutil.AssertFileContent(t, p.flags.ProgressFile, []byte("French,English\nchien,dog\n"))
}

func TestImportBatch_WithoutProgressStaysWithoutProgress(t *testing.T) {
	p, _ := newTestProcessor(t)
	p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
	testutil.CreateTestFile(t, p.flags.ImportFile, []byte("oiseau = bird\n"))

	p.newTranslator = func(context.Context) (translation.Translator, error) {
		return &dictionary{}, nil
	}

	if _, err := p.ImportBatch(context.Background()); err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}

	testutil.AssertFileNotExists(t, p.flags.ProgressFile)
	stats, err := p.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Remaining != 3 || stats.Learned != 0 {
		t.Errorf("Stats() = %+v, want 3 remaining, 0 learned", stats)
	}
}

func TestImportBatch_NoAPIKey(t *testing.T) {
	p, _ := newTestProcessor(t)
	p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
	p.flags.OutputFile = filepath.Join(t.TempDir(), "imported.csv")
	testutil.CreateTestFile(t, p.flags.ImportFile, []byte("chat = cat\nmaison\n"))

	p.newTranslator = func(context.Context) (translation.Translator, error) {
		return nil, translation.ErrNoAPIKey
	}

	result, err := p.ImportBatch(context.Background())
	if err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}
	if len(result.Pairs) != 1 || len(result.Failed) != 1 {
		t.Errorf("Expected 1 pair and 1 failure, got %+v", result)
	}
	if !errors.Is(result.Failed[0].Err, translation.ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", result.Failed[0].Err)
	}
}

func TestImportBatch_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p, _ := newTestProcessor(t)
		p.flags.ImportFile = filepath.Join(t.TempDir(), "missing.txt")

		if _, err := p.ImportBatch(context.Background()); err == nil {
			t.Error("Expected error for missing import file")
		}
	})

	t.Run("unknown translator", func(t *testing.T) {
		p, _ := newTestProcessor(t)
		p.flags.ImportFile = filepath.Join(t.TempDir(), "words.txt")
		p.flags.Translator = "babelfish"
		testutil.CreateTestFile(t, p.flags.ImportFile, []byte("maison\n"))

		_, err := p.ImportBatch(context.Background())
		if err == nil || !strings.Contains(err.Error(), "babelfish") {
			t.Errorf("Expected unknown translator error, got %v", err)
		}
	})
}

func TestConfiguredTranslator(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	for _, name := range []string{"openai", "gemini"} {
		t.Run(name, func(t *testing.T) {
			p, _ := newTestProcessor(t)
			p.flags.Translator = name

			tr, err := p.configuredTranslator(context.Background())
			if !errors.Is(err, translation.ErrNoAPIKey) {
				t.Errorf("Expected ErrNoAPIKey, got %v", err)
			}
			if tr != nil {
				t.Errorf("Expected nil translator, got %T", tr)
			}
		})
	}

	t.Run("openai with key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "test-key")
		p, _ := newTestProcessor(t)

		tr, err := p.configuredTranslator(context.Background())
		if err != nil {
			t.Fatalf("configuredTranslator() error = %v", err)
		}
		if _, ok := tr.(*translation.OpenAITranslator); !ok {
			t.Errorf("Expected *OpenAITranslator, got %T", tr)
		}
	})
}

func TestExportAnki_CSV(t *testing.T) {
	p, out := newTestProcessor(t)
	p.flags.AnkiCSV = true
	p.flags.AnkiFile = t.TempDir()
	testutil.WriteCSV(t, p.flags.ProgressFile,
		[]string{"French", "English"},
		[]string{"chien", "dog"},
	)

	path, err := p.ExportAnki(context.Background())
	if err != nil {
		t.Fatalf("ExportAnki() error = %v", err)
	}
	if filepath.Base(path) != "anki_import.csv" {
		t.Errorf("Expected default CSV name, got %s", path)
	}

	records := testutil.ReadCSV(t, path)
	if len(records) != 2 || records[1][0] != "chien" {
		t.Errorf("Expected only the remaining word, got %v", records)
	}
	if !strings.Contains(out.String(), "Exported 1 cards") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestExportAnki_AllWordsAPKG(t *testing.T) {
	p, out := newTestProcessor(t)
	p.flags.AllWords = true
	p.flags.AnkiFile = t.TempDir()
	testutil.WriteCSV(t, p.flags.ProgressFile, []string{"French", "English"})

	path, err := p.ExportAnki(context.Background())
	if err != nil {
		t.Fatalf("ExportAnki() error = %v", err)
	}
	if filepath.Base(path) != "French_Vocabulary.apkg" {
		t.Errorf("Expected deck named package, got %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty package at %s: %v", path, err)
	}
	if !strings.Contains(out.String(), "Exported 2 cards") {
		t.Errorf("unexpected output %q", out.String())
	}
}

// transcriber returns a fixed IPA transcription for known words
type transcriber map[string]string

func (tr transcriber) Fetch(ctx context.Context, word, language string) (string, error) {
	if ipa, ok := tr[word]; ok {
		return ipa, nil
	}
	return "", errors.New("unknown word")
}

func TestExportAnki_Phonetic(t *testing.T) {
	p, out := newTestProcessor(t)
	p.flags.AnkiCSV = true
	p.flags.Phonetic = true
	p.flags.AnkiFile = filepath.Join(t.TempDir(), "cards.csv")
	p.newPhonetic = func() (phoneticFetcher, error) {
		return transcriber{"chat": "/ʃa/"}, nil
	}

	path, err := p.ExportAnki(context.Background())
	if err != nil {
		t.Fatalf("ExportAnki() error = %v", err)
	}

	notes := map[string]string{}
	for _, record := range testutil.ReadCSV(t, path)[1:] {
		notes[record[0]] = record[2]
	}
	if notes["chat"] != "/ʃa/" {
		t.Errorf("Expected IPA note for chat, got %q", notes["chat"])
	}
	if notes["chien"] != "" {
		t.Errorf("Expected empty note for chien, got %q", notes["chien"])
	}
	if !strings.Contains(out.String(), "1 cards with IPA notes") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestExportAnki_PhoneticNoAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	p, _ := newTestProcessor(t)
	p.flags.Phonetic = true
	p.flags.AnkiFile = filepath.Join(t.TempDir(), "deck.apkg")

	_, err := p.ExportAnki(context.Background())
	if !errors.Is(err, phonetic.ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}
}
