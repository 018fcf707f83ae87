package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/flashy/internal/words"
)

// Card represents a single Anki flashcard
type Card struct {
	Source string // Word shown on the forward card
	Target string // Translation shown on the reverse card
	Notes  string // Optional notes
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string        // Output CSV file path
	IncludeHeaders bool          // Include CSV headers
	Columns        words.Columns // Field names for the two languages
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
		Columns:        words.DefaultColumns(),
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	if options.Columns == (words.Columns{}) {
		options.Columns = words.DefaultColumns()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddPairs adds one card per word pair. Duplicate pairs are added once.
func (g *Generator) AddPairs(ws words.WorkingSet) {
	seen := make(map[words.Pair]bool, len(ws))
	for _, pair := range ws {
		if seen[pair] {
			continue
		}
		seen[pair] = true
		g.AddCard(Card{Source: pair.Source, Target: pair.Target})
	}
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	if dir := filepath.Dir(g.options.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Create output file
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)

	// Write headers if requested
	if g.options.IncludeHeaders {
		headers := []string{g.options.Columns.Source, g.options.Columns.Target, "Notes"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	// Write cards
	for _, card := range g.cards {
		record := []string{card.Source, card.Target, card.Notes}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return file.Close()
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName, g.options.Columns)

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withNotes int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.Notes != "" {
			withNotes++
		}
	}

	return
}
