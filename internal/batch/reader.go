package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/flashy/internal/words"
)

// WordEntry is one line of a word list. Either half may be missing and is
// filled in by a translator.
type WordEntry struct {
	Line   int // 1-based line number in the file
	Source string
	Target string
}

// NeedsTarget reports whether only the source word was given
func (e WordEntry) NeedsTarget() bool {
	return e.Source != "" && e.Target == ""
}

// NeedsSource reports whether only the target word was given
func (e WordEntry) NeedsSource() bool {
	return e.Source == "" && e.Target != ""
}

// Pair returns the entry as a word pair
func (e WordEntry) Pair() words.Pair {
	return words.Pair{Source: e.Source, Target: e.Target}
}

// ReadBatchFile reads words from a file and returns WordEntry slice
// Supports formats:
// - Source word only: "chat" (will be translated to the target language)
// - With translation: "chat = cat" (both provided, no translation needed)
// - Target only: "= cat" (will be translated to the source language)
//
// Blank lines, lines starting with '#' and lines with an empty target
// after '=' are skipped.
func ReadBatchFile(filename string) ([]WordEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer file.Close()

	var entries []WordEntry
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			continue
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

func parseLine(line string) (WordEntry, bool) {
	source, target, found := strings.Cut(line, "=")
	if !found {
		return WordEntry{Source: line}, true
	}

	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if target == "" {
		return WordEntry{}, false
	}

	return WordEntry{Source: source, Target: target}, true
}
