package words

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	// ErrEmptyFile means the file exists but has not even a header row
	ErrEmptyFile = errors.New("file has no header row")

	// ErrColumnMismatch means the header does not name the expected columns
	ErrColumnMismatch = errors.New("unexpected columns")

	// ErrMalformedRow means a data row does not have exactly two fields
	ErrMalformedRow = errors.New("malformed row")
)

// Columns names the two header cells of a word file. The names double as
// the language names used when translating word lists.
type Columns struct {
	Source string
	Target string
}

// DefaultColumns returns the header of the bundled French word list
func DefaultColumns() Columns {
	return Columns{Source: "French", Target: "English"}
}

func (c Columns) header() []string {
	return []string{c.Source, c.Target}
}

// ReadTable reads a word file. Files ending in .xlsx are read as a
// spreadsheet (sheet "" means the first one), anything else as CSV.
//
// CSV rows must have exactly two fields. Spreadsheets do not store trailing
// empty cells, so a one-cell XLSX row is read as a pair with an empty
// target instead of failing with ErrMalformedRow.
func ReadTable(path string, cols Columns, sheet string) (WorkingSet, error) {
	return readTable(path, cols, sheet, zap.NewNop())
}

// readTable is ReadTable with a logger that is warned about padded rows
func readTable(path string, cols Columns, sheet string, logger *zap.Logger) (WorkingSet, error) {
	var records [][]string
	var err error

	if isSpreadsheet(path) {
		records, err = readXLSX(path, sheet, logger)
	} else {
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	return parseRecords(path, records, cols)
}

// WriteTable writes ws under a header row, replacing any existing file.
// Parent directories are created as needed.
func WriteTable(path string, cols Columns, ws WorkingSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if isSpreadsheet(path) {
		return writeXLSX(path, cols, ws)
	}
	return writeCSV(path, cols, ws)
}

func isSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // row width is checked in parseRecords

	return reader.ReadAll()
}

func readXLSX(path, sheet string, logger *zap.Logger) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	// excelize drops trailing empty cells and keeps blank rows
	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		switch len(row) {
		case 0:
			continue
		case 1:
			logger.Warn("Row has no target cell, reading it as empty",
				zap.String("path", path),
				zap.String("sheet", sheet),
				zap.Int("row", i+1))
			row = append(row, "")
		}
		records = append(records, row)
	}
	return records, nil
}

func parseRecords(path string, records [][]string, cols Columns) (WorkingSet, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	if err := checkHeader(records[0], cols); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ws := make(WorkingSet, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("%s: row %d: %w: want 2 fields, got %d",
				path, i+2, ErrMalformedRow, len(record))
		}
		ws = append(ws, Pair{Source: record[0], Target: record[1]})
	}

	return ws, nil
}

func checkHeader(header []string, cols Columns) error {
	want := cols.header()
	if len(header) != len(want) {
		return fmt.Errorf("%w: got %q, want %q", ErrColumnMismatch, header, want)
	}

	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if !strings.EqualFold(name, want[i]) {
			return fmt.Errorf("%w: got %q, want %q", ErrColumnMismatch, header, want)
		}
	}

	return nil
}

func writeCSV(path string, cols Columns, ws WorkingSet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(cols.header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, pair := range ws {
		if err := writer.Write([]string{pair.Source, pair.Target}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}

	return file.Close()
}

func writeXLSX(path string, cols Columns, ws WorkingSet) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{cols.Source, cols.Target}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, pair := range ws {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{pair.Source, pair.Target}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	return nil
}
