package flashcards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	ColumnQuestion = "Question"
	ColumnAnswer   = "Answer"
)

var RequiredColumns = []string{ColumnQuestion, ColumnAnswer}

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported file type, expected .xlsx or .csv")

// FormatFromName picks the table format from a file name extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func LoadFile(path string) ([]models.Flashcard, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return Load(f, format, path)
}

// Load parses a table from r. source names the table in errors.
func Load(r io.Reader, format Format, source string) ([]models.Flashcard, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	return parseRows(rows, source)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return rows, nil
}

// parseRows maps the header row to the required columns and converts the
// remaining rows. Rows with neither a question nor an answer are dropped.
func parseRows(rows [][]string, source string) ([]models.Flashcard, error) {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	qCol, aCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColumnQuestion:
			if qCol < 0 {
				qCol = i
			}
		case ColumnAnswer:
			if aCol < 0 {
				aCol = i
			}
		}
	}

	var missing []string
	if qCol < 0 {
		missing = append(missing, ColumnQuestion)
	}
	if aCol < 0 {
		missing = append(missing, ColumnAnswer)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Missing: missing}
	}

	cards := make([]models.Flashcard, 0, len(rows))
	for _, row := range rows[1:] {
		card := models.Flashcard{
			Question: cell(row, qCol),
			Answer:   cell(row, aCol),
		}
		if strings.TrimSpace(card.Question) == "" && strings.TrimSpace(card.Answer) == "" {
			continue
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// FindSpreadsheets lists the .xlsx files directly inside dir.
func FindSpreadsheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".xlsx") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	return files, nil
}
