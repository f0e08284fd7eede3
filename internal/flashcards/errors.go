package flashcards

import (
	"fmt"
	"strings"
)

// LoadError reports a source that could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load flashcards from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a table without the required columns.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s must have %s columns, missing: %s",
		e.Source, quoteJoin(RequiredColumns), quoteJoin(e.Missing))
}

func quoteJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "'" + c + "'"
	}
	return strings.Join(quoted, " and ")
}
