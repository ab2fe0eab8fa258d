package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedYear = errors.New("malformed year")
	ErrMalformedDate = errors.New("malformed modification date")
	ErrNestedField   = errors.New("nested field of the same kind")
	ErrStructure     = errors.New("malformed document structure")
)

// RecordError ties a fatal parse failure to the record it happened in.
type RecordError struct {
	Key  string
	Line int
	Text string
	Err  error
}

func (e *RecordError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("record %q (line %d): %v: %q", e.Key, e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("record %q (line %d): %v", e.Key, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
