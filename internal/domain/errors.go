package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDate is wrapped by every MalformedDateError.
	ErrMalformedDate = errors.New("malformed date")

	// ErrEmptyDataset is returned when an operation needs at least one record.
	ErrEmptyDataset = errors.New("empty dataset")
)

// MalformedDateError reports a row whose date field could not be parsed.
type MalformedDateError struct {
	Row   int
	Field string
	Value any
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, fmt.Sprint(e.Value), ErrMalformedDate)
}

func (e *MalformedDateError) Unwrap() error { return ErrMalformedDate }
