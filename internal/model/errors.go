package model

import (
	"errors"
	"fmt"
)

// Input validation errors. Every one of them indicates corrupt upstream data
// and aborts an allocation.
var (
	ErrMalformedRecord     = errors.New("malformed record")
	ErrDuplicateUser       = errors.New("duplicate user")
	ErrUnknownUser         = errors.New("unknown user")
	ErrInvalidScore        = errors.New("invalid score")
	ErrDuplicateProject    = errors.New("duplicate project")
	ErrUnknownProject      = errors.New("unknown project")
	ErrNegativeCapacity    = errors.New("negative capacity")
	ErrDuplicatePreference = errors.New("project ranked twice")
)

// RecordError locates a malformed cell in an input table
type RecordError struct {
	Table  string
	Row    int // 1-based data row, header excluded
	Column string
	Err    error
}

// Error implements the error interface
func (e *RecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s row %d: %v", e.Table, e.Row, e.Err)
	}
	return fmt.Sprintf("%s row %d, column %q: %v", e.Table, e.Row, e.Column, e.Err)
}

// Unwrap exposes the underlying sentinel to errors.Is
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError builds a RecordError
func NewRecordError(table string, row int, column string, err error) *RecordError {
	return &RecordError{Table: table, Row: row, Column: column, Err: err}
}
