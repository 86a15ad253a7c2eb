// Package parsererror defines the typed errors returned when a sheet or a
// user-entered item cannot be accepted.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError is a cell that could not be converted to its column type.
type ParseError struct {
	File   string
	Row    int // 1-based sheet row, header included
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
		e.File, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError is a sheet that does not have the expected shape.
type InvalidFormatError struct {
	File           string
	Sheet          string
	MissingColumns []string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	where := e.File
	if e.Sheet != "" {
		where = fmt.Sprintf("%s [%s]", e.File, e.Sheet)
	}
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("invalid format in '%s': missing columns %s",
			where, strings.Join(e.MissingColumns, ", "))
	}
	return fmt.Sprintf("invalid format in '%s': %s", where, e.Msg)
}

// FieldProblem is one rejected input field.
type FieldProblem struct {
	Field  string
	Reason string
}

// ValidationError lists every rejected field of a user-entered item.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s %s", p.Field, p.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}
