// Package sqlerr turns lib/pq driver errors into typed constraint errors.
package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// MapCode maps a SQLSTATE to a Code
func MapCode(state string) Code {
	switch state {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	}
	return Other
}

// Error is a constraint failure reported by postgres
type Error struct {
	Code           Code
	DatabaseCode   string
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Convert extracts a *pq.Error from err's chain
func Convert(err error) (*Error, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}
	return &Error{
		Code:           MapCode(string(pqErr.Code)),
		DatabaseCode:   string(pqErr.Code),
		Message:        pqErr.Message,
		TableName:      pqErr.Table,
		ColumnName:     pqErr.Column,
		ConstraintName: pqErr.Constraint,
		driverErr:      pqErr,
	}, true
}

// ErrCode reports the Code of the first sqlerr or pq error in err's chain
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	if converted, ok := Convert(err); ok {
		return converted.Code
	}
	return Other
}

// Field derives the offending column from a constraint named <table>_<column>_key or _fkey
func (e *Error) Field() string {
	if e.ColumnName != "" {
		return e.ColumnName
	}
	name := e.ConstraintName
	for _, suffix := range []string{"_key", "_fkey", "_check"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if e.TableName != "" {
		name = strings.TrimPrefix(name, e.TableName+"_")
	}
	return name
}

// Humanize renders an identifier like prescription_id as "Prescription Id"
func Humanize(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	return cases.Title(language.English).String(s)
}

// UserMessage renders the error for clients
func (e *Error) UserMessage() string {
	field := Humanize(e.Field())
	switch e.Code {
	case UniqueViolation:
		return fmt.Sprintf("A record with this %s already exists", field)
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", field)
	case NotNullViolation:
		return fmt.Sprintf("The %s is required", field)
	case CheckViolation:
		return fmt.Sprintf("The %s value does not meet required conditions", field)
	}
	return "An error occurred while processing your request"
}
