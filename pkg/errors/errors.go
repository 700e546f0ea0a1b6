package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL"
	}
}

// FieldError describes a single rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application error
type AppError struct {
	Kind       Kind         `json:"-"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"errors,omitempty"`
	Duplicates []string     `json:"fields,omitempty"`
	Err        error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same kind, so errors.Is(err, errors.ErrNotFound) works
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels for errors.Is
var (
	ErrInvalidInput = &AppError{Kind: KindInvalidInput}
	ErrNotFound     = &AppError{Kind: KindNotFound}
	ErrConflict     = &AppError{Kind: KindConflict}
	ErrInternal     = &AppError{Kind: KindInternal}
	ErrUnauthorized = &AppError{Kind: KindUnauthorized}
)

func InvalidInput(message string, fields ...FieldError) *AppError {
	return &AppError{
		Kind:    KindInvalidInput,
		Message: message,
		Fields:  fields,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

// Conflict reports that resource already has a row holding the given unique fields
func Conflict(resource string, fields ...string) *AppError {
	msg := fmt.Sprintf("%s already exists", resource)
	if len(fields) > 0 {
		msg = fmt.Sprintf("%s with this %s already exists", resource, strings.Join(fields, " and "))
	}
	return &AppError{
		Kind:       KindConflict,
		Message:    msg,
		Duplicates: fields,
	}
}

// InUse reports that resource cannot be removed while other records reference it
func InUse(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: fmt.Sprintf("%s is still referenced by other records", resource),
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// As extracts the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for anything that is not an AppError
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps err to the status code it is rendered with
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
