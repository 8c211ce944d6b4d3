// Package errors provides structured errors for configuration and runtime
// setup. The focus trap itself never returns errors to its host; these codes
// only surface from construction paths.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Focus resolution errors
	ErrCodeSelectorInvalid ErrorCode = "SELECTOR_INVALID"

	// Terminal errors
	ErrCodeBackendInit ErrorCode = "BACKEND_INIT"

	// Dialog content errors
	ErrCodeContentRender ErrorCode = "CONTENT_RENDER"

	// Metrics endpoint errors
	ErrCodeServe ErrorCode = "SERVE"

	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a structured error
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Context    map[string]any
}

// New creates a new structured error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap wraps an existing error with a code. Returns nil for a nil error.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Context:    make(map[string]any),
	}
}

// WithContext adds context key-value pairs to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error implements the error interface. Context keys are sorted so the
// message is stable.
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Code, e.Message)

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", k, e.Context[k])
		}
		sb.WriteString("}")
	}

	if e.Underlying != nil {
		fmt.Fprintf(&sb, ": %v", e.Underlying)
	}
	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Underlying
}

// IsCode checks if any error in the chain has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// GetCode extracts the error code from an error.
// Unstructured errors report ErrCodeInternal.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if !stderrors.As(err, &e) {
		return ErrCodeInternal
	}
	return e.Code
}
