// Package errors provides standardized error messaging for the qxad tools.
//
// Lexing never fails and parse failures carry their own *parser.ParseError.
// StandardError covers everything around them: command usage, input files,
// configuration and the host system.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryUsage  ErrorCategory = "USAGE"
	CategoryInput  ErrorCategory = "INPUT"
	CategorySyntax ErrorCategory = "SYNTAX"
	CategoryConfig ErrorCategory = "CONFIG"
	CategorySystem ErrorCategory = "SYSTEM"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Cause    error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *StandardError) Unwrap() error { return e.Cause }

// newStandardError records the function skip frames above it as Caller.
// Constructors pass 2 so the caller of the constructor is recorded.
func newStandardError(skip int, category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(skip)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// WithCause attaches the error that triggered e
func (e *StandardError) WithCause(cause error) *StandardError {
	e.Cause = cause
	return e
}

// IsCategory reports whether err is, or wraps, a StandardError of category c
func IsCategory(err error, c ErrorCategory) bool {
	var se *StandardError
	return errors.As(err, &se) && se.Category == c
}

// Common error constructors

func Usage(usage string) *StandardError {
	return newStandardError(2, CategoryUsage, "USAGE",
		fmt.Sprintf("Usage: %s", usage),
		map[string]interface{}{"usage": usage})
}

func ExtensionMismatch(path, want string) *StandardError {
	return newStandardError(2, CategoryInput, "EXTENSION_MISMATCH",
		fmt.Sprintf("%s: expected a %s file", path, want),
		map[string]interface{}{"path": path, "extension": want})
}

func ReadFailure(path string, cause error) *StandardError {
	return newStandardError(2, CategoryInput, "READ_FAILURE",
		fmt.Sprintf("Failed to read %s: %v", path, cause),
		map[string]interface{}{"path": path}).WithCause(cause)
}

func SyntaxError(path string, cause error) *StandardError {
	return newStandardError(2, CategorySyntax, "PARSE_FAILURE",
		fmt.Sprintf("%s: %v", path, cause),
		map[string]interface{}{"path": path}).WithCause(cause)
}

func ConfigInvalid(path string, cause error) *StandardError {
	return newStandardError(2, CategoryConfig, "CONFIG_INVALID",
		fmt.Sprintf("Invalid configuration %s: %v", path, cause),
		map[string]interface{}{"path": path}).WithCause(cause)
}

func IncompatibleVersion(constraint, version string, problems []error) *StandardError {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	detail := ""
	if len(msgs) > 0 {
		detail = " (" + strings.Join(msgs, "; ") + ")"
	}
	return newStandardError(2, CategoryConfig, "INCOMPATIBLE_VERSION",
		fmt.Sprintf("qxad %s does not satisfy %q%s", version, constraint, detail),
		map[string]interface{}{"requires": constraint, "version": version})
}

func SystemFailure(operation string, cause error) *StandardError {
	return newStandardError(2, CategorySystem, "SYSTEM_FAILURE",
		fmt.Sprintf("%s failed: %v", operation, cause),
		map[string]interface{}{"operation": operation}).WithCause(cause)
}
