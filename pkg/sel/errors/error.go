package errors

import (
	"fmt"
	"strings"

	"github.com/chkup/spec-tools/pkg/sel/ast"
)

// ErrorType categorizes an error raised while walking or decoding a
// schema expression.
type ErrorType string

const (
	ErrorTypeArity    ErrorType = "arity"    // wrong argument shape for a combinator
	ErrorTypeDecode   ErrorType = "decode"   // unreadable stored/serialized expression
	ErrorTypeInternal ErrorType = "internal" // broken walker precondition (programmer error)
)

// Error is a rich error carrying the combinator and source that failed.
type Error struct {
	Type       ErrorType // category of error
	Message    string    // error message
	Combinator ast.QName // combinator whose handler failed, if any
	Source     string    // originating file or entry name, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if !e.Combinator.IsZero() {
		sb.WriteString(fmt.Sprintf("\n  --> combinator %s", e.Combinator))
	}
	if e.Source != "" {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Source))
	}

	return sb.String()
}

// Arity builds a malformed-arity error for a combinator whose literal
// expression does not match its handler's extraction rule. Not locally
// recoverable: producing a result from a malformed node would silently
// corrupt downstream aggregation.
func Arity(combinator ast.QName, want string, got int) *Error {
	return &Error{
		Type:       ErrorTypeArity,
		Message:    fmt.Sprintf("%s expects %s, got %d", combinator, want, got),
		Combinator: combinator,
	}
}

// Internal builds a precondition-violation error. This class marks
// programmer errors inside the walker or a registered handler, never
// bad schema data, and is not meant to be recovered from.
func Internal(format string, args ...any) *Error {
	return &Error{
		Type:    ErrorTypeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Decode builds a decode error for a stored expression that cannot be
// read back, annotated with its source.
func Decode(source, format string, args ...any) *Error {
	return &Error{
		Type:    ErrorTypeDecode,
		Message: fmt.Sprintf(format, args...),
		Source:  source,
	}
}

// ErrorList accumulates multiple errors instead of failing on the
// first. The registry loader uses it to report every bad entry in a
// definition file in one pass.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface, formatting every accumulated
// error.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\nerror %d:\n%s\n", i+1, err.Error()))
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}
