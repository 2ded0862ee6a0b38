// Package scerr defines the error kinds shared across the completion
// engine (spec.md §7). Every kind wraps an optional underlying cause so
// callers can still errors.Is/errors.As through to the original I/O or
// parse failure, while providers compare against the sentinel Kind to
// decide whether to skip a single candidate or fail the whole request.
package scerr

import "fmt"

// Kind classifies an engine error.
type Kind int

const (
	// KindBounds marks an index-out-of-range failure in buffer arithmetic.
	KindBounds Kind = iota
	// KindDocumentNotFound marks a reference to a URI with no open document.
	KindDocumentNotFound
	// KindParse marks a configuration or bibliography parse failure.
	KindParse
	// KindIO marks a file/directory read failure.
	KindIO
	// KindSearch marks an automaton construction failure.
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindBounds:
		return "bounds"
	case KindDocumentNotFound:
		return "document not found"
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Error is the concrete error type for every scerr.Kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, scerr.ErrBounds) (a bare &Error{Kind: KindBounds})
// to match any *Error sharing the same Kind, regardless of Message/Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Message: msg, Cause: cause}
}

// Bounds builds a KindBounds error.
func Bounds(msg string) *Error { return newErr(KindBounds, msg, nil) }

// DocumentNotFound builds a KindDocumentNotFound error for uri.
func DocumentNotFound(uri string) *Error {
	return newErr(KindDocumentNotFound, "no document for uri "+uri, nil)
}

// Parse builds a KindParse error wrapping cause.
func Parse(msg string, cause error) *Error { return newErr(KindParse, msg, cause) }

// IO builds a KindIO error wrapping cause.
func IO(msg string, cause error) *Error { return newErr(KindIO, msg, cause) }

// Search builds a KindSearch error wrapping cause.
func Search(msg string, cause error) *Error { return newErr(KindSearch, msg, cause) }

// sentinels for errors.Is comparisons, e.g. errors.Is(err, scerr.ErrBounds).
var (
	ErrBounds           = &Error{Kind: KindBounds}
	ErrDocumentNotFound = &Error{Kind: KindDocumentNotFound}
	ErrParse            = &Error{Kind: KindParse}
	ErrIO               = &Error{Kind: KindIO}
	ErrSearch           = &Error{Kind: KindSearch}
)
