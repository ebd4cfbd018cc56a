// Package semerr defines the error taxonomy for the single-file semantic
// indexing pipeline. Only the fatal kinds ever surface as a Go error; the
// recoverable kinds (orphan_capture, unknown_capture_name, malformed_source,
// duplicate_scope) are tracked as Diagnostics and never returned to the
// caller as an error value.
package semerr

import "encoding/json"

// Kind enumerates the error taxonomy. It is a classification, not a Go
// type hierarchy: fatal kinds wrap into Error, recoverable kinds are
// recorded as Diagnostic.
type Kind string

const (
	KindUnsupportedLanguage Kind = "unsupported_language"
	KindMissingCSTField     Kind = "missing_cst_field"
	KindOrphanCapture       Kind = "orphan_capture"
	KindUnknownCaptureName  Kind = "unknown_capture_name"
	KindMalformedSource     Kind = "malformed_source"
	KindDuplicateScope      Kind = "duplicate_scope"
)

// Error is the uniform payload for the two fatal kinds that abort a build:
// a Kind, human Message, and optional Detail, with both Error() and a JSON
// encoder.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New builds a fatal Error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap builds a fatal Error of the given kind, carrying an inner cause as Detail.
func Wrap(kind Kind, msg string, inner error) error {
	if inner == nil {
		return New(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Detail: inner.Error()}
}

// Diagnostic records a non-fatal, recovered condition encountered while
// building an index: orphan captures, unrecognized capture names, ERROR
// subtrees in the CST, or a duplicate scope id. The index build continues
// regardless; Diagnostics exist purely so a caller can decide whether an
// empty or partial result is meaningful for their use case.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	// Line and Column are 1-indexed, best-effort; zero when not applicable.
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}
