package lsp

import "fmt"

// Kind names one of the error semantics the client surfaces to callers,
// per the propagation policy: framing/transport failures are fatal for
// the whole Client, server errors and timeouts are per-operation, and
// document-state/readiness violations are caller mistakes.
type Kind string

const (
	KindFramingError    Kind = "FramingError"
	KindTransportEOF    Kind = "TransportEOF"
	KindProtocolError   Kind = "ProtocolError"
	KindServerError     Kind = "ServerError"
	KindTimeout         Kind = "Timeout"
	KindCancelled       Kind = "Cancelled"
	KindNotReady        Kind = "NotReady"
	KindNotOpen         Kind = "NotOpen"
	KindAlreadyOpen     Kind = "AlreadyOpen"
	KindProjectMismatch Kind = "ProjectMismatch"
	KindSpawnError      Kind = "SpawnError"
	KindFatal           Kind = "Fatal"
)

// Error is the caller-visible failure type for every operation in this
// package. It carries enough context (method, URI) to diagnose without
// requiring callers to parse a message string.
type Error struct {
	Kind   Kind
	Method string
	URI    string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Method != "" {
		msg += " in " + e.Method
	}
	if e.URI != "" {
		msg += " (" + e.URI + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, method, uri string, err error) *Error {
	return &Error{Kind: kind, Method: method, URI: uri, Err: err}
}

// FramingError indicates malformed bytes arrived from the server:
// missing/invalid headers, or a short read mid-frame.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("lsp: framing error: %s", e.Reason)
}

// IsKind reports whether err (or something it wraps) is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if asErr, ok := err.(*Error); ok {
			e = asErr
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
