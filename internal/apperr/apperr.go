// Package apperr defines the error taxonomy shared by all services.
//
// Image-level failures (ImageDecode, NetworkMiss) are absorbed inside the
// imaging components and never reach a handler. Entity-level failures
// (InvalidRequest, NotFound) propagate immediately with no side effects.
// Storage failures are fatal for the current operation and may follow a
// compensating delete of an already-written blob.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindNotFound
	KindImageDecode
	KindStorage
	KindNetworkMiss
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindImageDecode:
		return "image_decode"
	case KindStorage:
		return "storage"
	case KindNetworkMiss:
		return "network_miss"
	default:
		return "unknown"
	}
}

// Error carries a stable kind plus a human-readable message. The wrapped
// cause is for logs only and must never be serialized to a client.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Message is the client-safe text.
func (e *Error) Message() string { return e.msg }

// KindOf reports the taxonomy kind of err, or KindUnknown for errors that
// did not originate here.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
