package backend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend call failures per the error taxonomy.
type ErrorKind int

const (
	// KindTransport covers network failures and request construction.
	KindTransport ErrorKind = iota
	// KindHTTPStatus is any non-2xx response other than 404.
	KindHTTPStatus
	// KindNotFound is a well-formed request that legitimately found nothing.
	KindNotFound
	// KindDecode is a 2xx response whose body could not be decoded.
	KindDecode
)

// Error is the single failure type returned by the client.
type Error struct {
	Kind   ErrorKind
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	case e.Status != 0:
		return fmt.Sprintf("backend returned status %d", e.Status)
	default:
		return "backend call failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a backend lookup miss.
func IsNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindNotFound
}

// Message returns the server-supplied message for err when present, or
// fallback otherwise. Callers use it to surface the backend's msg field
// without re-parsing response bodies.
func Message(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && be.Msg != "" {
		return be.Msg
	}
	return fallback
}
