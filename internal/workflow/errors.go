package workflow

import "errors"

// Kind classifies workflow failures per the error taxonomy. Validation
// errors are surfaced inline next to the offending control; the rest carry
// actionable guidance or a generic retry message.
type Kind int

const (
	// KindValidation is a client-side failure; no network call was made.
	KindValidation Kind = iota
	// KindNotFound is a legitimate lookup miss (reference not in roster).
	KindNotFound
	// KindTransport is a network failure or non-2xx backend response.
	KindTransport
	// KindPartialBatch is a concurrent batch where at least one item failed.
	KindPartialBatch
)

// FlowError is the single failure type surfaced by workflow operations.
type FlowError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *FlowError) Error() string { return e.Message }

// Guidance strings shown to the user. Lookup misses get actionable
// direction; transport failures get a retry-oriented generic.
const (
	MsgReferenceNotFound = "Reference number not found. Please contact your department admin."
	MsgTryAgain          = "Something went wrong. Please try again."
)

var (
	// ErrNotVerified guards every gated submission: it is returned from any
	// state other than Verified.
	ErrNotVerified = errors.New("workflow: reference number not verified")

	// ErrBusy rejects a duplicate submission while one is in flight, the
	// server-side equivalent of disabling the submit button.
	ErrBusy = errors.New("workflow: operation already in flight")

	// ErrNotStarted is returned when verification is attempted before Begin.
	ErrNotStarted = errors.New("workflow: not awaiting reference input")
)

func validation(field, msg string) *FlowError {
	return &FlowError{Kind: KindValidation, Field: field, Message: msg}
}
