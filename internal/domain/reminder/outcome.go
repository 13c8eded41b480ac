package reminder

import (
	"errors"
	"fmt"
)

// ErrSubjectNotFound is returned by the manual trigger when the referenced
// member or payment does not exist.
var ErrSubjectNotFound = errors.New("reminder subject not found")

// ErrRender marks content that could not be built from the subject snapshot,
// typically because a required contact field is empty. It propagates exactly
// like a transport failure: the outcome is failed and the batch moves on.
var ErrRender = errors.New("cannot render reminder content")

// Outcome is the result of attempting one obligation. It is logged, never
// persisted; there is no retry state across scan runs.
type Outcome struct {
	Channel    Channel
	OffsetDays int
	Err        error
}

// Delivered reports whether the send succeeded.
func (o Outcome) Delivered() bool {
	return o.Err == nil
}

// TransportError wraps a channel send failure with the channel it occurred on.
type TransportError struct {
	Channel Channel
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send via %s: %v", e.Channel, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
