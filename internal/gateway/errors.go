package gateway

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport_error")
	ErrMalformed = errors.New("malformed_response")
	ErrRejected  = errors.New("server_rejected")
)

// Error describes one failed exchange with the game server. It matches Kind
// and the underlying cause with errors.Is.
type Error struct {
	Op        string
	RequestID string
	Status    int
	Kind      error
	Err       error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func (e *Error) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
