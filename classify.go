package syncbridge

import (
	"context"
	"errors"
	"fmt"
)

// PanicError carries a panic recovered from a worker function or from a
// driven awaitable, together with the stack captured at the recovery point.
// It satisfies IsExitCondition: a panic is never an ordinary recoverable
// failure.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic: %v", Namespace, e.Value)
}

// Unwrap exposes the panic value when it was itself an error, so that
// errors.Is/As keep working through a recovered panic.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsExitCondition reports whether err is not an ordinary recoverable
// failure: a cancellation, a timeout, or a recovered panic. Consumers use
// it to decide between log-and-continue and propagate-without-suppression.
func IsExitCondition(err error) bool {
	if err == nil {
		return false
	}
	var pe *PanicError
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &pe)
}
