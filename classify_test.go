package syncbridge

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsExitCondition(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{name: "nil", err: nil, expect: false},
		{name: "ordinary error", err: errors.New("boom"), expect: false},
		{name: "cancellation", err: context.Canceled, expect: true},
		{name: "timeout", err: context.DeadlineExceeded, expect: true},
		{name: "wrapped cancellation", err: fmt.Errorf("query aborted: %w", context.Canceled), expect: true},
		{name: "recovered panic", err: &PanicError{Value: "kaboom"}, expect: true},
		{name: "missing worker misuse", err: ErrMissingWorker, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExitCondition(tt.err); got != tt.expect {
				t.Fatalf("IsExitCondition(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestPanicError_UnwrapsErrorValues(t *testing.T) {
	boom := errors.New("boom")
	pe := &PanicError{Value: boom}
	if !errors.Is(pe, boom) {
		t.Fatal("PanicError must unwrap to an error panic value")
	}

	if unwrapped := (&PanicError{Value: "text"}).Unwrap(); unwrapped != nil {
		t.Fatalf("non-error panic value must not unwrap, got %v", unwrapped)
	}
}
