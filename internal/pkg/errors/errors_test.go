package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"untagged", cause, nil},
		{"not found", NotFound("no data"), ErrNotFound},
		{"forbidden", Forbidden("owner mismatch"), ErrForbidden},
		{"bad input", BadInput("bad base64", cause), ErrBadInput},
		{"corruption", Corruption("parse", cause), ErrCorruption},
		{"transient", Transient("store", cause), ErrTransient},
		{"timeout", Transient("store", context.DeadlineExceeded), ErrTimeout},
		{"wrapped", fmt.Errorf("resolve: %w", NotFound("x")), ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Kind(tc.err); got != tc.want {
				t.Fatalf("Kind: want=%v got=%v", tc.want, got)
			}
		})
	}
}

func TestTransientKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Transient("enrichment hydrate", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved")
	}
	if !errors.Is(Transient("x", context.DeadlineExceeded), ErrTransient) {
		t.Fatalf("timeouts must remain transient")
	}
}
