package apierr

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestPublicNeverLeaksCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.7:5432: connection refused")
	e := New(http.StatusBadGateway, CodeUpstreamUnavailable, cause)
	if strings.Contains(e.Public(), "10.0.0.7") {
		t.Fatalf("public message leaked cause: %q", e.Public())
	}
	if !errors.Is(e, cause) {
		t.Fatalf("cause not reachable through Unwrap")
	}
}

func TestPublicFallsBackToStatusText(t *testing.T) {
	if got := New(http.StatusTeapot, "teapot", nil).Public(); got != http.StatusText(http.StatusTeapot) {
		t.Fatalf("public: %q", got)
	}
}
