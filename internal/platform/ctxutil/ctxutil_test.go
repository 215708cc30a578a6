package ctxutil

import (
	"context"
	"testing"
)

func TestSessionDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	if GetSessionData(ctx) != nil {
		t.Fatalf("expected no session data")
	}
	ctx = WithSessionData(ctx, &SessionData{Username: "alice", CSRF: "tok"})
	sd := GetSessionData(ctx)
	if sd == nil || sd.Username != "alice" || sd.CSRF != "tok" {
		t.Fatalf("unexpected session data: %+v", sd)
	}
}

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t1" || td.RequestID != "r1" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
	if traceID, reqID := TraceIDs(context.Background()); traceID != "" || reqID != "" {
		t.Fatalf("untraced context returned ids %q %q", traceID, reqID)
	}
}

func TestDefault(t *testing.T) {
	//nolint:staticcheck
	if Default(nil) == nil {
		t.Fatalf("Default(nil) returned nil")
	}
}
