package ctxutil

import "context"

type traceDataKey struct{}

// TraceData carries the identifiers echoed on every response and log line.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	td, _ := ctx.Value(traceDataKey{}).(*TraceData)
	return td
}

// TraceIDs returns empty strings when the request was not traced.
func TraceIDs(ctx context.Context) (traceID, requestID string) {
	if td := GetTraceData(ctx); td != nil {
		return td.TraceID, td.RequestID
	}
	return "", ""
}
