package ctxutil

import "context"

type sessionDataKey struct{}

// SessionData is the caller's session as read from the session cookie.
// Username is empty for anonymous callers.
type SessionData struct {
	Username string
	CSRF     string
}

func WithSessionData(ctx context.Context, sd *SessionData) context.Context {
	return context.WithValue(ctx, sessionDataKey{}, sd)
}

func GetSessionData(ctx context.Context) *SessionData {
	val := ctx.Value(sessionDataKey{})
	if sd, ok := val.(*SessionData); ok {
		return sd
	}
	return nil
}
