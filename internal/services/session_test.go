package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionIssueAndParse(t *testing.T) {
	s, err := NewSessionService(testLog(t), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	token, issued, err := s.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Username != "alice" || claims.CSRF != issued.CSRF || claims.CSRF == "" {
		t.Fatalf("claims: %+v", claims)
	}

	anonToken, anon, err := s.Issue("")
	if err != nil {
		t.Fatalf("Issue anonymous: %v", err)
	}
	if anon.Username != "" || anon.CSRF == issued.CSRF {
		t.Fatalf("anonymous claims: %+v", anon)
	}
	if _, err := s.Parse(anonToken); err != nil {
		t.Fatalf("Parse anonymous: %v", err)
	}
}

func TestSessionParseRejects(t *testing.T) {
	s, _ := NewSessionService(testLog(t), "test-secret", time.Hour)
	other, _ := NewSessionService(testLog(t), "other-secret", time.Hour)
	foreign, _, _ := other.Issue("alice")

	expiredSvc := s.(*sessionService)
	past := *expiredSvc
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := past.Issue("alice")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{Username: "alice", CSRF: "x"})
	noneToken, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noCSRF := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{Username: "alice"})
	noCSRFToken, _ := noCSRF.SignedString([]byte("test-secret"))

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong_key":    foreign,
		"expired":      expired,
		"alg_none":     noneToken,
		"missing_csrf": noCSRFToken,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Parse(token); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewSessionServiceRequiresSecret(t *testing.T) {
	if _, err := NewSessionService(testLog(t), "  ", time.Hour); err == nil || !strings.Contains(err.Error(), "secret") {
		t.Fatalf("expected secret error, got %v", err)
	}
}
