package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// SessionClaims is the payload of the session cookie. The identity service
// signs the same claims with the shared secret when a user logs in.
type SessionClaims struct {
	Username string `json:"username,omitempty"`
	CSRF     string `json:"csrf"`
	jwt.RegisteredClaims
}

type SessionService interface {
	// Parse verifies a session token and returns its claims.
	Parse(token string) (*SessionClaims, error)
	// Issue signs a session for username. An empty username is an anonymous
	// session that only carries a CSRF secret.
	Issue(username string) (string, *SessionClaims, error)
	TTL() time.Duration
}

type sessionService struct {
	log    *logger.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(log *logger.Logger, secret string, ttl time.Duration) (SessionService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("session secret required")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &sessionService{
		log:    log.With("service", "SessionService"),
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *sessionService) TTL() time.Duration { return s.ttl }

func (s *sessionService) Issue(username string) (string, *SessionClaims, error) {
	csrf, err := newCSRFToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate csrf token: %w", err)
	}
	now := s.now()
	claims := &SessionClaims{
		Username: strings.TrimSpace(username),
		CSRF:     csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.TrimSpace(username),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, claims, nil
}

func (s *sessionService) Parse(tokenString string) (*SessionClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("empty session token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired session")
	}
	if claims.CSRF == "" {
		return nil, fmt.Errorf("session missing csrf secret")
	}
	return claims, nil
}

func newCSRFToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
