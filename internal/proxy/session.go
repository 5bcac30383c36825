package proxy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the identity carried by a signed session token
type Session struct {
	// Token is the backend API token, forwarded as-is when present.
	Token  string
	UserID string
}

// BearerToken returns the credential forwarded upstream: the API token, or the user id.
func (s Session) BearerToken() string {
	if s.Token != "" {
		return s.Token
	}
	return s.UserID
}

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	Token string `json:"token,omitempty"`
	ID    string `json:"id,omitempty"`
}

var errNoSession = errors.New("no session")

// SessionResolver extracts sessions from requests
type SessionResolver struct {
	secret     []byte
	cookieName string
}

// NewSessionResolver creates a resolver for HS256 tokens signed with secret
func NewSessionResolver(secret, cookieName string) *SessionResolver {
	return &SessionResolver{
		secret:     []byte(secret),
		cookieName: cookieName,
	}
}

// Resolve reads the session cookie, or an Authorization bearer header when no cookie is set.
func (r *SessionResolver) Resolve(c *gin.Context) (Session, error) {
	raw, err := c.Cookie(r.cookieName)
	if err != nil || raw == "" {
		raw = bearerFromHeader(c.GetHeader("Authorization"))
	}
	if raw == "" {
		return Session{}, errNoSession
	}
	return r.Parse(raw)
}

// Parse validates a session token and returns its session. Tokens without an exp claim are rejected.
func (r *SessionResolver) Parse(raw string) (Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("invalid session token: %w", err)
	}

	userID := claims.ID
	if userID == "" {
		userID = claims.Subject
	}
	session := Session{Token: claims.Token, UserID: userID}
	if session.BearerToken() == "" {
		return Session{}, errNoSession
	}
	return session, nil
}

// Sign issues a session token valid for ttl. It backs `routegen token` and tests.
func (r *SessionResolver) Sign(session Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Token: session.Token,
		ID:    session.UserID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func bearerFromHeader(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
