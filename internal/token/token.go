// Package token issues and verifies the signed session credential carried in the
// session cookie. Tokens are HS256 JWTs holding the caller's claim plus iat/exp.
package token

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of every issued token.
const TTL = 5 * time.Hour

var (
	ErrMissingSecret    = errors.New("token: signing secret is not configured")
	ErrMalformed        = errors.New("token: malformed")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrExpired          = errors.New("token: expired")
)

// Claims is a verified token payload.
type Claims struct {
	// Attributes holds the claim supplied at issuance, without iat/exp.
	Attributes map[string]any
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Email returns the email attribute, or "" when the claim carries none.
func (c *Claims) Email() string {
	email, _ := c.Attributes["email"].(string)
	return email
}

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service signs and verifies tokens with one process-wide secret.
type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs claim with an expiry of TTL from now. iat and exp in claim are overwritten.
func (s *Service) Issue(claim map[string]any) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := s.now()
	mc := make(jwt.MapClaims, len(claim)+2)
	maps.Copy(mc, claim)
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(TTL).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token signing failed: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
func (s *Service) Verify(raw string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	mc := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, mc,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims := &Claims{Attributes: make(map[string]any, len(mc))}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	for k, v := range mc {
		if k == "iat" || k == "exp" {
			continue
		}
		claims.Attributes[k] = v
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
}
