// Package token encodes and verifies the self-contained bearer tokens the
// service issues at login. A token carries only the subject username and
// its issue/expiry instants, signed with a process-wide HS256 secret; the
// server keeps no session state for it.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
)

// SecretProvider supplies the signing secret. The codec never caches the
// returned bytes, so a rotating provider can be dropped in without
// touching the codec itself.
type SecretProvider interface {
	Secret() []byte
}

// StaticSecret is the fixed, process-lifetime provider used in production,
// fed from configuration at startup.
type StaticSecret []byte

func (s StaticSecret) Secret() []byte { return []byte(s) }

type Codec struct {
	secrets SecretProvider
	ttl     time.Duration
}

func NewCodec(secrets SecretProvider, ttl time.Duration) *Codec {
	return &Codec{secrets: secrets, ttl: ttl}
}

func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue builds and signs a compact token asserting subject, valid from now
// until now+ttl.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secrets.Secret())
}

// Verify parses the compact string, checks the signature and expiry, and
// returns the subject claim. Expiry is judged against the single now the
// caller passes in; the clock is never re-read mid-verification.
func (c *Codec) Verify(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secrets.Secret(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
		if !parsed.Valid || claims.Subject == "" {
			return "", ErrMalformed
		}
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// An expired payload wins over a bad signature, so a token reads
		// the same after expiry whether or not it was tampered with.
		if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
			return "", ErrExpired
		}
		return "", ErrInvalidSignature
	default:
		return "", ErrMalformed
	}
}
