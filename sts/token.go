// Package sts obtains issued security tokens from a WS-Trust 1.3 security
// token service using a client certificate from the keystore.
package sts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTokenExpired is wrapped by the AuthenticationError of a call attempted
// with a token past its expiry.
var ErrTokenExpired = errors.New("security token expired")

// SecurityToken is an issued SAML token. It is never persisted and never
// renewed in place.
type SecurityToken struct {
	// Assertion is the raw XML of the issued token, sent verbatim in the
	// security header of every service call.
	Assertion string
	ProofKey  []byte
	TokenType string
	AppliesTo string
	Created   time.Time
	Expires   time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t *SecurityToken) Expired(now time.Time) bool {
	if t == nil {
		return true
	}
	return !t.Expires.IsZero() && !now.Before(t.Expires)
}

// Remaining is the time left before expiry at now.
func (t *SecurityToken) Remaining(now time.Time) time.Duration {
	return t.Expires.Sub(now)
}

// TokenProvider issues tokens valid for lifetimeMinutes.
type TokenProvider interface {
	GetToken(ctx context.Context, lifetimeMinutes int) (*SecurityToken, error)
}

// AuthenticationError is any failure to obtain or use a token: a keystore or
// passphrase problem, an unreachable STS, an STS fault, an expired token.
type AuthenticationError struct {
	Op  string
	Err error
}

func (e *AuthenticationError) Error() string {
	b := strings.Builder{}
	b.WriteString("authentication failed")
	if e.Op != "" {
		b.WriteString(fmt.Sprintf(" during %s", e.Op))
	}
	if e.Err != nil {
		b.WriteString(fmt.Sprintf(" [%v]", e.Err))
	}
	return b.String()
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
