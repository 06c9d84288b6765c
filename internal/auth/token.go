// Package auth checks the bearer token guarding the studio API.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier accepts one shared API token. An empty token disables the
// check.
type TokenVerifier struct {
	token string
}

func NewTokenVerifier(token string) *TokenVerifier {
	return &TokenVerifier{token: strings.TrimSpace(token)}
}

func (v *TokenVerifier) Enabled() bool {
	return v != nil && v.token != ""
}

func (v *TokenVerifier) Verify(token string) error {
	if !v.Enabled() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
