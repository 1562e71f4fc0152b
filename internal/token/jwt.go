// Package token inspects backend-issued bearer tokens on the client side.
// The client never verifies signatures; it only reads the expiry claim to
// decide whether a stored token is still worth presenting.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode parses the token payload without verifying its signature and returns
// the claims, or nil when the token is not a well-formed JWT.
func Decode(token string) jwt.MapClaims {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// IsValid reports whether the stored token should still be presented to the
// backend. An empty or undecodable token is invalid. A decodable token with
// no exp claim never expires client-side; otherwise exp is compared against
// the current unix time.
func IsValid(token string) bool {
	claims := Decode(token)
	if claims == nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		return true
	}
	return exp.After(time.Now())
}
