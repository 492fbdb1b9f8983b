// Package app holds the application services and business logic.
package app

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValid reports whether the bearer token's payload decodes and its
// expiry claim lies strictly in the future. It is a pure predicate: malformed
// tokens, wrong encodings, and missing expiry claims all yield false.
//
// The signature is not checked here. This tier only needs to know whether the
// token could still be accepted; the upstream API remains the authority and
// rejects anything it did not sign.
func TokenValid(token string) bool {
	return tokenValidAt(token, time.Now())
}

func tokenValidAt(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.After(now)
}
