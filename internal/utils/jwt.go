package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the exp claim of a JWT bearer token without verifying
// its signature. ok is false when the token is not a JWT or carries no
// expiry; such tokens are opaque to the client and checked by the provider.
//
// Example usage:
//
//	if exp, ok := utils.TokenExpiry(token); ok && exp.Before(time.Now()) {
//	    // ask the user to relink the provider
//	}
func TokenExpiry(token string) (exp time.Time, ok bool) {
	if token == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
	if err != nil {
		return time.Time{}, false
	}

	expiresAt, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, false
	}
	return expiresAt.Time, true
}
