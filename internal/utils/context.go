// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, content hashing,
// HTTP response writing, HTTP client initialization, JWT expiry inspection
// and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ProviderIDCtxKey is the key used to store the provider identifier taken
// from the request path.
//
//	ctx := context.WithValue(ctx, utils.ProviderIDCtxKey, int64(42))
var ProviderIDCtxKey = contextKey("providerID")

// GetProviderIDFromContext retrieves the provider identifier from the
// context. ok is false when the value is missing or has another type.
func GetProviderIDFromContext(ctx context.Context) (int64, bool) {
	providerID, ok := ctx.Value(ProviderIDCtxKey).(int64)
	return providerID, ok
}
