// Package http provides HTTP handlers and middleware for per-owner secret management.
package http

import (
	"context"
)

// ownerKey is a context key type for storing the authenticated owner ID.
type ownerKey struct{}

// WithOwner stores the authenticated owner ID in the context.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// GetOwner retrieves the authenticated owner ID from the context.
// Returns ("", false) when no owner was set.
func GetOwner(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)
	return ownerID, ok && ownerID != ""
}
