// Package identity resolves the caller's identity from bearer tokens.
// Resolution is local: claims are decoded without a network call, and any
// token that is absent, malformed or expired resolves to guest. Nothing in
// this package ever returns an error to its caller; checkout must keep
// working for guests.
package identity

import (
	"context"

	"raillo/internal/models"
)

// Provider supplies the current identity to the services that need one.
// Components depend on this interface instead of reading ambient state.
type Provider interface {
	CurrentIdentity(ctx context.Context) models.Identity
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) models.Identity

func (f ProviderFunc) CurrentIdentity(ctx context.Context) models.Identity {
	return f(ctx)
}

type identityKey struct{}

// WithIdentity stores a resolved identity in the context. The auth
// middleware calls this once per request.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in the context, or guest.
func FromContext(ctx context.Context) models.Identity {
	if id, ok := ctx.Value(identityKey{}).(models.Identity); ok {
		return id
	}
	return models.Guest()
}

// ContextProvider reads the identity the middleware resolved into the
// request context.
type ContextProvider struct{}

func (ContextProvider) CurrentIdentity(ctx context.Context) models.Identity {
	return FromContext(ctx)
}

// Static returns a provider that always yields the given identity. Tests
// and background jobs use it.
func Static(id models.Identity) Provider {
	return ProviderFunc(func(context.Context) models.Identity { return id })
}
