package auth

import "context"

type contextKey string

const identityKey contextKey = "prodify-auth-identity"

// WithIdentity stores the verified identity on the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// FromContext retrieves the identity stored by WithIdentity.
func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}
