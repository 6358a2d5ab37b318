package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the resolved current user attached to a request by the auth
// middleware. Services take it as an explicit argument; nothing reads it
// implicitly from global state.
type Identity struct {
	ID    primitive.ObjectID
	Email string
}

// identityKey is the unexported context key for the Identity.
type identityKey struct{}

// WithIdentity stores the resolved identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx extracts the resolved identity from ctx.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
