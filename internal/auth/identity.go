package auth

import (
	"context"

	"github.com/google/uuid"

	"supanos/internal/model"
)

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID    uuid.UUID
	Role      model.Role
	SessionID string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
