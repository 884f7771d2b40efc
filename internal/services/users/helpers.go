package users

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct {
	name string
}

var userCtxKey = &contextKey{"user"}

type UserContextValue struct {
	ID    uuid.UUID
	Email string
	Roles []string

	IsAuthenticatedAsAdmin bool
}

func NewContextWithUser(ctx context.Context, user *UserContextValue) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

func FromContext(ctx context.Context) (*UserContextValue, bool) {
	user, ok := ctx.Value(userCtxKey).(*UserContextValue)
	return user, ok
}
