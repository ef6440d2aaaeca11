package auth

import "context"

// User is the local account an identity maps to.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type userCtxKey struct{}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(User)
	return user, ok
}
