package ctxdata

import (
	"context"
)

type traceIDKey struct{}
type userEmailKey struct{}
type userRoleKey struct{}

var (
	traceIDKeyInstance   = traceIDKey{}
	userEmailKeyInstance = userEmailKey{}
	userRoleKeyInstance  = userRoleKey{}
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKeyInstance, traceID)
}

func GetTraceID(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKeyInstance)
	traceID, ok := v.(string)
	return traceID, ok
}

// WithUserEmail stores the acting user's email. Emails are the foreign key
// across every collection, so they double as the user identifier.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKeyInstance, email)
}

func GetUserEmail(ctx context.Context) (string, bool) {
	v := ctx.Value(userEmailKeyInstance)
	email, ok := v.(string)
	return email, ok && email != ""
}

func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKeyInstance, role)
}

func GetUserRole(ctx context.Context) (string, bool) {
	v := ctx.Value(userRoleKeyInstance)
	role, ok := v.(string)
	return role, ok && role != ""
}

// WithUser is a shorthand for WithUserEmail followed by WithUserRole.
func WithUser(ctx context.Context, email, role string) context.Context {
	return WithUserRole(WithUserEmail(ctx, email), role)
}
