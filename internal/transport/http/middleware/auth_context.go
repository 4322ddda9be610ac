package middleware

import "context"

type ctxKey string

const ctxIdentity ctxKey = "identity"

// WithIdentity stores the authenticated account identity (email) in ctx.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, ctxIdentity, identity)
}

// IdentityFromContext returns the identity set by the Auth middleware.
func IdentityFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxIdentity).(string)
	return v, ok && v != ""
}
