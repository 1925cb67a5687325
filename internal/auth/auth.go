// Package auth carries the authenticated caller of a request through its
// context.
package auth

import "context"

type callerKey struct{}

// A Caller is who a solve request was made by, as stated in its token.
type Caller struct {
	ID       int
	Username string
	// Member is the token's mbr claim.
	Member bool
}

// WithCaller returns a copy of ctx that carries c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored in ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// Username is the caller's name, or "" for anonymous requests.
func Username(ctx context.Context) string {
	c, _ := CallerFrom(ctx)
	return c.Username
}
