package auth

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestCallerRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	_, ok := CallerFrom(ctx)
	is.True(!ok)
	is.Equal(Username(ctx), "")

	ctx = WithCaller(ctx, Caller{ID: 42, Username: "cesar", Member: true})
	c, ok := CallerFrom(ctx)
	is.True(ok)
	is.Equal(c.ID, 42)
	is.True(c.Member)
	is.Equal(Username(ctx), "cesar")
}
