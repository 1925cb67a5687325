package modular

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	is := is.New(t)
	is.Equal(Mod(-1, 26), 25)
	is.Equal(Mod(27, 26), 1)
	is.Equal(Mod(-26, 26), 0)
}

func TestInverse(t *testing.T) {
	for n := 2; n <= 32; n++ {
		for a := 1; a < n; a++ {
			inv, err := Inverse(a, n)
			if GCD(a, n) != 1 {
				assert.ErrorIs(t, err, ErrNoInverse)
				continue
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, a*inv%n, "a=%d n=%d", a, n)
		}
	}
}

func TestNegativeInverse(t *testing.T) {
	is := is.New(t)
	inv, err := Inverse(-1, 26)
	is.NoErr(err)
	is.Equal(inv, 25)
}

func TestInvert(t *testing.T) {
	perm := []int{2, 0, 3, 1}
	inv := Invert(perm)
	assert.Equal(t, []int{1, 3, 0, 2}, inv)
	assert.Equal(t, perm, Invert(inv))
}
