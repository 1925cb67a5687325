// Package modular has the small-integer modular arithmetic the ciphers use.
package modular

import (
	"errors"
	"fmt"
)

var ErrNoInverse = errors.New("no modular inverse")

// Mod is the non-negative remainder of a divided by n.
func Mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// ExtendedGCD returns g = gcd(a, b) and x, y with a*x + b*y = g.
func ExtendedGCD(a, b int) (g, x, y int) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := ExtendedGCD(b, a%b)
	return g, y1, x1 - (a/b)*y1
}

func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// Inverse returns the x in 0..n with a*x = 1 mod n.
func Inverse(a, n int) (int, error) {
	g, x, _ := ExtendedGCD(Mod(a, n), n)
	if g != 1 {
		return 0, fmt.Errorf("%w: %d mod %d", ErrNoInverse, a, n)
	}
	return Mod(x, n), nil
}

// Invert returns the inverse of a permutation of 0..len(perm).
func Invert(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}
