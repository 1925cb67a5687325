package cipher

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modular"
	"github.com/domino14/classic_crypto/internal/solve"
)

// Caesar shifts every letter by the same amount.
type Caesar struct {
	N     int
	Shift int
}

func (c *Caesar) Encrypt(pt []int) []int {
	return mapAll(pt, func(p int) int { return modular.Mod(p+c.Shift, c.N) })
}

func (c *Caesar) Decrypt(ct []int) []int {
	return mapAll(ct, func(x int) int { return modular.Mod(x-c.Shift, c.N) })
}

func (c *Caesar) Solve(v *lang.Variant, ct []int) {
	c.Shift = solve.Caesar(v, ct)
}

// Key is the letter A encrypts to.
func (c *Caesar) Key(v *lang.Variant) string {
	return v.Text([]int{c.Shift})
}

func (c *Caesar) SetKey(v *lang.Variant, key string) error {
	cps := v.CodePoints(key)
	if len(cps) != 1 {
		return fmt.Errorf("%w: caesar key must be one letter, got %q", ErrInvalidKey, key)
	}
	c.Shift = cps[0]
	return nil
}

// Affine maps p to a*p + b.
type Affine struct {
	N    int
	A, B int
}

func (c *Affine) Encrypt(pt []int) []int {
	return mapAll(pt, func(p int) int { return modular.Mod(c.A*p+c.B, c.N) })
}

func (c *Affine) Decrypt(ct []int) []int {
	inv, err := modular.Inverse(c.A, c.N)
	if err != nil {
		// SetKey rejects such keys.
		panic(err)
	}
	return mapAll(ct, func(x int) int { return modular.Mod(inv*(x-c.B), c.N) })
}

func (c *Affine) Solve(v *lang.Variant, ct []int) {
	c.A, c.B = solve.Affine(v, ct)
}

func (c *Affine) Key(*lang.Variant) string {
	return formatInts([]int{c.A, c.B})
}

func (c *Affine) SetKey(_ *lang.Variant, key string) error {
	xs, err := parseInts(key)
	if err != nil {
		return err
	}
	if len(xs) != 2 {
		return fmt.Errorf("%w: affine key is a,b, got %q", ErrInvalidKey, key)
	}
	if _, err := modular.Inverse(xs[0], c.N); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	c.A, c.B = modular.Mod(xs[0], c.N), modular.Mod(xs[1], c.N)
	return nil
}

// Substitution maps each plaintext letter through a permuted alphabet.
type Substitution struct {
	// Alphabet[p] is the ciphertext letter for plaintext p.
	Alphabet []int
	rng      *rand.Rand
}

func NewSubstitution(n int, rng *rand.Rand) *Substitution {
	s := &Substitution{Alphabet: make([]int, n), rng: rng}
	for i := range s.Alphabet {
		s.Alphabet[i] = i
	}
	return s
}

func (c *Substitution) Encrypt(pt []int) []int {
	return mapAll(pt, func(p int) int { return c.Alphabet[p] })
}

func (c *Substitution) Decrypt(ct []int) []int {
	inv := modular.Invert(c.Alphabet)
	return mapAll(ct, func(x int) int { return inv[x] })
}

func (c *Substitution) Solve(v *lang.Variant, ct []int) {
	c.Alphabet = solve.Substitution(v, ct, c.rng)
}

// Key is the ciphertext alphabet.
func (c *Substitution) Key(v *lang.Variant) string {
	return v.Text(c.Alphabet)
}

// SetKey accepts a full ciphertext alphabet, or a keyword that is filled
// out with the unused letters in order.
func (c *Substitution) SetKey(v *lang.Variant, key string) error {
	cps := v.CodePoints(key)
	alph := make([]int, 0, v.Len())
	for _, cp := range cps {
		if !slices.Contains(alph, cp) {
			alph = append(alph, cp)
		}
	}
	for cp := range v.Len() {
		if !slices.Contains(alph, cp) {
			alph = append(alph, cp)
		}
	}
	c.Alphabet = alph
	return nil
}

func mapAll(cps []int, f func(int) int) []int {
	out := make([]int, len(cps))
	for i, cp := range cps {
		out[i] = f(cp)
	}
	return out
}
