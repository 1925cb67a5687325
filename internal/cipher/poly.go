package cipher

import (
	"fmt"
	"slices"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/solve"
	"github.com/domino14/classic_crypto/internal/tableau"
)

var polyNames = []string{"autokey", "beaufort", "bellaso", "porta", "variant-beaufort", "vigenere"}

// Polyalphabetic is a keyword cipher over a tableau. With Autokey set, the
// keyword is only a primer and the plaintext continues the key.
type Polyalphabetic struct {
	Tableau tableau.Tableau
	Stream  solve.ShiftStream
	Keyword []int
	Autokey bool
}

func NewPolyalphabetic(name string, n int) *Polyalphabetic {
	p := &Polyalphabetic{}
	switch name {
	case "vigenere":
		p.Tableau, p.Stream = tableau.Vigenere{N: n}, solve.Vigenere(n)
	case "autokey":
		p.Tableau, p.Stream, p.Autokey = tableau.Vigenere{N: n}, solve.Autokey(n), true
	case "beaufort":
		p.Tableau, p.Stream = tableau.Beaufort{N: n}, solve.Beaufort(n)
	case "variant-beaufort":
		p.Tableau, p.Stream = tableau.VariantBeaufort{N: n}, solve.VariantBeaufort(n)
	case "porta":
		p.Tableau, p.Stream = tableau.Porta{N: n}, solve.Porta(n)
	case "bellaso":
		p.Tableau, p.Stream = tableau.Bellaso{N: n}, solve.Bellaso(n)
	}
	return p
}

func (c *Polyalphabetic) shift(i int, pt []int) int {
	if c.Autokey && i >= len(c.Keyword) {
		return pt[i-len(c.Keyword)]
	}
	return c.Keyword[i%len(c.Keyword)]
}

func (c *Polyalphabetic) Encrypt(pt []int) []int {
	if len(c.Keyword) == 0 {
		return slices.Clone(pt)
	}
	ct := make([]int, len(pt))
	for i, p := range pt {
		ct[i] = c.Tableau.Encrypt(c.shift(i, pt), p)
	}
	return ct
}

func (c *Polyalphabetic) Decrypt(ct []int) []int {
	if len(c.Keyword) == 0 {
		return slices.Clone(ct)
	}
	pt := make([]int, len(ct))
	for i, x := range ct {
		pt[i] = c.Tableau.Decrypt(c.shift(i, pt), x)
	}
	return pt
}

func (c *Polyalphabetic) Solve(v *lang.Variant, ct []int) {
	c.Keyword = c.Stream.Solve(v, ct)
}

func (c *Polyalphabetic) Key(v *lang.Variant) string {
	return v.Text(c.Keyword)
}

func (c *Polyalphabetic) SetKey(v *lang.Variant, key string) error {
	cps := v.CodePoints(key)
	if len(cps) == 0 {
		return fmt.Errorf("%w: keyword %q has no letters", ErrInvalidKey, key)
	}
	c.Keyword = cps
	return nil
}
