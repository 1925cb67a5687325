// Package cipher implements the classical ciphers whose keys the solve
// package recovers, over the code points of a language variant.
package cipher

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/solve"
)

var (
	ErrUnknownCipher = errors.New("unknown cipher")
	ErrInvalidKey    = errors.New("invalid key")

	// ErrUnsupportedAlphabet means a known cipher cannot run over the
	// variant's alphabet.
	ErrUnsupportedAlphabet = errors.New("cipher does not support alphabet")
)

// A Cipher transforms code-point sequences under its current key.
type Cipher interface {
	Encrypt(pt []int) []int
	Decrypt(ct []int) []int
	// Solve recovers the key of ct and stores it in the cipher.
	Solve(v *lang.Variant, ct []int)
	// SetKey parses a key in the format Key prints.
	SetKey(v *lang.Variant, key string) error
	Key(v *lang.Variant) string
}

// Names lists the ciphers New understands.
func Names() []string {
	return []string{"affine", "autokey", "beaufort", "bellaso", "block", "caesar", "columnar",
		"porta", "railfence", "scytale", "substitution", "variant-beaufort", "vigenere"}
}

// New returns the named cipher for v's alphabet with a zero key. rng seeds
// the substitution solver and may be nil.
func New(name string, v *lang.Variant, rng *rand.Rand) (Cipher, error) {
	n := v.Len()
	switch name {
	case "caesar":
		return &Caesar{N: n}, nil
	case "affine":
		return &Affine{N: n, A: 1}, nil
	case "substitution":
		return NewSubstitution(n, rng), nil
	case "columnar":
		return &ColumnTransposition{Layout: solve.Columnar}, nil
	case "block":
		return &ColumnTransposition{Layout: solve.Block}, nil
	case "railfence":
		return &Railfence{Rails: 1}, nil
	case "scytale":
		return &Scytale{Faces: 1}, nil
	}
	if slices.Contains(polyNames, name) {
		if (name == "porta" || name == "bellaso") && n%2 != 0 {
			return nil, fmt.Errorf("%w: %s needs an even alphabet, have %d letters", ErrUnsupportedAlphabet, name, n)
		}
		return NewPolyalphabetic(name, n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, name)
}

// EncryptText encrypts the letters of text and threads the result back
// through its case and punctuation.
func EncryptText(c Cipher, v *lang.Variant, text string) string {
	return transformText(v, text, c.Encrypt)
}

// DecryptText is EncryptText's inverse.
func DecryptText(c Cipher, v *lang.Variant, text string) string {
	return transformText(v, text, c.Decrypt)
}

func transformText(v *lang.Variant, text string, f func([]int) []int) string {
	text = v.Language().ExpandLigatures(text)
	cps := v.Alphabet().CodePoints(text)
	return v.Alphabet().Rethread(text, f(cps))
}

// FindOrder ranks the letters of a keyword: order[i] is the position of
// keyword[i] in the keyword's sorted letters, ties broken left to right.
func FindOrder(keyword []int) []int {
	idx := make([]int, len(keyword))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keyword[idx[a]] < keyword[idx[b]]
	})
	order := make([]int, len(keyword))
	for rank, i := range idx {
		order[i] = rank
	}
	return order
}

func formatInts(xs []int) string {
	strs := make([]string, len(xs))
	for i, x := range xs {
		strs[i] = strconv.Itoa(x)
	}
	return strings.Join(strs, ",")
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	xs := make([]int, len(fields))
	for i, f := range fields {
		x, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		xs[i] = x
	}
	return xs, nil
}
