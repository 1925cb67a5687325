package cipher

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/solve"
)

// gather reads xs through decryption indexes. Positions the indexes do not
// cover keep their letter.
func gather(xs, idxs []int) []int {
	out := slices.Clone(xs)
	for i, idx := range idxs {
		out[i] = xs[idx]
	}
	return out
}

// scatter undoes gather.
func scatter(xs, idxs []int) []int {
	out := slices.Clone(xs)
	for i, idx := range idxs {
		out[idx] = xs[i]
	}
	return out
}

// ColumnTransposition writes the plaintext in rows under the key and
// permutes its columns according to Layout: columnar reads the columns off
// in key order, block rearranges each row in place. Order[i] is the rank of
// plaintext column i. Letters past the last complete row are carried over
// unchanged.
type ColumnTransposition struct {
	Layout solve.ColumnLayout
	Order  []int
}

func (c *ColumnTransposition) Encrypt(pt []int) []int {
	if len(c.Order) == 0 {
		return slices.Clone(pt)
	}
	return scatter(pt, c.Layout.DecryptIndexes(len(pt), c.Order))
}

func (c *ColumnTransposition) Decrypt(ct []int) []int {
	if len(c.Order) == 0 {
		return slices.Clone(ct)
	}
	return gather(ct, c.Layout.DecryptIndexes(len(ct), c.Order))
}

func (c *ColumnTransposition) Solve(v *lang.Variant, ct []int) {
	c.Order = solve.Transposition(v, ct, c.Layout)
}

func (c *ColumnTransposition) Key(*lang.Variant) string {
	return formatInts(c.Order)
}

// SetKey accepts a comma-separated column order or a keyword.
func (c *ColumnTransposition) SetKey(v *lang.Variant, key string) error {
	order, err := parseInts(key)
	if err != nil {
		order = FindOrder(v.CodePoints(key))
	}
	if len(order) == 0 {
		return fmt.Errorf("%w: empty column key", ErrInvalidKey)
	}
	sorted := slices.Sorted(slices.Values(order))
	for i, x := range sorted {
		if x != i {
			return fmt.Errorf("%w: %v is not a column order", ErrInvalidKey, order)
		}
	}
	c.Order = order
	return nil
}

// Railfence zigzags the plaintext down and up Rails rails and reads the
// rails off in turn. One rail is the identity.
type Railfence struct {
	Rails int
}

func (c *Railfence) Encrypt(pt []int) []int {
	return scatter(pt, solve.RailfenceDecryptIndexes(c.Rails, len(pt)))
}

func (c *Railfence) Decrypt(ct []int) []int {
	return gather(ct, solve.RailfenceDecryptIndexes(c.Rails, len(ct)))
}

func (c *Railfence) Solve(v *lang.Variant, ct []int) {
	c.Rails = solve.Railfence(v, ct)
}

func (c *Railfence) Key(*lang.Variant) string {
	return strconv.Itoa(c.Rails)
}

func (c *Railfence) SetKey(_ *lang.Variant, key string) error {
	n, err := parseCount(key)
	if err != nil {
		return err
	}
	c.Rails = n
	return nil
}

// Scytale writes the plaintext around a rod with Faces faces, so that the
// ciphertext takes every Faces-th letter. One face is the identity.
type Scytale struct {
	Faces int
}

func (c *Scytale) Encrypt(pt []int) []int {
	return scatter(pt, solve.ScytaleDecryptIndexes(c.Faces, len(pt)))
}

func (c *Scytale) Decrypt(ct []int) []int {
	return gather(ct, solve.ScytaleDecryptIndexes(c.Faces, len(ct)))
}

func (c *Scytale) Solve(v *lang.Variant, ct []int) {
	c.Faces = solve.Scytale(v, ct)
}

func (c *Scytale) Key(*lang.Variant) string {
	return strconv.Itoa(c.Faces)
}

func (c *Scytale) SetKey(_ *lang.Variant, key string) error {
	n, err := parseCount(key)
	if err != nil {
		return err
	}
	c.Faces = n
	return nil
}

func parseCount(key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a positive count", ErrInvalidKey, key)
	}
	return n, nil
}
