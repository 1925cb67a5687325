package tableau

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestTableausInvert(t *testing.T) {
	for _, tab := range []Tableau{Vigenere{26}, Beaufort{26}, VariantBeaufort{26},
		Porta{26}, Bellaso{26}, Vigenere{25}, Porta{24}} {

		n := 26
		switch v := tab.(type) {
		case Vigenere:
			n = v.N
		case Porta:
			n = v.N
		}
		for key := range n {
			seen := make(map[int]bool)
			for cp := range n {
				c := tab.Encrypt(key, cp)
				assert.False(t, seen[c], "%T key %d: %d repeated", tab, key, c)
				seen[c] = true
				assert.Equal(t, cp, tab.Decrypt(key, c), "%T key %d", tab, key)
			}
		}
	}
}

func TestVigenere(t *testing.T) {
	is := is.New(t)
	v := Vigenere{26}
	// L(11) + A(0) = L, L + T(19) = E
	is.Equal(v.Encrypt(11, 0), 11)
	is.Equal(v.Encrypt(11, 19), 4)
	is.Equal(v.Decrypt(11, 4), 19)
}

func TestPortaRows(t *testing.T) {
	is := is.New(t)
	p := Porta{26}
	// Row A/B: A<->N, M<->Z.
	is.Equal(p.Encrypt(0, 0), 13)
	is.Equal(p.Encrypt(1, 12), 25)
	// Row C/D: A<->O, M<->N.
	is.Equal(p.Encrypt(2, 0), 14)
	is.Equal(p.Encrypt(2, 12), 13)
	is.Equal(p.Encrypt(3, 13), 12)
	is.Equal(p.Encrypt(2, 14), 0)
}

func TestBellasoSquare(t *testing.T) {
	is := is.New(t)
	b := Bellaso{26}
	// Row 0 swaps halves with no rotation.
	is.Equal(b.Encrypt(0, 0), 13)
	is.Equal(b.Encrypt(0, 13), 0)
	// Row 1: square[1] starts 25, 13, 14, ...
	is.Equal(b.Encrypt(1, 0), 25)
	is.Equal(b.Encrypt(1, 1), 13)
	is.Equal(b.Encrypt(1, 13), 1)
	is.Equal(b.Encrypt(1, 25), 0)
	// Row 14 mirrors row 1: square[14][25-col] = square[1][col].
	for col := range 26 {
		is.Equal(b.Encrypt(14, 25-col), b.Encrypt(1, col))
	}
}
