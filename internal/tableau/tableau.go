// Package tableau implements the lettered squares used by the periodic
// polyalphabetic ciphers. Every tableau works on code points 0..N and takes
// a key code point that selects the row.
package tableau

import "github.com/domino14/classic_crypto/internal/modular"

// A Tableau enciphers one letter under one key letter.
type Tableau interface {
	Encrypt(key, cp int) int
	Decrypt(key, cp int) int
}

// Vigenere is the classic square: row k is the alphabet shifted by k.
type Vigenere struct{ N int }

func (t Vigenere) Encrypt(key, cp int) int { return modular.Mod(cp+key, t.N) }
func (t Vigenere) Decrypt(key, cp int) int { return modular.Mod(cp-key, t.N) }

// Beaufort subtracts the letter from the key. It is its own inverse.
type Beaufort struct{ N int }

func (t Beaufort) Encrypt(key, cp int) int { return modular.Mod(key-cp, t.N) }
func (t Beaufort) Decrypt(key, cp int) int { return modular.Mod(key-cp, t.N) }

// VariantBeaufort is Vigenère run backwards.
type VariantBeaufort struct{ N int }

func (t VariantBeaufort) Encrypt(key, cp int) int { return modular.Mod(cp-key, t.N) }
func (t VariantBeaufort) Decrypt(key, cp int) int { return modular.Mod(cp+key, t.N) }

// Porta has N/2 rows; key letters 2k and 2k+1 share row k. Each row swaps
// the two halves of the alphabet, so encryption and decryption coincide.
// N must be even.
type Porta struct{ N int }

func (t Porta) Encrypt(key, cp int) int { return porta(t.N/2, key/2, cp) }
func (t Porta) Decrypt(key, cp int) int { return porta(t.N/2, key/2, cp) }

func porta(h, row, cp int) int {
	if cp < h {
		return h + modular.Mod(cp+row, h)
	}
	return modular.Mod(cp-h-row, h)
}

// Bellaso uses a full N-row square. The first N/2 rows swap the halves of
// the alphabet with opposite rotations; each row in the second half is the
// mirror image of the row N/2 above it. N must be even.
type Bellaso struct{ N int }

func (t Bellaso) Encrypt(key, cp int) int {
	h := t.N / 2
	if key < h {
		return bellasoRow(h, key, cp)
	}
	return bellasoRow(h, key-h, t.N-1-cp)
}

func (t Bellaso) Decrypt(key, cp int) int {
	h := t.N / 2
	if key < h {
		return bellasoRow(h, key, cp)
	}
	return t.N - 1 - bellasoRow(h, key-h, cp)
}

// bellasoRow is self-inverse.
func bellasoRow(h, row, cp int) int {
	if cp < h {
		return h + modular.Mod(cp-row, h)
	}
	return modular.Mod(cp-h+row, h)
}
