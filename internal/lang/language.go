// Package lang holds the alphabet and n-gram statistics of a language, and
// scores code-point sequences against them.
package lang

import (
	"fmt"
	"math"
	"strings"
)

// ScoreSize is the n-gram order used when scoring.
type ScoreSize int

const (
	Unigrams  ScoreSize = 1
	Bigrams   ScoreSize = 2
	Trigrams  ScoreSize = 3
	Quadgrams ScoreSize = 4
)

const (
	packBits = 5
	// MinCorpusLen is the fewest letters a training corpus may hold.
	MinCorpusLen = 4
)

func tableSize(size ScoreSize) int {
	return 1 << (packBits * int(size))
}

func packMask(size ScoreSize) int {
	return tableSize(size) - 1
}

// Language is a trained model. It is read-only once built and may be shared
// between goroutines.
type Language struct {
	Name        string
	AlphabetLen int
	Alphabets   []*Alphabet
	// Ligatures expand a rune into several letters before conversion,
	// for example 'Æ' -> "AE".
	Ligatures map[rune]string

	// tables[k-1] holds ln((count+1)/total) for every packed k-gram.
	tables [4][]float64
	// unigramProbs is exp(tables[0]), used for chi-squared.
	unigramProbs []float64
}

func (l *Language) table(size ScoreSize) []float64 {
	return l.tables[size-1]
}

func (l *Language) deriveUnigramProbs() {
	l.unigramProbs = make([]float64, len(l.tables[0]))
	for i, lp := range l.tables[0] {
		l.unigramProbs[i] = math.Exp(lp)
	}
}

// ExpandLigatures replaces every ligature rune in s with its expansion.
func (l *Language) ExpandLigatures(s string) string {
	if len(l.Ligatures) == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if exp, ok := l.Ligatures[r]; ok {
			sb.WriteString(exp)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Variant returns a handle on the alphabet variant of the given length.
func (l *Language) Variant(length int) (*Variant, error) {
	for _, a := range l.Alphabets {
		if a.Len() == length {
			return &Variant{lang: l, alph: a}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no %d-letter alphabet", ErrAlphabetLengthUnmatched,
		l.Name, length)
}

// Primary returns the handle on the alphabet the model was trained with.
func (l *Language) Primary() *Variant {
	v, err := l.Variant(l.AlphabetLen)
	if err != nil {
		// Train and Unmarshal both reject a model without its primary alphabet.
		panic(err)
	}
	return v
}

// A Variant couples a Language with one of its alphabets. All scoring and
// conversion goes through a Variant; there is no language-wide selection.
type Variant struct {
	lang *Language
	alph *Alphabet
}

func (v *Variant) Language() *Language {
	return v.lang
}

func (v *Variant) Alphabet() *Alphabet {
	return v.alph
}

// Len is the alphabet length, the modulus for all shift arithmetic.
func (v *Variant) Len() int {
	return v.alph.Len()
}

func (v *Variant) ExpectedIOC() float64 {
	return v.alph.ExpectedIOC
}

// CodePoints expands ligatures and converts s to code points.
func (v *Variant) CodePoints(s string) []int {
	return v.alph.CodePoints(v.lang.ExpandLigatures(s))
}

func (v *Variant) Text(cps []int) string {
	return v.alph.Text(cps)
}

// Frequencies returns the expected probability of each code point.
func (v *Variant) Frequencies() []float64 {
	freqs := make([]float64, v.Len())
	for cp, s := range v.alph.ScoringTable {
		freqs[cp] = v.lang.unigramProbs[s]
	}
	return freqs
}
