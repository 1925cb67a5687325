package lang

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxAlphabetLen is the largest alphabet the packed n-gram tables can hold.
const MaxAlphabetLen = 1 << packBits

// An Alphabet is one variant of a language's letters. The position of a
// letter in Upper (or Lower) is its code point. Aliases are two-rune strings,
// alias first and target second, that let a rune outside the alphabet stand
// in for one inside it (for example "JI" folds J into I).
type Alphabet struct {
	Upper        string   `yaml:"upper"`
	Lower        string   `yaml:"lower"`
	UpperAliases []string `yaml:"upper_aliases"`
	LowerAliases []string `yaml:"lower_aliases"`
	// ScoringTable maps each code point to the index used for the language
	// statistics. An empty table means identity.
	ScoringTable []int `yaml:"scoring_table"`
	// ExpectedIOC is filled in by training.
	ExpectedIOC float64 `yaml:"-"`

	upper []rune
	lower []rune
	cps   map[rune]int
	cased map[rune]bool
}

// NewAlphabet builds and validates an alphabet with an identity scoring table
// and no aliases.
func NewAlphabet(upper, lower string) (*Alphabet, error) {
	a := &Alphabet{Upper: upper, Lower: lower}
	if err := a.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

// Init validates the alphabet and builds its rune lookup. It must be called
// after constructing or deserializing an Alphabet.
func (a *Alphabet) Init() error {
	a.upper = []rune(a.Upper)
	a.lower = []rune(a.Lower)
	if len(a.upper) != len(a.lower) {
		return fmt.Errorf("%w: %d upper, %d lower", ErrAlphabetLengthMismatch,
			len(a.upper), len(a.lower))
	}
	if len(a.ScoringTable) == 0 {
		a.ScoringTable = make([]int, len(a.upper))
		for i := range a.ScoringTable {
			a.ScoringTable[i] = i
		}
	}
	if len(a.ScoringTable) != len(a.upper) {
		return fmt.Errorf("%w: %d entries for %d letters", ErrScoringTableLengthMismatch,
			len(a.ScoringTable), len(a.upper))
	}
	if len(a.upper) > MaxAlphabetLen {
		return fmt.Errorf("%w: %d > %d", ErrMaxAlphabetLengthExceeded, len(a.upper), MaxAlphabetLen)
	}
	for _, s := range a.ScoringTable {
		if s < 0 || s >= MaxAlphabetLen {
			return fmt.Errorf("%w: %d", ErrScoringIndexOutOfRange, s)
		}
	}
	if r, ok := firstRepeat(a.upper); ok {
		return fmt.Errorf("%w: %q in %q", ErrRepeatedCharacter, r, a.Upper)
	}
	if r, ok := firstRepeat(a.lower); ok {
		return fmt.Errorf("%w: %q in %q", ErrRepeatedCharacter, r, a.Lower)
	}
	for _, pair := range append(append([]string{}, a.UpperAliases...), a.LowerAliases...) {
		if utf8.RuneCountInString(pair) != 2 {
			return fmt.Errorf("%w: %q", ErrSubstitutionsNotPaired, pair)
		}
	}
	if r, ok := firstRepeat([]rune(strings.Join(a.UpperAliases, ""))); ok {
		return fmt.Errorf("%w: %q", ErrSubstitutionsNotUnique, r)
	}
	if r, ok := firstRepeat([]rune(strings.Join(a.LowerAliases, ""))); ok {
		return fmt.Errorf("%w: %q", ErrSubstitutionsNotUnique, r)
	}

	a.cps = make(map[rune]int, 2*len(a.upper))
	a.cased = make(map[rune]bool, 2*len(a.upper))
	for i := range a.upper {
		a.cps[a.upper[i]] = i
		a.cased[a.upper[i]] = true
		a.cps[a.lower[i]] = i
		a.cased[a.lower[i]] = false
	}
	if err := a.addAliases(a.UpperAliases, a.upper, true); err != nil {
		return err
	}
	return a.addAliases(a.LowerAliases, a.lower, false)
}

func (a *Alphabet) addAliases(pairs []string, letters []rune, upper bool) error {
	for _, pair := range pairs {
		rs := []rune(pair)
		cp := indexOf(letters, rs[1])
		if cp < 0 {
			return fmt.Errorf("%w: %q -> %q", ErrInvalidSubstitutionTarget, rs[0], rs[1])
		}
		a.cps[rs[0]] = cp
		a.cased[rs[0]] = upper
	}
	return nil
}

func firstRepeat(rs []rune) (rune, bool) {
	seen := make(map[rune]bool, len(rs))
	for _, r := range rs {
		if seen[r] {
			return r, true
		}
		seen[r] = true
	}
	return 0, false
}

func indexOf(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

// Len is the number of letters (code points) in the alphabet.
func (a *Alphabet) Len() int {
	return len(a.upper)
}

// CodePoint returns the code point of r, following aliases.
func (a *Alphabet) CodePoint(r rune) (int, bool) {
	cp, ok := a.cps[r]
	return cp, ok
}

// IsUpper reports whether r is an upper-case letter or alias.
func (a *Alphabet) IsUpper(r rune) bool {
	return a.cased[r]
}

// Rune returns the letter for cp in the requested case.
func (a *Alphabet) Rune(cp int, upper bool) rune {
	if upper {
		return a.upper[cp]
	}
	return a.lower[cp]
}

// CodePoints converts s to its code points, dropping anything that is not a
// letter or alias.
func (a *Alphabet) CodePoints(s string) []int {
	cps := make([]int, 0, len(s))
	for _, r := range s {
		if cp, ok := a.cps[r]; ok {
			cps = append(cps, cp)
		}
	}
	return cps
}

// Text renders code points as upper-case letters.
func (a *Alphabet) Text(cps []int) string {
	var sb strings.Builder
	for _, cp := range cps {
		sb.WriteRune(a.upper[cp])
	}
	return sb.String()
}

// Rethread writes cps back into the letter positions of original, keeping
// each position's case and leaving every other rune untouched. Letters past
// the end of cps are kept as they were.
func (a *Alphabet) Rethread(original string, cps []int) string {
	var sb strings.Builder
	sb.Grow(len(original))
	i := 0
	for _, r := range original {
		if _, ok := a.cps[r]; ok && i < len(cps) {
			sb.WriteRune(a.Rune(cps[i], a.cased[r]))
			i++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
