package lang

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

type alphabetpair struct {
	alph *Alphabet
	err  error
}

var alphabetErrorTests = []alphabetpair{
	{&Alphabet{Upper: "ABC", Lower: "ab"}, ErrAlphabetLengthMismatch},
	{&Alphabet{Upper: "ABC", Lower: "abc", ScoringTable: []int{0, 1}}, ErrScoringTableLengthMismatch},
	{&Alphabet{Upper: "ABC", Lower: "abc", ScoringTable: []int{0, 1, 32}}, ErrScoringIndexOutOfRange},
	{&Alphabet{
		Upper: "ABCDEFGHIJKLMNOPQRSTUVWXYZÀÁÂÃÄÅÆ",
		Lower: "abcdefghijklmnopqrstuvwxyzàáâãäåæ"}, ErrMaxAlphabetLengthExceeded},
	{&Alphabet{Upper: "ABA", Lower: "abc"}, ErrRepeatedCharacter},
	{&Alphabet{Upper: "ABC", Lower: "abb"}, ErrRepeatedCharacter},
	{&Alphabet{Upper: "ABC", Lower: "abc", UpperAliases: []string{"DAB"}}, ErrSubstitutionsNotPaired},
	{&Alphabet{Upper: "ABC", Lower: "abc", LowerAliases: []string{"d"}}, ErrSubstitutionsNotPaired},
	{&Alphabet{Upper: "ABC", Lower: "abc", UpperAliases: []string{"DA", "DB"}}, ErrSubstitutionsNotUnique},
	{&Alphabet{Upper: "ABC", Lower: "abc", LowerAliases: []string{"da", "ea", "fa"}}, ErrSubstitutionsNotUnique},
	{&Alphabet{Upper: "ABC", Lower: "abc", UpperAliases: []string{"DZ"}}, ErrInvalidSubstitutionTarget},
	{&Alphabet{Upper: "ABC", Lower: "abc", LowerAliases: []string{"dA"}}, ErrInvalidSubstitutionTarget},
}

func TestAlphabetValidation(t *testing.T) {
	for _, tc := range alphabetErrorTests {
		err := tc.alph.Init()
		if !errors.Is(err, tc.err) {
			t.Errorf("%q/%q: got %v, want %v", tc.alph.Upper, tc.alph.Lower, err, tc.err)
		}
	}
}

func TestAlphabetAtMaxLength(t *testing.T) {
	is := is.New(t)
	a, err := NewAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZÀÁÂÃÄÅ", "abcdefghijklmnopqrstuvwxyzàáâãäå")
	is.NoErr(err)
	is.Equal(a.Len(), MaxAlphabetLen)
	cp, ok := a.CodePoint('å')
	is.True(ok)
	is.Equal(cp, 31)
}

func TestAliases(t *testing.T) {
	is := is.New(t)
	a := English().Alphabets[1]
	is.NoErr(a.Init())
	is.Equal(a.Len(), 25)

	i, _ := a.CodePoint('I')
	j, ok := a.CodePoint('J')
	is.True(ok)
	is.Equal(i, j)
	jl, _ := a.CodePoint('j')
	is.Equal(jl, i)
	is.True(a.IsUpper('J'))
	is.True(!a.IsUpper('j'))
	// K follows I directly in the folded alphabet.
	k, _ := a.CodePoint('K')
	is.Equal(k, i+1)
}

func TestCodePoints(t *testing.T) {
	a, err := NewAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "abcdefghijklmnopqrstuvwxyz")
	assert.NoError(t, err)
	assert.Equal(t, []int{7, 4, 11, 11, 14, 25}, a.CodePoints("Hello, z!"))
	assert.Equal(t, "HELLOZ", a.Text([]int{7, 4, 11, 11, 14, 25}))
	assert.Empty(t, a.CodePoints("123 ?!"))
}

func TestRethread(t *testing.T) {
	a, err := NewAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "abcdefghijklmnopqrstuvwxyz")
	assert.NoError(t, err)
	// "Hello, World!" shifted by one.
	cps := a.CodePoints("Hello, World!")
	for i := range cps {
		cps[i] = (cps[i] + 1) % 26
	}
	assert.Equal(t, "Ifmmp, Xpsme!", a.Rethread("Hello, World!", cps))
	// Letters beyond the supplied code points are left alone.
	assert.Equal(t, "Ifllo", a.Rethread("Hello", cps[:2]))
}

func TestRethreadAlias(t *testing.T) {
	a := English().Alphabets[1]
	assert.NoError(t, a.Init())
	cps := a.CodePoints("Jam")
	assert.Equal(t, "Iam", a.Rethread("Jam", cps))
}
