package lang

import (
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestIndexOfCoincidence(t *testing.T) {
	is := is.New(t)
	ioc, err := IndexOfCoincidence([]int{0, 0, 1, 1})
	is.NoErr(err)
	is.Equal(ioc, 4.0/12.0)

	ioc, err = IndexOfCoincidence([]int{3, 3, 3})
	is.NoErr(err)
	is.Equal(ioc, 1.0)

	_, err = IndexOfCoincidence([]int{3})
	assert.ErrorIs(t, err, ErrInsufficientInput)
}

func TestIOCUnchangedBySubstitution(t *testing.T) {
	is := is.New(t)
	v := englishModel(t).Primary()
	plain := v.CodePoints(testCorpus)[:1500]
	want, err := IndexOfCoincidence(plain)
	is.NoErr(err)
	wantP, err := PeriodicIndexOfCoincidence(plain, 7)
	is.NoErr(err)

	for seed := range uint64(5) {
		perm := rand.New(rand.NewPCG(seed, 9)).Perm(v.Len())
		sub := make([]int, len(plain))
		for i, cp := range plain {
			sub[i] = perm[cp]
		}
		got, err := IndexOfCoincidence(sub)
		is.NoErr(err)
		is.Equal(got, want)
		gotP, err := PeriodicIndexOfCoincidence(sub, 7)
		is.NoErr(err)
		is.Equal(gotP, wantP)
	}
}

func vigenere(cps []int, key []int, n int) []int {
	out := make([]int, len(cps))
	for i, cp := range cps {
		out[i] = (cp + key[i%len(key)]) % n
	}
	return out
}

func TestPeriodicIOCFindsPeriod(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	plain := v.CodePoints(testCorpus)[:3000]
	ct := vigenere(plain, []int{10, 4, 24, 22, 14}, 26)

	ioc5, err := PeriodicIndexOfCoincidence(ct, 5)
	assert.NoError(t, err)
	assert.InDelta(t, v.ExpectedIOC(), ioc5, 0.01)

	for _, p := range []int{3, 7} {
		ioc, err := PeriodicIndexOfCoincidence(ct, p)
		assert.NoError(t, err)
		assert.Less(t, ioc, v.ExpectedIOC()-0.01, "period %d", p)
	}
	assert.Equal(t, 5, v.LikelyPeriod(ct, 20))
}

func TestPeriodicIOCShortInput(t *testing.T) {
	_, err := PeriodicIndexOfCoincidence([]int{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrInsufficientInput)
	_, err = PeriodicIndexOfCoincidence([]int{1, 2, 3, 4}, 0)
	assert.ErrorIs(t, err, ErrInsufficientInput)

	iocs := PeriodicIOCs([]int{1, 2, 3, 4, 5, 6}, 10)
	assert.Len(t, iocs, 3)
}

func TestChiSquared(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	plain := v.CodePoints(testCorpus)[:2000]
	shifted := vigenere(plain, []int{3}, 26)

	chiPlain, err := v.ChiSquared(plain)
	assert.NoError(t, err)
	chiShifted, err := v.ChiSquared(shifted)
	assert.NoError(t, err)
	assert.Less(t, chiPlain, chiShifted)

	_, err = v.ChiSquared(nil)
	assert.ErrorIs(t, err, ErrInsufficientInput)
}
