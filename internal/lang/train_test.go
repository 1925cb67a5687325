package lang

import (
	"errors"
	"math"
	"os"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

var (
	testModelOnce sync.Once
	testModel     *Language
	testCorpus    string
	testModelErr  error
)

func englishModel(t *testing.T) *Language {
	t.Helper()
	testModelOnce.Do(func() {
		bts, err := os.ReadFile("testdata/english.txt")
		if err != nil {
			testModelErr = err
			return
		}
		testCorpus = string(bts)
		testModel, testModelErr = Train(English(), testCorpus)
	})
	if testModelErr != nil {
		t.Fatal(testModelErr)
	}
	return testModel
}

func TestTrainInsufficientCorpus(t *testing.T) {
	is := is.New(t)
	_, err := Train(English(), "a b, c!")
	is.True(errors.Is(err, ErrInsufficientCorpus))

	_, err = Train(English(), "abcd")
	is.NoErr(err)
}

func TestTrainUnmatchedAlphabet(t *testing.T) {
	is := is.New(t)
	req := English()
	req.AlphabetLen = 24
	_, err := Train(req, "the quick brown fox")
	is.True(errors.Is(err, ErrAlphabetLengthUnmatched))
}

func TestTrainInvalidAlphabet(t *testing.T) {
	is := is.New(t)
	req := English()
	req.Alphabets[1].UpperAliases = []string{"JQ", "JI"}
	_, err := Train(req, "the quick brown fox")
	is.True(errors.Is(err, ErrSubstitutionsNotUnique))
}

func TestUnigramsSumToOne(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	var sum float64
	for _, p := range v.Frequencies() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSmoothedTablesHaveNoZeroes(t *testing.T) {
	l := englishModel(t)
	for k, table := range l.tables {
		assert.Len(t, table, 1<<(5*(k+1)))
		for _, lp := range table {
			if math.IsInf(lp, 0) || math.IsNaN(lp) || lp >= 0 {
				t.Fatalf("table %d has entry %v", k+1, lp)
			}
		}
	}
}

func TestCommonNgramsOutscoreRareOnes(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	is := is.New(t)
	e, _ := v.Alphabet().CodePoint('E')
	z, _ := v.Alphabet().CodePoint('Z')
	is.True(l.tables[0][e] > l.tables[0][z])
	is.True(v.Score(v.CodePoints("THE"), Trigrams) > v.Score(v.CodePoints("ZQX"), Trigrams))
}

func TestExpectedIOC(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	// English text sits around 0.066; uniform 26-letter noise is 0.038.
	assert.InDelta(t, 0.066, v.ExpectedIOC(), 0.008)

	folded, err := l.Variant(25)
	assert.NoError(t, err)
	assert.Greater(t, folded.ExpectedIOC(), 0.0)
	assert.NotEqual(t, v.ExpectedIOC(), folded.ExpectedIOC())
}

func TestLigatures(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	assert.Equal(t, "AEON", v.Text(v.CodePoints("Æon")))
	assert.Equal(t, "AEON", v.Text(v.CodePoints("æon")))
}

func TestVariantLookup(t *testing.T) {
	l := englishModel(t)
	_, err := l.Variant(30)
	assert.ErrorIs(t, err, ErrAlphabetLengthUnmatched)
	assert.Equal(t, 26, l.Primary().Len())
}
