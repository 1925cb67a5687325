package lang

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestScoreMatchesStreaming(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	cps := v.CodePoints(testCorpus)[:500]
	for _, size := range []ScoreSize{Unigrams, Bigrams, Trigrams, Quadgrams} {
		assert.InDelta(t, v.Score(cps, size), v.ScoreSeq(slices.Values(cps), size), 1e-9)
	}
}

func TestScoreShortInputs(t *testing.T) {
	is := is.New(t)
	l := englishModel(t)
	v := l.Primary()

	is.Equal(v.Score(nil, Quadgrams), 0.0)
	is.Equal(v.ScoreSeq(slices.Values([]int{}), Quadgrams), 0.0)

	th := v.CodePoints("TH")
	is.Equal(v.Score(th, Quadgrams), v.Score(th, Bigrams))
	is.Equal(v.ScoreSeq(slices.Values(th), Quadgrams), v.Score(th, Bigrams))
	is.Equal(v.Bigram(th[0], th[1]), v.Score(th, Bigrams))
}

func TestScoreIsSumOfWindows(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	cps := v.CodePoints("THEREWAS")
	var want float64
	for i := 0; i+4 <= len(cps); i++ {
		want += v.Score(cps[i:i+4], Quadgrams)
	}
	assert.InDelta(t, want, v.Score(cps, Quadgrams), 1e-9)
}

func TestEnglishOutscoresShuffled(t *testing.T) {
	l := englishModel(t)
	v := l.Primary()
	cps := v.CodePoints(testCorpus)[1000:1400]
	shuffled := slices.Clone(cps)
	r := rand.New(rand.NewPCG(1, 2))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	assert.Greater(t, v.Score(cps, Quadgrams), v.Score(shuffled, Quadgrams))
	// Unigram scores only depend on letter counts.
	assert.InDelta(t, v.Score(cps, Unigrams), v.Score(shuffled, Unigrams), 1e-9)
}

func TestFoldedVariantScoresThroughScoringTable(t *testing.T) {
	is := is.New(t)
	l := englishModel(t)
	primary := l.Primary()
	folded, err := l.Variant(25)
	is.NoErr(err)

	text := "THE QUICK BROWN FOX"
	is.Equal(folded.Score(folded.CodePoints(text), Quadgrams),
		primary.Score(primary.CodePoints(text), Quadgrams))
}
