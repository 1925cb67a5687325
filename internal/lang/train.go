package lang

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Info().Msgf("%s took %s", name, elapsed)
}

// Train builds a Language from a corpus. Every alphabet in req is validated,
// the one of length req.AlphabetLen becomes the primary alphabet, and the
// n-gram tables are counted over the corpus as seen through it.
func Train(req *TrainRequest, corpus string) (*Language, error) {
	defer timeTrack(time.Now(), "train-"+req.Name)

	l := &Language{
		Name:        req.Name,
		AlphabetLen: req.AlphabetLen,
		Alphabets:   req.Alphabets,
		Ligatures:   req.ligatureMap(),
	}
	for _, a := range l.Alphabets {
		if err := a.Init(); err != nil {
			return nil, err
		}
	}
	primary, err := l.Variant(req.AlphabetLen)
	if err != nil {
		return nil, err
	}
	corpus = l.ExpandLigatures(corpus)

	cps := primary.alph.CodePoints(corpus)
	if len(cps) < MinCorpusLen {
		return nil, fmt.Errorf("%w: %d letters, need %d", ErrInsufficientCorpus, len(cps), MinCorpusLen)
	}
	log.Debug().Str("lang", l.Name).Int("letters", len(cps)).Msg("counting-ngrams")

	var counts [4][]int
	for k := range counts {
		counts[k] = make([]int, tableSize(ScoreSize(k+1)))
	}
	sub := primary.alph.ScoringTable
	idx := 0
	for i, cp := range cps {
		idx = idx<<packBits | sub[cp]
		for k := 0; k < 4 && k <= i; k++ {
			counts[k][idx&packMask(ScoreSize(k+1))]++
		}
		idx &= packMask(Trigrams)
	}

	for k := range counts {
		windows := len(cps) - k
		total := float64(windows) + math.Pow(float64(l.AlphabetLen), float64(k+1))
		table := make([]float64, len(counts[k]))
		for i, c := range counts[k] {
			table[i] = math.Log(float64(c+1) / total)
		}
		l.tables[k] = table
	}
	l.deriveUnigramProbs()

	for _, a := range l.Alphabets {
		ioc, err := IndexOfCoincidence(a.CodePoints(corpus))
		if err != nil {
			return nil, fmt.Errorf("%w: alphabet %q: %w", ErrInsufficientCorpus, a.Upper, err)
		}
		a.ExpectedIOC = ioc
		log.Debug().Str("lang", l.Name).Int("len", a.Len()).Float64("ioc", ioc).Msg("expected-ioc")
	}
	return l, nil
}
