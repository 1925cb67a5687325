package solve

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modular"
)

type SubstitutionOptions struct {
	// MaxRestarts caps the number of random restarts.
	MaxRestarts int
	// Tolerance is how close to the best score a restart must land to
	// count as finding the same optimum again.
	Tolerance float64
	// MaxRepeats is how many such repeats end the search.
	MaxRepeats int
}

var DefaultSubstitutionOptions = SubstitutionOptions{
	MaxRestarts: 1000,
	Tolerance:   0.1,
	MaxRepeats:  3,
}

// Substitution hill-climbs towards the simple substitution key of ct with
// the default options. The returned key maps each plaintext code point to
// its ciphertext code point. rng may be nil to use the process-wide source.
func Substitution(v *lang.Variant, ct []int, rng *rand.Rand) []int {
	return SubstitutionWithOptions(v, ct, rng, DefaultSubstitutionOptions)
}

// SubstitutionWithOptions runs random-restart hill climbing over decryption
// permutations. Each restart starts from a shuffled permutation and sweeps
// every pair of letters, keeping a swap only if it strictly improves the
// quadgram score, until a full sweep changes nothing. The search stops after
// opts.MaxRepeats restarts land within opts.Tolerance of the best optimum,
// or after opts.MaxRestarts restarts. The key returned is that of the best
// optimum seen over all restarts, not necessarily the last restart's.
func SubstitutionWithOptions(v *lang.Variant, ct []int, rng *rand.Rand, opts SubstitutionOptions) []int {
	defer timeTrack(time.Now(), "solve-substitution")
	n := v.Len()
	dec := make([]int, n)
	var best []int
	bestScore := negInf
	repeats := 0

	for restart := 0; restart < opts.MaxRestarts && repeats < opts.MaxRepeats; restart++ {
		for i := range dec {
			dec[i] = i
		}
		shuffle(rng, dec)
		score := climb(v, ct, dec)

		switch {
		case score > bestScore+opts.Tolerance:
			bestScore = score
			best = slices.Clone(dec)
			repeats = 0
		case math.Abs(score-bestScore) <= opts.Tolerance:
			repeats++
			if score > bestScore {
				bestScore = score
				best = slices.Clone(dec)
			}
		}
		log.Debug().Int("restart", restart).Float64("score", score).
			Float64("best", bestScore).Int("repeats", repeats).Msg("substitution-restart")
	}
	if best == nil {
		best = make([]int, n)
		for i := range best {
			best[i] = i
		}
	}
	return modular.Invert(best)
}

// climb improves dec in place and returns its final score.
func climb(v *lang.Variant, ct []int, dec []int) float64 {
	score := scoreDecryption(v, ct, dec)
	for {
		improved := false
		for i := range dec {
			for j := i + 1; j < len(dec); j++ {
				dec[i], dec[j] = dec[j], dec[i]
				s := scoreDecryption(v, ct, dec)
				if s > score {
					score = s
					improved = true
				} else {
					dec[i], dec[j] = dec[j], dec[i]
				}
			}
		}
		if !improved {
			return score
		}
	}
}

func scoreDecryption(v *lang.Variant, ct []int, dec []int) float64 {
	return v.ScoreSeq(mapped(ct, func(c int) int { return dec[c] }), lang.Quadgrams)
}

func shuffle(rng *rand.Rand, s []int) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}
