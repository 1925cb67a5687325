// Package solve recovers classical cipher keys from ciphertext alone by
// searching key space and scoring each candidate decryption against a
// language model.
//
// Every solver is synchronous and deterministic given its inputs (and, for
// the substitution solver, its random source). None of them return errors;
// an input too short to carry any signal just yields a poor key.
package solve

import (
	"iter"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// ImprovementThreshold is the score change below which a coordinate-ascent
// loop counts as converged.
const ImprovementThreshold = 0.1

var negInf = math.Inf(-1)

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Debug().Msgf("%s took %s", name, elapsed)
}

// mapped streams f applied to each code point of ct.
func mapped(ct []int, f func(int) int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, c := range ct {
			if !yield(f(c)) {
				return
			}
		}
	}
}

// gathered streams ct read in the order idxs gives.
func gathered(ct, idxs []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range idxs {
			if !yield(ct[idx]) {
				return
			}
		}
	}
}
