package solve

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modular"
)

// Caesar returns the shift s for which (c - s) mod n reads best. Ties go to
// the smallest shift.
func Caesar(v *lang.Variant, ct []int) int {
	defer timeTrack(time.Now(), "solve-caesar")
	n := v.Len()
	best, bestScore := 0, negInf
	for shift := range n {
		score := v.ScoreSeq(mapped(ct, func(c int) int {
			return modular.Mod(c-shift, n)
		}), lang.Quadgrams)
		if score > bestScore {
			best, bestScore = shift, score
		}
	}
	log.Debug().Int("shift", best).Float64("score", bestScore).Msg("caesar-solved")
	return best
}
