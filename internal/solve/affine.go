package solve

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modular"
)

// Affine searches every invertible multiplier a and every offset b of the
// cipher c = a*p + b mod n and returns the pair whose decryption scores
// best. Ties go to the first pair found, multipliers ascending, then
// offsets ascending.
func Affine(v *lang.Variant, ct []int) (a, b int) {
	defer timeTrack(time.Now(), "solve-affine")
	n := v.Len()
	bestScore := negInf
	for ta := 1; ta < n; ta++ {
		inv, err := modular.Inverse(ta, n)
		if err != nil {
			continue
		}
		for tb := range n {
			score := v.ScoreSeq(mapped(ct, func(c int) int {
				return modular.Mod(inv*(c-tb), n)
			}), lang.Quadgrams)
			if score > bestScore {
				a, b, bestScore = ta, tb, score
			}
		}
	}
	log.Debug().Int("a", a).Int("b", b).Float64("score", bestScore).Msg("affine-solved")
	return a, b
}

// AffineKnownPair recovers a and b from two known plaintext letters p0, p1
// and the ciphertext letters c0, c1 they encrypt to. It fails when p0 - p1
// has no inverse mod n.
func AffineKnownPair(n, p0, p1, c0, c1 int) (a, b int, err error) {
	inv, err := modular.Inverse(p0-p1, n)
	if err != nil {
		return 0, 0, err
	}
	a = modular.Mod(inv*(c0-c1), n)
	b = modular.Mod(inv*(p0*c1-p1*c0), n)
	return a, b, nil
}
