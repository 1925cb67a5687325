package solve

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
)

const (
	// MinRails is the smallest rail or face count tried by Railfence and
	// Scytale.
	MinRails = 2
	// MaxRails is exclusive.
	MaxRails = 50
)

// RailfenceDecryptIndexes lists, for each plaintext position of an n-letter
// text, the ciphertext position it is read from. The plaintext zigzags down
// and up across rails; the ciphertext is the rails read top to bottom.
func RailfenceDecryptIndexes(rails, n int) []int {
	idxs := make([]int, n)
	if rails < 2 {
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}
	cycle := 2 * (rails - 1)
	rail := func(pos int) int {
		m := pos % cycle
		if m < rails {
			return m
		}
		return cycle - m
	}
	next := 0
	for r := range rails {
		for pos := range n {
			if rail(pos) == r {
				idxs[pos] = next
				next++
			}
		}
	}
	return idxs
}

// ScytaleDecryptIndexes lists, for each plaintext position of an n-letter
// text, the ciphertext position it is read from when the ciphertext is
// wound around a rod with the given number of faces.
func ScytaleDecryptIndexes(faces, n int) []int {
	idxs := make([]int, 0, n)
	for face := range max(faces, 1) {
		for i := face; i < n; i += max(faces, 1) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Railfence returns the rail count in [MinRails, MaxRails) whose decryption
// of ct reads best. Ties go to fewer rails.
func Railfence(v *lang.Variant, ct []int) int {
	defer timeTrack(time.Now(), "solve-railfence")
	rails := bestIndexing(v, ct, RailfenceDecryptIndexes)
	log.Debug().Int("rails", rails).Msg("railfence-solved")
	return rails
}

// Scytale returns the face count in [MinRails, MaxRails) whose decryption
// of ct reads best. Ties go to fewer faces.
func Scytale(v *lang.Variant, ct []int) int {
	defer timeTrack(time.Now(), "solve-scytale")
	faces := bestIndexing(v, ct, ScytaleDecryptIndexes)
	log.Debug().Int("faces", faces).Msg("scytale-solved")
	return faces
}

func bestIndexing(v *lang.Variant, ct []int, indexes func(k, n int) []int) int {
	best, bestScore := MinRails, negInf
	for k := MinRails; k < MaxRails; k++ {
		score := v.ScoreSeq(gathered(ct, indexes(k, len(ct))), lang.Quadgrams)
		if score > bestScore {
			best, bestScore = k, score
		}
	}
	return best
}
