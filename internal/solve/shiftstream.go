package solve

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/tableau"
)

// MaxShiftKeyLen is the longest periodic key ShiftStream tries.
const MaxShiftKeyLen = 30

// A ShiftStream solves any cipher that decrypts each letter independently
// under a per-position shift drawn from a periodic key, possibly mixed with
// earlier plaintext (autokey).
type ShiftStream struct {
	// Domain is the number of distinct key values, usually the alphabet
	// length.
	Domain int
	// Step is the stride through key values. Porta uses 2 because key
	// letters pair up on its rows.
	Step int
	// DecryptOne deciphers one letter under one shift.
	DecryptOne func(cp, shift int) int
	// EffectiveShift is the shift at position pos, given the key and the
	// plaintext decrypted so far (every position before pos is final).
	EffectiveShift func(key []int, pos int, plain []int) int
	// OnSweep, if set, is called with the running score after every
	// coordinate-ascent sweep.
	OnSweep func(keyLen, sweep int, score float64)
}

// periodicShift is the plain repeating-key schedule.
func periodicShift(key []int, pos int, _ []int) int {
	return key[pos%len(key)]
}

// autokeyShift uses the key for the first len(key) letters and the
// plaintext itself after that.
func autokeyShift(key []int, pos int, plain []int) int {
	if pos < len(key) {
		return key[pos]
	}
	return plain[pos-len(key)]
}

// Periodic is the shift-stream strategy for a periodic cipher over tab.
func Periodic(tab tableau.Tableau, n int) ShiftStream {
	return ShiftStream{
		Domain:         n,
		Step:           1,
		DecryptOne:     func(cp, shift int) int { return tab.Decrypt(shift, cp) },
		EffectiveShift: periodicShift,
	}
}

func Vigenere(n int) ShiftStream        { return Periodic(tableau.Vigenere{N: n}, n) }
func Beaufort(n int) ShiftStream        { return Periodic(tableau.Beaufort{N: n}, n) }
func VariantBeaufort(n int) ShiftStream { return Periodic(tableau.VariantBeaufort{N: n}, n) }
func Bellaso(n int) ShiftStream         { return Periodic(tableau.Bellaso{N: n}, n) }

// Porta only tries even key letters; 2k and 2k+1 decrypt identically.
func Porta(n int) ShiftStream {
	s := Periodic(tableau.Porta{N: n}, n)
	s.Step = 2
	return s
}

// Autokey is the Vigenère autokey: a primer key followed by the plaintext.
func Autokey(n int) ShiftStream {
	s := Vigenere(n)
	s.EffectiveShift = autokeyShift
	return s
}

// Solve tries every key length from 1 to MaxShiftKeyLen (or the text length)
// and returns the best key found. Ties go to the shorter key.
func (s ShiftStream) Solve(v *lang.Variant, ct []int) []int {
	defer timeTrack(time.Now(), "solve-shift-stream")
	var best []int
	bestScore := negInf
	for keyLen := 1; keyLen <= min(MaxShiftKeyLen, len(ct)); keyLen++ {
		key, score := s.SolveLength(v, ct, keyLen)
		log.Debug().Int("key-len", keyLen).Float64("score", score).Msg("shift-stream-key-length")
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	return best
}

// SolveLength runs coordinate ascent for a single key length, starting from
// the all-zero key. Each sweep tries every shift for every key position in
// turn, keeping the shift that strictly raises the quadgram score of the
// whole decryption. Sweeps repeat until one improves the score by less than
// ImprovementThreshold.
func (s ShiftStream) SolveLength(v *lang.Variant, ct []int, keyLen int) ([]int, float64) {
	step := max(s.Step, 1)
	key := make([]int, keyLen)
	if s.Domain < 1 {
		return key, negInf
	}
	plain := make([]int, len(ct))
	for i := range ct {
		plain[i] = s.DecryptOne(ct[i], s.EffectiveShift(key, i, plain))
	}

	curr := negInf
	for sweep := 0; ; sweep++ {
		prev := curr
		for col := range keyLen {
			bestShift := key[col]
			for shift := 0; shift < s.Domain; shift += step {
				key[col] = shift
				s.decryptColumn(ct, key, col, plain)
				if score := v.Score(plain, lang.Quadgrams); score > curr {
					curr = score
					bestShift = shift
				}
			}
			key[col] = bestShift
			s.decryptColumn(ct, key, col, plain)
		}
		if s.OnSweep != nil {
			s.OnSweep(keyLen, sweep, curr)
		}
		if math.Abs(prev-curr) < ImprovementThreshold {
			return key, curr
		}
	}
}

// decryptColumn re-decrypts the positions governed by key[col].
func (s ShiftStream) decryptColumn(ct, key []int, col int, plain []int) {
	for i := col; i < len(ct); i += len(key) {
		plain[i] = s.DecryptOne(ct[i], s.EffectiveShift(key, i, plain))
	}
}
