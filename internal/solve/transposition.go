package solve

import (
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
)

const (
	MinTranspositionKeyLen = 3
	// MaxTranspositionKeyLen is exclusive.
	MaxTranspositionKeyLen = 15
)

// A ColumnLayout describes how a block transposition lays the text out in
// rows of keyLen columns.
type ColumnLayout struct {
	// Index is the ciphertext position of the letter in the given row of
	// ciphertext column col.
	Index func(row, col, keyLen, rows int) int
	// DecryptIndexes lists, for each plaintext position, the ciphertext
	// position it is read from when order[i] is the ciphertext column that
	// holds plaintext column i.
	DecryptIndexes func(n int, order []int) []int
}

// Columnar is the layout of keyed columnar transposition: the ciphertext is
// the columns of the plaintext grid, one after another.
var Columnar = ColumnLayout{
	Index: func(row, col, _, rows int) int {
		return col*rows + row
	},
	DecryptIndexes: ColumnarDecryptIndexes,
}

// Block is the layout of block transposition: each row of keyLen letters is
// permuted in place.
var Block = ColumnLayout{
	Index: func(row, col, keyLen, _ int) int {
		return row*keyLen + col
	},
	DecryptIndexes: BlockDecryptIndexes,
}

// ColumnarDecryptIndexes permutes the complete rows of an n-letter text.
// Letters past the last complete row map to themselves, so every key length
// is scored over the whole text.
func ColumnarDecryptIndexes(n int, order []int) []int {
	k := len(order)
	rows := n / k
	idxs := tailIdentity(n, rows*k)
	for row := range rows {
		for col, c := range order {
			idxs[row*k+col] = c*rows + row
		}
	}
	return idxs
}

// BlockDecryptIndexes is ColumnarDecryptIndexes for the Block layout.
func BlockDecryptIndexes(n int, order []int) []int {
	k := len(order)
	rows := n / k
	idxs := tailIdentity(n, rows*k)
	for row := range rows {
		for col, c := range order {
			idxs[row*k+col] = row*k + c
		}
	}
	return idxs
}

// tailIdentity returns n indexes with positions from start on mapped to
// themselves.
func tailIdentity(n, start int) []int {
	idxs := make([]int, n)
	for i := start; i < n; i++ {
		idxs[i] = i
	}
	return idxs
}

// Transposition recovers the column order of a block transposition. For
// each key length it grows an order from every possible first column,
// always appending the unused column whose letters best follow the last
// column's letters as bigrams, then scores the full decryption. Ties go to
// the shorter key, then to the earlier start column.
func Transposition(v *lang.Variant, ct []int, layout ColumnLayout) []int {
	defer timeTrack(time.Now(), "solve-transposition")
	n := len(ct)
	var best []int
	bestScore := negInf

	for keyLen := min(MinTranspositionKeyLen, n); keyLen < min(MaxTranspositionKeyLen, n); keyLen++ {
		rows := n / keyLen
		for start := range keyLen {
			order := greedyOrder(v, ct, layout, keyLen, rows, start)
			score := v.ScoreSeq(gathered(ct, layout.DecryptIndexes(n, order)), lang.Quadgrams)
			if score > bestScore {
				best, bestScore = order, score
			}
		}
		log.Debug().Int("key-len", keyLen).Float64("best", bestScore).Msg("transposition-key-length")
	}
	return best
}

func greedyOrder(v *lang.Variant, ct []int, layout ColumnLayout, keyLen, rows, start int) []int {
	order := make([]int, 1, keyLen)
	order[0] = start
	for len(order) < keyLen {
		last := order[len(order)-1]
		nextCol, nextScore := 0, negInf
		for col := range keyLen {
			if slices.Contains(order, col) {
				continue
			}
			var total float64
			for row := range rows {
				total += v.Bigram(ct[layout.Index(row, last, keyLen, rows)],
					ct[layout.Index(row, col, keyLen, rows)])
			}
			if total > nextScore {
				nextCol, nextScore = col, total
			}
		}
		order = append(order, nextCol)
	}
	return order
}
