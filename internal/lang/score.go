package lang

import "iter"

// Score sums the log-probabilities of every rolling n-gram of seq. A sequence
// shorter than size is scored as one n-gram of its own length.
func (v *Variant) Score(seq []int, size ScoreSize) float64 {
	if len(seq) == 0 {
		return 0
	}
	if len(seq) < int(size) {
		size = ScoreSize(len(seq))
	}
	table := v.lang.table(size)
	mask := packMask(size)
	sub := v.alph.ScoringTable
	idx := 0
	for _, cp := range seq[:size-1] {
		idx = idx<<packBits | sub[cp]
	}
	var score float64
	for _, cp := range seq[size-1:] {
		idx = (idx<<packBits | sub[cp]) & mask
		score += table[idx]
	}
	return score
}

// ScoreSeq is Score over a stream of code points. It never holds more than
// the current window.
func (v *Variant) ScoreSeq(seq iter.Seq[int], size ScoreSize) float64 {
	table := v.lang.table(size)
	mask := packMask(size)
	sub := v.alph.ScoringTable
	idx, n := 0, 0
	var score float64
	for cp := range seq {
		idx = (idx<<packBits | sub[cp]) & mask
		n++
		if n >= int(size) {
			score += table[idx]
		}
	}
	if n > 0 && n < int(size) {
		return v.lang.table(ScoreSize(n))[idx]
	}
	return score
}

// Bigram is the log-probability of a followed by b.
func (v *Variant) Bigram(a, b int) float64 {
	sub := v.alph.ScoringTable
	return v.lang.tables[1][sub[a]<<packBits|sub[b]]
}
