package lang

import "fmt"

// IndexOfCoincidence is the probability that two letters drawn from seq
// without replacement are equal.
func IndexOfCoincidence(seq []int) (float64, error) {
	n := len(seq)
	if n < 2 {
		return 0, fmt.Errorf("%w: %d letters, need 2", ErrInsufficientInput, n)
	}
	var counts [MaxAlphabetLen]int
	for _, cp := range seq {
		counts[cp]++
	}
	sum := 0
	for _, f := range counts {
		sum += f * (f - 1)
	}
	return float64(sum) / float64(n*(n-1)), nil
}

// PeriodicIndexOfCoincidence splits seq into period interleaved columns and
// averages their indexes of coincidence.
func PeriodicIndexOfCoincidence(seq []int, period int) (float64, error) {
	if period < 1 {
		return 0, fmt.Errorf("%w: period %d", ErrInsufficientInput, period)
	}
	if len(seq) < 2*period {
		return 0, fmt.Errorf("%w: %d letters for period %d", ErrInsufficientInput, len(seq), period)
	}
	column := make([]int, 0, len(seq)/period+1)
	var total float64
	for p := range period {
		column = column[:0]
		for i := p; i < len(seq); i += period {
			column = append(column, seq[i])
		}
		ioc, err := IndexOfCoincidence(column)
		if err != nil {
			return 0, err
		}
		total += ioc
	}
	return total / float64(period), nil
}

// PeriodicIOCs returns the periodic index of coincidence for every period from
// 1 to maxPeriod, stopping early once the columns get too short.
func PeriodicIOCs(seq []int, maxPeriod int) []float64 {
	iocs := []float64{}
	for p := 1; p <= maxPeriod; p++ {
		ioc, err := PeriodicIndexOfCoincidence(seq, p)
		if err != nil {
			break
		}
		iocs = append(iocs, ioc)
	}
	return iocs
}

// LikelyPeriod guesses the key period of a periodic polyalphabetic cipher:
// the first period whose columns look like plain language, or failing that
// the period with the highest periodic IOC. It returns 0 if seq is too short
// for any period.
func (v *Variant) LikelyPeriod(seq []int, maxPeriod int) int {
	iocs := PeriodicIOCs(seq, maxPeriod)
	if len(iocs) == 0 {
		return 0
	}
	threshold := (v.ExpectedIOC() + 1/float64(v.Len())) / 2
	best := 0
	for i, ioc := range iocs {
		if ioc >= threshold {
			return i + 1
		}
		if ioc > iocs[best] {
			best = i
		}
	}
	return best + 1
}

// ChiSquared measures how far the letter counts of seq are from the counts
// the language predicts for a text of the same length.
func (v *Variant) ChiSquared(seq []int) (float64, error) {
	if len(seq) == 0 {
		return 0, fmt.Errorf("%w: empty sequence", ErrInsufficientInput)
	}
	counts := make([]int, v.Len())
	for _, cp := range seq {
		counts[cp]++
	}
	n := float64(len(seq))
	var chi float64
	for cp, p := range v.Frequencies() {
		expected := n * p
		d := float64(counts[cp]) - expected
		chi += d * d / expected
	}
	return chi, nil
}
