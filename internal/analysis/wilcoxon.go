package analysis

import (
	"math"
	"sort"
)

// wilcoxonSignedRankPratt runs the two-sided Wilcoxon signed-rank test on
// paired differences using the Pratt procedure for zeros: zeros take part in
// the ranking of absolute differences but their ranks are excluded from the
// rank sums, and the null mean and variance are reduced accordingly. Pratt
// is preferred over zero-discarding because dropping zeros in a small paired
// sample discards information and biases power.
//
// The p-value comes from the normal approximation with tie correction.
// Returns NaN when the variance degenerates to zero.
func (sd *StatisticalDistributions) wilcoxonSignedRankPratt(diffs []float64) float64 {
	n := len(diffs)
	if n == 0 {
		return math.NaN()
	}

	absDiffs := make([]float64, n)
	for i, d := range diffs {
		absDiffs[i] = math.Abs(d)
	}
	ranks := rankWithTies(absDiffs)

	var rPlus, rMinus float64
	zeros := 0
	nonzeroRanks := make([]float64, 0, n)
	for i, d := range diffs {
		switch {
		case d > 0:
			rPlus += ranks[i]
			nonzeroRanks = append(nonzeroRanks, ranks[i])
		case d < 0:
			rMinus += ranks[i]
			nonzeroRanks = append(nonzeroRanks, ranks[i])
		default:
			zeros++
		}
	}

	nf := float64(n)
	zf := float64(zeros)
	mean := nf*(nf+1)/4 - zf*(zf+1)/4
	variance := nf*(nf+1)*(2*nf+1)/24 - zf*(zf+1)*(2*zf+1)/24
	// the zero group is already removed through the zf terms, so only
	// ties among the nonzero differences correct the variance
	variance -= tieCorrection(nonzeroRanks) / 48

	if variance <= 0 {
		return math.NaN()
	}

	statistic := math.Min(rPlus, rMinus)
	z := (statistic - mean) / math.Sqrt(variance)
	return sd.NormalTwoTailedPValue(z)
}

// rankWithTies assigns 1-based ranks to values, averaging ranks within tied
// groups
func rankWithTies(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		avg := float64(i+j+2) / 2 // average of 1-based ranks i+1..j+1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// tieCorrection computes sum(t^3 - t) over groups of tied ranks
func tieCorrection(ranks []float64) float64 {
	counts := make(map[float64]int, len(ranks))
	for _, r := range ranks {
		counts[r]++
	}
	var correction float64
	for _, t := range counts {
		tf := float64(t)
		correction += tf*tf*tf - tf
	}
	return correction
}
