package analysis

// contingency2x2 counts (control, treatment) outcome pairs over the fixed
// level order {false, true} on both axes
type contingency2x2 struct {
	n00 int // control false, treatment false
	n01 int // control false, treatment true
	n10 int // control true, treatment false
	n11 int // control true, treatment true
}

func crosstab(control, treatment []bool) contingency2x2 {
	var table contingency2x2
	for i := range control {
		switch {
		case !control[i] && !treatment[i]:
			table.n00++
		case !control[i] && treatment[i]:
			table.n01++
		case control[i] && !treatment[i]:
			table.n10++
		default:
			table.n11++
		}
	}
	return table
}

// mcnemarMidP is McNemar's test for paired boolean data, mid-p variant.
//
// The mid-p version finds a balance between the statistical characteristics
// of the exact conditional test and the asymptotic test, and is less
// conservative for small discordant-pair counts.
//
// Citation: https://doi.org/10.1186/1471-2288-13-91
func (sd *StatisticalDistributions) mcnemarMidP(table contingency2x2) float64 {
	n01 := table.n01
	n10 := table.n10
	n := n01 + n10
	if n == 0 {
		// no discordant pairs, no evidence of difference
		return 1.0
	}

	k := n01
	if n10 < k {
		k = n10
	}

	exactConditional := 2 * sd.BinomialCDF(k, n)
	return exactConditional - sd.BinomialPMF(n01, n)
}
