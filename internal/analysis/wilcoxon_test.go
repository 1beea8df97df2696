package analysis

import (
	"math"
	"testing"
)

func TestRankWithTies(t *testing.T) {
	ranks := rankWithTies([]float64{1, 2, 2, 3})
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if ranks[i] != want[i] {
			t.Errorf("rank[%d] = %v, want %v", i, ranks[i], want[i])
		}
	}
}

func TestWilcoxonPratt_AllPositive(t *testing.T) {
	dist := NewDistributions()
	// n=5 distinct positive diffs: T=0, mean=7.5, variance=13.75,
	// z = -7.5/sqrt(13.75), two-tailed p ~ 0.0431
	p := dist.wilcoxonSignedRankPratt([]float64{1, 2, 3, 4, 5})
	if math.Abs(p-0.043115) > 1e-3 {
		t.Errorf("p = %v, want ~0.0431", p)
	}
}

func TestWilcoxonPratt_ZerosReduceEvidence(t *testing.T) {
	dist := NewDistributions()
	pWithout := dist.wilcoxonSignedRankPratt([]float64{1, 1, 1, 1, 1})
	pWith := dist.wilcoxonSignedRankPratt([]float64{0, 0, 1, 1, 1})

	if math.IsNaN(pWith) {
		t.Fatal("p with zeros should not be NaN")
	}
	// zeros shrink the null mean, so the same positive evidence counts less
	if pWith <= pWithout {
		t.Errorf("p with zeros (%v) should exceed p without (%v)", pWith, pWithout)
	}
}

func TestWilcoxonPratt_ZeroGroupExcludedFromTieCorrection(t *testing.T) {
	dist := NewDistributions()
	// two zeros plus eight tied positive diffs: mean=26, variance
	// 95 - (8^3-8)/48 = 84.5 once the zero tie group is left out, so
	// z = -26/sqrt(84.5) = -2*sqrt(2) and p = erfc(2)
	diffs := []float64{0, 0, 1, 1, 1, 1, 1, 1, 1, 1}
	p := dist.wilcoxonSignedRankPratt(diffs)
	want := math.Erfc(2)
	if math.Abs(p-want) > 1e-9 {
		t.Errorf("p = %v, want %v", p, want)
	}
}

func TestWilcoxonPratt_Degenerate(t *testing.T) {
	dist := NewDistributions()

	if p := dist.wilcoxonSignedRankPratt(nil); !math.IsNaN(p) {
		t.Errorf("p for empty diffs = %v, want NaN", p)
	}
	if p := dist.wilcoxonSignedRankPratt([]float64{0, 0, 0}); !math.IsNaN(p) {
		t.Errorf("p for all-zero diffs = %v, want NaN", p)
	}
}

func TestWilcoxonPratt_MixedSigns(t *testing.T) {
	dist := NewDistributions()
	// balanced positive and negative evidence: p should be far from
	// significance
	p := dist.wilcoxonSignedRankPratt([]float64{1, -1, 2, -2, 3, -3})
	if p < 0.5 {
		t.Errorf("p = %v, want >= 0.5 for balanced diffs", p)
	}
	if p > 1 {
		t.Errorf("p = %v, must not exceed 1", p)
	}
}
