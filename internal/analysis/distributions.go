package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticalDistributions provides unified access to the distribution
// routines the interval calculator and comparison engine need
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// TTestPValue computes the two-tailed p-value for a t-statistic using
// Student's t-distribution
func (sd *StatisticalDistributions) TTestPValue(tStatistic float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
}

// TCriticalValue returns the two-sided critical value of Student's
// t-distribution for the given confidence level
func (sd *StatisticalDistributions) TCriticalValue(confidenceLevel float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return math.NaN()
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return tDist.Quantile(1 - (1-confidenceLevel)/2)
}

// NormalQuantile returns the standard normal quantile for probability p
func (sd *StatisticalDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// NormalTwoTailedPValue converts a z-statistic into a two-tailed p-value
func (sd *StatisticalDistributions) NormalTwoTailedPValue(z float64) float64 {
	p := 2 * distuv.UnitNormal.CDF(-math.Abs(z))
	if p > 1 {
		return 1
	}
	return p
}

// BinomialCDF is P(X <= k) for X ~ Binomial(n, 1/2)
func (sd *StatisticalDistributions) BinomialCDF(k, n int) float64 {
	if n <= 0 {
		return 1.0
	}
	b := distuv.Binomial{N: float64(n), P: 0.5}
	return b.CDF(float64(k))
}

// BinomialPMF is P(X == k) for X ~ Binomial(n, 1/2)
func (sd *StatisticalDistributions) BinomialPMF(k, n int) float64 {
	if n <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0.0
	}
	b := distuv.Binomial{N: float64(n), P: 0.5}
	return b.Prob(float64(k))
}
