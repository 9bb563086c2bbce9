package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormCDF evaluates the standard normal cumulative distribution function
// N(x). The result is monotone non-decreasing, satisfies
// NormCDF(-x) = 1 - NormCDF(x) and NormCDF(0) = 0.5, and is numerically
// stable far into the tails (|x| >= 40 rounds correctly to 0 or 1 rather
// than overflowing).
//
// Non-finite input returns ErrDomain: a NaN entering the distribution
// function would silently corrupt every price computed from it.
func NormCDF(x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: NormCDF input %v is not finite", ErrDomain, x)
	}
	return normCDF(x), nil
}

// normCDF is the unchecked fast path for callers that have already
// established finiteness. Backed by gonum's unit normal, which computes
// the CDF via the complementary error function and so keeps full
// precision in both tails.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normPDF evaluates the standard normal density, used by the gamma and
// vega greeks.
func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// NormQuantile returns the x with N(x) = p for p in (0, 1). It is used
// for confidence bounds on summary statistics.
func NormQuantile(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: quantile probability %v outside (0,1)", ErrDomain, p)
	}
	return distuv.UnitNormal.Quantile(p), nil
}
