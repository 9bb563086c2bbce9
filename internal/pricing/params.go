// Package pricing implements closed-form Black–Scholes valuation for a
// European call option: price, delta and the supporting greeks, together
// with the standard normal distribution function they depend on.
//
// Responsibilities:
//   - Validate market parameters once, at experiment configuration time
//   - Evaluate price/delta on the open maturity interval tau > 0
//   - Resolve the tau = 0 boundary to intrinsic value / indicator delta,
//     where the closed form is singular
//
// Design notes:
//   - All functions are pure; there is no shared state
//   - Invalid mathematical input is reported as ErrDomain, never as a
//     silently propagated NaN
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain reports invalid mathematical input: non-positive prices,
// volatility or maturity, or non-finite values. Callers detect it with
// errors.Is; it indicates a misconfigured experiment, not a transient
// fault, so nothing in this package retries.
var ErrDomain = errors.New("domain error")

// MarketParams holds the market description of a single European call.
// It is created once at experiment configuration and read-only afterwards.
type MarketParams struct {
	S0    float64 `json:"spot"`     // initial underlying price
	K     float64 `json:"strike"`   // strike price
	T     float64 `json:"maturity"` // time to maturity in years
	R     float64 `json:"rate"`     // continuously-compounded risk-free rate
	Sigma float64 `json:"vol"`      // annualized volatility
}

// Validate checks the parameter invariants: S0, K, T and Sigma must be
// strictly positive and every field finite. R may take any finite value.
func (p MarketParams) Validate() error {
	if !isFinite(p.S0) || !isFinite(p.K) || !isFinite(p.T) || !isFinite(p.R) || !isFinite(p.Sigma) {
		return fmt.Errorf("%w: market parameters must be finite, got %+v", ErrDomain, p)
	}
	if p.S0 <= 0 {
		return fmt.Errorf("%w: spot must be > 0, got %v", ErrDomain, p.S0)
	}
	if p.K <= 0 {
		return fmt.Errorf("%w: strike must be > 0, got %v", ErrDomain, p.K)
	}
	if p.T <= 0 {
		return fmt.Errorf("%w: maturity must be > 0, got %v", ErrDomain, p.T)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: vol must be > 0, got %v", ErrDomain, p.Sigma)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
