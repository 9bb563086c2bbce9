package pricing

import (
	"fmt"
	"math"
)

// tauEpsilon is the maturity below which the closed form is treated as
// expired. d1 divides by sigma*sqrt(tau), so evaluating the formula at
// or arbitrarily near tau = 0 is numerically meaningless; below this
// threshold price collapses to intrinsic value and delta to the exercise
// indicator.
const tauEpsilon = 1e-12

// D1 computes the Black–Scholes d1 term
//
//	d1 = (ln(S/K) + (r + sigma^2/2) * tau) / (sigma * sqrt(tau))
//
// for tau > 0. The expression is undefined at tau = 0; callers must
// special-case expiry before calling (Price and Delta do).
func D1(S, tau float64, p MarketParams) float64 {
	return (math.Log(S/p.K) + (p.R+0.5*p.Sigma*p.Sigma)*tau) / (p.Sigma * math.Sqrt(tau))
}

// D2 computes d2 = d1 - sigma * sqrt(tau) for tau > 0.
func D2(S, tau float64, p MarketParams) float64 {
	return D1(S, tau, p) - p.Sigma*math.Sqrt(tau)
}

// Price returns the Black–Scholes value of the European call
//
//	S*N(d1) - K*exp(-r*tau)*N(d2)
//
// for tau above tauEpsilon. At or below it the option is expired and
// the price is exactly the intrinsic payoff max(S-K, 0).
//
// Returns ErrDomain if S <= 0, tau < 0, sigma <= 0 or any input is not
// finite.
func Price(S, tau float64, p MarketParams) (float64, error) {
	if err := checkInputs(S, tau, p); err != nil {
		return 0, err
	}
	if tau <= tauEpsilon {
		return math.Max(S-p.K, 0), nil
	}
	d1 := D1(S, tau, p)
	d2 := d1 - p.Sigma*math.Sqrt(tau)
	return S*normCDF(d1) - p.K*math.Exp(-p.R*tau)*normCDF(d2), nil
}

// Delta returns the call's hedge ratio N(d1) for tau above tauEpsilon.
// At expiry delta degenerates to the exercise indicator: 1 if S > K,
// otherwise 0. The S == K tie resolves to 0: no further trading occurs
// after maturity, so the boundary sits on the flat side.
func Delta(S, tau float64, p MarketParams) (float64, error) {
	if err := checkInputs(S, tau, p); err != nil {
		return 0, err
	}
	if tau <= tauEpsilon {
		if S > p.K {
			return 1, nil
		}
		return 0, nil
	}
	return normCDF(D1(S, tau, p)), nil
}

// Gamma returns the second derivative of the call price with respect to
// spot, n(d1) / (S * sigma * sqrt(tau)). Zero at expiry.
func Gamma(S, tau float64, p MarketParams) (float64, error) {
	if err := checkInputs(S, tau, p); err != nil {
		return 0, err
	}
	if tau <= tauEpsilon {
		return 0, nil
	}
	return normPDF(D1(S, tau, p)) / (S * p.Sigma * math.Sqrt(tau)), nil
}

// Vega returns the sensitivity of the call price to volatility,
// S * n(d1) * sqrt(tau). Zero at expiry.
func Vega(S, tau float64, p MarketParams) (float64, error) {
	if err := checkInputs(S, tau, p); err != nil {
		return 0, err
	}
	if tau <= tauEpsilon {
		return 0, nil
	}
	return S * normPDF(D1(S, tau, p)) * math.Sqrt(tau), nil
}

// checkInputs guards every pricing entry point. S and tau vary along a
// simulated path so they are re-checked per call; the static parameters
// are re-checked too because pricing must never emit NaN regardless of
// what the caller forgot to validate.
func checkInputs(S, tau float64, p MarketParams) error {
	if math.IsNaN(S) || math.IsInf(S, 0) || math.IsNaN(tau) || math.IsInf(tau, 0) {
		return fmt.Errorf("%w: non-finite input S=%v tau=%v", ErrDomain, S, tau)
	}
	if S <= 0 {
		return fmt.Errorf("%w: spot must be > 0, got %v", ErrDomain, S)
	}
	if tau < 0 {
		return fmt.Errorf("%w: maturity must be >= 0, got %v", ErrDomain, tau)
	}
	return p.Validate()
}
