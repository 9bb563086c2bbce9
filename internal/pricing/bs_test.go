package pricing

import (
	"errors"
	"math"
	"testing"
)

var testParams = MarketParams{S0: 100, K: 100, T: 1, R: 0.01, Sigma: 0.2}

func TestValidate(t *testing.T) {
	if err := testParams.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	tests := []struct {
		name string
		p    MarketParams
	}{
		{"zero spot", MarketParams{S0: 0, K: 100, T: 1, R: 0.01, Sigma: 0.2}},
		{"negative strike", MarketParams{S0: 100, K: -1, T: 1, R: 0.01, Sigma: 0.2}},
		{"zero maturity", MarketParams{S0: 100, K: 100, T: 0, R: 0.01, Sigma: 0.2}},
		{"zero vol", MarketParams{S0: 100, K: 100, T: 1, R: 0.01, Sigma: 0}},
		{"nan rate", MarketParams{S0: 100, K: 100, T: 1, R: math.NaN(), Sigma: 0.2}},
		{"inf spot", MarketParams{S0: math.Inf(1), K: 100, T: 1, R: 0.01, Sigma: 0.2}},
	}
	for _, test := range tests {
		if err := test.p.Validate(); !errors.Is(err, ErrDomain) {
			t.Fatalf("%s: expected ErrDomain, got %v", test.name, err)
		}
	}
}

// No-arbitrage bounds: max(S - K*exp(-r*tau), 0) <= C <= S.
func TestPriceBounds(t *testing.T) {
	for _, S := range []float64{50, 80, 100, 120, 200} {
		for _, tau := range []float64{0.01, 0.25, 1, 2} {
			price, err := Price(S, tau, testParams)
			if err != nil {
				t.Fatalf("Price(%v, %v): %v", S, tau, err)
			}
			lower := math.Max(S-testParams.K*math.Exp(-testParams.R*tau), 0)
			if price < lower-1e-12 {
				t.Fatalf("Price(%v, %v) = %v below no-arbitrage lower bound %v", S, tau, price, lower)
			}
			if price > S+1e-12 {
				t.Fatalf("Price(%v, %v) = %v above upper bound S", S, tau, price)
			}
		}
	}
}

func TestPriceKnownValue(t *testing.T) {
	// ATM call, S=K=100, T=1, r=5%, sigma=20%: C = 10.450583572185565
	p := MarketParams{S0: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2}
	price, err := Price(100, 1, p)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if math.Abs(price-10.450583572185565) > 1e-6 {
		t.Fatalf("ATM call price = %v, expected 10.450583572185565", price)
	}
}

func TestPriceConvergesToIntrinsic(t *testing.T) {
	tests := []struct {
		S         float64
		intrinsic float64
	}{
		{120, 20},
		{80, 0},
		{100, 0},
	}
	for _, test := range tests {
		// exactly at expiry
		price, err := Price(test.S, 0, testParams)
		if err != nil {
			t.Fatalf("Price(%v, 0): %v", test.S, err)
		}
		if price != test.intrinsic {
			t.Fatalf("Price(%v, 0) = %v, expected intrinsic %v", test.S, price, test.intrinsic)
		}
		// approaching expiry
		price, err = Price(test.S, 1e-10, testParams)
		if err != nil {
			t.Fatalf("Price(%v, 1e-10): %v", test.S, err)
		}
		if math.Abs(price-test.intrinsic) > 1e-4 {
			t.Fatalf("Price(%v, 1e-10) = %v, expected near intrinsic %v", test.S, price, test.intrinsic)
		}
	}
}

func TestDeltaRangeAndLimits(t *testing.T) {
	for _, S := range []float64{50, 100, 150} {
		d, err := Delta(S, 1, testParams)
		if err != nil {
			t.Fatalf("Delta(%v, 1): %v", S, err)
		}
		if d < 0 || d > 1 {
			t.Fatalf("Delta(%v, 1) = %v outside [0,1]", S, d)
		}
	}

	tests := []struct {
		S        float64
		expected float64
	}{
		{120, 1},
		{80, 0},
		{100, 0}, // the S == K tie resolves to no position
	}
	for _, test := range tests {
		d, err := Delta(test.S, 0, testParams)
		if err != nil {
			t.Fatalf("Delta(%v, 0): %v", test.S, err)
		}
		if d != test.expected {
			t.Fatalf("Delta(%v, 0) = %v, expected %v", test.S, d, test.expected)
		}
	}
}

func TestDeltaMonotoneInSpot(t *testing.T) {
	prev := -1.0
	for S := 40.0; S <= 200.0; S += 5 {
		d, err := Delta(S, 1, testParams)
		if err != nil {
			t.Fatalf("Delta(%v, 1): %v", S, err)
		}
		if d < prev {
			t.Fatalf("delta not monotone in spot at %v", S)
		}
		prev = d
	}
}

func TestD2Relation(t *testing.T) {
	S, tau := 110.0, 0.5
	d1 := D1(S, tau, testParams)
	d2 := D2(S, tau, testParams)
	if math.Abs(d2-(d1-testParams.Sigma*math.Sqrt(tau))) > 1e-15 {
		t.Fatalf("d2 = %v inconsistent with d1 = %v", d2, d1)
	}
}

func TestGreeksAtExpiry(t *testing.T) {
	g, err := Gamma(100, 0, testParams)
	if err != nil || g != 0 {
		t.Fatalf("Gamma at expiry: got %v, %v", g, err)
	}
	v, err := Vega(100, 0, testParams)
	if err != nil || v != 0 {
		t.Fatalf("Vega at expiry: got %v, %v", v, err)
	}
}

func TestGreeksPositive(t *testing.T) {
	g, err := Gamma(100, 1, testParams)
	if err != nil || g <= 0 {
		t.Fatalf("Gamma should be > 0, got %v, %v", g, err)
	}
	v, err := Vega(100, 1, testParams)
	if err != nil || v <= 0 {
		t.Fatalf("Vega should be > 0, got %v, %v", v, err)
	}
}

func TestPricingDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		S    float64
		tau  float64
	}{
		{"zero spot", 0, 1},
		{"negative spot", -10, 1},
		{"negative maturity", 100, -0.1},
		{"nan spot", math.NaN(), 1},
		{"inf maturity", 100, math.Inf(1)},
	}
	for _, test := range tests {
		if _, err := Price(test.S, test.tau, testParams); !errors.Is(err, ErrDomain) {
			t.Fatalf("Price %s: expected ErrDomain, got %v", test.name, err)
		}
		if _, err := Delta(test.S, test.tau, testParams); !errors.Is(err, ErrDomain) {
			t.Fatalf("Delta %s: expected ErrDomain, got %v", test.name, err)
		}
	}

	bad := testParams
	bad.Sigma = 0
	if _, err := Price(100, 1, bad); !errors.Is(err, ErrDomain) {
		t.Fatalf("zero vol: expected ErrDomain, got %v", err)
	}
}
