// Package simulate generates batches of risk-neutral geometric Brownian
// motion price paths on a uniform time grid.
//
// Determinism contract: Simulate consumes standard-normal draws from a
// single seeded generator in a fixed order (step-major within each path,
// paths in row order), so a given seed reproduces an identical batch
// bit-for-bit across runs.
package simulate

import (
	"errors"
	"fmt"
	"math"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/pricing"
)

// ErrInvalidArgument reports invalid simulation or control parameters:
// zero or negative step/path counts and the like. Like
// pricing.ErrDomain it marks a misconfigured experiment and is never
// retried.
var ErrInvalidArgument = errors.New("invalid argument")

// Grid is a uniform time discretization of the hedge horizon: Steps
// intervals of length Dt covering [0, T].
type Grid struct {
	Steps int     `json:"steps"`
	Dt    float64 `json:"dt"`
}

// NewGrid derives a grid from the maturity and a step count.
// Steps must be >= 1 and the maturity finite and positive.
func NewGrid(maturity float64, steps int) (Grid, error) {
	if steps < 1 {
		return Grid{}, fmt.Errorf("%w: steps must be >= 1, got %d", ErrInvalidArgument, steps)
	}
	if math.IsNaN(maturity) || math.IsInf(maturity, 0) || maturity <= 0 {
		return Grid{}, fmt.Errorf("%w: maturity must be finite and > 0, got %v", pricing.ErrDomain, maturity)
	}
	return Grid{Steps: steps, Dt: maturity / float64(steps)}, nil
}
