package simulate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/pricing"
)

// Simulate generates nPaths independent risk-neutral GBM paths on the
// grid, starting at p.S0. The per-step recurrence in log space is
//
//	log S_{i+1} = log S_i + (r - sigma^2/2)*dt + sigma*sqrt(dt)*Z
//
// with Z ~ N(0,1) i.i.d. drawn from a single generator seeded with seed.
// Draw-consumption order is fixed: all steps of path 0 first, then all
// steps of path 1, and so on. The order is part of the contract; it
// determines which draw pairs with which path and therefore what a
// given seed produces.
func Simulate(p pricing.MarketParams, g Grid, nPaths int, seed int64) (*PathBatch, error) {
	if nPaths < 1 {
		return nil, fmt.Errorf("%w: nPaths must be >= 1, got %d", ErrInvalidArgument, nPaths)
	}
	if g.Steps < 1 {
		return nil, fmt.Errorf("%w: grid steps must be >= 1, got %d", ErrInvalidArgument, g.Steps)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	cols := g.Steps + 1
	data := make([]float64, nPaths*cols)

	logS0 := math.Log(p.S0)
	drift := (p.R - 0.5*p.Sigma*p.Sigma) * g.Dt
	diffusion := p.Sigma * math.Sqrt(g.Dt)

	for i := 0; i < nPaths; i++ {
		row := data[i*cols : (i+1)*cols]
		row[0] = p.S0
		logS := logS0
		for j := 1; j < cols; j++ {
			logS += drift + diffusion*rng.NormFloat64()
			row[j] = math.Exp(logS)
		}
	}

	return &PathBatch{nPaths: nPaths, steps: g.Steps, data: data}, nil
}
