// Package hedge replays a discrete self-financing delta hedge along
// simulated price paths and reports the terminal hedging error of each
// path.
//
// The replay is stateful per path (shares held, cash account) but paths
// never couple: each row of the batch is processed independently, which
// lets the package fan rows out across workers with no coordination
// beyond a join.
package hedge

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/pricing"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/simulate"
)

// Schedule names a rebalancing frequency. Stride is the number of grid
// steps between trades: the hedge rebalances at every time index that is
// a multiple of Stride, plus the initial trade at index 0. A stride
// larger than the grid degenerates to hedge-only-at-inception, which is
// intended ("monthly" hedging of a short-dated option is buy-and-hold).
type Schedule struct {
	Name   string `json:"name"`
	Stride int    `json:"stride"`
}

// Errors replays the hedge along every row of the batch and returns one
// terminal hedging error per path: terminal portfolio value minus the
// call payoff. Rows are processed concurrently; the batch is read-only
// throughout.
//
// Returns ErrInvalidArgument if stride < 1 or the batch is missing, and
// propagates pricing domain errors unchanged.
func Errors(batch *simulate.PathBatch, p pricing.MarketParams, g simulate.Grid, stride int) ([]float64, error) {
	if stride < 1 {
		return nil, fmt.Errorf("%w: stride must be >= 1, got %d", simulate.ErrInvalidArgument, stride)
	}
	if batch == nil || batch.Paths() == 0 {
		return nil, fmt.Errorf("%w: empty path batch", simulate.ErrInvalidArgument)
	}
	if batch.Steps() != g.Steps {
		return nil, fmt.Errorf("%w: batch has %d steps, grid has %d", simulate.ErrInvalidArgument, batch.Steps(), g.Steps)
	}

	// The initial position is identical for every path: sell the call
	// at C0, buy delta0 shares, park the remainder in cash.
	c0, err := pricing.Price(p.S0, p.T, p)
	if err != nil {
		return nil, err
	}
	delta0, err := pricing.Delta(p.S0, p.T, p)
	if err != nil {
		return nil, err
	}
	cash0 := c0 - delta0*p.S0

	n := batch.Paths()
	out := make([]float64, n)

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < n; i += workers {
				e, err := pathError(batch.Row(i), p, g, stride, delta0, cash0)
				if err != nil {
					errs[w] = fmt.Errorf("path %d: %w", i, err)
					return
				}
				out[i] = e
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// pathError replays one path. The cash account compounds at the
// risk-free rate every step, traded or not, because accrual is
// continuous in the model; shares stay piecewise-constant between
// rebalances. The terminal index only liquidates and values the
// position: no delta exists past maturity, so the schedule never trades
// there even when it divides the step count.
func pathError(row []float64, p pricing.MarketParams, g simulate.Grid, stride int, shares, cash float64) (float64, error) {
	growth := math.Exp(p.R * g.Dt)
	n := g.Steps

	for i := 1; i <= n; i++ {
		cash *= growth
		if i < n && i%stride == 0 {
			tau := p.T - float64(i)*g.Dt
			delta, err := pricing.Delta(row[i], tau, p)
			if err != nil {
				return 0, err
			}
			cash -= (delta - shares) * row[i]
			shares = delta
		}
	}

	sT := row[n]
	payoff := math.Max(sT-p.K, 0)
	return shares*sT + cash - payoff, nil
}
