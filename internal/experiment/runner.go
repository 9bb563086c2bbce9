// Package experiment orchestrates the Monte Carlo study: one shared path
// batch, replayed under every configured rebalancing schedule, with
// per-frequency summary statistics over the resulting error vectors.
package experiment

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/hedge"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/logger"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/pricing"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/simulate"
)

// Definition is the full description of one experiment run.
type Definition struct {
	Params    pricing.MarketParams
	Steps     int
	NumPaths  int
	Seed      int64
	Schedules []hedge.Schedule
}

// FrequencySummary aggregates the hedging-error distribution of one
// rebalancing schedule. Std and Variance are sample statistics (ddof=1).
// The raw per-path errors are carried alongside the aggregates because
// downstream histogram consumers need the full distribution.
type FrequencySummary struct {
	Name     string    `json:"name"`
	Stride   int       `json:"stride"`
	Mean     float64   `json:"mean"`
	Std      float64   `json:"std"`
	Variance float64   `json:"variance"`
	CI95Low  float64   `json:"ci95_low"`
	CI95High float64   `json:"ci95_high"`
	Errors   []float64 `json:"errors"`
}

// Result is the output of a run: one summary per schedule, in
// configuration order, plus run metadata for the report layer.
type Result struct {
	Params       pricing.MarketParams `json:"params"`
	Grid         simulate.Grid        `json:"grid"`
	NumPaths     int                  `json:"num_paths"`
	Seed         int64                `json:"seed"`
	InitialPrice float64              `json:"initial_price"`
	InitialDelta float64              `json:"initial_delta"`
	InitialGamma float64              `json:"initial_gamma"`
	InitialVega  float64              `json:"initial_vega"`
	Summaries    []FrequencySummary   `json:"summaries"`
	Elapsed      time.Duration        `json:"elapsed_ns"`
}

// Run executes the experiment. A single path batch is simulated and
// reused across every schedule so that frequency comparisons are paired:
// each schedule hedges the exact same paths, isolating the rebalancing
// effect from Monte Carlo sampling noise.
//
// Run returns data only; printing and plotting belong to the callers.
func Run(def Definition) (*Result, error) {
	if len(def.Schedules) == 0 {
		return nil, fmt.Errorf("%w: no rebalancing schedules configured", simulate.ErrInvalidArgument)
	}

	grid, err := simulate.NewGrid(def.Params.T, def.Steps)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logger.Infof("simulating %d paths x %d steps (seed %d)", def.NumPaths, def.Steps, def.Seed)
	batch, err := simulate.Simulate(def.Params, grid, def.NumPaths, def.Seed)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Params:   def.Params,
		Grid:     grid,
		NumPaths: def.NumPaths,
		Seed:     def.Seed,
	}
	if res.InitialPrice, err = pricing.Price(def.Params.S0, def.Params.T, def.Params); err != nil {
		return nil, err
	}
	if res.InitialDelta, err = pricing.Delta(def.Params.S0, def.Params.T, def.Params); err != nil {
		return nil, err
	}
	if res.InitialGamma, err = pricing.Gamma(def.Params.S0, def.Params.T, def.Params); err != nil {
		return nil, err
	}
	if res.InitialVega, err = pricing.Vega(def.Params.S0, def.Params.T, def.Params); err != nil {
		return nil, err
	}

	z, err := pricing.NormQuantile(0.975)
	if err != nil {
		return nil, err
	}

	for _, s := range def.Schedules {
		errsVec, err := hedge.Errors(batch, def.Params, grid, s.Stride)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", s.Name, err)
		}
		sum := Summarize(s, errsVec, z)
		logger.Infof("schedule %-10s stride=%-3d mean=%+.6f std=%.6f var=%.6f",
			sum.Name, sum.Stride, sum.Mean, sum.Std, sum.Variance)
		res.Summaries = append(res.Summaries, sum)
	}

	res.Elapsed = time.Since(start)
	logger.Debugf("experiment finished in %v", res.Elapsed)
	return res, nil
}

// Summarize computes the summary statistics of one schedule's error
// vector. z is the normal quantile used for the confidence bounds on
// the mean (1.96 for 95%). Sample variance needs at least two
// observations; a single-path run has no spread to estimate, so its
// variance and std are 0 and the confidence interval collapses onto
// the mean. This keeps single-path results finite and serializable.
func Summarize(s hedge.Schedule, errs []float64, z float64) FrequencySummary {
	mean := stat.Mean(errs, nil)
	variance := 0.0
	if len(errs) > 1 {
		variance = stat.Variance(errs, nil)
	}
	std := math.Sqrt(variance)
	se := std / math.Sqrt(float64(len(errs)))
	return FrequencySummary{
		Name:     s.Name,
		Stride:   s.Stride,
		Mean:     mean,
		Std:      std,
		Variance: variance,
		CI95Low:  mean - z*se,
		CI95High: mean + z*se,
		Errors:   errs,
	}
}
