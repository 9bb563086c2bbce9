// Package api exposes experiment runs over HTTP. The handlers translate
// request models into an experiment.Definition, run it and return the
// summaries; all simulation semantics live in the internal packages.
package api

import "github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/experiment"

// ExperimentRequest is the body of POST /api/v1/experiments.
type ExperimentRequest struct {
	Market     MarketRequest     `json:"market" binding:"required"`
	Simulation SimulationRequest `json:"simulation" binding:"required"`
	Schedules  []ScheduleRequest `json:"schedules" binding:"required,min=1,dive"`
	// IncludeErrors controls whether the raw per-path error vectors are
	// echoed back. They can run to megabytes at 10k+ paths, so the
	// default is aggregates only.
	IncludeErrors bool `json:"include_errors,omitempty"`
}

// MarketRequest defines the option and market parameters.
type MarketRequest struct {
	Spot     float64 `json:"spot" binding:"required,gt=0"`
	Strike   float64 `json:"strike" binding:"required,gt=0"`
	Maturity float64 `json:"maturity_years" binding:"required,gt=0"`
	Rate     float64 `json:"rate"`
	Vol      float64 `json:"vol" binding:"required,gt=0"`
}

// SimulationRequest defines grid, batch size and seed.
type SimulationRequest struct {
	Steps int   `json:"steps" binding:"required,gte=1"`
	Paths int   `json:"paths" binding:"required,gte=1"`
	Seed  int64 `json:"seed"`
}

// ScheduleRequest is one named rebalancing frequency.
type ScheduleRequest struct {
	Name   string `json:"name" binding:"required"`
	Stride int    `json:"stride" binding:"required,gte=1"`
}

// ExperimentResponse is the body returned for a successful run.
type ExperimentResponse struct {
	Params       any               `json:"params"`
	NumPaths     int               `json:"num_paths"`
	Steps        int               `json:"steps"`
	Seed         int64             `json:"seed"`
	InitialPrice float64           `json:"initial_price"`
	InitialDelta float64           `json:"initial_delta"`
	Summaries    []SummaryResponse `json:"summaries"`
	ElapsedMs    float64           `json:"elapsed_ms"`
}

// SummaryResponse mirrors experiment.FrequencySummary with the error
// vector made optional.
type SummaryResponse struct {
	Name     string    `json:"name"`
	Stride   int       `json:"stride"`
	Mean     float64   `json:"mean"`
	Std      float64   `json:"std"`
	Variance float64   `json:"variance"`
	CI95Low  float64   `json:"ci95_low"`
	CI95High float64   `json:"ci95_high"`
	Errors   []float64 `json:"errors,omitempty"`
}

func toResponse(res *experiment.Result, includeErrors bool) ExperimentResponse {
	out := ExperimentResponse{
		Params:       res.Params,
		NumPaths:     res.NumPaths,
		Steps:        res.Grid.Steps,
		Seed:         res.Seed,
		InitialPrice: res.InitialPrice,
		InitialDelta: res.InitialDelta,
		ElapsedMs:    float64(res.Elapsed.Microseconds()) / 1000.0,
	}
	for _, s := range res.Summaries {
		sr := SummaryResponse{
			Name:     s.Name,
			Stride:   s.Stride,
			Mean:     s.Mean,
			Std:      s.Std,
			Variance: s.Variance,
			CI95Low:  s.CI95Low,
			CI95High: s.CI95High,
		}
		if includeErrors {
			sr.Errors = s.Errors
		}
		out.Summaries = append(out.Summaries, sr)
	}
	return out
}
