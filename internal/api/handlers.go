package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/config"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/experiment"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/hedge"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/logger"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/pricing"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/simulate"
)

// ExperimentHandler handles experiment-related requests.
type ExperimentHandler struct{}

// NewExperimentHandler creates a new experiment handler.
func NewExperimentHandler() *ExperimentHandler {
	return &ExperimentHandler{}
}

// Register attaches the handler's routes to a router group.
func (h *ExperimentHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/defaults", h.Defaults)
	rg.POST("/experiments", h.RunExperiment)
}

// Defaults handles GET /api/v1/defaults and returns the default
// experiment parameters, shaped as a request body clients can edit and
// POST back.
func (h *ExperimentHandler) Defaults(c *gin.Context) {
	cfg, err := config.Default()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("INTERNAL_ERROR", err.Error()))
		return
	}
	req := ExperimentRequest{
		Market: MarketRequest{
			Spot:     cfg.Market.Spot,
			Strike:   cfg.Market.Strike,
			Maturity: cfg.Market.Maturity,
			Rate:     cfg.Market.Rate,
			Vol:      cfg.Market.Vol,
		},
		Simulation: SimulationRequest{
			Steps: cfg.Simulation.Steps,
			Paths: cfg.Simulation.Paths,
			Seed:  cfg.Simulation.Seed,
		},
	}
	for _, s := range cfg.Schedules {
		req.Schedules = append(req.Schedules, ScheduleRequest{Name: s.Name, Stride: s.Stride})
	}
	c.JSON(http.StatusOK, req)
}

// RunExperiment handles POST /api/v1/experiments. Domain and argument
// violations map to 400; anything else is a 500.
func (h *ExperimentHandler) RunExperiment(c *gin.Context) {
	var req ExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}

	def := experiment.Definition{
		Params: pricing.MarketParams{
			S0:    req.Market.Spot,
			K:     req.Market.Strike,
			T:     req.Market.Maturity,
			R:     req.Market.Rate,
			Sigma: req.Market.Vol,
		},
		Steps:    req.Simulation.Steps,
		NumPaths: req.Simulation.Paths,
		Seed:     req.Simulation.Seed,
	}
	for _, s := range req.Schedules {
		def.Schedules = append(def.Schedules, hedge.Schedule{Name: s.Name, Stride: s.Stride})
	}

	logger.Infof("api: running experiment, %d paths x %d steps, %d schedules",
		def.NumPaths, def.Steps, len(def.Schedules))

	res, err := experiment.Run(def)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrDomain):
			c.JSON(http.StatusBadRequest, errorBody("DOMAIN_ERROR", err.Error()))
		case errors.Is(err, simulate.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", err.Error()))
		default:
			logger.Errorf("api: experiment failed: %v", err)
			c.JSON(http.StatusInternalServerError, errorBody("INTERNAL_ERROR", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(res, req.IncludeErrors))
}

func errorBody(code, message string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": message}}
}
