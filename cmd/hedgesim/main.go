package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/config"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/experiment"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/logger"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to YAML experiment config (defaults used when empty)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	verbosity := flag.Int("v", -1, "verbosity 0=errors,1=info,2=debug,3=trace (overrides config)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *verbosity >= 0 {
		cfg.Verbosity = *verbosity
	}
	logger.SetVerbosity(cfg.Verbosity)

	start := time.Now()
	res, err := experiment.Run(cfg.Definition())
	if err != nil {
		log.Fatalf("experiment failed: %v", err)
	}

	report.PrintSummary(os.Stdout, res)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Fatalf("could not create output dir %s: %v", cfg.Output.Dir, err)
	}
	if err := report.WriteJSON(res, cfg.Output.Dir); err != nil {
		logger.Errorf("writing result.json: %v", err)
	}
	if err := report.WriteCSV(res, cfg.Output.Dir); err != nil {
		logger.Errorf("writing errors.csv: %v", err)
	}
	if err := report.WriteHistogramCSV(res, cfg.Output.HistogramBins, cfg.Output.Dir); err != nil {
		logger.Errorf("writing histogram.csv: %v", err)
	}
	logger.Infof("finished in %v, wrote reports for %d schedules to %s",
		time.Since(start), len(res.Summaries), cfg.Output.Dir)
}
