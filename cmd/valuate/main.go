package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/contactkeval/option-valuation/internal/data"
	"github.com/contactkeval/option-valuation/internal/logger"
	"github.com/contactkeval/option-valuation/internal/report"
	"github.com/contactkeval/option-valuation/internal/valuation"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config (overrides other flags)")
	pricesPath := flag.String("prices", "prices.csv", "price history table (Date,Close)")
	optionsPath := flag.String("options", "options.csv", "option snapshot table")
	reportDir := flag.String("out", "./out", "report directory")
	flag.Parse()

	cfg := valuation.Config{
		PricesCSV:  *pricesPath,
		OptionsCSV: *optionsPath,
		ReportDir:  *reportDir,
		Verbosity:  1,
	}
	if *configPath != "" {
		cfgData, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("reading config: %v", err)
		}
		if err := json.Unmarshal(cfgData, &cfg); err != nil {
			log.Fatalf("invalid config: %v", err)
		}
	}
	logger.SetVerbosity(cfg.Verbosity)

	prov := data.NewCSVProvider(cfg.PricesCSV, cfg.OptionsCSV)
	engine := valuation.NewEngine(&cfg, prov)

	start := time.Now()
	rep, err := engine.Run()
	if err != nil {
		log.Fatalf("valuation failed: %v", err)
	}

	report.Print(os.Stdout, rep.Results)
	for _, r := range rep.Results {
		report.PrintExpiry(os.Stdout, r)
	}

	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Fatalf("could not create report dir %s: %v", cfg.ReportDir, err)
	}
	if err := report.WriteJSON(rep.Results, cfg.ReportDir); err != nil {
		log.Warnf("writing results.json: %v", err)
	}
	if err := report.WriteCSV(rep.Results, cfg.ReportDir); err != nil {
		log.Warnf("writing results.csv: %v", err)
	}
	chartPath := filepath.Join(cfg.ReportDir, "log_returns.png")
	if err := report.LogReturnsChart(rep.Series, rep.Returns, chartPath); err != nil {
		log.Warnf("rendering %s: %v", chartPath, err)
	}

	log.Infof("finished in %v, valued %d snapshot(s), reports in %s", time.Since(start), len(rep.Results), cfg.ReportDir)
}
