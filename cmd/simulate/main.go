package main

import (
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/contactkeval/option-valuation/internal/data"
	"github.com/contactkeval/option-valuation/internal/logger"
	"github.com/contactkeval/option-valuation/internal/report"
	"github.com/contactkeval/option-valuation/internal/valuation"
	"github.com/contactkeval/option-valuation/internal/volatility"
)

// simConfig is the JSON config for the simulation run: the synthetic market
// fixture plus the valuation settings applied to it.
type simConfig struct {
	Start        string  `json:"start,omitempty"`          // first calendar date, YYYY-MM-DD
	TradingDays  int     `json:"trading_days,omitempty"`   // weekday price points to fabricate
	InitialPrice float64 `json:"initial_price,omitempty"`  // first close
	Drift        float64 `json:"drift,omitempty"`          // mean daily log return
	DailyStdev   float64 `json:"daily_stdev,omitempty"`    // stdev of daily log returns
	Strike       float64 `json:"strike,omitempty"`         // fixed strike
	RiskFreeRate float64 `json:"risk_free_rate,omitempty"` // fixed annual rate
	NoiseBand    float64 `json:"noise_band,omitempty"`     // market = theo × U[1-band,1+band]
	Seed         int64   `json:"seed,omitempty"`           // random seed
	Window       int     `json:"window,omitempty"`         // rolling vol window in closes
	ReportDir    string  `json:"report_dir,omitempty"`     // output directory
	Verbosity    int     `json:"verbosity,omitempty"`      // 0=errors,1=info,2=debug,3=trace
}

func defaultConfig() simConfig {
	return simConfig{
		Start:        "2023-01-02",
		TradingDays:  252,
		InitialPrice: 100,
		DailyStdev:   data.DefaultDailyStdev,
		Strike:       105,
		RiskFreeRate: 0.03,
		NoiseBand:    data.DefaultNoiseBand,
		Seed:         42,
		Window:       volatility.DefaultRollingWindow,
		ReportDir:    "./out",
		Verbosity:    1,
	}
}

func main() {
	configPath := flag.String("config", "", "path to JSON config")
	flag.Parse()

	cfg := defaultConfig()
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

	startDate, err := time.Parse(data.DateLayout, cfg.Start)
	if err != nil {
		log.Fatalf("invalid start date %q: %v", cfg.Start, err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	prov := data.NewSyntheticProvider(data.GeneratorConfig{
		Start:        startDate,
		TradingDays:  cfg.TradingDays,
		InitialPrice: cfg.InitialPrice,
		Drift:        cfg.Drift,
		DailyStdev:   cfg.DailyStdev,
		Strike:       cfg.Strike,
		RiskFreeRate: cfg.RiskFreeRate,
		NoiseBand:    cfg.NoiseBand,
	}, rng)

	engineCfg := valuation.Config{Window: cfg.Window, ReportDir: cfg.ReportDir, Verbosity: cfg.Verbosity}
	engine := valuation.NewEngine(&engineCfg, prov)

	begin := time.Now()
	rep, err := engine.Run()
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	// Evaluation point: a random snapshot after the rolling window has
	// filled; deterministic given the seed because it draws from the same
	// source as the fixture.
	if len(rep.Results) <= cfg.Window {
		log.Fatalf("series too short: %d snapshots for window %d", len(rep.Results), cfg.Window)
	}
	eval := rep.Results[cfg.Window+rng.Intn(len(rep.Results)-cfg.Window)]

	report.Print(os.Stdout, []valuation.Result{eval})
	report.PrintExpiry(os.Stdout, eval)

	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Fatalf("could not create report dir %s: %v", cfg.ReportDir, err)
	}

	// Persist the fixture in the same table format the valuate command
	// consumes, so the run can be replayed against real-data tooling.
	if err := data.WritePriceHistory(rep.Series, filepath.Join(cfg.ReportDir, "prices.csv")); err != nil {
		log.Warnf("writing prices.csv: %v", err)
	}
	quotes, _ := prov.OptionQuotes()
	if err := data.WriteOptionQuotes(quotes, filepath.Join(cfg.ReportDir, "options.csv")); err != nil {
		log.Warnf("writing options.csv: %v", err)
	}
	if err := report.WriteJSON(rep.Results, cfg.ReportDir); err != nil {
		log.Warnf("writing results.json: %v", err)
	}

	charts := []struct {
		path   string
		render func(string) error
	}{
		{"log_returns.png", func(p string) error { return report.LogReturnsChart(rep.Series, rep.Returns, p) }},
		{"price_comparison.png", func(p string) error { return report.PriceComparisonChart(rep.Results, p) }},
		{"price_path.png", func(p string) error {
			return report.PricePathChart(rep.Series, eval.Quote.AsOf, eval.Quote.Expiration, p)
		}},
	}
	for _, c := range charts {
		full := filepath.Join(cfg.ReportDir, c.path)
		if err := c.render(full); err != nil {
			log.Warnf("rendering %s: %v", full, err)
		}
	}

	log.Infof("finished in %v, fixture and reports in %s", time.Since(begin), cfg.ReportDir)
}
