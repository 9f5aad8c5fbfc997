package data

import (
	"math"
	"math/rand"
	"time"

	"github.com/contactkeval/option-valuation/internal/logger"
	"github.com/contactkeval/option-valuation/internal/pricing"
	"github.com/contactkeval/option-valuation/internal/volatility"
)

// Fixture defaults. Named here rather than inlined so test fixtures can vary
// them without touching the generator.
const (
	// DefaultNoiseBand is the half-width of the uniform noise band applied to
	// theoretical prices when fabricating market prices: market = theo × U[1-b, 1+b].
	DefaultNoiseBand = 0.10
	// DefaultDailyStdev is the standard deviation of the fabricated daily
	// log returns.
	DefaultDailyStdev = 0.01
)

// GeneratorConfig controls the synthetic market fixture.
type GeneratorConfig struct {
	Start        time.Time // first calendar date of the series (weekends skipped)
	TradingDays  int       // number of weekday price points to produce
	InitialPrice float64   // first close
	Drift        float64   // mean of the daily log returns, usually 0
	DailyStdev   float64   // stdev of the daily log returns
	Strike       float64   // fixed strike for every fabricated quote
	RiskFreeRate float64   // fixed annual rate for every fabricated quote
	NoiseBand    float64   // market = theo × U[1-band, 1+band]
	Seed         int64     // used only when no rand source is injected
}

// synthDataProvider implements Provider with a fabricated price path and
// option records derived from it. The fabricated option expires on the last
// date of the series.
type synthDataProvider struct {
	points []PricePoint
	quotes []OptionQuote
}

// NewSyntheticProvider builds the fixture up front so repeated PriceHistory /
// OptionQuotes calls return identical data. Pass a seeded rng for
// reproducible fixtures; with a nil rng one is derived from cfg.Seed.
func NewSyntheticProvider(cfg GeneratorConfig, rng *rand.Rand) Provider {
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if cfg.NoiseBand == 0 {
		cfg.NoiseBand = DefaultNoiseBand
	}
	if cfg.DailyStdev == 0 {
		cfg.DailyStdev = DefaultDailyStdev
	}

	synthDataProv := &synthDataProvider{}
	synthDataProv.points = generatePath(cfg, rng)
	synthDataProv.quotes = generateQuotes(cfg, synthDataProv.points, rng)
	logger.Debugf("synthetic fixture: %d price points, %d quotes", len(synthDataProv.points), len(synthDataProv.quotes))
	return synthDataProv
}

func (synthDataProv *synthDataProvider) PriceHistory() ([]PricePoint, error) {
	return synthDataProv.points, nil
}

func (synthDataProv *synthDataProvider) OptionQuotes() ([]OptionQuote, error) {
	return synthDataProv.quotes, nil
}

// generatePath produces a weekday-only geometric price path: each close is
// the previous close times exp of an i.i.d. normal daily return.
func generatePath(cfg GeneratorConfig, rng *rand.Rand) []PricePoint {
	points := make([]PricePoint, 0, cfg.TradingDays)
	cur := cfg.Start
	price := cfg.InitialPrice
	for len(points) < cfg.TradingDays {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			points = append(points, PricePoint{Date: cur, Close: price})
			shock := cfg.Drift + rng.NormFloat64()*cfg.DailyStdev
			price *= math.Exp(shock)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return points
}

// generateQuotes fabricates one option record per day before expiration. The
// market price is the theoretical price under the generator's own volatility,
// scaled by independent uniform noise in [1-band, 1+band].
func generateQuotes(cfg GeneratorConfig, points []PricePoint, rng *rand.Rand) []OptionQuote {
	if len(points) == 0 {
		return nil
	}
	expiry := points[len(points)-1].Date
	annualVol := cfg.DailyStdev * math.Sqrt(volatility.TradingDaysPerYear)

	quotes := make([]OptionQuote, 0, len(points)-1)
	for i, p := range points[:len(points)-1] {
		T := float64(len(points)-1-i) / volatility.TradingDaysPerYear
		theo := pricing.Call(p.Close, cfg.Strike, T, cfg.RiskFreeRate, annualVol)
		noise := 1 - cfg.NoiseBand + 2*cfg.NoiseBand*rng.Float64()
		quotes = append(quotes, OptionQuote{
			AsOf:         p.Date,
			Spot:         p.Close,
			Strike:       cfg.Strike,
			Expiration:   expiry,
			RiskFreeRate: cfg.RiskFreeRate,
			MarketPrice:  theo * noise,
		})
	}
	return quotes
}
