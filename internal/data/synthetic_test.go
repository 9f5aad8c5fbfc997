package data

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-valuation/internal/pricing"
	"github.com/contactkeval/option-valuation/internal/volatility"
)

func fixtureConfig() GeneratorConfig {
	return GeneratorConfig{
		Start:        time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
		TradingDays:  60,
		InitialPrice: 100,
		DailyStdev:   0.01,
		Strike:       105,
		RiskFreeRate: 0.03,
		NoiseBand:    0.10,
		Seed:         42,
	}
}

func TestSyntheticDeterministicUnderFixedSeed(t *testing.T) {
	a := NewSyntheticProvider(fixtureConfig(), rand.New(rand.NewSource(42)))
	b := NewSyntheticProvider(fixtureConfig(), rand.New(rand.NewSource(42)))

	pa, err := a.PriceHistory()
	require.NoError(t, err)
	pb, err := b.PriceHistory()
	require.NoError(t, err)
	assert.Equal(t, pa, pb)

	qa, err := a.OptionQuotes()
	require.NoError(t, err)
	qb, err := b.OptionQuotes()
	require.NoError(t, err)
	assert.Equal(t, qa, qb)
}

func TestSyntheticSeedsDiverge(t *testing.T) {
	a := NewSyntheticProvider(fixtureConfig(), rand.New(rand.NewSource(1)))
	b := NewSyntheticProvider(fixtureConfig(), rand.New(rand.NewSource(2)))

	pa, _ := a.PriceHistory()
	pb, _ := b.PriceHistory()
	assert.NotEqual(t, Closes(pa), Closes(pb))
}

func TestSyntheticPathShape(t *testing.T) {
	prov := NewSyntheticProvider(fixtureConfig(), rand.New(rand.NewSource(42)))
	points, err := prov.PriceHistory()
	require.NoError(t, err)
	require.Len(t, points, 60)

	assert.Equal(t, 100.0, points[0].Close)
	for i, p := range points {
		wd := p.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "index %d", i)
		assert.NotEqual(t, time.Sunday, wd, "index %d", i)
		assert.Greater(t, p.Close, 0.0, "index %d", i)
		if i > 0 {
			assert.True(t, points[i-1].Date.Before(p.Date), "dates out of order at %d", i)
		}
	}
}

func TestSyntheticQuotesDeriveFromTheoreticalPrice(t *testing.T) {
	cfg := fixtureConfig()
	prov := NewSyntheticProvider(cfg, rand.New(rand.NewSource(42)))
	points, _ := prov.PriceHistory()
	quotes, err := prov.OptionQuotes()
	require.NoError(t, err)
	require.Len(t, quotes, len(points)-1)

	expiry := points[len(points)-1].Date
	annualVol := cfg.DailyStdev * math.Sqrt(volatility.TradingDaysPerYear)

	for i, q := range quotes {
		assert.Equal(t, points[i].Date, q.AsOf)
		assert.Equal(t, points[i].Close, q.Spot)
		assert.Equal(t, cfg.Strike, q.Strike)
		assert.Equal(t, expiry, q.Expiration)
		assert.Equal(t, cfg.RiskFreeRate, q.RiskFreeRate)

		T := float64(len(points)-1-i) / volatility.TradingDaysPerYear
		theo := pricing.Call(q.Spot, q.Strike, T, q.RiskFreeRate, annualVol)
		if theo > 0 {
			ratio := q.MarketPrice / theo
			assert.GreaterOrEqual(t, ratio, 1-cfg.NoiseBand-1e-12, "quote %d", i)
			assert.LessOrEqual(t, ratio, 1+cfg.NoiseBand+1e-12, "quote %d", i)
		}
	}
}

func TestTradingDaysBetween(t *testing.T) {
	fri := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, TradingDaysBetween(fri, fri.AddDate(0, 0, 3))) // Fri -> Mon
	assert.Equal(t, 30, TradingDaysBetween(fri, fri.AddDate(0, 0, 42)))
	assert.Equal(t, 0, TradingDaysBetween(fri, fri))
	assert.Equal(t, 0, TradingDaysBetween(fri, fri.AddDate(0, 0, -7)))
}
