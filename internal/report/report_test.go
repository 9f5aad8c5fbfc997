package report

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-valuation/internal/data"
	"github.com/contactkeval/option-valuation/internal/valuation"
	"github.com/contactkeval/option-valuation/internal/volatility"
)

func sampleResult() valuation.Result {
	asOf := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)
	return valuation.Result{
		Quote: data.OptionQuote{
			AsOf:         asOf,
			Spot:         100,
			Strike:       102,
			Expiration:   asOf.AddDate(0, 0, 42),
			RiskFreeRate: 0.02,
			MarketPrice:  1.50,
		},
		Volatility:       volatility.Estimate{Daily: 0.0244, Annualized: 0.3869},
		TimeToExpiry:     30.0 / 252.0,
		TheoreticalPrice: 4.5358,
		MarketPrice:      1.50,
		Classification:   valuation.Undervalued,
	}
}

func nanResult() valuation.Result {
	r := sampleResult()
	r.Volatility = volatility.Estimate{Daily: math.NaN(), Annualized: math.NaN()}
	r.TheoreticalPrice = math.NaN()
	r.Classification = valuation.FairlyPriced
	return r
}

func TestPrintRendersComparison(t *testing.T) {
	var sb strings.Builder
	Print(&sb, []valuation.Result{sampleResult()})
	out := sb.String()
	assert.Contains(t, out, "2024-01-12")
	assert.Contains(t, out, "38.69%")
	assert.Contains(t, out, "4.5358")
	assert.Contains(t, out, "1.5000")
	assert.Contains(t, out, "UNDERVALUED")
}

func TestWriteJSONKeepsNaNRepresentable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON([]valuation.Result{sampleResult(), nanResult()}, dir))

	b, err := os.ReadFile(filepath.Join(dir, "results.json"))
	require.NoError(t, err)

	var dtos []resultDTO
	require.NoError(t, json.Unmarshal(b, &dtos))
	require.Len(t, dtos, 2)

	require.NotNil(t, dtos[0].Theoretical)
	assert.InDelta(t, 4.5358, *dtos[0].Theoretical, 1e-12)
	assert.Nil(t, dtos[1].Theoretical, "NaN serializes as null, not an encode failure")
	assert.Nil(t, dtos[1].AnnualizedVol)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV([]valuation.Result{sampleResult()}, dir))

	b, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, "as_of")
	assert.Contains(t, out, "2024-01-12")
	assert.Contains(t, out, "UNDERVALUED")
}

func TestChartsRenderToPNG(t *testing.T) {
	dir := t.TempDir()
	series := []data.PricePoint{
		{Date: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC), Close: 101},
		{Date: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), Close: 99},
	}
	rets := []float64{math.Log(101.0 / 100.0), math.Log(99.0 / 101.0)}

	returnsPath := filepath.Join(dir, "log_returns.png")
	require.NoError(t, LogReturnsChart(series, rets, returnsPath))
	info, err := os.Stat(returnsPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	pathPath := filepath.Join(dir, "price_path.png")
	require.NoError(t, PricePathChart(series, series[1].Date, series[2].Date, pathPath))
	info, err = os.Stat(pathPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	comparisonPath := filepath.Join(dir, "price_comparison.png")
	require.NoError(t, PriceComparisonChart([]valuation.Result{sampleResult()}, comparisonPath))
	_, err = os.Stat(comparisonPath)
	require.NoError(t, err)
}

func TestLogReturnsChartLengthMismatch(t *testing.T) {
	series := []data.PricePoint{{Date: time.Now(), Close: 100}}
	err := LogReturnsChart(series, []float64{0.1, 0.2}, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
