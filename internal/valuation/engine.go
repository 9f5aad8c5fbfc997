// Package valuation wires the pipeline: price history -> volatility
// estimate -> Black-Scholes price -> comparison against the market price.
package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/contactkeval/option-valuation/internal/data"
	"github.com/contactkeval/option-valuation/internal/logger"
	"github.com/contactkeval/option-valuation/internal/pricing"
	"github.com/contactkeval/option-valuation/internal/volatility"
)

// Engine runs the valuation pipeline over a data provider.
type Engine struct {
	cfg  *Config
	prov data.Provider
}

// Config struct
type Config struct {
	PricesCSV  string `json:"prices_csv,omitempty"`  // price history table
	OptionsCSV string `json:"options_csv,omitempty"` // option snapshot table
	Window     int    `json:"window,omitempty"`      // trailing window in closes; 0 = entire series
	ReportDir  string `json:"report_dir,omitempty"`  // report directory
	Verbosity  int    `json:"verbosity,omitempty"`   // 0=errors,1=info,2=debug,3=trace
}

// Result is the derived valuation of one option snapshot. Derived, never
// stored across runs.
type Result struct {
	Quote            data.OptionQuote    `json:"quote"`
	Volatility       volatility.Estimate `json:"volatility"`
	TimeToExpiry     float64             `json:"time_to_expiry_years"`
	TheoreticalPrice float64             `json:"theoretical_price"`
	MarketPrice      float64             `json:"market_price"`
	Classification   Classification      `json:"classification"`
	Expiry           *ExpiryOutcome      `json:"expiry,omitempty"`
}

// ExpiryOutcome reports how the option actually resolved, available only
// when the price series reaches the expiration date.
type ExpiryOutcome struct {
	Date           time.Time `json:"date"`
	SpotAtExpiry   float64   `json:"spot_at_expiry"`
	IntrinsicValue float64   `json:"intrinsic_value"`
	Profit         float64   `json:"profit"` // intrinsic minus theoretical price paid
}

// Report is the full pipeline output: one Result per option snapshot, plus
// the series and its log returns for charting.
type Report struct {
	Results []Result          `json:"results"`
	Series  []data.PricePoint `json:"-"`
	Returns []float64         `json:"-"`
}

func NewEngine(cfg *Config, prov data.Provider) *Engine {
	return &Engine{cfg: cfg, prov: prov}
}

// Run executes the pipeline. Control flow is linear: no feedback, no
// branching beyond the final three-way classification, no retries.
func (e *Engine) Run() (*Report, error) {
	points, err := e.prov.PriceHistory()
	if err != nil {
		return nil, fmt.Errorf("load price history: %w", err)
	}
	quotes, err := e.prov.OptionQuotes()
	if err != nil {
		return nil, fmt.Errorf("load option snapshots: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no option snapshots to value")
	}

	closes := data.Closes(points)
	rets := volatility.LogReturns(closes)

	full := volatility.FromCloses(closes)
	var rolling []volatility.Estimate
	if e.cfg.Window > 0 {
		rolling = volatility.Rolling(closes, e.cfg.Window)
	} else {
		logger.Infof("historical vol (full series) = %.2f%%", full.Annualized*100)
	}

	results := make([]Result, 0, len(quotes))
	for _, q := range quotes {
		est := full
		if rolling != nil {
			if idx := lastIndexAsOf(points, q.AsOf); idx >= 0 {
				est = rolling[idx]
			} else {
				est = volatility.Estimate{Daily: math.NaN(), Annualized: math.NaN()}
			}
		}
		results = append(results, e.value(q, est, points))
	}

	return &Report{Results: results, Series: points, Returns: rets}, nil
}

// value prices a single snapshot with the supplied volatility estimate.
// Degenerate inputs (undefined vol, zero time to expiry) are not guarded;
// the NaN flows into the classification default.
func (e *Engine) value(q data.OptionQuote, est volatility.Estimate, points []data.PricePoint) Result {
	T := float64(data.TradingDaysBetween(q.AsOf, q.Expiration)) / volatility.TradingDaysPerYear
	theo := pricing.Call(q.Spot, q.Strike, T, q.RiskFreeRate, est.Annualized)
	res := Result{
		Quote:            q,
		Volatility:       est,
		TimeToExpiry:     T,
		TheoreticalPrice: theo,
		MarketPrice:      q.MarketPrice,
		Classification:   Classify(theo, q.MarketPrice),
	}
	logger.Debugf("asOf=%s S=%.2f K=%.2f T=%.4f vol=%.4f theo=%.4f market=%.4f -> %s",
		q.AsOf.Format(data.DateLayout), q.Spot, q.Strike, T, est.Annualized, theo, q.MarketPrice, res.Classification)

	if idx := lastIndexAsOf(points, q.Expiration); idx >= 0 && !points[idx].Date.Before(q.Expiration) {
		spot := points[idx].Close
		intrinsic := pricing.Intrinsic(spot, q.Strike)
		res.Expiry = &ExpiryOutcome{
			Date:           points[idx].Date,
			SpotAtExpiry:   spot,
			IntrinsicValue: intrinsic,
			Profit:         intrinsic - theo,
		}
	}
	return res
}

// lastIndexAsOf returns the index of the last price point dated on or
// before d, or -1 when the series starts after d.
func lastIndexAsOf(points []data.PricePoint, d time.Time) int {
	idx := -1
	for i, p := range points {
		if p.Date.After(d) {
			break
		}
		idx = i
	}
	return idx
}
