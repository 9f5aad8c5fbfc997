// Package volatility estimates annualized historical volatility from a
// daily price series.
//
// All functions are pure and deterministic given identical input order.
// Undefined regions are represented as NaN rather than errors so they
// propagate through the pricing pipeline the way the arithmetic does.
package volatility

import (
	"math"

	"github.com/montanaflynn/stats"
)

// TradingDaysPerYear is the assumed number of trading days in a year, used
// to scale daily volatility to an annual horizon.
const TradingDaysPerYear = 252.0

// DefaultRollingWindow is the trailing window, in price points, used by the
// simulation pipeline's rolling estimate.
const DefaultRollingWindow = 30

// Estimate holds a daily standard deviation of log returns and its
// annualized form. Recomputed fresh each run; never persisted.
type Estimate struct {
	Daily      float64
	Annualized float64
}

// IsDefined reports whether the estimate came from enough data. Fewer than
// two prices leave both fields NaN.
func (e Estimate) IsDefined() bool {
	return !math.IsNaN(e.Daily)
}

// LogReturns computes ln(P_t / P_{t-1}) for consecutive closes. The first
// price has no predecessor and contributes nothing; it is dropped, not
// imputed.
func LogReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	return rets
}

// FromCloses estimates volatility over the entire series.
func FromCloses(closes []float64) Estimate {
	return fromReturns(LogReturns(closes))
}

// Rolling recomputes an independent estimate for every window end index
// using the trailing `window` closes. Positions without a full window are
// NaN. Each window is O(window); no incremental update is attempted.
func Rolling(closes []float64, window int) []Estimate {
	out := make([]Estimate, len(closes))
	for i := range closes {
		if i+1 < window {
			out[i] = undefined()
			continue
		}
		out[i] = FromCloses(closes[i+1-window : i+1])
	}
	return out
}

func fromReturns(rets []float64) Estimate {
	sd := sampleStdev(rets)
	return Estimate{Daily: sd, Annualized: sd * math.Sqrt(TradingDaysPerYear)}
}

// sampleStdev is the unbiased (n-1) standard deviation of the return set.
// A single observation has zero deviation from its own mean; the n-1
// divisor would make it 0/0, so the case is pinned to 0 explicitly.
func sampleStdev(rets []float64) float64 {
	switch len(rets) {
	case 0:
		return math.NaN()
	case 1:
		return 0
	}
	sd, err := stats.StandardDeviationSample(rets)
	if err != nil {
		return math.NaN()
	}
	return sd
}

func undefined() Estimate {
	return Estimate{Daily: math.NaN(), Annualized: math.NaN()}
}
