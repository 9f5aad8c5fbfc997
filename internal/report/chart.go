package report

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/contactkeval/option-valuation/internal/data"
	"github.com/contactkeval/option-valuation/internal/valuation"
)

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 5 * vg.Inch
)

func newTimePlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: data.DateLayout}
	p.Add(plotter.NewGrid())
	return p
}

func timeXY(t time.Time, y float64) plotter.XY {
	return plotter.XY{X: float64(t.Unix()), Y: y}
}

// LogReturnsChart draws the daily log returns as a line over time and saves
// it to path. Returns start at the second price point; the first has no
// predecessor.
func LogReturnsChart(series []data.PricePoint, rets []float64, path string) error {
	if len(series) != len(rets)+1 {
		return fmt.Errorf("series/returns length mismatch: %d vs %d", len(series), len(rets))
	}
	xys := make(plotter.XYs, 0, len(rets))
	for i, r := range rets {
		xys = append(xys, timeXY(series[i+1].Date, r))
	}

	p := newTimePlot("Daily Log Returns", "Log Return")
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	return p.Save(chartWidth, chartHeight, path)
}

// PriceComparisonChart overlays the theoretical and market price series of
// the valued snapshots and saves the chart to path.
func PriceComparisonChart(results []valuation.Result, path string) error {
	theo := make(plotter.XYs, 0, len(results))
	market := make(plotter.XYs, 0, len(results))
	for _, r := range results {
		if r.Volatility.IsDefined() {
			theo = append(theo, timeXY(r.Quote.AsOf, r.TheoreticalPrice))
		}
		market = append(market, timeXY(r.Quote.AsOf, r.MarketPrice))
	}

	p := newTimePlot("Theoretical vs Market Option Price", "Price")
	theoLine, err := plotter.NewLine(theo)
	if err != nil {
		return err
	}
	marketLine, err := plotter.NewLine(market)
	if err != nil {
		return err
	}
	theoLine.Color = plotutil.Color(0)
	marketLine.Color = plotutil.Color(1)
	p.Add(theoLine, marketLine)
	p.Legend.Add("theoretical", theoLine)
	p.Legend.Add("market", marketLine)
	p.Legend.Top = true
	return p.Save(chartWidth, chartHeight, path)
}

// PricePathChart draws the underlying price series with vertical markers at
// the evaluation and expiration dates, and saves it to path.
func PricePathChart(series []data.PricePoint, evaluation, expiration time.Time, path string) error {
	if len(series) == 0 {
		return fmt.Errorf("empty price series")
	}
	xys := make(plotter.XYs, 0, len(series))
	lo, hi := series[0].Close, series[0].Close
	for _, pt := range series {
		xys = append(xys, timeXY(pt.Date, pt.Close))
		if pt.Close < lo {
			lo = pt.Close
		}
		if pt.Close > hi {
			hi = pt.Close
		}
	}

	p := newTimePlot("Underlying Price Path", "Price")
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	p.Legend.Add("close", line)

	for i, marker := range []struct {
		name string
		when time.Time
	}{
		{"evaluation", evaluation},
		{"expiration", expiration},
	} {
		vline, err := plotter.NewLine(plotter.XYs{timeXY(marker.when, lo), timeXY(marker.when, hi)})
		if err != nil {
			return err
		}
		vline.Color = plotutil.Color(i + 1)
		vline.Dashes = plotutil.Dashes(1)
		p.Add(vline)
		p.Legend.Add(marker.name, vline)
	}
	p.Legend.Top = true
	return p.Save(chartWidth, chartHeight, path)
}
