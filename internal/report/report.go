// Package report renders valuation results: a console comparison table,
// JSON and CSV artifacts, and PNG line charts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"

	"github.com/contactkeval/option-valuation/internal/data"
	"github.com/contactkeval/option-valuation/internal/valuation"
)

// resultDTO is the serialized form of a valuation result. Float fields that
// can carry NaN are pointers so the undefined region stays representable in
// JSON (null) instead of failing to encode.
type resultDTO struct {
	AsOf           string   `csv:"as_of" json:"as_of"`
	Spot           float64  `csv:"spot" json:"spot"`
	Strike         float64  `csv:"strike" json:"strike"`
	Expiration     string   `csv:"expiration" json:"expiration"`
	RiskFreeRate   float64  `csv:"risk_free_rate" json:"risk_free_rate"`
	TimeToExpiry   float64  `csv:"time_to_expiry_years" json:"time_to_expiry_years"`
	AnnualizedVol  *float64 `csv:"annualized_vol" json:"annualized_vol"`
	Theoretical    *float64 `csv:"theoretical_price" json:"theoretical_price"`
	Market         float64  `csv:"market_price" json:"market_price"`
	Classification string   `csv:"classification" json:"classification"`
}

func toDTO(r valuation.Result) *resultDTO {
	return &resultDTO{
		AsOf:           r.Quote.AsOf.Format(data.DateLayout),
		Spot:           r.Quote.Spot,
		Strike:         r.Quote.Strike,
		Expiration:     r.Quote.Expiration.Format(data.DateLayout),
		RiskFreeRate:   r.Quote.RiskFreeRate,
		TimeToExpiry:   r.TimeToExpiry,
		AnnualizedVol:  finiteOrNil(r.Volatility.Annualized),
		Theoretical:    finiteOrNil(r.TheoreticalPrice),
		Market:         r.MarketPrice,
		Classification: string(r.Classification),
	}
}

// finiteOrNil maps NaN and ±Inf to nil so json.Marshal does not reject the
// value.
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Print renders the comparison table for every valued snapshot.
func Print(w io.Writer, results []valuation.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"As Of", "Spot", "Strike", "Ann. Vol", "Theoretical", "Market", "Classification"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range results {
		table.Append([]string{
			r.Quote.AsOf.Format(data.DateLayout),
			fmt.Sprintf("%.2f", r.Quote.Spot),
			fmt.Sprintf("%.2f", r.Quote.Strike),
			fmt.Sprintf("%.2f%%", r.Volatility.Annualized*100),
			fmt.Sprintf("%.4f", r.TheoreticalPrice),
			fmt.Sprintf("%.4f", r.MarketPrice),
			string(r.Classification),
		})
	}
	table.Render()
}

// PrintExpiry renders the realized outcome when the series reached the
// expiration date.
func PrintExpiry(w io.Writer, r valuation.Result) {
	if r.Expiry == nil {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Expiry Date", "Spot At Expiry", "Intrinsic Value", "Profit"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		r.Expiry.Date.Format(data.DateLayout),
		fmt.Sprintf("%.2f", r.Expiry.SpotAtExpiry),
		fmt.Sprintf("%.2f", r.Expiry.IntrinsicValue),
		fmt.Sprintf("%.2f", r.Expiry.Profit),
	})
	table.Render()
}

// WriteJSON saves all results to results.json in outdir.
func WriteJSON(results []valuation.Result, outdir string) error {
	dtos := make([]*resultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, toDTO(r))
	}
	b, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "results.json"), b, 0644)
}

// WriteCSV saves all results to results.csv in outdir.
func WriteCSV(results []valuation.Result, outdir string) error {
	dtos := make([]*resultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, toDTO(r))
	}
	f, err := os.Create(filepath.Join(outdir, "results.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&dtos, f)
}
