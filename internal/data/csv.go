package data

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/contactkeval/option-valuation/internal/logger"
)

// DateLayout is the calendar date format used by both CSV tables.
const DateLayout = "2006-01-02"

// csvDataProvider implements Provider from two local CSV tables: a price
// history table and an option snapshot table.
type csvDataProvider struct {
	pricesPath  string
	optionsPath string
}

// NewCSVProvider returns a Provider backed by the given price history and
// option snapshot files.
func NewCSVProvider(pricesPath, optionsPath string) Provider {
	return &csvDataProvider{pricesPath: pricesPath, optionsPath: optionsPath}
}

// PricePointDTO mirrors one row of the price history table. Extra columns in
// the file are ignored by gocsv.
type PricePointDTO struct {
	Date  string  `csv:"Date"`
	Close float64 `csv:"Close"`
}

// OptionQuoteDTO mirrors one row of the option snapshot table.
type OptionQuoteDTO struct {
	Date              string  `csv:"Date"`
	StockPrice        float64 `csv:"StockPrice"`
	Strike            float64 `csv:"Strike"`
	OptionMarketPrice float64 `csv:"OptionMarketPrice"`
	RiskFreeRate      float64 `csv:"RiskFreeRate"`
	ExpirationDate    string  `csv:"ExpirationDate"`
}

// ToModel converts a CSV row to the immutable model type.
func (dto *PricePointDTO) ToModel() (PricePoint, error) {
	d, err := time.Parse(DateLayout, dto.Date)
	if err != nil {
		return PricePoint{}, fmt.Errorf("parse price date %q: %w", dto.Date, err)
	}
	return PricePoint{Date: d, Close: dto.Close}, nil
}

// ToModel converts a CSV row to the immutable model type.
func (dto *OptionQuoteDTO) ToModel() (OptionQuote, error) {
	asOf, err := time.Parse(DateLayout, dto.Date)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("parse quote date %q: %w", dto.Date, err)
	}
	expiry, err := time.Parse(DateLayout, dto.ExpirationDate)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("parse expiration date %q: %w", dto.ExpirationDate, err)
	}
	return OptionQuote{
		AsOf:         asOf,
		Spot:         dto.StockPrice,
		Strike:       dto.Strike,
		Expiration:   expiry,
		RiskFreeRate: dto.RiskFreeRate,
		MarketPrice:  dto.OptionMarketPrice,
	}, nil
}

func (csvDataProv *csvDataProvider) PriceHistory() ([]PricePoint, error) {
	f, err := os.Open(csvDataProv.pricesPath)
	if err != nil {
		return nil, fmt.Errorf("open price history: %w", err)
	}
	defer f.Close()

	var rows []*PricePointDTO
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", csvDataProv.pricesPath, err)
	}

	points := make([]PricePoint, 0, len(rows))
	for _, dto := range rows {
		p, err := dto.ToModel()
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	SortByDate(points)
	logger.Debugf("loaded %d price points from %s", len(points), csvDataProv.pricesPath)
	return points, nil
}

func (csvDataProv *csvDataProvider) OptionQuotes() ([]OptionQuote, error) {
	f, err := os.Open(csvDataProv.optionsPath)
	if err != nil {
		return nil, fmt.Errorf("open option snapshots: %w", err)
	}
	defer f.Close()

	var rows []*OptionQuoteDTO
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", csvDataProv.optionsPath, err)
	}

	quotes := make([]OptionQuote, 0, len(rows))
	for _, dto := range rows {
		q, err := dto.ToModel()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	logger.Debugf("loaded %d option quotes from %s", len(quotes), csvDataProv.optionsPath)
	return quotes, nil
}

// WritePriceHistory saves a price series in the same table format
// PriceHistory reads, so generated fixtures can feed the valuation pipeline.
func WritePriceHistory(points []PricePoint, path string) error {
	rows := make([]*PricePointDTO, 0, len(points))
	for _, p := range points {
		rows = append(rows, &PricePointDTO{Date: p.Date.Format(DateLayout), Close: p.Close})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

// WriteOptionQuotes saves option snapshots in the same table format
// OptionQuotes reads.
func WriteOptionQuotes(quotes []OptionQuote, path string) error {
	rows := make([]*OptionQuoteDTO, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, &OptionQuoteDTO{
			Date:              q.AsOf.Format(DateLayout),
			StockPrice:        q.Spot,
			Strike:            q.Strike,
			OptionMarketPrice: q.MarketPrice,
			RiskFreeRate:      q.RiskFreeRate,
			ExpirationDate:    q.Expiration.Format(DateLayout),
		})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}
