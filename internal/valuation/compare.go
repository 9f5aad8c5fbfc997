package valuation

// Classification is the three-way verdict on an option's market price
// relative to its theoretical value.
type Classification string

const (
	Undervalued  Classification = "UNDERVALUED"
	Overvalued   Classification = "OVERVALUED"
	FairlyPriced Classification = "FAIRLY_PRICED"
)

// Classify compares a theoretical price against the observed market price
// using strict inequality, with no tolerance band. Exact float equality is
// practically unreachable with noisy inputs, so the FAIRLY_PRICED branch is
// effectively dead on real data; it also absorbs NaN comparisons, where
// neither inequality holds.
func Classify(theoretical, market float64) Classification {
	switch {
	case theoretical > market:
		return Undervalued
	case theoretical < market:
		return Overvalued
	default:
		return FairlyPriced
	}
}
