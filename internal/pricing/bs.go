// Package pricing implements the closed-form Black-Scholes valuation of a
// European call option.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is the standard normal distribution; its CDF is the Φ of the
// Black-Scholes formula.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Call returns the Black-Scholes price of a European call:
//
//	d1 = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
//	d2 = d1 − σ·√T
//	C  = S·Φ(d1) − K·e^(−rT)·Φ(d2)
//
// Parameters:
//   - S: spot price of the underlying
//   - K: strike price
//   - T: time to expiry in years
//   - r: annual continuously-compounded risk-free rate
//   - sigma: annualized volatility, as a decimal
//
// Degenerate inputs (sigma=0, T<=0) are intentionally not guarded: the
// division by zero yields ±Inf or NaN and the non-numeric result propagates
// silently through Φ, matching IEEE arithmetic. Callers that need a
// well-posed price must supply T>0 and sigma>0.
func Call(S, K, T, r, sigma float64) float64 {
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	return S*stdNormal.CDF(d1) - K*math.Exp(-r*T)*stdNormal.CDF(d2)
}

// Intrinsic is the exercise value of a call at expiration.
func Intrinsic(spot, strike float64) float64 {
	return math.Max(0, spot-strike)
}
