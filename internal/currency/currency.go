package currency

import "github.com/shopspring/decimal"

// PENToUSDRate is the fixed PEN→USD rate used for the PayPal path. It is an
// approximation, not a live quote; keeping it a single named constant keeps
// both providers' totals reconcilable.
var PENToUSDRate = decimal.RequireFromString("0.267")

// ToUSD converts a PEN amount at the fixed rate. The result is intentionally
// unrounded; callers round to 2 decimals at the point of use.
func ToUSD(pen decimal.Decimal) decimal.Decimal {
	return pen.Mul(PENToUSDRate)
}

// Round2 rounds a monetary amount to 2 decimals, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
