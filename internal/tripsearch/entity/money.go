package entity

import "github.com/shopspring/decimal"

// RoundPrice rounds to the nearest whole unit, halves away from zero.
func RoundPrice(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// SumPrice adds amounts exactly and rounds the result to whole units.
func SumPrice(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(0).InexactFloat64()
}

// RoundCents rounds to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
