package services

import "github.com/shopspring/decimal"

var (
	hundred       = decimal.NewFromInt(100)
	pointsDivisor = decimal.NewFromInt(10)
)

// LineTotal returns price × quantity.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// RoundMoney rounds to cents.
func RoundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// PointsFor returns floor(total / 10).
func PointsFor(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(decimal.NewFromFloat(total).Div(pointsDivisor).Floor().IntPart())
}
