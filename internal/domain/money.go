package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromMinor converts an amount in the currency's minor units (cents)
// to Money. An unknown currency is treated as having two decimal places.
func MoneyFromMinor(minor int64, unit currency.Unit) Money {
	scale := 2
	if unit != (currency.Unit{}) {
		scale, _ = currency.Standard.Rounding(unit)
	}

	return Money{
		Amount:   decimal.New(minor, -int32(scale)),
		Currency: unit,
	}
}
