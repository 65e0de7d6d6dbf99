package wealthdash

import (
	"strings"

	"github.com/etnz/wealthdash/date"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency every derived amount is expressed in.
const ReportingCurrency = "CAD"

// RateIndex holds the daily USD to CAD multipliers (the price of one CAD in USD)
// keyed by day.
type RateIndex map[date.Date]float64

// BuildRateIndex aligns a daily multiplier array starting at 'from'.
//
// Null days consume a date but do not produce an entry.
func BuildRateIndex(from date.Date, data []*float64) RateIndex {
	return RateIndex(date.Align(from, data))
}

// Rate returns the multiplier for that exact day.
func (r RateIndex) Rate(on date.Date) (float64, bool) {
	rate, ok := r[on]
	return rate, ok && rate != 0
}

// ToCAD converts a USD amount into CAD using the rate of that exact day.
//
// When no rate is known for the day the amount is returned unconverted, only
// relabelled as CAD.
func (r RateIndex) ToCAD(on date.Date, usd Money) Money {
	rate, ok := r.Rate(on)
	if !ok {
		return usd.In(ReportingCurrency)
	}
	return M(usd.value.Div(decimal.NewFromFloat(rate)), ReportingCurrency)
}

// Normalize converts 'amount' into CAD if its currency is USD, otherwise it
// only relabels it.
func (r RateIndex) Normalize(on date.Date, amount Money) Money {
	if IsUSD(amount.Currency()) {
		return r.ToCAD(on, amount)
	}
	return amount.In(ReportingCurrency)
}

// IsUSD reports whether the currency code is the US dollar, ignoring case.
func IsUSD(currency string) bool { return strings.EqualFold(currency, "usd") }
