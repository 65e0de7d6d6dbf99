package wealthdash

import (
	"maps"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
)

// CashFlowDay totals the cash movements of one day, in CAD.
type CashFlowDay struct {
	Deposit    Money `json:"deposit"`
	Withdrawal Money `json:"withdrawal"`
	Income     Money `json:"income"`
	Interest   Money `json:"interest"`
}

func zeroCashFlowDay() CashFlowDay {
	zero := M(0, ReportingCurrency)
	return CashFlowDay{Deposit: zero, Withdrawal: zero, Income: zero, Interest: zero}
}

// Net returns deposit minus withdrawal.
func (c CashFlowDay) Net() Money { return c.Deposit.Sub(c.Withdrawal) }

// CashFlows indexes CashFlowDay by day.
type CashFlows map[date.Date]CashFlowDay

// Dates returns the days in ascending order.
func (c CashFlows) Dates() []date.Date { return date.Sorted(maps.Keys(c)) }

// Day returns the totals of a day, all zero when nothing happened that day.
func (c CashFlows) Day(on date.Date) CashFlowDay {
	if day, ok := c[on]; ok {
		return day
	}
	return zeroCashFlowDay()
}

// Total sums the totals of every day.
func (c CashFlows) Total() CashFlowDay {
	total := zeroCashFlowDay()
	for _, day := range c {
		total.Deposit = total.Deposit.Add(day.Deposit)
		total.Withdrawal = total.Withdrawal.Add(day.Withdrawal)
		total.Income = total.Income.Add(day.Income)
		total.Interest = total.Interest.Add(day.Interest)
	}
	return total
}

// AggregateCashFlows totals the cash-flow transactions per day.
//
// Security trades and unknown types are skipped. Deposits, transfers and
// withdrawals dated before their account existed are moved to the account
// creation day. USD amounts are converted to CAD with the rate of the
// transaction day.
func AggregateCashFlows(txs []Transaction, rates RateIndex, accounts Accounts, log zerolog.Logger) CashFlows {
	flows := make(CashFlows)
	for _, tx := range txs {
		cf, ok := tx.(CashFlow)
		if !ok {
			switch tx.Kind() {
			case KindBuy, KindSell, KindUnknown:
			default:
				log.Info().Str("type", string(tx.Kind())).Msg("unhandled transaction type")
			}
			continue
		}

		on := cf.When()
		switch cf.Kind() {
		case KindDeposit, KindTransfer, KindWithdrawal:
			if effective := accounts.EffectiveDate(cf.Account(), on); effective != on {
				log.Debug().
					Str("account", cf.Account()).
					Stringer("date", on).
					Stringer("effective", effective).
					Msg("cash flow before account creation, clamped")
				on = effective
			}
		}

		amount := rates.Normalize(cf.When(), cf.Amount)
		day := flows.Day(on)
		switch cf.Kind() {
		case KindDeposit:
			day.Deposit = day.Deposit.Add(amount)
		case KindTransfer:
			if cf.Origin != "CON" {
				continue
			}
			day.Deposit = day.Deposit.Add(amount)
		case KindFee, KindInterest, KindTax:
			day.Interest = day.Interest.Add(amount.Abs())
		case KindIncome, KindDividend, KindDistribution:
			day.Income = day.Income.Add(amount)
		case KindWithdrawal:
			day.Withdrawal = day.Withdrawal.Add(amount.Abs())
		default:
			log.Info().Str("type", string(cf.Kind())).Msg("unhandled transaction type")
			continue
		}
		flows[on] = day
	}
	return flows
}
