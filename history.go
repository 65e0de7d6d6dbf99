package wealthdash

import (
	"github.com/etnz/wealthdash/date"
)

// PortfolioSnapshot is the state of the portfolio at the end of a day.
type PortfolioSnapshot struct {
	Date  date.Date `json:"date"`
	Value Money     `json:"value"`
	CashFlowDay
	Deposits Money `json:"deposits"` // running deposits baseline
}

// PnL returns the gain over the deposits baseline.
func (s PortfolioSnapshot) PnL() Money { return s.Value.Sub(s.Deposits) }

// PnLRatio returns the PnL in percent of the deposits baseline, 0 without deposits.
func (s PortfolioSnapshot) PnLRatio() Percent {
	if s.Deposits.IsZero() {
		return 0
	}
	return Percent(s.PnL().DivMoney(s.Deposits).InexactFloat64() * 100)
}

// MarshalJSON adds the derived PnL to the snapshot fields.
func (s PortfolioSnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.Date)
	w.Append("value", s.Value)
	w.EmbedFrom(s.CashFlowDay)
	w.Append("deposits", s.Deposits)
	w.Append("pnl", s.PnL())
	w.Append("pnlRatio", s.PnLRatio())
	return w.MarshalJSON()
}

// BuildPortfolioSeries merges the daily portfolio values with the daily cash
// flows, in ascending date order.
//
// The running deposits start with the net cash flows of every day before the
// first valued day, so that early snapshots account for prior contributions.
func BuildPortfolioSeries(values date.Series, flows CashFlows) []PortfolioSnapshot {
	days := values.Dates()
	if len(days) == 0 {
		return nil
	}

	deposits := M(0, ReportingCurrency)
	for _, on := range flows.Dates() {
		if on.Before(days[0]) {
			deposits = deposits.Add(flows[on].Net())
		}
	}

	snapshots := make([]PortfolioSnapshot, 0, len(days))
	for _, on := range days {
		day := flows.Day(on)
		deposits = deposits.Add(day.Net())
		snapshots = append(snapshots, PortfolioSnapshot{
			Date:        on,
			Value:       M(values[on], ReportingCurrency),
			CashFlowDay: day,
			Deposits:    deposits,
		})
	}
	return snapshots
}

// Weekdays returns the snapshots that do not fall on a Saturday or a Sunday.
func Weekdays(snapshots []PortfolioSnapshot) []PortfolioSnapshot {
	res := make([]PortfolioSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if !s.Date.IsWeekend() {
			res = append(res, s)
		}
	}
	return res
}

// PeriodChange is the evolution of the PnL over a calendar period.
type PeriodChange struct {
	Range date.Range        `json:"range"`
	Start PortfolioSnapshot `json:"start"` // last snapshot before the period, or its first one
	End   PortfolioSnapshot `json:"end"`   // last snapshot of the period
}

// Change returns the PnL variation over the period.
func (p PeriodChange) Change() Money { return p.End.PnL().Sub(p.Start.PnL()) }

// Changes buckets the snapshots (ascending) into calendar periods.
func Changes(snapshots []PortfolioSnapshot, period date.Period) []PeriodChange {
	var changes []PeriodChange
	for i, s := range snapshots {
		r := date.NewRange(s.Date, period)
		if n := len(changes); n > 0 && changes[n-1].Range == r {
			changes[n-1].End = s
			continue
		}
		start := s
		if i > 0 {
			start = snapshots[i-1]
		}
		changes = append(changes, PeriodChange{Range: r, Start: start, End: s})
	}
	return changes
}
