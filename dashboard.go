package wealthdash

import (
	"fmt"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
)

// Inputs is the complete snapshot of raw payloads the pipeline runs on.
type Inputs struct {
	Rates        DailySeries      `json:"rates"` // USD to CAD multipliers
	Portfolio    PortfolioHistory `json:"portfolio"`
	Transactions []RawTransaction `json:"transactions"`
	Institutions []Institution    `json:"institutions"`
	Positions    []RawPosition    `json:"positions"`
	Filter       Filter           `json:"filter"`
}

// Options tunes a pipeline run.
type Options struct {
	Log zerolog.Logger
}

// Dashboard holds every entity derived from an Inputs.
type Dashboard struct {
	Rates     RateIndex           `json:"rates"`
	CashFlows CashFlows           `json:"cashFlows"`
	Snapshots []PortfolioSnapshot `json:"snapshots"`
	Weekdays  []PortfolioSnapshot `json:"weekdays"`
	Holdings  []Holding           `json:"holdings"`
	Closed    []ClosedPosition    `json:"closed"`   // chronological
	Open      map[LotKey]OpenLot  `json:"open"`     // lots left by the realized P&L run
	Timeline  Book                `json:"timeline"` // lots with splits and reinvestments applied
}

// Compute runs the whole pipeline.
//
// Missing data (null days, missing rates, unknown types) never fails a run;
// only payloads that cannot be interpreted at all, such as an unparseable
// series start, are reported as errors. Compute does not modify its inputs and
// keeps no state between calls.
func Compute(in *Inputs, opts Options) (*Dashboard, error) {
	log := opts.Log

	from, err := in.Rates.Start()
	if err != nil {
		return nil, fmt.Errorf("invalid currency series: %w", err)
	}
	rates := BuildRateIndex(from, in.Rates.Data)

	values, err := in.Portfolio.History.Total.Series()
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio history: %w", err)
	}

	var accounts Accounts
	txs := ClassifyAll(in.Transactions, log)
	if len(in.Institutions) > 0 {
		accounts = NewAccounts(in.Institutions, in.Filter, log)
		if !in.Filter.IsZero() {
			txs = accounts.Keep(txs)
		}
	}
	SortByDate(txs)

	flows := AggregateCashFlows(txs, rates, accounts, log)
	snapshots := BuildPortfolioSeries(values, flows)

	var positions []Position
	if in.Filter.IsZero() {
		positions = NewPositions(in.Positions, nil)
	} else {
		positions = NewPositions(in.Positions, accounts)
	}

	realized := NewMatcher(MatchOptions{Rates: rates, AccountName: accounts.Name, Log: log}).Match(txs)
	timeline := NewMatcher(MatchOptions{Adjustments: true, Rates: rates, AccountName: accounts.Name, Log: log}).Match(txs)

	return &Dashboard{
		Rates:     rates,
		CashFlows: flows,
		Snapshots: snapshots,
		Weekdays:  Weekdays(snapshots),
		Holdings:  EnrichPositions(positions, txs),
		Closed:    realized.Closed,
		Open:      realized.Open,
		Timeline:  timeline,
	}, nil
}

// Realized returns the positions closed on or after 'from', most recent first.
func (d *Dashboard) Realized(from date.Date) []ClosedPosition { return Realized(d.Closed, from) }

// Changes returns the PnL change per calendar period.
func (d *Dashboard) Changes(period date.Period) []PeriodChange { return Changes(d.Snapshots, period) }
