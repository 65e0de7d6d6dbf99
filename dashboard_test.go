package wealthdash

import (
	"encoding/json"
	"testing"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *Inputs {
	t.Helper()
	in, err := LoadInputs("testdata/sample", Layout{})
	require.NoError(t, err)
	return in
}

func TestCompute(t *testing.T) {
	d, err := Compute(loadSample(t), Options{Log: zerolog.Nop()})
	require.NoError(t, err)

	t.Run("cash flows", func(t *testing.T) {
		assertMoney(t, 1000, d.CashFlows.Day(date.New(2019, 12, 15)).Deposit)
		assertMoney(t, 375, d.CashFlows.Day(date.New(2020, 1, 4)).Deposit) // 300 USD at 0.8
		assertMoney(t, 5, d.CashFlows.Day(date.New(2020, 1, 5)).Income)
		assertMoney(t, 2, d.CashFlows.Day(date.New(2020, 1, 9)).Interest)
	})

	t.Run("snapshots", func(t *testing.T) {
		require.Len(t, d.Snapshots, 8)
		first := d.Snapshots[0]
		assert.Equal(t, date.New(2020, 1, 2), first.Date)
		assertMoney(t, 1000, first.Deposits)
		assertMoney(t, 0, first.PnL())

		last := d.Snapshots[len(d.Snapshots)-1]
		assert.Equal(t, date.New(2020, 1, 10), last.Date)
		assertMoney(t, 1375, last.Deposits)
		assertMoney(t, 15, last.PnL())

		assert.Len(t, d.Weekdays, 6)
		for _, s := range d.Weekdays {
			assert.False(t, s.Date.IsWeekend())
		}
	})

	t.Run("realized", func(t *testing.T) {
		require.Len(t, d.Closed, 2)
		xeqt, aapl := d.Closed[0], d.Closed[1]

		assert.Equal(t, "XEQT.TO", xeqt.Symbol)
		assert.Equal(t, "Questrade", xeqt.Account)
		assertQuantity(t, 20, xeqt.Shares)
		assertMoney(t, 40, xeqt.PnL)
		assert.True(t, xeqt.PnLRatio.Equal(20))

		assert.Equal(t, "AAPL", aapl.Symbol)
		assert.Equal(t, "Interactive", aapl.Account)
		assertMoney(t, 50, aapl.PnL) // 40 USD at 0.8
		assert.True(t, aapl.PnLRatio.Equal(10))

		recent := d.Realized(date.New(2020, 1, 8))
		require.Len(t, recent, 1)
		assert.Equal(t, "AAPL", recent[0].Symbol)

		open := d.Open[LotKey{Account: "a1", Symbol: "XEQT.TO"}]
		assertQuantity(t, 30, open.Shares)
		assertMoney(t, 10, open.Price)
	})

	t.Run("timeline", func(t *testing.T) {
		require.Len(t, d.Timeline.Closed, 2)
		assertMoney(t, 140, d.Timeline.Closed[0].PnL) // 20 * (12 - 5) after the split
		lot := d.Timeline.Open[LotKey{Account: "a1", Symbol: "XEQT.TO"}]
		assertQuantity(t, 80, lot.Shares)
		assertMoney(t, 5, lot.Price)
	})

	t.Run("holdings", func(t *testing.T) {
		require.Len(t, d.Holdings, 2)
		assert.Equal(t, "XEQT.TO", d.Holdings[0].Symbol)
		assert.Len(t, d.Holdings[0].Transactions, 4)
		assert.Empty(t, d.Holdings[1].Transactions)
	})

	t.Run("changes", func(t *testing.T) {
		changes := d.Changes(date.Weekly)
		require.Len(t, changes, 2)
		assert.Equal(t, date.New(2020, 1, 5), changes[0].End.Date)
		assert.Equal(t, date.New(2020, 1, 5), changes[1].Start.Date)
	})
}

func TestCompute_Filter(t *testing.T) {
	in := loadSample(t)
	in.Filter = Filter{Groups: []string{"me"}}

	d, err := Compute(in, Options{Log: zerolog.Nop()})
	require.NoError(t, err)

	require.Len(t, d.Closed, 1)
	assert.Equal(t, "XEQT.TO", d.Closed[0].Symbol)
	assert.True(t, d.CashFlows.Day(date.New(2020, 1, 4)).Deposit.IsZero())
	require.Len(t, d.Holdings, 1)
	assert.Equal(t, "XEQT.TO", d.Holdings[0].Symbol)
	// the portfolio history is not filtered
	assert.Len(t, d.Snapshots, 8)
}

func TestCompute_Idempotent(t *testing.T) {
	in := loadSample(t)
	before, err := json.Marshal(in)
	require.NoError(t, err)

	first, err := Compute(in, Options{Log: zerolog.Nop()})
	require.NoError(t, err)
	second, err := Compute(in, Options{Log: zerolog.Nop()})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	after, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "inputs were modified")
}

func TestCompute_Empty(t *testing.T) {
	d, err := Compute(&Inputs{}, Options{Log: zerolog.Nop()})
	require.NoError(t, err)
	assert.Empty(t, d.Snapshots)
	assert.Empty(t, d.Closed)
	assert.Empty(t, d.Holdings)
}

func TestCompute_BadSeries(t *testing.T) {
	_, err := Compute(&Inputs{Rates: DailySeries{From: "never", Data: []*float64{f(1)}}}, Options{})
	assert.Error(t, err)

	in := &Inputs{}
	in.Portfolio.History.Total = DailySeries{From: "never"}
	_, err = Compute(in, Options{})
	assert.Error(t, err)
}
