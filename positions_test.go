package wealthdash

import (
	"testing"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rawPositions = []RawPosition{
	{
		Security:    RawSecurity{Symbol: "XEQT", Currency: "cad", Name: "iShares Core Equity"},
		Quantity:    20,
		BookValue:   500,
		MarketValue: 600,
		GainPercent: 20,
		GainAmount:  100,
		Investments: []RawPositionInvestment{{Investment: "a1:tfsa:cad", Quantity: 20}},
	},
	{
		Security:    RawSecurity{Symbol: "AAPL", Currency: "usd"},
		Quantity:    3,
		BookValue:   600,
		MarketValue: 540,
		Investments: []RawPositionInvestment{{Investment: "a2:rrsp:usd", Quantity: 3}},
	},
}

func TestNewPosition(t *testing.T) {
	p := NewPosition(rawPositions[0])
	assert.Equal(t, "XEQT.TO", p.Symbol)
	assert.Equal(t, "CAD", p.Currency)
	assert.Equal(t, []string{"a1"}, p.Accounts)
	assertMoney(t, 100, p.UnrealizedPnL())
	assert.True(t, p.UnrealizedRatio().Equal(20))

	p = NewPosition(rawPositions[1])
	assert.Equal(t, "AAPL", p.Symbol)
	assertMoney(t, -60, p.UnrealizedPnL())
	assert.True(t, p.UnrealizedRatio().Equal(-10))
}

func TestNewPositions_Filter(t *testing.T) {
	assert.Len(t, NewPositions(rawPositions, nil), 2)

	accounts := Accounts{"a2": {ID: "a2"}}
	positions := NewPositions(rawPositions, accounts)
	require.Len(t, positions, 1)
	assert.Equal(t, "AAPL", positions[0].Symbol)

	assert.Empty(t, NewPositions(rawPositions, Accounts{}))
}

func TestEnrichPositions(t *testing.T) {
	txs := []Transaction{
		trade(KindBuy, "2020-01-02", "XEQT", 10, 10, "CAD"),
		trade(KindBuy, "2020-01-03", "XEQT", 10, 20, "CAD"),
		trade(KindBuy, "2020-01-03", "VFV", 1, 100, "CAD"),
		flow(KindDeposit, "2020-01-01", 1000, "CAD"),
	}
	holdings := EnrichPositions(NewPositions(rawPositions, nil), txs)
	require.Len(t, holdings, 2)

	assert.Equal(t, "XEQT.TO", holdings[0].Symbol)
	require.Len(t, holdings[0].Transactions, 2)
	assert.Equal(t, date.New(2020, 1, 2), holdings[0].Transactions[0].When())

	assert.NotNil(t, holdings[1].Transactions)
	assert.Empty(t, holdings[1].Transactions)
}

func TestNewAccounts(t *testing.T) {
	institutions := []Institution{
		{ID: "a1", Name: "Questrade", Group: "me", CreationDate: "2019-06-01T00:00:00.000Z"},
		{ID: "a2", Name: "Wealthsimple", Group: "spouse", CreationDate: "not a date"},
		{ID: "a3", Name: "", Group: "me"},
	}

	all := NewAccounts(institutions, Filter{}, zerolog.Nop())
	assert.Len(t, all, 3)
	assert.Equal(t, "Questrade", all.Name("a1"))
	assert.Equal(t, "a3", all.Name("a3"))
	assert.Equal(t, "zz", all.Name("zz"))
	assert.True(t, all["a2"].Created.IsZero())

	assert.Equal(t, date.New(2019, 6, 1), all.EffectiveDate("a1", date.New(2019, 1, 1)))
	assert.Equal(t, date.New(2019, 7, 1), all.EffectiveDate("a1", date.New(2019, 7, 1)))
	assert.Equal(t, date.New(2019, 1, 1), all.EffectiveDate("a2", date.New(2019, 1, 1)))

	mine := NewAccounts(institutions, Filter{Groups: []string{"me"}}, zerolog.Nop())
	assert.Len(t, mine, 2)
	assert.NotContains(t, mine, "a2")

	one := NewAccounts(institutions, Filter{Groups: []string{"me"}, Institutions: []string{"a3", "a2"}}, zerolog.Nop())
	assert.Len(t, one, 1)
	assert.Contains(t, one, "a3")

	other := trade(KindBuy, "2020-01-02", "XEQT", 1, 1, "CAD")
	other.Inv.Account = "a1"
	kept := one.Keep([]Transaction{other, trade(KindBuy, "2020-01-02", "XEQT", 1, 1, "CAD")})
	assert.Empty(t, kept)
}

func TestNewAccounts_InvestmentIDs(t *testing.T) {
	accounts := NewAccounts([]Institution{{
		ID: "inst", Name: "Questrade", CreationDate: "2019-06-01",
		Investments: []InstitutionAccount{{ID: "tfsa-1", Name: "TFSA"}, {ID: "rrsp-1", Name: "RRSP"}},
	}}, Filter{}, zerolog.Nop())

	assert.Len(t, accounts, 3)
	assert.Equal(t, "Questrade", accounts.Name("tfsa-1"))
	assert.Equal(t, date.New(2019, 6, 1), accounts.EffectiveDate("rrsp-1", date.New(2019, 1, 1)))
}
