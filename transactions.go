package wealthdash

import (
	"slices"
	"strings"

	"github.com/etnz/wealthdash/date"
)

// Kind is the closed set of transaction types reported by the brokerage.
type Kind string

// Transaction kinds.
const (
	KindBuy          Kind = "buy"
	KindSell         Kind = "sell"
	KindDividend     Kind = "dividend"
	KindDistribution Kind = "distribution"
	KindTax          Kind = "tax"
	KindFee          Kind = "fee"
	KindIncome       Kind = "income"
	KindSplit        Kind = "split"
	KindReinvest     Kind = "reinvest"
	KindDeposit      Kind = "deposit"
	KindWithdrawal   Kind = "withdrawal"
	KindTransfer     Kind = "transfer"
	KindInterest     Kind = "interest"
	KindUnknown      Kind = "unknown"
)

var kinds = []Kind{
	KindBuy, KindSell, KindDividend, KindDistribution, KindTax, KindFee, KindIncome,
	KindSplit, KindReinvest, KindDeposit, KindWithdrawal, KindTransfer, KindInterest,
}

// ParseKind maps a raw type string to its Kind. Unrecognised types are KindUnknown.
func ParseKind(s string) Kind {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(kinds, k) {
		return k
	}
	return KindUnknown
}

// IsTrade reports whether the kind changes a security position at a price.
func (k Kind) IsTrade() bool { return k == KindBuy || k == KindSell || k == KindReinvest }

// Transaction defines the common interface for every classified transaction.
type Transaction interface {
	Kind() Kind      // Kind returns the transaction type.
	When() date.Date // When returns the calendar day of the transaction.
	Account() string // Account returns the owning account identifier.
	Investment() Investment
}

type baseTx struct {
	Type Kind       `json:"type"`
	Date date.Date  `json:"date"`
	Inv  Investment `json:"investment"`
}

func (t baseTx) Kind() Kind             { return t.Type }
func (t baseTx) When() date.Date        { return t.Date }
func (t baseTx) Account() string        { return t.Inv.Account }
func (t baseTx) Investment() Investment { return t.Inv }

// Trade is a buy, sell or reinvest: shares changing hands at a price.
type Trade struct {
	baseTx
	Symbol   string   `json:"symbol"` // display symbol
	Currency string   `json:"currency"`
	Shares   Quantity `json:"shares"` // always positive
	Price    Money    `json:"price"`
	Amount   Money    `json:"amount"`
}

// Signed returns the shares with a negative sign for sells.
func (t Trade) Signed() Quantity {
	if t.Type == KindSell {
		return t.Shares.Neg()
	}
	return t.Shares
}

// Split is a share split of a security.
type Split struct {
	baseTx
	Symbol   string   `json:"symbol"` // display symbol
	Currency string   `json:"currency"`
	Ratio    Quantity `json:"ratio"` // new shares per old share
}

// CashFlow is any transaction that only moves cash: deposits, withdrawals,
// transfers, fees, taxes, interest, income, dividends and distributions.
type CashFlow struct {
	baseTx
	Amount Money  `json:"amount"`
	Origin string `json:"origin,omitempty"` // origin type for transfers
	Symbol string `json:"symbol,omitempty"` // display symbol for dividends and distributions
}

// Unclassified is a transaction whose type is not understood.
type Unclassified struct {
	baseTx
	Raw    string `json:"raw"`
	Amount Money  `json:"amount"`
}

// SymbolOf returns the display symbol a transaction relates to, if any.
func SymbolOf(tx Transaction) (string, bool) {
	switch v := tx.(type) {
	case Trade:
		return v.Symbol, v.Symbol != ""
	case Split:
		return v.Symbol, v.Symbol != ""
	case CashFlow:
		return v.Symbol, v.Symbol != ""
	default:
		return "", false
	}
}

// SortByDate sorts transactions chronologically, keeping the original order
// of same-day transactions.
func SortByDate(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.When().Compare(b.When()) })
}

// DisplaySymbol is the ticker as shown and compared everywhere: non-USD
// securities get the ".TO" exchange suffix.
func DisplaySymbol(symbol, currency string) string {
	if symbol == "" || IsUSD(currency) {
		return symbol
	}
	return symbol + ".TO"
}
