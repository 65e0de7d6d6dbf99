package wealthdash

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
)

// this file contains the raw payload shapes sent by the host application and
// their conversion into typed values.

// DailySeries is a sparse daily array: one value per calendar day starting at From.
type DailySeries struct {
	From string     `json:"from"`
	Data []*float64 `json:"data"`
}

// Start parses the first day of the series.
func (s DailySeries) Start() (date.Date, error) {
	if s.From == "" && len(s.Data) == 0 {
		return date.Date{}, nil
	}
	return date.Parse(s.From)
}

// Series aligns the values on their days.
func (s DailySeries) Series() (date.Series, error) {
	from, err := s.Start()
	if err != nil {
		return nil, fmt.Errorf("invalid series start: %w", err)
	}
	return date.Align(from, s.Data), nil
}

// PortfolioHistory is the portfolio payload, only the total value history is used.
type PortfolioHistory struct {
	History struct {
		Total DailySeries `json:"total"`
	} `json:"history"`
}

// RawSecurity is the security reference embedded in transactions and positions.
type RawSecurity struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
	Name     string `json:"name,omitempty"`
}

// RawTransaction is a transaction as sent by the host application.
type RawTransaction struct {
	ID             string       `json:"id,omitempty"`
	Date           string       `json:"date"`
	Type           string       `json:"type"`
	CurrencyAmount float64      `json:"currency_amount"`
	Investment     string       `json:"investment"`
	Quantity       *float64     `json:"quantity,omitempty"`
	Price          *float64     `json:"price,omitempty"`
	Fee            *float64     `json:"fee,omitempty"`
	Symbol         string       `json:"symbol,omitempty"`
	Security       *RawSecurity `json:"security,omitempty"`
	OriginType     string       `json:"origin_type,omitempty"`
	SplitRatio     *float64     `json:"split_ratio,omitempty"`
}

// Investment identifies the account an amount belongs to. It is encoded as
// "<accountId>:<label>:<currency>".
type Investment struct {
	Account  string `json:"account"`
	Label    string `json:"label,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// ParseInvestment splits an investment identifier. Missing parts are left empty.
func ParseInvestment(s string) Investment {
	parts := strings.SplitN(s, ":", 3)
	inv := Investment{Account: parts[0]}
	if len(parts) > 1 {
		inv.Label = parts[1]
	}
	if len(parts) > 2 {
		inv.Currency = strings.ToUpper(parts[2])
	}
	return inv
}

func (i Investment) String() string {
	if i.Label == "" && i.Currency == "" {
		return i.Account
	}
	return i.Account + ":" + i.Label + ":" + strings.ToLower(i.Currency)
}

// security returns the symbol and trading currency of the raw transaction,
// falling back on the investment currency.
func (raw RawTransaction) security(inv Investment) (symbol, currency string) {
	symbol, currency = raw.Symbol, inv.Currency
	if raw.Security != nil {
		if raw.Security.Symbol != "" {
			symbol = raw.Security.Symbol
		}
		if raw.Security.Currency != "" {
			currency = raw.Security.Currency
		}
	}
	return symbol, strings.ToUpper(currency)
}

// Classify builds the typed transaction for a raw record.
//
// Only an unparseable date is an error, every other irregularity yields a
// transaction (possibly Unclassified).
func Classify(raw RawTransaction) (Transaction, error) {
	on, err := date.Parse(raw.Date)
	if err != nil {
		return nil, fmt.Errorf("transaction %q: %w", raw.ID, err)
	}
	inv := ParseInvestment(raw.Investment)
	kind := ParseKind(raw.Type)
	base := baseTx{Type: kind, Date: on, Inv: inv}
	symbol, currency := raw.security(inv)

	switch kind {
	case KindBuy, KindSell, KindReinvest:
		var shares float64
		if raw.Quantity != nil {
			shares = math.Abs(*raw.Quantity)
		}
		var price float64
		switch {
		case raw.Price != nil:
			price = math.Abs(*raw.Price)
		case shares != 0:
			price = math.Abs(raw.CurrencyAmount) / shares
		}
		return Trade{
			baseTx:   base,
			Symbol:   DisplaySymbol(symbol, currency),
			Currency: currency,
			Shares:   Q(shares),
			Price:    M(price, currency),
			Amount:   M(raw.CurrencyAmount, currency),
		}, nil

	case KindSplit:
		var ratio float64
		if raw.SplitRatio != nil {
			ratio = *raw.SplitRatio
		}
		return Split{
			baseTx:   base,
			Symbol:   DisplaySymbol(symbol, currency),
			Currency: currency,
			Ratio:    Q(ratio),
		}, nil

	case KindUnknown:
		return Unclassified{baseTx: base, Raw: raw.Type, Amount: M(raw.CurrencyAmount, inv.Currency)}, nil

	default:
		cf := CashFlow{
			baseTx: base,
			Amount: M(raw.CurrencyAmount, inv.Currency),
			Origin: strings.ToUpper(raw.OriginType),
		}
		if symbol != "" {
			cf.Symbol = DisplaySymbol(symbol, currency)
		}
		return cf, nil
	}
}

// ClassifyAll classifies every raw transaction, skipping (and logging) the
// ones that cannot be dated.
func ClassifyAll(raws []RawTransaction, log zerolog.Logger) []Transaction {
	txs := make([]Transaction, 0, len(raws))
	for _, raw := range raws {
		tx, err := Classify(raw)
		if err != nil {
			log.Warn().Err(err).Str("type", raw.Type).Msg("skipping undated transaction")
			continue
		}
		txs = append(txs, tx)
	}
	return txs
}
