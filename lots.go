package wealthdash

import (
	"slices"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
)

// LotKey identifies an open position: one symbol within one account.
type LotKey struct {
	Account string
	Symbol  string
}

// MarshalText renders the key as "account/symbol" so that it can index JSON objects.
func (k LotKey) MarshalText() ([]byte, error) { return []byte(k.Account + "/" + k.Symbol), nil }

// OpenLot is the open inventory of a LotKey: signed shares (negative when
// short) at an average price.
type OpenLot struct {
	Shares Quantity  `json:"shares"`
	Price  Money     `json:"price"` // meaningful only while Shares is not zero
	Date   date.Date `json:"date"`  // last trade that opened or grew the lot
}

// ClosedPosition is the realized result of an opposing trade against an open lot.
type ClosedPosition struct {
	Date      date.Date `json:"date"`
	Account   string    `json:"account"` // display name
	Symbol    string    `json:"symbol"`
	Currency  string    `json:"currency"`
	Shares    Quantity  `json:"shares"`
	BuyDate   date.Date `json:"buyDate"`
	BuyPrice  Money     `json:"buyPrice"`
	SellDate  date.Date `json:"sellDate"`
	SellPrice Money     `json:"sellPrice"`
	PnL       Money     `json:"pnl"` // in CAD
	PnLRatio  Percent   `json:"pnlRatio"`
}

// MatchOptions configures a Matcher.
type MatchOptions struct {
	// Adjustments also applies splits and reinvestments to the open lots, as
	// needed by per-symbol timelines. The realized P&L table leaves it off.
	Adjustments bool
	Rates       RateIndex
	// AccountName resolves account identifiers into display names.
	AccountName func(id string) string
	Log         zerolog.Logger
}

// Matcher replays trades against open lots to produce realized positions.
type Matcher struct {
	opts MatchOptions
}

// NewMatcher creates a Matcher.
func NewMatcher(opts MatchOptions) *Matcher {
	if opts.AccountName == nil {
		opts.AccountName = func(id string) string { return id }
	}
	return &Matcher{opts: opts}
}

// Book is the result of a matching run.
type Book struct {
	Closed []ClosedPosition   `json:"closed"` // chronological
	Open   map[LotKey]OpenLot `json:"open"`
}

// Match replays the transactions, which must be sorted by date.
//
// Every call works on its own lots, a Matcher can be reused and shared.
func (m *Matcher) Match(txs []Transaction) Book {
	book := Book{Closed: []ClosedPosition{}, Open: make(map[LotKey]OpenLot)}
	for _, tx := range txs {
		switch v := tx.(type) {
		case Trade:
			if v.Type == KindReinvest && !m.opts.Adjustments {
				continue
			}
			m.trade(&book, v)
		case Split:
			if m.opts.Adjustments {
				m.split(&book, v)
			}
		}
	}
	return book
}

func (m *Matcher) split(book *Book, s Split) {
	key := LotKey{Account: s.Account(), Symbol: s.Symbol}
	lot, ok := book.Open[key]
	if !ok || lot.Shares.IsZero() {
		return
	}
	if !s.Ratio.IsPositive() {
		m.opts.Log.Debug().Str("symbol", s.Symbol).Stringer("date", s.When()).Msg("ignoring split without ratio")
		return
	}
	lot.Shares = lot.Shares.Mul(s.Ratio)
	lot.Price = lot.Price.Div(s.Ratio)
	book.Open[key] = lot
}

func (m *Matcher) trade(book *Book, t Trade) {
	key := LotKey{Account: t.Account(), Symbol: t.Symbol}
	lot, ok := book.Open[key]
	if !ok {
		lot = OpenLot{Shares: Q(0), Price: M(0, t.Currency), Date: t.When()}
	}
	if lot.Price.Currency() != t.Price.Currency() {
		lot.Price = lot.Price.In(t.Price.Currency())
	}

	shares := t.Signed()
	buying := t.Type != KindSell
	same := (buying && !lot.Shares.IsNegative()) || (!buying && !lot.Shares.IsPositive())

	if same {
		total := lot.Shares.Add(shares)
		if total.IsZero() {
			lot.Price = M(0, t.Currency)
		} else {
			lot.Price = lot.Price.Mul(lot.Shares).Add(t.Price.Mul(shares)).Div(total)
		}
		lot.Shares = total
		lot.Date = t.When()
		book.Open[key] = lot
		return
	}

	closed := MinQ(lot.Shares.Abs(), shares.Abs())
	buyDate, buyPrice, sellDate, sellPrice := lot.Date, lot.Price, t.When(), t.Price
	if buying {
		buyDate, buyPrice, sellDate, sellPrice = t.When(), t.Price, lot.Date, lot.Price
	}
	pnl := sellPrice.Sub(buyPrice).Mul(closed)
	book.Closed = append(book.Closed, ClosedPosition{
		Date:      t.When(),
		Account:   m.opts.AccountName(t.Account()),
		Symbol:    t.Symbol,
		Currency:  t.Currency,
		Shares:    closed,
		BuyDate:   buyDate,
		BuyPrice:  buyPrice,
		SellDate:  sellDate,
		SellPrice: sellPrice,
		PnL:       m.opts.Rates.Normalize(t.When(), pnl),
		PnLRatio:  pnlRatio(pnl, buyPrice.Mul(closed)),
	})

	remaining := lot.Shares.Add(shares)
	switch {
	case remaining.IsZero():
		lot.Price = M(0, t.Currency)
	case remaining.Sign() != lot.Shares.Sign():
		lot.Price = t.Price
		lot.Date = t.When()
	}
	lot.Shares = remaining
	book.Open[key] = lot
}

// pnlRatio returns pnl in percent of the cost, 0 when the cost is 0. Both are
// in the trading currency.
func pnlRatio(pnl, cost Money) Percent {
	if cost.IsZero() {
		return 0
	}
	return Percent(pnl.DivMoney(cost).InexactFloat64() * 100)
}

// Realized returns the positions closed on or after 'from', most recent first.
func Realized(closed []ClosedPosition, from date.Date) []ClosedPosition {
	res := make([]ClosedPosition, 0, len(closed))
	for _, c := range closed {
		if !c.Date.Before(from) {
			res = append(res, c)
		}
	}
	slices.Reverse(res)
	return res
}
