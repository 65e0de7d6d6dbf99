package wealthdash

// RawPosition is a current holding as sent by the host application. Values
// are in CAD.
type RawPosition struct {
	Security    RawSecurity             `json:"security"`
	Quantity    float64                 `json:"quantity"`
	BookValue   float64                 `json:"book_value"`
	MarketValue float64                 `json:"market_value"`
	GainPercent float64                 `json:"gain_percent"`
	GainAmount  float64                 `json:"gain_amount"`
	Investments []RawPositionInvestment `json:"investments"`
}

// RawPositionInvestment is the share of a position held in one investment account.
type RawPositionInvestment struct {
	Investment  string  `json:"investment"`
	Quantity    float64 `json:"quantity"`
	BookValue   float64 `json:"book_value"`
	MarketValue float64 `json:"market_value"`
}

// Position is a current holding.
type Position struct {
	Symbol      string   `json:"symbol"` // display symbol
	Name        string   `json:"name,omitempty"`
	Currency    string   `json:"currency"`
	Quantity    Quantity `json:"quantity"`
	BookValue   Money    `json:"bookValue"`
	MarketValue Money    `json:"marketValue"`
	GainPercent Percent  `json:"gainPercent"`
	GainAmount  Money    `json:"gainAmount"`
	Accounts    []string `json:"accounts"`
}

// NewPosition converts a raw position.
func NewPosition(raw RawPosition) Position {
	p := Position{
		Symbol:      DisplaySymbol(raw.Security.Symbol, raw.Security.Currency),
		Name:        raw.Security.Name,
		Currency:    M(0, raw.Security.Currency).Currency(),
		Quantity:    Q(raw.Quantity),
		BookValue:   M(raw.BookValue, ReportingCurrency),
		MarketValue: M(raw.MarketValue, ReportingCurrency),
		GainPercent: Percent(raw.GainPercent),
		GainAmount:  M(raw.GainAmount, ReportingCurrency),
		Accounts:    []string{},
	}
	for _, inv := range raw.Investments {
		p.Accounts = append(p.Accounts, ParseInvestment(inv.Investment).Account)
	}
	return p
}

// UnrealizedPnL returns the paper gain: market value minus book value.
func (p Position) UnrealizedPnL() Money { return p.MarketValue.Sub(p.BookValue) }

// UnrealizedRatio returns the paper gain in percent of the book value.
func (p Position) UnrealizedRatio() Percent { return pnlRatio(p.UnrealizedPnL(), p.BookValue) }

// NewPositions converts raw positions, keeping those held in one of the
// accounts. A nil accounts index keeps everything.
func NewPositions(raws []RawPosition, accounts Accounts) []Position {
	positions := make([]Position, 0, len(raws))
	for _, raw := range raws {
		p := NewPosition(raw)
		if accounts != nil && !heldIn(p, accounts) {
			continue
		}
		positions = append(positions, p)
	}
	return positions
}

func heldIn(p Position, accounts Accounts) bool {
	for _, id := range p.Accounts {
		if _, ok := accounts[id]; ok {
			return true
		}
	}
	return false
}

// Holding is a position with the history of its symbol.
type Holding struct {
	Position
	Transactions []Transaction `json:"transactions"`
}

// BySymbol groups the transactions that relate to a security by display symbol.
func BySymbol(txs []Transaction) map[string][]Transaction {
	index := make(map[string][]Transaction)
	for _, tx := range txs {
		if symbol, ok := SymbolOf(tx); ok {
			index[symbol] = append(index[symbol], tx)
		}
	}
	return index
}

// EnrichPositions attaches to every position the transactions of its symbol.
// Positions without any get an empty list.
func EnrichPositions(positions []Position, txs []Transaction) []Holding {
	index := BySymbol(txs)
	holdings := make([]Holding, 0, len(positions))
	for _, p := range positions {
		h := Holding{Position: p, Transactions: index[p.Symbol]}
		if h.Transactions == nil {
			h.Transactions = []Transaction{}
		}
		holdings = append(holdings, h)
	}
	return holdings
}
