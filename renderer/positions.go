package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/wealthdash"
	md "github.com/nao1215/markdown"
)

// PositionsMarkdown renders the current holdings and the history of each symbol.
func PositionsMarkdown(holdings []wealthdash.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Quantity", "Book Value", "Market Value", "Unrealized", "Return"},
		Rows:   [][]string{},
	}
	for _, h := range holdings {
		table.Rows = append(table.Rows, []string{
			h.Symbol,
			h.Name,
			h.Quantity.String(),
			h.BookValue.String(),
			h.MarketValue.String(),
			h.UnrealizedPnL().SignedString(),
			h.UnrealizedRatio().SignedString(),
		})
	}
	doc.Table(table)

	for _, h := range holdings {
		if len(h.Transactions) == 0 {
			continue
		}
		doc.H2(h.Symbol)
		if len(h.Accounts) > 0 {
			doc.PlainText(fmt.Sprintf("Held in %s.", strings.Join(h.Accounts, ", ")))
		}
		doc.Table(transactionsTable(h.Transactions))
	}

	return doc.String()
}

func transactionsTable(txs []wealthdash.Transaction) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Account", "Shares", "Price", "Amount"},
		Rows:   [][]string{},
	}
	for _, tx := range txs {
		row := []string{tx.When().String(), string(tx.Kind()), tx.Account(), "", "", ""}
		switch v := tx.(type) {
		case wealthdash.Trade:
			row[3], row[4], row[5] = v.Signed().String(), v.Price.String(), v.Amount.String()
		case wealthdash.Split:
			row[3] = "x" + v.Ratio.String()
		case wealthdash.CashFlow:
			row[5] = v.Amount.String()
		case wealthdash.Unclassified:
			row[5] = v.Amount.String()
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
