package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/date"
	md "github.com/nao1215/markdown"
)

// RealizedMarkdown renders the closed positions since 'from' with their summary.
func RealizedMarkdown(closed []wealthdash.ClosedPosition, from date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if from.IsZero() {
		doc.H1("Realized P&L")
	} else {
		doc.H1(fmt.Sprintf("Realized P&L since %s", from))
	}

	s := wealthdash.Summarize(closed)
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Closed positions", fmt.Sprint(s.Count)},
			{"Total P&L", s.TotalPnL.SignedString()},
			{"Win rate", s.WinRate().String()},
			{"Mean return", s.MeanRatio.SignedString()},
			{"Return std dev", s.StdDevRatio.String()},
		},
	})
	if s.Count > 0 {
		doc.PlainText(fmt.Sprintf("Best: %s %s (%s), worst: %s %s (%s)",
			s.Best.Symbol, s.Best.PnL.SignedString(), s.Best.Date,
			s.Worst.Symbol, s.Worst.PnL.SignedString(), s.Worst.Date))
	}

	doc.H2("Closed Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Account", "Symbol", "Shares", "Buy", "Sell", "P&L", "Return"},
		Rows:   [][]string{},
	}
	for _, c := range closed {
		table.Rows = append(table.Rows, []string{
			c.Date.String(),
			c.Account,
			c.Symbol,
			c.Shares.String(),
			fmt.Sprintf("%s (%s)", c.BuyPrice, c.BuyDate),
			fmt.Sprintf("%s (%s)", c.SellPrice, c.SellDate),
			c.PnL.SignedString(),
			c.PnLRatio.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
