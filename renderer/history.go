package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/date"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the daily portfolio snapshots, most recent first.
func HistoryMarkdown(snapshots []wealthdash.PortfolioSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio History")
	if len(snapshots) == 0 {
		doc.PlainText("No portfolio value available.")
		return doc.String()
	}
	first, last := snapshots[0], snapshots[len(snapshots)-1]
	doc.PlainText(fmt.Sprintf("From %s to %s, %d days.", first.Date, last.Date, len(snapshots)))
	doc.PlainText(fmt.Sprintf("Value: %s, Deposits: %s, P&L: %s (%s)",
		last.Value, last.Deposits, last.PnL().SignedString(), last.PnLRatio().SignedString()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Value", "Cash Flow", "Deposits", "P&L", "P&L %"},
		Rows:   [][]string{},
	}
	for i := len(snapshots) - 1; i >= 0; i-- {
		s := snapshots[i]
		table.Rows = append(table.Rows, []string{
			s.Date.String(),
			s.Value.String(),
			s.Net().SignedString(),
			s.Deposits.String(),
			s.PnL().SignedString(),
			s.PnLRatio().SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// ChangesMarkdown renders the P&L change of every period, most recent first.
func ChangesMarkdown(changes []wealthdash.PeriodChange, period date.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("P&L Changes (%s)", period))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Period", "Value", "P&L", "Change"},
		Rows:   [][]string{},
	}
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		table.Rows = append(table.Rows, []string{
			c.Range.Identifier(),
			c.End.Value.String(),
			c.End.PnL().SignedString(),
			c.Change().SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
