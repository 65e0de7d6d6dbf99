package renderer

import (
	"bytes"

	"github.com/etnz/wealthdash"
	md "github.com/nao1215/markdown"
)

// CashFlowsMarkdown renders the daily cash flows, most recent first, with
// their totals.
func CashFlowsMarkdown(flows wealthdash.CashFlows) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cash Flows")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Deposit", "Withdrawal", "Income", "Interest & Fees"},
		Rows:   [][]string{},
	}

	days := flows.Dates()
	for i := len(days) - 1; i >= 0; i-- {
		day := flows[days[i]]
		table.Rows = append(table.Rows, []string{
			days[i].String(),
			day.Deposit.String(),
			day.Withdrawal.String(),
			day.Income.String(),
			day.Interest.String(),
		})
	}
	total := flows.Total()
	table.Rows = append(table.Rows, []string{
		"**Total**",
		total.Deposit.String(),
		total.Withdrawal.String(),
		total.Income.String(),
		total.Interest.String(),
	})
	doc.Table(table)

	return doc.String()
}
