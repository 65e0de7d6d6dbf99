// Package renderer renders the derived entities of a dashboard as markdown.
package renderer

import (
	"fmt"

	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/date"
)

// Params holds the optional parameters of the named reports.
type Params struct {
	From     date.Date   // realized: first close date
	Period   date.Period // changes: bucket size
	Weekdays bool        // history: skip weekends
}

// Reports lists the names accepted by Render.
var Reports = []string{"history", "changes", "realized", "positions", "cashflows"}

// Render renders the named report of a dashboard.
func Render(name string, d *wealthdash.Dashboard, p Params) (string, error) {
	switch name {
	case "history":
		if p.Weekdays {
			return HistoryMarkdown(d.Weekdays), nil
		}
		return HistoryMarkdown(d.Snapshots), nil
	case "changes":
		return ChangesMarkdown(d.Changes(p.Period), p.Period), nil
	case "realized":
		return RealizedMarkdown(d.Realized(p.From), p.From), nil
	case "positions":
		return PositionsMarkdown(d.Holdings), nil
	case "cashflows":
		return CashFlowsMarkdown(d.CashFlows), nil
	default:
		return "", fmt.Errorf("unknown report %q, want one of %v", name, Reports)
	}
}
