package wealthdash

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RealizedSummary aggregates a list of closed positions.
type RealizedSummary struct {
	Count       int            `json:"count"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	TotalPnL    Money          `json:"totalPnl"`
	MeanRatio   Percent        `json:"meanRatio"`
	StdDevRatio Percent        `json:"stdDevRatio"`
	Best        ClosedPosition `json:"best"`
	Worst       ClosedPosition `json:"worst"`
}

// WinRate returns the share of profitable closes in percent.
func (s RealizedSummary) WinRate() Percent {
	if s.Count == 0 {
		return 0
	}
	return Percent(float64(s.Wins) / float64(s.Count) * 100)
}

// Summarize computes the summary of closed positions.
func Summarize(closed []ClosedPosition) RealizedSummary {
	s := RealizedSummary{Count: len(closed), TotalPnL: M(0, ReportingCurrency)}
	if len(closed) == 0 {
		return s
	}

	ratios := make([]float64, len(closed))
	pnls := make([]float64, len(closed))
	for i, c := range closed {
		s.TotalPnL = s.TotalPnL.Add(c.PnL)
		switch {
		case c.PnL.IsPositive():
			s.Wins++
		case c.PnL.IsNegative():
			s.Losses++
		}
		ratios[i] = float64(c.PnLRatio)
		pnls[i] = c.PnL.AsFloat()
	}

	if len(ratios) > 1 {
		mean, std := stat.MeanStdDev(ratios, nil)
		s.MeanRatio, s.StdDevRatio = Percent(mean), Percent(std)
	} else {
		s.MeanRatio = Percent(ratios[0])
	}
	s.Best = closed[floats.MaxIdx(pnls)]
	s.Worst = closed[floats.MinIdx(pnls)]
	return s
}
