// Package metrics derives aggregate performance statistics from a trade
// collection. Everything here is stateless: metrics are never persisted and
// always recomputed from the trades and starting capital.
package metrics

import (
	"math"

	"crypto-journal/internal/models"
)

// Metrics is a derived snapshot of trading performance. Only closed trades
// with a realized pnl contribute.
type Metrics struct {
	TotalPnL       float64
	WinRate        float64 // fraction 0..1
	ProfitFactor   float64 // +Inf when there are gains and no losses
	CurrentCapital float64

	ClosedCount int
	Wins        int
	Losses      int

	GrossProfit float64
	GrossLoss   float64 // negative or zero
	AvgWin      float64
	AvgLoss     float64
	LargestWin  float64
	LargestLoss float64
	Expectancy  float64
}

// Compute calculates metrics for the given trades and starting capital.
func Compute(trades []models.Trade, initialCapital float64) Metrics {
	m := Metrics{CurrentCapital: initialCapital}

	for _, t := range trades {
		if !t.IsClosed() || t.PnL == nil {
			continue
		}
		pnl := *t.PnL
		m.ClosedCount++
		m.TotalPnL += pnl
		if pnl > 0 {
			m.Wins++
			m.GrossProfit += pnl
			if pnl > m.LargestWin {
				m.LargestWin = pnl
			}
		} else {
			m.Losses++
			m.GrossLoss += pnl
			if pnl < m.LargestLoss {
				m.LargestLoss = pnl
			}
		}
	}

	if m.ClosedCount > 0 {
		m.WinRate = float64(m.Wins) / float64(m.ClosedCount)
		m.Expectancy = m.TotalPnL / float64(m.ClosedCount)
	}
	if m.Wins > 0 {
		m.AvgWin = m.GrossProfit / float64(m.Wins)
	}
	if m.Losses > 0 {
		m.AvgLoss = m.GrossLoss / float64(m.Losses)
	}

	switch {
	case m.GrossLoss != 0:
		m.ProfitFactor = m.GrossProfit / -m.GrossLoss
	case m.GrossProfit > 0:
		m.ProfitFactor = math.Inf(1)
	default:
		m.ProfitFactor = 0
	}

	m.CurrentCapital = initialCapital + m.TotalPnL
	return m
}
