package audit

import (
	"fmt"
	"strings"

	"crypto-journal/internal/metrics"
	"crypto-journal/internal/models"
)

// BuildPrompt renders the trade history and optional strategy context into
// the user prompt sent to the provider.
func BuildPrompt(trades []models.Trade, strategy *models.Strategy) string {
	var b strings.Builder

	m := metrics.Compute(trades, 0)
	fmt.Fprintf(&b, "Trade history: %d trades, %d closed, win rate %.1f%%, total P&L %.2f, profit factor %.2f.\n\n",
		len(trades), m.ClosedCount, m.WinRate*100, m.TotalPnL, m.ProfitFactor)

	if strategy != nil {
		fmt.Fprintf(&b, "Stated strategy: %s\n", strategy.Name)
		if strategy.Rules != "" {
			fmt.Fprintf(&b, "Rules:\n%s\n", strategy.Rules)
		}
		b.WriteString("\n")
	}

	b.WriteString("Trades (id | date | asset | direction | entry | exit | size | leverage | status | pnl):\n")
	for _, t := range trades {
		exit := "-"
		if t.ExitPrice != nil {
			exit = fmt.Sprintf("%.4f", *t.ExitPrice)
		}
		pnl := "-"
		if t.PnL != nil {
			pnl = fmt.Sprintf("%.2f", *t.PnL)
		}
		lev := t.Leverage
		if lev == "" {
			lev = "-"
		}
		fmt.Fprintf(&b, "%d | %s | %s | %s | %.4f | %s | %.4f | %s | %s | %s\n",
			t.ID, t.Date.Format("2006-01-02"), t.Asset, t.Direction,
			t.EntryPrice, exit, t.Size, lev, t.Status, pnl)
	}

	return b.String()
}
