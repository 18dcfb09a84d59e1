package ledger

import "crypto-journal/internal/models"

// LosingStreak returns the number of most-recent consecutive closed trades
// with a realized non-positive pnl, walking backward in chronological order.
// Open trades and closed trades without a pnl are skipped without breaking
// the streak; the first realized win ends it.
func LosingStreak(trades []models.Trade) int {
	ordered := Renumber(trades)
	streak := 0
	for i := len(ordered) - 1; i >= 0; i-- {
		t := ordered[i]
		if !t.IsClosed() || t.PnL == nil {
			continue
		}
		if *t.PnL > 0 {
			break
		}
		streak++
	}
	return streak
}
