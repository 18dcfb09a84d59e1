package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-journal/internal/models"
)

func journalOf(pnls ...float64) []models.Trade {
	trades := make([]models.Trade, len(pnls))
	for i := range pnls {
		pnl := pnls[i]
		trades[i] = models.Trade{
			ID:     i + 1,
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Asset:  "BTC",
			Status: models.StatusClosed,
			PnL:    &pnl,
		}
	}
	return trades
}

func grow(trades []models.Trade, pnl float64) []models.Trade {
	n := len(trades)
	next := models.Trade{
		ID:     n + 1,
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n),
		Asset:  "BTC",
		Status: models.StatusClosed,
		PnL:    &pnl,
	}
	return append(append([]models.Trade{}, trades...), next)
}

func settings() models.Settings { return models.DefaultSettings() }

func TestStreakPromptAfterThreeLosses(t *testing.T) {
	m := NewMonitor(nil)

	trades := journalOf(50, 20, -5, 30, 10, 40, 25, 15, 60, 35) // 10 trades, no streak
	assert.Nil(t, m.Observe(trades, settings()))                // first observation primes only

	trades = grow(trades, -10)
	assert.Nil(t, m.Observe(trades, settings()))
	trades = grow(trades, -20)
	assert.Nil(t, m.Observe(trades, settings()))
	trades = grow(trades, -30)

	p := m.Observe(trades, settings())
	require.NotNil(t, p)
	assert.Equal(t, PromptStreak, p.Kind)
	assert.Equal(t, 13, p.TradeCount)
	assert.Equal(t, 3, p.StreakLength)
}

func TestDismissSuppressesUntilWatermarkPassed(t *testing.T) {
	m := NewMonitor(nil)

	trades := journalOf(50, 20, -5, 30, 10, 40, 25, 15, 60, 35)
	m.Observe(trades, settings())
	for _, pnl := range []float64{-10, -20} {
		trades = grow(trades, pnl)
		m.Observe(trades, settings())
	}
	trades = grow(trades, -30)
	p := m.Observe(trades, settings())
	require.NotNil(t, p)

	m.Dismiss(p)
	require.NotNil(t, m.DismissedUntil())
	assert.Equal(t, 23, *m.DismissedUntil())

	// Keep losing up to the watermark: suppressed.
	for len(trades) < 23 {
		trades = grow(trades, -1)
		assert.Nil(t, m.Observe(trades, settings()), "count %d should be suppressed", len(trades))
	}

	// Passing the watermark clears it and re-arms.
	trades = grow(trades, -1)
	p = m.Observe(trades, settings())
	require.NotNil(t, p)
	assert.Equal(t, PromptStreak, p.Kind)
	assert.Equal(t, 24, p.TradeCount)
	assert.Nil(t, m.DismissedUntil())
}

func TestDeletionNeverPrompts(t *testing.T) {
	m := NewMonitor(nil)

	trades := journalOf(-10, -20, -30, -40)
	m.Observe(trades, settings())

	// Removing a trade leaves a losing streak but must not prompt.
	assert.Nil(t, m.Observe(trades[:3], settings()))

	// Growing again from the lower count prompts.
	p := m.Observe(journalOf(-10, -20, -30, -40), settings())
	require.NotNil(t, p)
	assert.Equal(t, PromptStreak, p.Kind)
}

func TestMilestonePrompt(t *testing.T) {
	m := NewMonitor(nil)

	trades := journalOf(10, 20, -5, 30, 10, 40, 25, 15, 60)
	m.Observe(trades, settings())

	trades = grow(trades, 5)
	p := m.Observe(trades, settings())
	require.NotNil(t, p)
	assert.Equal(t, PromptMilestone, p.Kind)
	assert.Equal(t, 10, p.TradeCount)
	assert.Equal(t, 10, p.Frequency)
}

func TestStreakTakesPrecedenceOverMilestone(t *testing.T) {
	m := NewMonitor(nil)

	trades := journalOf(10, 20, 30, 40, 50, 60, -1, -2, -3)
	m.Observe(trades, settings())

	trades = grow(trades, -4) // count 10: milestone AND 4-loss streak
	p := m.Observe(trades, settings())
	require.NotNil(t, p)
	assert.Equal(t, PromptStreak, p.Kind)
	assert.Equal(t, 4, p.StreakLength)
}

func TestMilestoneDisabledByZeroFrequency(t *testing.T) {
	m := NewMonitor(nil)
	cfg := models.Settings{AuditRemindersEnabled: true, AuditMilestoneFrequency: 0}

	trades := journalOf(10, 20, 30, 40, 50, 60, 70, 80, 90)
	m.Observe(trades, cfg)
	assert.Nil(t, m.Observe(grow(trades, 5), cfg))
}

func TestRemindersDisabledSuppressesEverything(t *testing.T) {
	m := NewMonitor(nil)
	cfg := models.Settings{AuditRemindersEnabled: false, AuditMilestoneFrequency: 10}

	trades := journalOf(-1, -2, -3, -4, -5, -6, -7, -8, -9)
	m.Observe(trades, cfg)
	assert.Nil(t, m.Observe(grow(trades, -10), cfg))
}

func TestMilestoneDismissLeavesNoMemory(t *testing.T) {
	m := NewMonitor(nil)

	p := &Prompt{Kind: PromptMilestone, TradeCount: 10, Frequency: 10}
	m.Dismiss(p)
	assert.Nil(t, m.DismissedUntil())
}

func TestRestoredWatermarkSuppresses(t *testing.T) {
	until := 6
	m := NewMonitor(&until)

	trades := journalOf(-1, -2, -3, -4)
	m.Observe(trades, settings())

	assert.Nil(t, m.Observe(journalOf(-1, -2, -3, -4, -5), settings()))

	// Count 7 passes the watermark: cleared and re-armed.
	p := m.Observe(journalOf(-1, -2, -3, -4, -5, -6, -7), settings())
	require.NotNil(t, p)
}
