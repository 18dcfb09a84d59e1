// Package review implements the self-review prompt heuristic: a small
// state machine observing the trade stream that decides when to suggest an
// AI audit, with memory for user dismissals.
package review

import (
	"crypto-journal/internal/ledger"
	"crypto-journal/internal/models"
)

// PromptKind identifies why a prompt fired.
type PromptKind string

const (
	// PromptStreak fires after a run of consecutive losing trades.
	PromptStreak PromptKind = "streak"
	// PromptMilestone fires every N logged trades.
	PromptMilestone PromptKind = "milestone"
)

const (
	streakThreshold = 3
	dismissWindow   = 10
)

// Prompt is an emitted review suggestion. Accepting it is the caller's
// concern (switch to the audit view); dismissing a streak prompt goes back
// through Monitor.Dismiss so the suppression watermark is recorded.
type Prompt struct {
	Kind         PromptKind
	TradeCount   int
	StreakLength int // set for streak prompts
	Frequency    int // set for milestone prompts
}

// Monitor watches the trade collection across mutations and emits prompts
// on qualifying count increases. It owns the dismissal watermark: a trade
// count below which repeat streak prompts stay suppressed.
type Monitor struct {
	primed         bool
	prevCount      int
	dismissedUntil *int
}

// NewMonitor restores a monitor from a persisted watermark (nil when none).
func NewMonitor(dismissedUntil *int) *Monitor {
	return &Monitor{dismissedUntil: dismissedUntil}
}

// DismissedUntil exposes the current watermark for persistence.
func (m *Monitor) DismissedUntil() *int {
	return m.dismissedUntil
}

// Observe feeds the current trade collection to the machine after a
// mutation and returns a prompt when one fires. Prompts only ever fire on
// a count increase: deletions and the first observation re-arm silently.
// When reminders are disabled no transition fires at all.
func (m *Monitor) Observe(trades []models.Trade, settings models.Settings) *Prompt {
	if !settings.AuditRemindersEnabled {
		return nil
	}

	count := len(trades)
	prev, primed := m.prevCount, m.primed
	m.prevCount = count
	m.primed = true

	// The suppression window expires once the count passes the watermark.
	if m.dismissedUntil != nil && count > *m.dismissedUntil {
		m.dismissedUntil = nil
	}

	if !primed || count <= prev {
		return nil
	}

	if streak := ledger.LosingStreak(trades); streak >= streakThreshold {
		if m.dismissedUntil != nil && count <= *m.dismissedUntil {
			return nil
		}
		return &Prompt{Kind: PromptStreak, TradeCount: count, StreakLength: streak}
	}

	freq := settings.AuditMilestoneFrequency
	if freq > 0 && count > 0 && count%freq == 0 {
		return &Prompt{Kind: PromptMilestone, TradeCount: count, Frequency: freq}
	}

	return nil
}

// Dismiss records a dismiss-with-memory response to a streak prompt,
// suppressing further streak prompts until the trade count passes
// TradeCount + 10. Milestone prompts have no dismissal memory.
func (m *Monitor) Dismiss(p *Prompt) {
	if p == nil || p.Kind != PromptStreak {
		return
	}
	until := p.TradeCount + dismissWindow
	m.dismissedUntil = &until
}
