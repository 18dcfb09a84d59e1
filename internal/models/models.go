// Package models provides domain models for the trading journal.
package models

// Strategy represents a named trading strategy used as audit context.
type Strategy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rules string `json:"rules,omitempty"`
}

// AuditParameters records what an audit looked at.
type AuditParameters struct {
	TradeCount   int    `json:"tradeCount"`
	DateRange    string `json:"dateRange,omitempty"`
	StrategyName string `json:"strategyName"`
}

// Audit represents one completed AI audit of the trade history.
type Audit struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	Parameters AuditParameters `json:"parameters"`
	Result     string          `json:"result"`
}

// Settings holds user-tunable journal behavior.
type Settings struct {
	AuditRemindersEnabled   bool `json:"auditRemindersEnabled"`
	AuditMilestoneFrequency int  `json:"auditMilestoneFrequency"`
}

// DefaultSettings returns the default journal settings.
func DefaultSettings() Settings {
	return Settings{
		AuditRemindersEnabled:   true,
		AuditMilestoneFrequency: 10,
	}
}

// Backup is the portable backup bundle shape.
type Backup struct {
	Trades           []Trade    `json:"trades"`
	InitialCapital   float64    `json:"initialCapital"`
	Strategies       []Strategy `json:"strategies"`
	ActiveStrategyID string     `json:"activeStrategyId,omitempty"`
	Timestamp        string     `json:"timestamp"`
}
