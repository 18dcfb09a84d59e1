// Package models provides domain models for the trading journal.
package models

import (
	"strings"
	"time"

	"crypto-journal/internal/errors"
)

// TradeDirection represents the direction of a position.
type TradeDirection string

const (
	DirectionLong  TradeDirection = "LONG"
	DirectionShort TradeDirection = "SHORT"
)

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// Trade represents one logged position.
//
// IDs are dense and contiguous (1..N in ascending date order) and are
// reassigned on every mutation of the collection. They are display
// coordinates, not stable external keys.
type Trade struct {
	ID         int            `json:"id"`
	Date       time.Time      `json:"date"`
	Asset      string         `json:"asset"`
	Direction  TradeDirection `json:"direction"`
	EntryPrice float64        `json:"entryPrice"`
	ExitPrice  *float64       `json:"exitPrice,omitempty"`
	Size       float64        `json:"size"`
	Leverage   string         `json:"leverage,omitempty"`
	Status     TradeStatus    `json:"status"`
	PnL        *float64       `json:"pnl,omitempty"`
}

// ParseDirection parses a direction string, case-insensitively.
func ParseDirection(s string) (TradeDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(DirectionLong):
		return DirectionLong, nil
	case string(DirectionShort):
		return DirectionShort, nil
	}
	return "", errors.NewValidationError("direction", s, "must be LONG or SHORT")
}

// IsClosed returns true for closed trades.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsWin returns true when the trade has a realized positive pnl.
func (t *Trade) IsWin() bool {
	return t.PnL != nil && *t.PnL > 0
}

// IsLoss returns true when the trade has a realized non-positive pnl.
func (t *Trade) IsLoss() bool {
	return t.PnL != nil && *t.PnL <= 0
}
