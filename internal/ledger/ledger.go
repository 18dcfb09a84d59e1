// Package ledger implements the trade record model: the only legal
// mutation paths for the trade collection and its identity invariants.
//
// After every mutation the collection is sorted by date ascending and ids
// are reassigned 1..N in that order. Callers must treat returned slices as
// the new collection and never mutate a previous one in place.
package ledger

import (
	"sort"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

// DerivePnL computes realized pnl for a completed trade.
func DerivePnL(direction models.TradeDirection, entryPrice, exitPrice, size float64) float64 {
	if direction == models.DirectionShort {
		return (entryPrice - exitPrice) * size
	}
	return (exitPrice - entryPrice) * size
}

// NextID returns the id a newly inserted trade receives before renumbering.
func NextID(trades []models.Trade) int {
	max := 0
	for _, t := range trades {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Renumber sorts trades by date ascending and reassigns ids 1..N.
// The input is not modified.
func Renumber(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// Open inserts a new open position. Status and pnl on the draft are
// overridden: an open trade carries no pnl.
func Open(trades []models.Trade, draft models.Trade) []models.Trade {
	draft.ID = NextID(trades)
	draft.Status = models.StatusOpen
	draft.PnL = nil
	return Renumber(append(copySlice(trades), draft))
}

// Complete inserts a trade whose entry and exit are both known.
// PnL is derived from direction, prices and size; a missing exit price
// yields a zero pnl.
func Complete(trades []models.Trade, draft models.Trade) []models.Trade {
	draft.ID = NextID(trades)
	draft.Status = models.StatusClosed
	pnl := 0.0
	if draft.ExitPrice != nil {
		pnl = DerivePnL(draft.Direction, draft.EntryPrice, *draft.ExitPrice, draft.Size)
	}
	draft.PnL = &pnl
	return Renumber(append(copySlice(trades), draft))
}

// Update replaces the trade matching updated.ID. Editing a trade's date can
// shift every other trade's id through renumbering.
func Update(trades []models.Trade, updated models.Trade) ([]models.Trade, error) {
	out := copySlice(trades)
	found := false
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			found = true
			break
		}
	}
	if !found {
		return nil, errors.Wrapf(errors.ErrTradeNotFound, "update trade %d", updated.ID)
	}
	return Renumber(out), nil
}

// Delete removes the trade with the given id; renumbering closes the gap.
func Delete(trades []models.Trade, id int) ([]models.Trade, error) {
	out := make([]models.Trade, 0, len(trades))
	found := false
	for _, t := range trades {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return nil, errors.Wrapf(errors.ErrTradeNotFound, "delete trade %d", id)
	}
	return Renumber(out), nil
}

// Import merges externally sourced trades into the collection through the
// same add-trades contract the manual paths use. Imported rows are closed
// positions; pnl is derived when absent.
func Import(trades []models.Trade, incoming []models.Trade) []models.Trade {
	out := copySlice(trades)
	for _, t := range incoming {
		t.Status = models.StatusClosed
		if t.PnL == nil {
			pnl := 0.0
			if t.ExitPrice != nil {
				pnl = DerivePnL(t.Direction, t.EntryPrice, *t.ExitPrice, t.Size)
			}
			t.PnL = &pnl
		}
		out = append(out, t)
	}
	return Renumber(out)
}

// Find returns the trade with the given id.
func Find(trades []models.Trade, id int) (models.Trade, error) {
	for _, t := range trades {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trade{}, errors.Wrapf(errors.ErrTradeNotFound, "trade %d", id)
}

func copySlice(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)
	return out
}
