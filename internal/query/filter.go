// Package query implements the read side of the journal: filtering,
// sorting and pagination over the trade collection. Everything here is a
// pure function of its inputs.
package query

import (
	"strconv"
	"strings"
	"time"

	"crypto-journal/internal/models"
)

// Outcome classifies trades by realized result.
type Outcome string

const (
	OutcomeAll  Outcome = "all"
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Filter is the ephemeral, UI-owned filter specification. Dates and the
// trade-id selector are carried as text, exactly as entered.
type Filter struct {
	StartDate string  // "2006-01-02", inclusive at start of day UTC
	EndDate   string  // "2006-01-02", inclusive at end of day UTC
	Asset     string  // case-insensitive substring
	Outcome   Outcome // win, loss or all
	TradeID   string  // "5" or "3-10"; overrides every other field
}

// IsActive reports whether any filter field is set.
func (f Filter) IsActive() bool {
	return f.StartDate != "" || f.EndDate != "" || f.Asset != "" ||
		(f.Outcome != "" && f.Outcome != OutcomeAll) || strings.TrimSpace(f.TradeID) != ""
}

// ApplyFilters returns the trades matching the filter. A non-empty trade-id
// selector overrides all other fields; an unparsable selector yields an
// empty result rather than the unfiltered collection.
func ApplyFilters(trades []models.Trade, f Filter) []models.Trade {
	idFilter := strings.TrimSpace(f.TradeID)
	if idFilter != "" {
		lo, hi, ok := parseIDSelector(idFilter)
		if !ok {
			return []models.Trade{}
		}
		out := make([]models.Trade, 0)
		for _, t := range trades {
			if t.ID >= lo && t.ID <= hi {
				out = append(out, t)
			}
		}
		return out
	}

	start, hasStart := parseDayStart(f.StartDate)
	end, hasEnd := parseDayEnd(f.EndDate)
	asset := strings.ToLower(f.Asset)

	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if hasStart && t.Date.Before(start) {
			continue
		}
		if hasEnd && t.Date.After(end) {
			continue
		}
		if asset != "" && !strings.Contains(strings.ToLower(t.Asset), asset) {
			continue
		}
		switch f.Outcome {
		case OutcomeWin:
			if !t.IsWin() {
				continue
			}
		case OutcomeLoss:
			if !t.IsLoss() {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// parseIDSelector parses "n" or "lo-hi" into an inclusive id range.
func parseIDSelector(text string) (lo, hi int, ok bool) {
	if strings.Contains(text, "-") {
		parts := strings.Split(text, "-")
		if len(parts) == 2 {
			start, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
			end, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errA == nil && errB == nil && start <= end {
				return start, end, true
			}
		}
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, n, true
	}
	return 0, 0, false
}

func parseDayStart(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", text, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func parseDayEnd(text string) (time.Time, bool) {
	d, ok := parseDayStart(text)
	if !ok {
		return time.Time{}, false
	}
	return d.Add(24*time.Hour - time.Millisecond), true
}
