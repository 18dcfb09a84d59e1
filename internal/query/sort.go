package query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

// SortKey is the closed set of sortable trade fields. Modeling keys as an
// enumeration makes an invalid key a validation-time error instead of a
// silent runtime mismatch.
type SortKey string

const (
	SortByID         SortKey = "id"
	SortByDate       SortKey = "date"
	SortByAsset      SortKey = "asset"
	SortByDirection  SortKey = "direction"
	SortByEntryPrice SortKey = "entryPrice"
	SortByExitPrice  SortKey = "exitPrice"
	SortBySize       SortKey = "size"
	SortByLeverage   SortKey = "leverage"
	SortByStatus     SortKey = "status"
	SortByPnL        SortKey = "pnl"
)

// Direction orders a sort ascending or descending.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Sort is the sort specification applied to a trade view.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort is newest-first by id.
func DefaultSort() Sort {
	return Sort{Key: SortByID, Direction: Descending}
}

// ParseSortKey validates a key string against the closed key set.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortByID, SortByDate, SortByAsset, SortByDirection, SortByEntryPrice,
		SortByExitPrice, SortBySize, SortByLeverage, SortByStatus, SortByPnL:
		return SortKey(s), nil
	}
	return "", errors.NewValidationError("sort key", s, "unknown trade field")
}

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Ascending, Descending:
		return Direction(s), nil
	}
	return "", errors.NewValidationError("sort direction", s, "must be ascending or descending")
}

// collator for locale-aware string comparison of free-text fields.
var collator = collate.New(language.Und)

// ApplySort returns the trades ordered by the given spec. The sort is
// stable, so ties keep their chronological (renumbered) relative order.
func ApplySort(trades []models.Trade, s Sort) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)

	cmp := comparatorFor(s.Key)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(&out[i], &out[j])
		if s.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparatorFor(key SortKey) func(a, b *models.Trade) int {
	switch key {
	case SortByDate:
		return func(a, b *models.Trade) int { return a.Date.Compare(b.Date) }
	case SortByAsset:
		return func(a, b *models.Trade) int { return collator.CompareString(a.Asset, b.Asset) }
	case SortByDirection:
		return func(a, b *models.Trade) int { return collator.CompareString(string(a.Direction), string(b.Direction)) }
	case SortByStatus:
		return func(a, b *models.Trade) int { return collator.CompareString(string(a.Status), string(b.Status)) }
	case SortByEntryPrice:
		return func(a, b *models.Trade) int { return compareFloat(a.EntryPrice, b.EntryPrice) }
	case SortByExitPrice:
		return func(a, b *models.Trade) int { return compareFloat(floatOrZero(a.ExitPrice), floatOrZero(b.ExitPrice)) }
	case SortBySize:
		return func(a, b *models.Trade) int { return compareFloat(a.Size, b.Size) }
	case SortByLeverage:
		return func(a, b *models.Trade) int {
			return compareFloat(float64(parseLeverage(a.Leverage)), float64(parseLeverage(b.Leverage)))
		}
	case SortByPnL:
		return func(a, b *models.Trade) int { return compareFloat(floatOrZero(a.PnL), floatOrZero(b.PnL)) }
	default: // SortByID
		return func(a, b *models.Trade) int { return a.ID - b.ID }
	}
}

// parseLeverage extracts the leading integer from strings like "10x".
// Anything unparsable counts as 0.
func parseLeverage(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
