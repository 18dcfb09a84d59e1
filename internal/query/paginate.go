package query

import "crypto-journal/internal/models"

// PageSize is the fixed page size of the trade view.
const PageSize = 20

// TotalPages returns the number of pages needed for count items.
// Zero when the collection is empty, never negative.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page slice of an ordered collection.
// Out-of-range pages yield an empty slice, never a partial wrap-around.
func Paginate(trades []models.Trade, page, pageSize int) []models.Trade {
	if page < 1 || pageSize <= 0 {
		return []models.Trade{}
	}
	start := (page - 1) * pageSize
	if start >= len(trades) {
		return []models.Trade{}
	}
	end := start + pageSize
	if end > len(trades) {
		end = len(trades)
	}
	out := make([]models.Trade, end-start)
	copy(out, trades[start:end])
	return out
}
