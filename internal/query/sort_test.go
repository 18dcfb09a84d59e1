package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-journal/internal/models"
)

func leveraged(id int, lev string) models.Trade {
	return models.Trade{ID: id, Asset: "BTC", Leverage: lev}
}

func TestApplySortLeverageNumeric(t *testing.T) {
	trades := []models.Trade{
		leveraged(1, "5x"),
		leveraged(2, "20x"),
		leveraged(3, "3x"),
	}

	got := ApplySort(trades, Sort{Key: SortByLeverage, Direction: Descending})

	levs := []string{got[0].Leverage, got[1].Leverage, got[2].Leverage}
	assert.Equal(t, []string{"20x", "5x", "3x"}, levs)
}

func TestApplySortLeverageUnparsableCountsAsZero(t *testing.T) {
	trades := []models.Trade{
		leveraged(1, "cross"),
		leveraged(2, "10x"),
		leveraged(3, ""),
	}

	got := ApplySort(trades, Sort{Key: SortByLeverage, Direction: Ascending})

	// The two zero-leverage rows keep their original relative order.
	assert.Equal(t, []int{1, 3, 2}, ids(got))
}

func TestApplySortDateAscending(t *testing.T) {
	trades := []models.Trade{
		{ID: 1, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := ApplySort(trades, Sort{Key: SortByDate, Direction: Ascending})
	assert.Equal(t, []int{2, 3, 1}, ids(got))
}

func TestApplySortPnLTreatsMissingAsZero(t *testing.T) {
	win, loss := 15.0, -10.0
	trades := []models.Trade{
		{ID: 1, PnL: &win},
		{ID: 2}, // open trade, no pnl
		{ID: 3, PnL: &loss},
	}

	got := ApplySort(trades, Sort{Key: SortByPnL, Direction: Descending})
	assert.Equal(t, []int{1, 2, 3}, ids(got))
}

func TestApplySortAssetLexical(t *testing.T) {
	trades := []models.Trade{
		{ID: 1, Asset: "SOL"},
		{ID: 2, Asset: "btc"},
		{ID: 3, Asset: "ETH"},
	}

	got := ApplySort(trades, Sort{Key: SortByAsset, Direction: Ascending})
	assert.Equal(t, []string{"btc", "ETH", "SOL"}, []string{got[0].Asset, got[1].Asset, got[2].Asset})
}

func TestApplySortStableOnTies(t *testing.T) {
	trades := []models.Trade{
		{ID: 1, Asset: "BTC"},
		{ID: 2, Asset: "BTC"},
		{ID: 3, Asset: "BTC"},
	}

	got := ApplySort(trades, Sort{Key: SortByAsset, Direction: Ascending})
	assert.Equal(t, []int{1, 2, 3}, ids(got))
}

func TestApplySortDoesNotMutateInput(t *testing.T) {
	trades := []models.Trade{{ID: 2}, {ID: 1}}
	_ = ApplySort(trades, Sort{Key: SortByID, Direction: Ascending})
	assert.Equal(t, []int{2, 1}, ids(trades))
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("leverage")
	require.NoError(t, err)
	assert.Equal(t, SortByLeverage, key)

	_, err = ParseSortKey("bogus")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("descending")
	require.NoError(t, err)
	assert.Equal(t, Descending, dir)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestDefaultSort(t *testing.T) {
	assert.Equal(t, Sort{Key: SortByID, Direction: Descending}, DefaultSort())
}
