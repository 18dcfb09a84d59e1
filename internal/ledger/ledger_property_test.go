package ledger

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"crypto-journal/internal/models"
)

// Property: for any sequence of open/complete/update/delete operations, the
// resulting collection carries ids exactly 1..N in ascending date order.
func TestProperty_IDsDenseAndChronological(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Each step is encoded as (op, dayOffset, idSeed).
	opGen := gen.IntRange(0, 3)
	dayGen := gen.IntRange(0, 365)
	seedGen := gen.IntRange(0, 50)

	properties.Property("ids are 1..N in ascending date order after any mutation sequence", prop.ForAll(
		func(ops []int, days []int, seeds []int) bool {
			var trades []models.Trade
			n := len(ops)
			if len(days) < n {
				n = len(days)
			}
			if len(seeds) < n {
				n = len(seeds)
			}
			for i := 0; i < n; i++ {
				date := base.AddDate(0, 0, days[i])
				switch ops[i] {
				case 0:
					trades = Open(trades, models.Trade{Date: date, Asset: "BTC", Direction: models.DirectionLong, EntryPrice: 100, Size: 1})
				case 1:
					exit := 100.0 + float64(seeds[i])
					trades = Complete(trades, models.Trade{Date: date, Asset: "ETH", Direction: models.DirectionShort, EntryPrice: 100, ExitPrice: &exit, Size: 1})
				case 2:
					if len(trades) > 0 {
						target := trades[seeds[i]%len(trades)]
						target.Date = date
						trades, _ = Update(trades, target)
					}
				case 3:
					if len(trades) > 0 {
						id := trades[seeds[i]%len(trades)].ID
						trades, _ = Delete(trades, id)
					}
				}
			}

			for i, tr := range trades {
				if tr.ID != i+1 {
					return false
				}
				if i > 0 && trades[i-1].Date.After(tr.Date) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(opGen),
		gen.SliceOf(dayGen),
		gen.SliceOf(seedGen),
	))

	properties.TestingRun(t)
}

// Property: pnl derivation for completed trades matches the direction
// formula for all positive entry, exit and size values.
func TestProperty_CompletePnLFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	priceGen := gen.Float64Range(0.01, 100000)
	sizeGen := gen.Float64Range(0.0001, 1000)

	properties.Property("long pnl == (exit-entry)*size, short pnl == (entry-exit)*size", prop.ForAll(
		func(entry, exit, size float64) bool {
			long := Complete(nil, models.Trade{
				Date: time.Now(), Asset: "BTC", Direction: models.DirectionLong,
				EntryPrice: entry, ExitPrice: &exit, Size: size,
			})
			short := Complete(nil, models.Trade{
				Date: time.Now(), Asset: "BTC", Direction: models.DirectionShort,
				EntryPrice: entry, ExitPrice: &exit, Size: size,
			})
			return *long[0].PnL == (exit-entry)*size && *short[0].PnL == (entry-exit)*size
		},
		priceGen, priceGen, sizeGen,
	))

	properties.TestingRun(t)
}
