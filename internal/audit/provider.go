// Package audit integrates the external AI audit provider: given a trade
// set and optional strategy context it returns a natural-language
// assessment of the trading. The provider is fire-and-forget from the
// journal's perspective: a failure propagates to the caller and no state
// is touched.
package audit

import (
	"context"

	"crypto-journal/internal/models"
)

// Provider is the external audit contract.
type Provider interface {
	RunAudit(ctx context.Context, trades []models.Trade, strategy *models.Strategy) (string, error)
}
