// Package backup implements the portable backup bundle and the
// spreadsheet import adapter. Both feed the same add-trades contract the
// ledger exposes; neither touches journal state on a validation failure.
package backup

import (
	"encoding/json"
	"time"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

// Export renders a backup bundle, stamping it with the current time.
func Export(trades []models.Trade, initialCapital float64, strategies []models.Strategy, activeStrategyID string) ([]byte, error) {
	bundle := models.Backup{
		Trades:           trades,
		InitialCapital:   initialCapital,
		Strategies:       strategies,
		ActiveStrategyID: activeStrategyID,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
	if bundle.Trades == nil {
		bundle.Trades = []models.Trade{}
	}
	if bundle.Strategies == nil {
		bundle.Strategies = []models.Strategy{}
	}
	return json.MarshalIndent(bundle, "", "  ")
}

// Parse validates and decodes a backup bundle. The shape is checked field
// by field before anything is accepted: trades and strategies must be
// arrays, initialCapital numeric and timestamp a string.
func Parse(data []byte) (*models.Backup, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidBackup, "not a JSON object")
	}

	if err := requireKind(fields, "trades", new([]json.RawMessage)); err != nil {
		return nil, err
	}
	if err := requireKind(fields, "strategies", new([]json.RawMessage)); err != nil {
		return nil, err
	}
	if err := requireKind(fields, "initialCapital", new(float64)); err != nil {
		return nil, err
	}
	if err := requireKind(fields, "timestamp", new(string)); err != nil {
		return nil, err
	}

	var bundle models.Backup
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidBackup, err.Error())
	}
	return &bundle, nil
}

func requireKind(fields map[string]json.RawMessage, key string, target interface{}) error {
	raw, ok := fields[key]
	if !ok {
		return errors.Wrapf(errors.ErrInvalidBackup, "missing field %q", key)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.Wrapf(errors.ErrInvalidBackup, "field %q has the wrong type", key)
	}
	return nil
}
