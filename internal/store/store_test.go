package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

func tempKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	kv := tempKV(t)

	_, ok, err := kv.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Save("k", []byte("v1")))
	raw, ok, err := kv.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), raw)

	require.NoError(t, kv.Save("k", []byte("v2")))
	raw, _, _ = kv.Load("k")
	assert.Equal(t, []byte("v2"), raw)

	require.NoError(t, kv.Remove("k"))
	_, ok, err = kv.Load("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	require.NoError(t, kv.Remove("k"))
}

func TestRepositoryRoundTrip(t *testing.T) {
	kv := tempKV(t)
	repo := NewRepository(kv, zerolog.Nop())

	pnl := 42.5
	trades := []models.Trade{{
		ID:         1,
		Date:       time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC),
		Asset:      "BTC",
		Direction:  models.DirectionLong,
		EntryPrice: 100,
		Size:       2,
		Status:     models.StatusClosed,
		PnL:        &pnl,
	}}
	until := 15

	repo.SaveTrades(trades)
	repo.SaveInitialCapital(2500.75)
	repo.SaveAudits([]models.Audit{{ID: "a1", Date: "2024-02-02", Result: "ok"}})
	repo.SaveStrategies([]models.Strategy{{ID: "s1", Name: "Breakout"}})
	repo.SaveActiveStrategy("s1")
	repo.SaveDismissedUntil(&until)
	repo.SaveSettings(models.Settings{AuditRemindersEnabled: false, AuditMilestoneFrequency: 25})

	state := repo.LoadState()

	require.Len(t, state.Trades, 1)
	assert.Equal(t, "BTC", state.Trades[0].Asset)
	require.NotNil(t, state.Trades[0].PnL)
	assert.InDelta(t, 42.5, *state.Trades[0].PnL, 1e-9)
	assert.InDelta(t, 2500.75, state.InitialCapital, 1e-9)
	require.Len(t, state.Audits, 1)
	require.Len(t, state.Strategies, 1)
	assert.Equal(t, "s1", state.ActiveStrategyID)
	require.NotNil(t, state.DismissedUntil)
	assert.Equal(t, 15, *state.DismissedUntil)
	assert.False(t, state.Settings.AuditRemindersEnabled)
	assert.Equal(t, 25, state.Settings.AuditMilestoneFrequency)
}

func TestRepositoryDefaultsOnEmptyStore(t *testing.T) {
	repo := NewRepository(tempKV(t), zerolog.Nop())

	state := repo.LoadState()

	assert.Empty(t, state.Trades)
	assert.Zero(t, state.InitialCapital)
	assert.Nil(t, state.DismissedUntil)
	assert.Equal(t, models.DefaultSettings(), state.Settings)
}

func TestRepositoryToleratesMalformedValues(t *testing.T) {
	kv := tempKV(t)
	require.NoError(t, kv.Save(KeyTrades, []byte("{not json")))
	require.NoError(t, kv.Save(KeyInitialCapital, []byte("lots")))
	require.NoError(t, kv.Save(KeyDismissedUntil, []byte("soon")))
	require.NoError(t, kv.Save(KeySettings, []byte("[]")))

	repo := NewRepository(kv, zerolog.Nop())
	state := repo.LoadState()

	assert.Empty(t, state.Trades)
	assert.Zero(t, state.InitialCapital)
	assert.Nil(t, state.DismissedUntil)
	assert.Equal(t, models.DefaultSettings(), state.Settings)
}

func TestRepositoryClearsOptionalKeys(t *testing.T) {
	kv := tempKV(t)
	repo := NewRepository(kv, zerolog.Nop())

	until := 9
	repo.SaveDismissedUntil(&until)
	repo.SaveActiveStrategy("s1")

	repo.SaveDismissedUntil(nil)
	repo.SaveActiveStrategy("")

	state := repo.LoadState()
	assert.Nil(t, state.DismissedUntil)
	assert.Empty(t, state.ActiveStrategyID)
}

func TestKVFailuresAreTypedStoreErrors(t *testing.T) {
	kv := tempKV(t)
	require.NoError(t, kv.Close())

	var serr *errors.StoreError

	_, _, err := kv.Load("trades")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "load", serr.Operation)
	assert.Equal(t, "trades", serr.Key)

	err = kv.Save("trades", []byte("{}"))
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "save", serr.Operation)

	err = kv.Remove("trades")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "remove", serr.Operation)
}

func TestNewSQLiteKVReportsDatabaseError(t *testing.T) {
	_, err := NewSQLiteKV(filepath.Join(t.TempDir(), "missing-dir", "journal.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDatabaseError))
}

func TestRepositoryWipe(t *testing.T) {
	kv := tempKV(t)
	repo := NewRepository(kv, zerolog.Nop())

	repo.SaveTrades([]models.Trade{{ID: 1, Asset: "BTC"}})
	repo.SaveInitialCapital(100)
	repo.Wipe()

	state := repo.LoadState()
	assert.Empty(t, state.Trades)
	assert.Zero(t, state.InitialCapital)
}
