package store

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"crypto-journal/internal/models"
)

// State is everything the journal persists between sessions.
type State struct {
	Trades           []models.Trade
	InitialCapital   float64
	Audits           []models.Audit
	Strategies       []models.Strategy
	ActiveStrategyID string
	DismissedUntil   *int
	Settings         models.Settings
}

// Repository encodes journal state onto a KV. Loads tolerate absent or
// malformed values by falling back to defaults; writes are best-effort,
// logged and swallowed so a persistence failure never interrupts the
// in-memory flow.
type Repository struct {
	kv  KV
	log zerolog.Logger
}

// NewRepository creates a repository over the given KV.
func NewRepository(kv KV, log zerolog.Logger) *Repository {
	return &Repository{kv: kv, log: log}
}

// LoadState reads every key, substituting defaults for anything absent or
// unreadable.
func (r *Repository) LoadState() State {
	s := State{Settings: models.DefaultSettings()}

	r.loadJSON(KeyTrades, &s.Trades)
	r.loadJSON(KeyAudits, &s.Audits)
	r.loadJSON(KeyStrategies, &s.Strategies)

	if raw, ok := r.loadRaw(KeyInitialCapital); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64); err == nil {
			s.InitialCapital = v
		} else {
			r.log.Warn().Str("key", KeyInitialCapital).Msg("Malformed persisted value, using default")
		}
	}

	if raw, ok := r.loadRaw(KeyActiveStrategy); ok {
		s.ActiveStrategyID = string(raw)
	}

	if raw, ok := r.loadRaw(KeyDismissedUntil); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(string(raw))); err == nil {
			s.DismissedUntil = &v
		} else {
			r.log.Warn().Str("key", KeyDismissedUntil).Msg("Malformed persisted value, using default")
		}
	}

	// Defaults are merged over whatever subset of settings was stored.
	if raw, ok := r.loadRaw(KeySettings); ok {
		stored := models.DefaultSettings()
		if err := json.Unmarshal(raw, &stored); err == nil {
			s.Settings = stored
		} else {
			r.log.Warn().Str("key", KeySettings).Err(err).Msg("Malformed persisted value, using default")
		}
	}

	return s
}

// SaveTrades persists the trade collection.
func (r *Repository) SaveTrades(trades []models.Trade) {
	r.saveJSON(KeyTrades, trades)
}

// SaveInitialCapital persists the starting capital.
func (r *Repository) SaveInitialCapital(capital float64) {
	r.save(KeyInitialCapital, []byte(strconv.FormatFloat(capital, 'f', -1, 64)))
}

// SaveAudits persists the audit history.
func (r *Repository) SaveAudits(audits []models.Audit) {
	r.saveJSON(KeyAudits, audits)
}

// SaveStrategies persists the strategy list.
func (r *Repository) SaveStrategies(strategies []models.Strategy) {
	r.saveJSON(KeyStrategies, strategies)
}

// SaveActiveStrategy persists (or clears) the active strategy id.
func (r *Repository) SaveActiveStrategy(id string) {
	if id == "" {
		r.remove(KeyActiveStrategy)
		return
	}
	r.save(KeyActiveStrategy, []byte(id))
}

// SaveDismissedUntil persists (or clears) the streak dismissal watermark.
func (r *Repository) SaveDismissedUntil(until *int) {
	if until == nil {
		r.remove(KeyDismissedUntil)
		return
	}
	r.save(KeyDismissedUntil, []byte(strconv.Itoa(*until)))
}

// SaveSettings persists the journal settings.
func (r *Repository) SaveSettings(settings models.Settings) {
	r.saveJSON(KeySettings, settings)
}

// Wipe removes every persisted key.
func (r *Repository) Wipe() {
	for _, key := range AllKeys {
		r.remove(key)
	}
}

func (r *Repository) loadRaw(key string) ([]byte, bool) {
	raw, ok, err := r.kv.Load(key)
	if err != nil {
		r.log.Warn().Str("key", key).Err(err).Msg("Failed to load persisted value, using default")
		return nil, false
	}
	return raw, ok
}

func (r *Repository) loadJSON(key string, target interface{}) {
	raw, ok := r.loadRaw(key)
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, target); err != nil {
		r.log.Warn().Str("key", key).Err(err).Msg("Malformed persisted value, using default")
	}
}

func (r *Repository) saveJSON(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Warn().Str("key", key).Err(err).Msg("Failed to encode value for persistence")
		return
	}
	r.save(key, data)
}

func (r *Repository) save(key string, value []byte) {
	if err := r.kv.Save(key, value); err != nil {
		r.log.Warn().Str("key", key).Err(err).Msg("Failed to persist value")
	}
}

func (r *Repository) remove(key string) {
	if err := r.kv.Remove(key); err != nil {
		r.log.Warn().Str("key", key).Err(err).Msg("Failed to remove persisted value")
	}
}
