// Package store provides the opaque key-value persistence service backing
// the journal, plus a typed repository that encodes application state
// to and from it.
package store

// Keys for every persisted piece of journal state.
const (
	KeyTrades         = "trades"
	KeyInitialCapital = "initial-capital"
	KeyAudits         = "audits"
	KeyStrategies     = "strategies"
	KeyActiveStrategy = "active-strategy-id"
	KeyDismissedUntil = "dismissed-streak-watermark"
	KeySettings       = "settings"
)

// AllKeys lists every persisted key, in wipe order.
var AllKeys = []string{
	KeyTrades,
	KeyInitialCapital,
	KeyAudits,
	KeyStrategies,
	KeyActiveStrategy,
	KeyDismissedUntil,
	KeySettings,
}

// KV is the persistence contract the journal consumes. Load reports
// whether the key existed; Save overwrites; Remove is a no-op for absent
// keys.
type KV interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	Remove(key string) error
	Close() error
}
