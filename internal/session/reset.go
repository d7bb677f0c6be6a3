package session

import "github.com/kingrea/casebook/internal/store"

// ResetAll forgets every persisted entry of the session and reloads. Pending
// deferred work is cancelled first so nothing written before the reset can
// land after it.
func (m *Manager) ResetAll() {
	m.Stop()
	ClearKeys(m.store, m.keys)
	m.journal.Warn("session reset")
	m.reload()
}

// ClearKeys removes every session entry from st.
func ClearKeys(st store.Store, keys Keys) {
	for _, key := range keys.withDefaults().All() {
		st.Remove(key)
	}
}
