package session

import (
	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/store"
)

// Config wires a Manager. Store, Surface and Scheduler are required.
type Config struct {
	Store     store.Store
	Surface   Surface
	Scheduler Scheduler
	Keys      Keys
	Timings   Timings
	Journal   Journal
	// Reload runs at the end of ResetAll. Nil re-runs Init.
	Reload func()
	// NewRef names submitted theories. Nil uses random UUIDs.
	NewRef func() string
}

// Manager composes the session components over one surface.
type Manager struct {
	Progress *Tracker
	Nav      *Navigator
	Notes    *Notepad
	Gate     *Gate

	store   store.Store
	keys    Keys
	reload  func()
	journal Journal
}

// New builds every component. Nothing is read or scheduled until Init.
func New(cfg Config) *Manager {
	keys := cfg.Keys.withDefaults()
	timings := cfg.Timings
	if timings == (Timings{}) {
		timings = DefaultTimings()
	}
	journal := journalOrNop(cfg.Journal)
	m := &Manager{
		Progress: NewTracker(cfg.Store, cfg.Surface, cfg.Surface, keys.Progress, journal),
		Nav:      NewNavigator(cfg.Surface, cfg.Surface, cfg.Scheduler, timings, journal),
		Notes:    NewNotepad(cfg.Store, cfg.Surface, cfg.Scheduler, keys.Notes, timings, journal),
		Gate:     NewGate(cfg.Store, cfg.Surface, cfg.Scheduler, keys.Theory, timings, cfg.NewRef, journal),
		store:    cfg.Store,
		keys:     keys,
		reload:   cfg.Reload,
		journal:  journal,
	}
	if m.reload == nil {
		m.reload = m.Init
	}
	return m
}

// Init restores persisted state onto the surface and schedules the initial
// reveal.
func (m *Manager) Init() {
	m.Progress.Init()
	m.Notes.Load()
	m.Gate.Init()
	m.Nav.Init()
	m.Nav.ActivateInitial()
}

// OpenCard marks a card viewed, as opening its detail view does.
func (m *Manager) OpenCard(id board.CardID) bool {
	return m.Progress.MarkViewed(id)
}

// ActivateIndex activates the n-th nav entry.
func (m *Manager) ActivateIndex(n int) bool {
	return m.Nav.ActivateIndex(n)
}

// ToggleNotepad shows or hides the notepad.
func (m *Manager) ToggleNotepad() bool {
	return m.Notes.Toggle()
}

// Stop cancels every deferred callback owned by the session.
func (m *Manager) Stop() {
	m.Nav.Stop()
	m.Notes.Stop()
	m.Gate.Stop()
}

// Keys returns the store keys in use.
func (m *Manager) Keys() Keys {
	return m.keys
}
