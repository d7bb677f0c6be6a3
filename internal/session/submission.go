package session

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/scheduler"
	"github.com/kingrea/casebook/internal/store"
)

// Fields are the values entered in the conclusion form.
type Fields struct {
	Suspect  string
	Motive   string
	Evidence string
	Method   string
}

// Gate is the one-time submission of a theory.
type Gate struct {
	store   store.Store
	view    GateView
	sched   Scheduler
	key     string
	timings Timings
	newRef  func() string
	journal Journal

	celebration scheduler.Handle
}

// NewGate returns a gate persisting under key. newRef may be nil.
func NewGate(st store.Store, view GateView, sched Scheduler, key string, timings Timings, newRef func() string, journal Journal) *Gate {
	if newRef == nil {
		newRef = func() string { return uuid.NewString() }
	}
	return &Gate{
		store:   st,
		view:    view,
		sched:   sched,
		key:     key,
		timings: timings,
		newRef:  newRef,
		journal: journalOrNop(journal),
	}
}

// Init shows the confirmation when a theory is already stored, else the
// form. It reports whether a theory was found.
func (g *Gate) Init() bool {
	theory, ok := g.Record()
	if !ok {
		g.view.ShowForm()
		return false
	}
	g.view.ShowConfirmation(theory)
	return true
}

// Submit records the theory and shows the confirmation. The record is
// persisted before the confirmation is shown. The first record wins: when a
// theory is already stored it is kept as is, never overwritten, and shown
// again.
func (g *Gate) Submit(f Fields) board.Theory {
	if existing, ok := g.Record(); ok {
		g.view.ShowConfirmation(existing)
		return existing
	}
	theory := board.Theory{
		Ref:         g.newRef(),
		Suspect:     strings.TrimSpace(f.Suspect),
		Motive:      strings.TrimSpace(f.Motive),
		Evidence:    strings.TrimSpace(f.Evidence),
		Method:      strings.TrimSpace(f.Method),
		SubmittedAt: g.sched.Now(),
	}
	if data, err := json.Marshal(theory); err == nil {
		g.store.Set(g.key, string(data))
	}
	g.view.ShowConfirmation(theory)
	g.celebrate()
	g.journal.Info("theory submitted: %s (ref %s)", theory.Suspect, theory.Ref)
	return theory
}

// Record returns the stored theory. A malformed record reads as absent.
func (g *Gate) Record() (board.Theory, bool) {
	return decodeTheory(g.store, g.key)
}

// Submitted reports whether a theory is stored.
func (g *Gate) Submitted() bool {
	_, ok := g.Record()
	return ok
}

// Stop clears the celebration and its timer.
func (g *Gate) Stop() {
	if g.celebration != 0 {
		g.sched.Cancel(g.celebration)
		g.celebration = 0
		g.view.SetCelebrating(false)
	}
}

func (g *Gate) celebrate() {
	g.Stop()
	g.view.SetCelebrating(true)
	g.celebration = g.sched.After(g.timings.Celebration, func() {
		g.celebration = 0
		g.view.SetCelebrating(false)
	})
}

func decodeTheory(st store.Store, key string) (board.Theory, bool) {
	raw, ok := st.Get(key)
	if !ok || raw == "" {
		return board.Theory{}, false
	}
	var theory *board.Theory
	if err := json.Unmarshal([]byte(raw), &theory); err != nil || theory == nil {
		return board.Theory{}, false
	}
	return *theory, true
}
