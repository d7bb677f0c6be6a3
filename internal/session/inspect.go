package session

import (
	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/store"
)

// Snapshot is a read-only view of a persisted session.
type Snapshot struct {
	Progress board.Progress `json:"progress"`
	Viewed   []board.CardID `json:"viewed"`
	Notes    string         `json:"notes"`
	Theory   *board.Theory  `json:"theory,omitempty"`
}

// Inspect reads the persisted session without touching any surface. Viewed
// ids unknown to layout are dropped, as Tracker.Init would.
func Inspect(st store.Store, keys Keys, layout Layout) Snapshot {
	keys = keys.withDefaults()
	known := make(map[board.CardID]bool)
	for _, section := range layout.Sections() {
		for _, id := range layout.CardsOf(section) {
			known[id] = true
		}
	}
	snap := Snapshot{Viewed: []board.CardID{}}
	seen := make(map[board.CardID]bool)
	for _, id := range decodeViewed(st, keys.Progress) {
		if known[id] && !seen[id] {
			seen[id] = true
			snap.Viewed = append(snap.Viewed, id)
		}
	}
	snap.Progress = board.NewProgress(len(snap.Viewed), len(known))
	snap.Notes, _ = st.Get(keys.Notes)
	if theory, ok := decodeTheory(st, keys.Theory); ok {
		snap.Theory = &theory
	}
	return snap
}
