package session

import (
	"encoding/json"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/store"
)

// Tracker keeps the set of viewed cards and publishes the counters.
type Tracker struct {
	store   store.Store
	layout  Layout
	view    ProgressView
	key     string
	journal Journal

	known  map[board.CardID]bool
	order  []board.CardID
	viewed map[board.CardID]bool
	// stored is the persisted array, including ids another board wrote.
	stored []board.CardID
}

// NewTracker returns a tracker persisting under key.
func NewTracker(st store.Store, layout Layout, view ProgressView, key string, journal Journal) *Tracker {
	return &Tracker{
		store:   st,
		layout:  layout,
		view:    view,
		key:     key,
		journal: journalOrNop(journal),
	}
}

// Init computes the total from the layout, restores the persisted set and
// marks the restored cards viewed. Every other card is marked unviewed.
// Persisted ids the layout does not know are kept on disk but not counted.
func (t *Tracker) Init() {
	t.known = make(map[board.CardID]bool)
	var all []board.CardID
	for _, section := range t.layout.Sections() {
		for _, id := range t.layout.CardsOf(section) {
			if t.known[id] {
				continue
			}
			t.known[id] = true
			all = append(all, id)
		}
	}

	t.order = nil
	t.stored = nil
	t.viewed = make(map[board.CardID]bool)
	seen := make(map[board.CardID]bool)
	for _, id := range decodeViewed(t.store, t.key) {
		if seen[id] {
			continue
		}
		seen[id] = true
		t.stored = append(t.stored, id)
		if t.known[id] {
			t.viewed[id] = true
			t.order = append(t.order, id)
		}
	}
	for _, id := range all {
		t.view.SetCardViewed(id, t.viewed[id])
	}
	t.publish()
}

// MarkViewed records id as viewed. It reports whether the set changed;
// repeated and unknown ids leave every state untouched.
func (t *Tracker) MarkViewed(id board.CardID) bool {
	if !t.known[id] {
		return false
	}
	if t.viewed[id] {
		return false
	}
	t.viewed[id] = true
	t.order = append(t.order, id)
	t.stored = append(t.stored, id)
	t.view.SetCardViewed(id, true)
	t.persist()
	t.publish()
	t.journal.Info("viewed %s (%d/%d)", id, len(t.order), len(t.known))
	return true
}

// Viewed returns the viewed cards in the order they were first viewed.
func (t *Tracker) Viewed() []board.CardID {
	out := make([]board.CardID, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether id was viewed.
func (t *Tracker) Has(id board.CardID) bool {
	return t.viewed[id]
}

// Counters returns the current progress counters.
func (t *Tracker) Counters() board.Progress {
	return board.NewProgress(len(t.order), len(t.known))
}

func (t *Tracker) publish() {
	t.view.SetProgress(t.Counters())
}

func (t *Tracker) persist() {
	ids := make([]string, len(t.stored))
	for i, id := range t.stored {
		ids[i] = string(id)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	t.store.Set(t.key, string(data))
}

// decodeViewed reads the persisted array. Absent or malformed values read as
// empty.
func decodeViewed(st store.Store, key string) []board.CardID {
	raw, ok := st.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	out := make([]board.CardID, 0, len(ids))
	for _, id := range ids {
		out = append(out, board.CardID(id))
	}
	return out
}
