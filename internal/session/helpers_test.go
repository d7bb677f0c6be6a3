package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/scheduler"
	"github.com/kingrea/casebook/internal/store"
)

var epoch = time.Date(2024, 3, 14, 21, 0, 0, 0, time.UTC)

// countingStore records writes per key on top of a memory store.
type countingStore struct {
	*store.Memory
	sets    map[string]int
	removes map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{
		Memory:  store.NewMemory(),
		sets:    map[string]int{},
		removes: map[string]int{},
	}
}

func (c *countingStore) Set(key, value string) {
	c.sets[key]++
	c.Memory.Set(key, value)
}

func (c *countingStore) Remove(key string) {
	c.removes[key]++
	c.Memory.Remove(key)
}

type harness struct {
	t       *testing.T
	clock   *scheduler.ManualClock
	loop    *scheduler.Loop
	store   *countingStore
	surface *board.Surface
	mgr     *Manager
	reloads int
}

func testDocument() *board.Document {
	return &board.Document{
		Title: "Test case",
		Sections: []board.Section{
			{ID: "s1", Title: "One", Active: true, Cards: []board.Card{
				{ID: "c1", Title: "First"},
				{ID: "c2", Title: "Second"},
				{ID: "c3", Title: "Third"},
			}},
			{ID: "s2", Title: "Two", Cards: []board.Card{
				{ID: "c4", Title: "Fourth"},
				{ID: "c5", Title: "Fifth"},
			}},
			{ID: "s3", Title: "Three"},
		},
		Suspects: []string{"Mara Quill", "Tobias Wren"},
	}
}

// newHarness wires a manager over doc with a manual clock. st may be nil.
func newHarness(t *testing.T, doc *board.Document, st *countingStore) *harness {
	t.Helper()
	if st == nil {
		st = newCountingStore()
	}
	clock := scheduler.NewManualClock(epoch)
	h := &harness{
		t:       t,
		clock:   clock,
		loop:    scheduler.New(clock),
		store:   st,
		surface: board.NewSurface(doc),
	}
	refs := 0
	h.mgr = New(Config{
		Store:     st,
		Surface:   h.surface,
		Scheduler: h.loop,
		NewRef: func() string {
			refs++
			return fmt.Sprintf("ref-%d", refs)
		},
		Reload: func() { h.reloads++ },
	})
	return h
}

// advance moves the clock and runs whatever became due.
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.loop.Run()
}

func (h *harness) visible(ids ...board.CardID) []bool {
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = h.surface.CardVisible(id)
	}
	return out
}
