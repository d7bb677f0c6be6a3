package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/casebook/internal/board"
)

func TestTracker_InitCountsDistinctCards(t *testing.T) {
	doc := testDocument()
	// Same card listed in two sections counts once.
	doc.Sections[2].Cards = []board.Card{{ID: "c1", Title: "First again"}}
	h := newHarness(t, doc, nil)
	h.mgr.Progress.Init()

	assert.Equal(t, board.Progress{Viewed: 0, Total: 5}, h.surface.Progress())
}

func TestTracker_MarkViewedIsIdempotent(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Progress.Init()

	require.True(t, h.mgr.OpenCard("c2"))
	stored, _ := h.store.Get(DefaultKeys().Progress)
	counters := h.surface.Progress()

	assert.False(t, h.mgr.OpenCard("c2"))
	again, _ := h.store.Get(DefaultKeys().Progress)
	assert.Equal(t, stored, again)
	assert.Equal(t, counters, h.surface.Progress())
	assert.Equal(t, 1, h.store.sets[DefaultKeys().Progress])
	assert.Equal(t, 1, h.surface.Progress().Viewed)
}

func TestTracker_ViewedCountIsMonotonic(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Progress.Init()

	last := 0
	for _, id := range []board.CardID{"c1", "c1", "c4", "nope", "c3", "c4", "c5", "c2"} {
		h.mgr.OpenCard(id)
		p := h.surface.Progress()
		assert.GreaterOrEqual(t, p.Viewed, last)
		assert.LessOrEqual(t, p.Viewed, p.Total)
		last = p.Viewed
	}
	assert.Equal(t, board.NewProgress(5, 5), h.surface.Progress())
	assert.Equal(t, 100, h.surface.Progress().Percent())
}

func TestTracker_RoundTripAcrossSessions(t *testing.T) {
	st := newCountingStore()
	first := newHarness(t, testDocument(), st)
	first.mgr.Init()
	first.mgr.OpenCard("c1")
	first.mgr.OpenCard("c3")

	second := newHarness(t, testDocument(), st)
	second.mgr.Init()

	assert.Equal(t, []board.CardID{"c1", "c3"}, second.mgr.Progress.Viewed())
	assert.True(t, second.surface.CardViewed("c1"))
	assert.False(t, second.surface.CardViewed("c2"))
	assert.True(t, second.surface.CardViewed("c3"))
	p := second.surface.Progress()
	assert.Equal(t, 2, p.Viewed)
	assert.Equal(t, 5, p.Total)
	assert.InDelta(t, 40.0, p.Percentage, 0.001)
}

func TestTracker_UnknownIDIsIgnored(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Progress.Init()

	assert.False(t, h.mgr.OpenCard("ghost"))
	assert.False(t, h.surface.CardViewed("ghost"))
	assert.Zero(t, h.store.sets[DefaultKeys().Progress])
	assert.Equal(t, 0, h.surface.Progress().Viewed)
}

func TestTracker_MalformedOrStaleValues(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		count int
	}{
		{name: "not json", raw: "{{", count: 0},
		{name: "wrong shape", raw: `{"c1":true}`, count: 0},
		{name: "null", raw: "null", count: 0},
		{name: "foreign ids not counted", raw: `["c1","removed","c4"]`, count: 2},
		{name: "duplicates collapse", raw: `["c1","c1"]`, count: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newCountingStore()
			st.Memory.Set(DefaultKeys().Progress, tt.raw)
			h := newHarness(t, testDocument(), st)
			h.mgr.Progress.Init()

			assert.Equal(t, tt.count, h.surface.Progress().Viewed)
			assert.LessOrEqual(t, h.surface.Progress().Viewed, h.surface.Progress().Total)
		})
	}
}

func TestTracker_KeepsIDsFromOtherBoards(t *testing.T) {
	st := newCountingStore()
	st.Memory.Set(DefaultKeys().Progress, `["other-1","c1","other-2"]`)
	h := newHarness(t, testDocument(), st)
	h.mgr.Progress.Init()

	assert.Equal(t, []board.CardID{"c1"}, h.mgr.Progress.Viewed())
	require.True(t, h.mgr.OpenCard("c4"))
	assert.Equal(t, board.NewProgress(2, 5), h.surface.Progress())

	raw, _ := h.store.Get(DefaultKeys().Progress)
	assert.JSONEq(t, `["other-1","c1","other-2","c4"]`, raw)
}

func TestTracker_EmptyBoardReportsZeroPercent(t *testing.T) {
	doc := &board.Document{Title: "Empty", Sections: []board.Section{{ID: "s1", Title: "Nothing"}}}
	h := newHarness(t, doc, nil)
	h.mgr.Progress.Init()

	assert.Equal(t, board.Progress{}, h.surface.Progress())
	assert.Equal(t, 0, h.surface.Progress().Percent())
}

func TestTracker_RestoredCardsClearStaleMarks(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.surface.SetCardViewed("c2", true)
	h.mgr.Progress.Init()

	assert.False(t, h.surface.CardViewed("c2"))
}
