package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/casebook/internal/board"
)

func TestNavigator_InitUsesDocumentActiveSection(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Active = false
	doc.Sections[1].Active = true
	h := newHarness(t, doc, nil)
	h.mgr.Nav.Init()

	active, ok := h.mgr.Nav.Active()
	require.True(t, ok)
	assert.Equal(t, board.SectionID("s2"), active)
	assert.Equal(t, []board.SectionID{"s2"}, h.surface.ActiveSections())
	assert.Equal(t, []board.SectionID{"s2"}, h.surface.ActiveNavEntries())
}

func TestNavigator_InitFallsBackToFirstSection(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Active = false
	h := newHarness(t, doc, nil)
	h.mgr.Nav.Init()

	active, _ := h.mgr.Nav.Active()
	assert.Equal(t, board.SectionID("s1"), active)
	assert.Equal(t, []board.SectionID{"s1"}, h.surface.ActiveSections())
}

func TestNavigator_ExactlyOneActiveAfterEveryActivation(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()

	for _, id := range []board.SectionID{"s2", "s3", "s3", "bogus", "s1", "s2"} {
		h.mgr.Nav.Activate(id)
		assert.Len(t, h.surface.ActiveSections(), 1)
		assert.Len(t, h.surface.ActiveNavEntries(), 1)
		assert.Equal(t, h.surface.ActiveSections(), h.surface.ActiveNavEntries())
	}
	active, _ := h.mgr.Nav.Active()
	assert.Equal(t, board.SectionID("s2"), active)
}

func TestNavigator_UnknownSectionIsNoop(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()
	scrolls := h.surface.ScrollRequests()

	assert.False(t, h.mgr.Nav.Activate("bogus"))
	assert.Equal(t, []board.SectionID{"s1"}, h.surface.ActiveSections())
	assert.Equal(t, scrolls, h.surface.ScrollRequests())
	assert.Zero(t, h.loop.Pending())
}

func TestNavigator_RevealStaggersCards(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()
	for _, id := range []board.CardID{"c1", "c2", "c3"} {
		h.surface.SetCardVisible(id, true)
	}

	require.True(t, h.mgr.Nav.Activate("s1"))
	assert.Equal(t, []bool{false, false, false}, h.visible("c1", "c2", "c3"))
	assert.Equal(t, 1, h.surface.ScrollRequests())

	h.advance(0)
	assert.Equal(t, []bool{true, false, false}, h.visible("c1", "c2", "c3"))
	h.advance(99 * time.Millisecond)
	assert.Equal(t, []bool{true, false, false}, h.visible("c1", "c2", "c3"))
	h.advance(time.Millisecond)
	assert.Equal(t, []bool{true, true, false}, h.visible("c1", "c2", "c3"))
	h.advance(100 * time.Millisecond)
	assert.Equal(t, []bool{true, true, true}, h.visible("c1", "c2", "c3"))
	assert.Zero(t, h.loop.Pending())
}

func TestNavigator_ActivateIndexIsOneBased(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()

	assert.True(t, h.mgr.ActivateIndex(2))
	active, _ := h.mgr.Nav.Active()
	assert.Equal(t, board.SectionID("s2"), active)

	assert.False(t, h.mgr.ActivateIndex(0))
	assert.False(t, h.mgr.ActivateIndex(4))
	active, _ = h.mgr.Nav.Active()
	assert.Equal(t, board.SectionID("s2"), active)
}

func TestNavigator_ActivateInitialWaitsForStartupDelay(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Init()
	assert.Equal(t, []bool{false, false, false}, h.visible("c1", "c2", "c3"))

	h.advance(299 * time.Millisecond)
	assert.False(t, h.surface.CardVisible("c1"))
	h.advance(time.Millisecond)
	assert.True(t, h.surface.CardVisible("c1"))
	h.advance(200 * time.Millisecond)
	assert.Equal(t, []bool{true, true, true}, h.visible("c1", "c2", "c3"))
	assert.Zero(t, h.surface.ScrollRequests(), "initial reveal does not scroll")
}

func TestNavigator_ReplayCancelsStaleSteps(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()

	h.mgr.Nav.Activate("s1")
	h.advance(150 * time.Millisecond)
	assert.Equal(t, []bool{true, true, false}, h.visible("c1", "c2", "c3"))

	h.mgr.Nav.Activate("s1")
	assert.Equal(t, []bool{false, false, false}, h.visible("c1", "c2", "c3"))
	// The first run's c3 step was due at 200ms; it must not fire.
	h.advance(60 * time.Millisecond)
	assert.Equal(t, []bool{true, false, false}, h.visible("c1", "c2", "c3"))
	h.advance(40 * time.Millisecond)
	assert.Equal(t, []bool{true, true, false}, h.visible("c1", "c2", "c3"))
	h.advance(100 * time.Millisecond)
	assert.Equal(t, []bool{true, true, true}, h.visible("c1", "c2", "c3"))
}

func TestNavigator_SwitchingBeforeStartupKeepsNewSection(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Init()
	h.mgr.Nav.Activate("s2")
	h.advance(time.Second)

	assert.Equal(t, []board.SectionID{"s2"}, h.surface.ActiveSections())
	assert.Equal(t, []bool{true, true}, h.visible("c4", "c5"))
}

func TestNavigator_EmptySectionActivates(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()

	assert.True(t, h.mgr.Nav.Activate("s3"))
	assert.Equal(t, []board.SectionID{"s3"}, h.surface.ActiveSections())
	assert.Zero(t, h.loop.Pending())
}

func TestNavigator_StopDropsPendingReveal(t *testing.T) {
	h := newHarness(t, testDocument(), nil)
	h.mgr.Nav.Init()
	h.mgr.Nav.Activate("s1")
	h.mgr.Nav.Stop()
	h.advance(time.Second)

	assert.Equal(t, []bool{false, false, false}, h.visible("c1", "c2", "c3"))
}
