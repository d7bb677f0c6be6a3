package board

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSurfaceStartsHiddenWithDocumentMarks(t *testing.T) {
	s := NewSurface(Default())
	assert.Equal(t, []SectionID{"briefing"}, s.ActiveSections())
	assert.Equal(t, []SectionID{"briefing"}, s.ActiveNavEntries())
	for _, sec := range s.Sections() {
		for _, card := range s.CardsOf(sec) {
			assert.False(t, s.CardVisible(card))
			assert.False(t, s.CardViewed(card))
		}
	}
	assert.Equal(t, SaveLabel, s.SaveLabel())
	assert.True(t, s.FormVisible())
}

func TestSurfaceWithoutActiveSection(t *testing.T) {
	doc := &Document{Title: "T", Sections: []Section{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}
	s := NewSurface(doc)
	_, ok := s.InitialSection()
	assert.False(t, ok)
	assert.Empty(t, s.ActiveSections())
}

func TestSurfaceListsAreCopies(t *testing.T) {
	s := NewSurface(Default())
	cards := s.CardsOf("suspects")
	cards[0] = "tampered"
	assert.Equal(t, CardID("suspect-quill"), s.CardsOf("suspects")[0])
	assert.Empty(t, s.CardsOf("unknown"))
}

func TestSurfaceConfirmationSwapsPanels(t *testing.T) {
	s := NewSurface(Default())
	s.ShowConfirmation(Theory{Suspect: "Mara Quill"})
	assert.False(t, s.FormVisible())
	th, ok := s.Confirmation()
	require.True(t, ok)
	assert.Equal(t, "Mara Quill", th.Suspect)

	s.ShowForm()
	assert.True(t, s.FormVisible())
	_, ok = s.Confirmation()
	assert.False(t, ok)
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: v1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() { changed <- struct{}{} }, nil)
	}()

	// give the watcher a moment to register before writing
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-changed:
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("title: v2\n"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
}
