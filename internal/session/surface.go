package session

import (
	"time"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/scheduler"
)

// Layout is the read side of the render surface.
type Layout interface {
	Sections() []board.SectionID
	CardsOf(board.SectionID) []board.CardID
	InitialSection() (board.SectionID, bool)
}

// ProgressView receives viewed marks and counters.
type ProgressView interface {
	SetCardViewed(board.CardID, bool)
	SetProgress(board.Progress)
}

// NavView receives the navigation marks.
type NavView interface {
	SetSectionActive(board.SectionID, bool)
	SetNavActive(board.SectionID, bool)
	SetCardVisible(board.CardID, bool)
	ScrollTop()
}

// NotesView is the notepad input and its save control.
type NotesView interface {
	NoteText() string
	SetNoteText(string)
	NotepadVisible() bool
	SetNotepadVisible(bool)
	SetSaveLabel(string)
}

// GateView swaps between the form and the confirmation panel.
type GateView interface {
	ShowForm()
	ShowConfirmation(board.Theory)
	SetCelebrating(bool)
}

// Surface is everything a Manager needs from the render surface.
// *board.Surface implements it.
type Surface interface {
	Layout
	ProgressView
	NavView
	NotesView
	GateView
}

// Scheduler defers callbacks. *scheduler.Loop implements it.
type Scheduler interface {
	Now() time.Time
	After(time.Duration, func()) scheduler.Handle
	Cancel(scheduler.Handle) bool
}

// Journal records user-visible session activity. *logbook.Logbook implements it.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

type nopJournal struct{}

func (nopJournal) Info(string, ...any) {}
func (nopJournal) Warn(string, ...any) {}

func journalOrNop(j Journal) Journal {
	if j == nil {
		return nopJournal{}
	}
	return j
}
