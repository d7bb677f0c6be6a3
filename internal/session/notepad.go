package session

import (
	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/scheduler"
	"github.com/kingrea/casebook/internal/store"
)

// Notepad persists the freeform notes with a trailing debounce.
type Notepad struct {
	store   store.Store
	view    NotesView
	sched   Scheduler
	key     string
	timings Timings
	journal Journal

	pending scheduler.Handle
	ack     scheduler.Handle
}

// NewNotepad returns a notepad persisting under key.
func NewNotepad(st store.Store, view NotesView, sched Scheduler, key string, timings Timings, journal Journal) *Notepad {
	return &Notepad{
		store:   st,
		view:    view,
		sched:   sched,
		key:     key,
		timings: timings,
		journal: journalOrNop(journal),
	}
}

// Load restores the saved text into the input. An absent entry clears it.
func (p *Notepad) Load() {
	text, _ := p.store.Get(p.key)
	p.view.SetNoteText(text)
	p.view.SetSaveLabel(board.SaveLabel)
}

// ScheduleSave replaces any pending save with one that fires after the
// autosave delay. Only the text present when it fires is written.
func (p *Notepad) ScheduleSave() {
	if p.pending != 0 {
		p.sched.Cancel(p.pending)
	}
	p.pending = p.sched.After(p.timings.AutosaveDelay, func() {
		p.pending = 0
		p.write()
		p.acknowledge()
	})
}

// Pending reports whether an autosave is scheduled.
func (p *Notepad) Pending() bool {
	return p.pending != 0
}

// Save writes the text now and shows the acknowledgement on the save
// control. A pending autosave is left to fire.
func (p *Notepad) Save() {
	p.write()
	p.acknowledge()
	p.journal.Info("notes saved (%d chars)", len([]rune(p.view.NoteText())))
}

// acknowledge shows the saved label until the acknowledgement delay passes
// without another save.
func (p *Notepad) acknowledge() {
	p.view.SetSaveLabel(board.SavedLabel)
	if p.ack != 0 {
		p.sched.Cancel(p.ack)
	}
	p.ack = p.sched.After(p.timings.SaveAck, func() {
		p.ack = 0
		p.view.SetSaveLabel(board.SaveLabel)
	})
}

// Toggle flips the notepad panel and returns the new visibility.
func (p *Notepad) Toggle() bool {
	visible := !p.view.NotepadVisible()
	p.view.SetNotepadVisible(visible)
	return visible
}

// Flush writes a pending autosave immediately. It is a no-op when nothing is
// pending.
func (p *Notepad) Flush() {
	if p.pending == 0 {
		return
	}
	p.sched.Cancel(p.pending)
	p.pending = 0
	p.write()
}

// Stop drops the pending autosave and acknowledgement without writing.
func (p *Notepad) Stop() {
	if p.pending != 0 {
		p.sched.Cancel(p.pending)
		p.pending = 0
	}
	if p.ack != 0 {
		p.sched.Cancel(p.ack)
		p.ack = 0
	}
}

func (p *Notepad) write() {
	p.store.Set(p.key, p.view.NoteText())
}
