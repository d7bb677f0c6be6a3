package session

import (
	"time"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/scheduler"
)

// Navigator is the section state machine. Exactly one section is active
// once Init has run on a non-empty layout.
type Navigator struct {
	layout  Layout
	view    NavView
	sched   Scheduler
	timings Timings
	journal Journal

	active  board.SectionID
	reveals map[board.SectionID][]scheduler.Handle
	startup scheduler.Handle
}

// NewNavigator returns a navigator over layout.
func NewNavigator(layout Layout, view NavView, sched Scheduler, timings Timings, journal Journal) *Navigator {
	return &Navigator{
		layout:  layout,
		view:    view,
		sched:   sched,
		timings: timings,
		journal: journalOrNop(journal),
		reveals: make(map[board.SectionID][]scheduler.Handle),
	}
}

// Init makes the initial section the only active one. The initial section
// is the one the document marks active, else the first section.
func (n *Navigator) Init() {
	n.Stop()
	n.active = ""
	initial, ok := n.initialSection()
	if !ok {
		return
	}
	for _, id := range n.layout.Sections() {
		n.view.SetSectionActive(id, id == initial)
		n.view.SetNavActive(id, id == initial)
	}
	n.active = initial
}

// Activate switches to id and replays its reveal sequence. Unknown ids are
// ignored. Activating the current section replays the reveal.
func (n *Navigator) Activate(id board.SectionID) bool {
	if !n.known(id) {
		return false
	}
	if n.active != "" {
		n.view.SetSectionActive(n.active, false)
		n.view.SetNavActive(n.active, false)
	}
	n.view.SetSectionActive(id, true)
	n.view.SetNavActive(id, true)
	n.active = id
	n.reveal(id)
	n.view.ScrollTop()
	n.journal.Info("opened section %s", id)
	return true
}

// ActivateIndex activates the n-th section in nav order, counting from 1.
func (n *Navigator) ActivateIndex(index int) bool {
	sections := n.layout.Sections()
	if index < 1 || index > len(sections) {
		return false
	}
	return n.Activate(sections[index-1])
}

// ActivateInitial schedules the reveal of the section active now after the
// startup delay. Nav marks are left alone.
func (n *Navigator) ActivateInitial() {
	if n.active == "" {
		return
	}
	if n.startup != 0 {
		n.sched.Cancel(n.startup)
	}
	section := n.active
	n.startup = n.sched.After(n.timings.StartupDelay, func() {
		n.startup = 0
		n.reveal(section)
	})
}

// Active returns the active section.
func (n *Navigator) Active() (board.SectionID, bool) {
	return n.active, n.active != ""
}

// Stop cancels every pending reveal step.
func (n *Navigator) Stop() {
	if n.startup != 0 {
		n.sched.Cancel(n.startup)
		n.startup = 0
	}
	for id := range n.reveals {
		n.cancelReveal(id)
	}
}

// reveal hides every card of section, then shows card i after i staggers.
// Steps still pending from an earlier reveal of the same section are dropped.
func (n *Navigator) reveal(section board.SectionID) {
	n.cancelReveal(section)
	cards := n.layout.CardsOf(section)
	for _, id := range cards {
		n.view.SetCardVisible(id, false)
	}
	handles := make([]scheduler.Handle, 0, len(cards))
	for i, id := range cards {
		card := id
		handles = append(handles, n.sched.After(time.Duration(i)*n.timings.RevealStagger, func() {
			n.view.SetCardVisible(card, true)
		}))
	}
	n.reveals[section] = handles
}

func (n *Navigator) cancelReveal(section board.SectionID) {
	for _, h := range n.reveals[section] {
		n.sched.Cancel(h)
	}
	delete(n.reveals, section)
}

func (n *Navigator) initialSection() (board.SectionID, bool) {
	if id, ok := n.layout.InitialSection(); ok && n.known(id) {
		return id, true
	}
	sections := n.layout.Sections()
	if len(sections) == 0 {
		return "", false
	}
	return sections[0], true
}

func (n *Navigator) known(id board.SectionID) bool {
	for _, s := range n.layout.Sections() {
		if s == id {
			return true
		}
	}
	return false
}
