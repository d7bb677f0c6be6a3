package board

// Default labels of the notepad save control.
const (
	SaveLabel  = "Save"
	SavedLabel = "✓ Saved!"
)

// Surface is the rendered state of a board: which section and nav entry are
// active, which cards are viewed or visible, the counters, and the panels.
// The session core mutates it, the TUI paints it. Like the TUI it belongs to
// one event loop and is not safe for concurrent use.
type Surface struct {
	doc      *Document
	sections []SectionID
	cards    map[SectionID][]CardID

	activeSection map[SectionID]bool
	activeNav     map[SectionID]bool
	viewed        map[CardID]bool
	visible       map[CardID]bool
	progress      Progress
	scrolls       int

	noteText       string
	notepadVisible bool
	saveLabel      string

	theory      *Theory
	formVisible bool
	celebrating bool
}

// NewSurface renders doc in its initial state: the section the document marks
// active carries the active marks, every card is hidden and unviewed.
func NewSurface(doc *Document) *Surface {
	if doc == nil {
		doc = &Document{}
	}
	s := &Surface{
		doc:           doc,
		cards:         map[SectionID][]CardID{},
		activeSection: map[SectionID]bool{},
		activeNav:     map[SectionID]bool{},
		viewed:        map[CardID]bool{},
		visible:       map[CardID]bool{},
		saveLabel:     SaveLabel,
		formVisible:   true,
	}
	for _, sec := range doc.Sections {
		s.sections = append(s.sections, sec.ID)
		ids := make([]CardID, 0, len(sec.Cards))
		for _, card := range sec.Cards {
			ids = append(ids, card.ID)
		}
		s.cards[sec.ID] = ids
		if sec.Active {
			s.activeSection[sec.ID] = true
			s.activeNav[sec.ID] = true
		}
	}
	return s
}

// Document returns the rendered document.
func (s *Surface) Document() *Document { return s.doc }

// Sections lists section ids in nav order.
func (s *Surface) Sections() []SectionID {
	return append([]SectionID(nil), s.sections...)
}

// CardsOf lists the cards of a section in document order.
func (s *Surface) CardsOf(id SectionID) []CardID {
	return append([]CardID(nil), s.cards[id]...)
}

// InitialSection returns the section the document marks active.
func (s *Surface) InitialSection() (SectionID, bool) {
	for _, sec := range s.doc.Sections {
		if sec.Active {
			return sec.ID, true
		}
	}
	return "", false
}

func (s *Surface) SetSectionActive(id SectionID, active bool) { setMark(s.activeSection, id, active) }
func (s *Surface) SetNavActive(id SectionID, active bool)     { setMark(s.activeNav, id, active) }
func (s *Surface) SetCardVisible(id CardID, visible bool)     { setMark(s.visible, id, visible) }
func (s *Surface) SetCardViewed(id CardID, viewed bool)       { setMark(s.viewed, id, viewed) }

func (s *Surface) SectionActive(id SectionID) bool { return s.activeSection[id] }
func (s *Surface) NavActive(id SectionID) bool     { return s.activeNav[id] }
func (s *Surface) CardVisible(id CardID) bool      { return s.visible[id] }
func (s *Surface) CardViewed(id CardID) bool       { return s.viewed[id] }

// ActiveSections lists every section carrying the active mark, in nav order.
func (s *Surface) ActiveSections() []SectionID {
	var out []SectionID
	for _, id := range s.sections {
		if s.activeSection[id] {
			out = append(out, id)
		}
	}
	return out
}

// ActiveNavEntries lists every nav entry carrying the active mark.
func (s *Surface) ActiveNavEntries() []SectionID {
	var out []SectionID
	for _, id := range s.sections {
		if s.activeNav[id] {
			out = append(out, id)
		}
	}
	return out
}

// ScrollTop records a request to scroll the viewport to the top.
func (s *Surface) ScrollTop() { s.scrolls++ }

// ScrollRequests counts ScrollTop calls. The TUI compares it with the last
// value it honoured to reset the selection.
func (s *Surface) ScrollRequests() int { return s.scrolls }

func (s *Surface) SetProgress(p Progress) { s.progress = p }
func (s *Surface) Progress() Progress     { return s.progress }

func (s *Surface) NoteText() string          { return s.noteText }
func (s *Surface) SetNoteText(text string)   { s.noteText = text }
func (s *Surface) NotepadVisible() bool      { return s.notepadVisible }
func (s *Surface) SetNotepadVisible(v bool)  { s.notepadVisible = v }
func (s *Surface) SaveLabel() string         { return s.saveLabel }
func (s *Surface) SetSaveLabel(label string) { s.saveLabel = label }
func (s *Surface) Celebrating() bool         { return s.celebrating }
func (s *Surface) SetCelebrating(on bool)    { s.celebrating = on }
func (s *Surface) FormVisible() bool         { return s.formVisible }

// ShowConfirmation swaps the form for the confirmation panel.
func (s *Surface) ShowConfirmation(t Theory) {
	copied := t
	s.theory = &copied
	s.formVisible = false
}

// ShowForm swaps the confirmation panel for the form.
func (s *Surface) ShowForm() {
	s.theory = nil
	s.formVisible = true
}

// Confirmation returns the theory shown on the confirmation panel.
func (s *Surface) Confirmation() (Theory, bool) {
	if s.theory == nil {
		return Theory{}, false
	}
	return *s.theory, true
}

func setMark[K comparable](marks map[K]bool, id K, on bool) {
	if on {
		marks[id] = true
		return
	}
	delete(marks, id)
}
