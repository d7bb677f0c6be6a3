// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for casebook.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The session core never runs on its own goroutine. Deferred work is queued
// on a scheduler.Loop that the frame tick pumps from Update.

package tui

import (
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/config"
	"github.com/kingrea/casebook/internal/logbook"
	"github.com/kingrea/casebook/internal/logging"
	"github.com/kingrea/casebook/internal/scheduler"
	"github.com/kingrea/casebook/internal/session"
	"github.com/kingrea/casebook/internal/store"
)

// frameInterval is how often the scheduler is pumped.
const frameInterval = 50 * time.Millisecond

// focus is the component receiving key presses.
type focus int

const (
	focusBoard focus = iota
	focusNotepad
	focusForm
	focusOverlay
)

type frameMsg time.Time

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithStore replaces the configured durable store.
func WithStore(st store.Store) AppOption {
	return func(a *App) {
		if st != nil {
			a.store = st
		}
	}
}

// WithClock drives the scheduler from clock instead of wall time.
func WithClock(clock scheduler.Clock) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithDocument opens doc instead of the configured board file.
func WithDocument(doc *board.Document) AppOption {
	return func(a *App) {
		if doc != nil {
			a.doc = doc
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *logging.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSessionID fixes the session id written to the journal.
func WithSessionID(id string) AppOption {
	return func(a *App) {
		if id != "" {
			a.sessionID = id
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config    *config.Config
	logger    *logging.Logger
	logbook   *logbook.Logbook
	store     store.Store
	ownsStore bool
	clock     scheduler.Clock
	loop      *scheduler.Loop
	sessionID string

	doc     *board.Document
	surface *board.Surface
	session *session.Manager

	focus      focus
	selected   int
	scrolls    int
	notes      textarea.Model
	overlay    viewport.Model
	openCard   board.CardID
	bar        progress.Model
	form       *huh.Form
	formFields *session.Fields
	markdown   markdownRenderer

	statusMsg string
	width     int
	height    int
}

// NewApp loads the project configuration and board and restores the
// persisted session.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	app := &App{
		config:  cfg,
		clock:   scheduler.SystemClock{},
		overlay: viewport.New(80, 20),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.logger == nil {
		app.logger = logging.Discard()
	}
	if app.sessionID == "" {
		app.sessionID = uuid.NewString()
	}
	if app.doc == nil {
		app.doc, err = loadBoard(cfg.BoardPath(), app.logger)
		if err != nil {
			return nil, err
		}
	}
	if app.store == nil {
		opts := cfg.StoreOptions()
		opts.Logger = app.logger.Base()
		app.store = store.Open(opts)
		app.ownsStore = true
	}
	if lb, err := logbook.New(cfg.JournalPath(), logbook.WithSession(app.sessionID)); err == nil {
		app.logbook = lb
	} else {
		app.logger.Warn("journal unavailable", "err", err)
	}
	app.loop = scheduler.New(app.clock)

	app.notes = textarea.New()
	app.notes.Placeholder = "Jot down leads, alibis, contradictions…"
	app.notes.CharLimit = 0
	app.notes.ShowLineNumbers = false
	app.notes.SetWidth(36)
	app.notes.SetHeight(12)

	app.rebuild()
	app.logInfo("session opened · %s", app.doc.Title)
	app.logger.Info("session opened", "session", app.sessionID, "board", app.doc.Title)
	return app, nil
}

// loadBoard reads the board file, falling back to the bundled sample when
// the file does not exist yet.
func loadBoard(path string, logger *logging.Logger) (*board.Document, error) {
	doc, err := board.Load(path)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("board file missing, using sample", "path", path)
		return board.Default(), nil
	}
	return nil, err
}

// rebuild discards every component and restores the session from the store,
// the terminal equivalent of reloading the page.
func (a *App) rebuild() {
	if a.session != nil {
		a.session.Stop()
	}
	a.surface = board.NewSurface(a.doc)
	a.session = session.New(session.Config{
		Store:     a.store,
		Surface:   a.surface,
		Scheduler: a.loop,
		Keys:      a.config.Keys(),
		Timings:   a.config.Timings(),
		Journal:   a.logbook,
		Reload:    a.rebuild,
	})
	a.session.Init()

	a.focus = focusBoard
	a.selected = 0
	a.scrolls = 0
	a.openCard = ""
	a.notes.Blur()
	a.notes.SetValue(a.surface.NoteText())
	a.formFields = &session.Fields{}
	a.form = newTheoryForm(a.doc.Suspects, a.formFields, a.formWidth())
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tick(), a.form.Init())
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case frameMsg:
		a.loop.Run()
		return a, a.tick()

	case BoardChangedMsg:
		if msg.Doc == nil {
			return a, nil
		}
		a.session.Notes.Flush()
		a.doc = msg.Doc
		a.rebuild()
		a.statusMsg = "Board reloaded from disk"
		a.logInfo("board reloaded · %s", a.doc.Title)
		return a, a.form.Init()

	case BoardErrorMsg:
		a.statusMsg = "Board file invalid: " + msg.Err.Error()
		a.logger.Warn("board reload failed", "err", msg.Err)
		return a, nil

	case theorySubmittedMsg:
		theory := a.session.Gate.Submit(*a.formFields)
		a.focus = focusBoard
		a.statusMsg = "Case closed · file " + shortRef(theory.Ref)
		return a, nil

	case formCancelledMsg:
		a.focus = focusBoard
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQ) {
			return a, a.quit()
		}
		switch a.focus {
		case focusNotepad:
			return a.updateNotepad(msg)
		case focusForm:
			return a.updateForm(msg)
		case focusOverlay:
			return a.updateOverlay(msg)
		default:
			return a.updateBoard(msg)
		}
	}

	if a.focus == focusForm {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a *App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, a.quit()
	case key.Matches(msg, keys.Notepad):
		if a.session.ToggleNotepad() {
			a.focus = focusNotepad
			return a, a.notes.Focus()
		}
		a.notes.Blur()
	case key.Matches(msg, keys.Section):
		if len(msg.Runes) == 1 {
			a.session.ActivateIndex(int(msg.Runes[0] - '0'))
			a.syncScroll()
		}
	case key.Matches(msg, keys.Left):
		a.moveSelection(-1)
	case key.Matches(msg, keys.Right):
		a.moveSelection(1)
	case key.Matches(msg, keys.Open):
		a.openSelected()
	case key.Matches(msg, keys.Conclude):
		if !a.session.Gate.Submitted() {
			a.focus = focusForm
		}
	case key.Matches(msg, keys.Save):
		a.saveNotes()
	case key.Matches(msg, keys.Reset):
		a.reset()
		return a, a.form.Init()
	}
	return a, nil
}

func (a *App) updateNotepad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Close):
		a.notes.Blur()
		a.focus = focusBoard
		return a, nil
	case key.Matches(msg, keys.Save):
		a.saveNotes()
		return a, nil
	case key.Matches(msg, keys.Reset):
		a.reset()
		return a, a.form.Init()
	}
	var cmd tea.Cmd
	a.notes, cmd = a.notes.Update(msg)
	if text := a.notes.Value(); text != a.surface.NoteText() {
		a.surface.SetNoteText(text)
		a.session.Notes.ScheduleSave()
	}
	return a, cmd
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Close) {
		a.focus = focusBoard
		return a, nil
	}
	model, cmd := a.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.form = f
	}
	return a, cmd
}

func (a *App) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Close) || key.Matches(msg, keys.Quit) {
		a.openCard = ""
		a.focus = focusBoard
		return a, nil
	}
	var cmd tea.Cmd
	a.overlay, cmd = a.overlay.Update(msg)
	return a, cmd
}

// activeCards lists the cards of the active section.
func (a *App) activeCards() []board.CardID {
	id, ok := a.session.Nav.Active()
	if !ok {
		return nil
	}
	return a.surface.CardsOf(id)
}

// syncScroll honours scroll requests the navigator made since the last call.
func (a *App) syncScroll() {
	if n := a.surface.ScrollRequests(); n != a.scrolls {
		a.scrolls = n
		a.selected = 0
		a.overlay.GotoTop()
	}
}

func (a *App) moveSelection(delta int) {
	cards := a.activeCards()
	if len(cards) == 0 {
		a.selected = 0
		return
	}
	a.selected = (a.selected + delta + len(cards)) % len(cards)
}

// openSelected shows the selected card in the overlay and marks it viewed.
// Cards still hidden by the reveal sequence cannot be opened.
func (a *App) openSelected() {
	cards := a.activeCards()
	if a.selected < 0 || a.selected >= len(cards) {
		return
	}
	id := cards[a.selected]
	if !a.surface.CardVisible(id) {
		return
	}
	card, _, ok := a.doc.Card(id)
	if !ok {
		return
	}
	a.session.OpenCard(id)
	a.openCard = id
	a.focus = focusOverlay
	a.overlay.SetContent(a.markdown.render(cardMarkdown(card), a.overlay.Width-2))
	a.overlay.GotoTop()
}

func (a *App) saveNotes() {
	a.surface.SetNoteText(a.notes.Value())
	a.session.Notes.Save()
	a.statusMsg = "Notes saved"
}

func (a *App) reset() {
	a.session.ResetAll()
	a.statusMsg = "Investigation reset"
	a.logger.Warn("session reset", "session", a.sessionID)
}

// quit writes any pending notes before leaving.
func (a *App) quit() tea.Cmd {
	a.session.Notes.Flush()
	a.session.Stop()
	if n := a.loop.CancelAll(); n > 0 {
		a.logger.Info("dropped pending work on quit", "tasks", n)
	}
	a.logInfo("session closed · %d/%d cards viewed", a.surface.Progress().Viewed, a.surface.Progress().Total)
	return tea.Quit
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.overlay.Width = max(20, width-8)
	a.overlay.Height = max(5, height-8)
	a.notes.SetWidth(max(20, width/3-6))
	a.bar.Width = max(10, width/2)
	a.form = a.form.WithWidth(a.formWidth())
	if a.openCard != "" {
		if card, _, ok := a.doc.Card(a.openCard); ok {
			a.overlay.SetContent(a.markdown.render(cardMarkdown(card), a.overlay.Width-2))
		}
	}
}

func (a *App) formWidth() int {
	if a.width <= 0 {
		return 60
	}
	return max(30, a.width*2/3-6)
}

// Close releases the store when the app opened it.
func (a *App) Close() error {
	if !a.ownsStore {
		return nil
	}
	if c, ok := a.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// SessionID returns the id this run writes to the journal.
func (a *App) SessionID() string {
	return a.sessionID
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func cardMarkdown(card board.Card) string {
	md := "# " + card.Title + "\n\n"
	if card.Summary != "" {
		md += "_" + card.Summary + "_\n\n"
	}
	return md + card.Body
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}
