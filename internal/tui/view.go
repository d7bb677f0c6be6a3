package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/casebook/internal/board"
)

var (
	accent     = lipgloss.Color("#FF6B6B")
	highlight  = lipgloss.Color("#5B8DEF")
	muted      = lipgloss.Color("#888888")
	faint      = lipgloss.Color("#444444")
	success    = lipgloss.Color("#52C41A")
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faint).
			Padding(0, 1)
)

// View is called to render the UI.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	if a.focus == focusOverlay {
		return a.renderOverlay(width)
	}

	rightWidth := 0
	if a.surface.NotepadVisible() {
		rightWidth = max(28, width/3)
	}
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		a.renderNav(leftWidth-4),
		"",
		a.renderProgress(),
		"",
		a.renderCards(leftWidth-4),
		"",
		a.renderConclusion(leftWidth-4),
	)
	body := panelStyle.Width(max(20, leftWidth)).Render(left)
	if rightWidth > 0 {
		right := panelStyle.Width(max(20, rightWidth)).Render(a.renderNotepad())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, right)
	}

	sections := []string{a.renderHeader(), body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Render("🔍 " + strings.ToUpper(a.doc.Title))
	if a.doc.Subtitle == "" {
		return title
	}
	sub := lipgloss.NewStyle().Foreground(muted).Render(a.doc.Subtitle)
	return title + "\n" + sub
}

func (a *App) renderNav(width int) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(highlight).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	var entries []string
	for i, sec := range a.doc.Sections {
		label := sec.Title
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, sec.Title)
		}
		if a.surface.NavActive(sec.ID) {
			entries = append(entries, active.Render(label))
		} else {
			entries = append(entries, idle.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(lipgloss.JoinHorizontal(lipgloss.Top, entries...))
}

func (a *App) renderProgress() string {
	p := a.surface.Progress()
	label := lipgloss.NewStyle().Foreground(muted).
		Render(fmt.Sprintf("%d/%d cards examined · %d%%", p.Viewed, p.Total, p.Percent()))
	return a.bar.ViewAs(p.Ratio()) + "  " + label
}

func (a *App) renderCards(width int) string {
	id, ok := a.session.Nav.Active()
	if !ok {
		return lipgloss.NewStyle().Foreground(muted).Render("This board has no sections.")
	}
	sec, err := a.doc.Section(id)
	if err != nil {
		return lipgloss.NewStyle().Foreground(accent).Render(err.Error())
	}
	cards := a.surface.CardsOf(id)
	if len(cards) == 0 {
		return lipgloss.NewStyle().Foreground(muted).Render("Nothing filed here yet.")
	}
	rows := []string{lipgloss.NewStyle().Foreground(muted).Render(strings.ToUpper(sec.Title))}
	for i, cardID := range cards {
		if !a.surface.CardVisible(cardID) {
			rows = append(rows, lipgloss.NewStyle().Foreground(faint).Render("  ·"))
			continue
		}
		card, _, _ := a.doc.Card(cardID)
		rows = append(rows, a.renderCard(card, i == a.selected, width))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderCard(card board.Card, selected bool, width int) string {
	mark := "  "
	if a.surface.CardViewed(card.ID) {
		mark = lipgloss.NewStyle().Foreground(success).Render("✓ ")
	}
	title := lipgloss.NewStyle().Bold(true).Render(card.Title)
	lines := []string{mark + title}
	if card.Summary != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(muted).Render("  "+card.Summary))
	}
	style := lipgloss.NewStyle().Width(max(20, width)).PaddingLeft(1)
	if selected && a.focus == focusBoard {
		style = style.Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(highlight)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (a *App) renderConclusion(width int) string {
	if theory, ok := a.surface.Confirmation(); ok {
		head := "CASE CLOSED"
		if a.surface.Celebrating() {
			head = "🎉 CASE CLOSED 🎉"
		}
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(success).Render(head),
			fmt.Sprintf("Suspect:  %s", theory.Suspect),
			fmt.Sprintf("Motive:   %s", theory.Motive),
			fmt.Sprintf("Evidence: %s", theory.Evidence),
			fmt.Sprintf("Method:   %s", theory.Method),
			lipgloss.NewStyle().Foreground(muted).Render(fmt.Sprintf("Filed %s · ref %s",
				theory.SubmittedAt.Local().Format("2 Jan 2006 15:04"), shortRef(theory.Ref))),
		}
		return lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(lines, "\n"))
	}
	if a.focus == focusForm {
		return a.form.View()
	}
	return lipgloss.NewStyle().Foreground(muted).Render("Ready to name the culprit? Press c to file your theory.")
}

func (a *App) renderNotepad() string {
	head := lipgloss.NewStyle().Bold(true).Foreground(highlight).Render("NOTEPAD")
	label := a.surface.SaveLabel()
	saveStyle := lipgloss.NewStyle().Foreground(muted)
	if label == board.SavedLabel {
		saveStyle = saveStyle.Foreground(success)
	}
	hint := "n to focus · esc to leave"
	if a.focus == focusNotepad {
		hint = "esc to leave · ctrl+s to save"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		head,
		a.notes.View(),
		saveStyle.Render("["+label+"]")+"  "+lipgloss.NewStyle().Foreground(muted).Render(hint),
	)
}

func (a *App) renderOverlay(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("CASE FILE")
	hint := lipgloss.NewStyle().Foreground(muted).
		Render(fmt.Sprintf("%3.f%% · ↑/↓ scroll · esc close", a.overlay.ScrollPercent()*100))
	return panelStyle.Width(max(20, width-4)).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, a.overlay.View(), hint),
	)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(highlight).
		Render(fmt.Sprintf("JOURNAL · %s (%d) · session %s", fileName, total, shortRef(a.logbook.Session())))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderFooter() string {
	var help []string
	for _, b := range keys.boardHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	line := strings.Join(help, " · ")
	if a.statusMsg != "" {
		line = a.statusMsg + "\n" + line
	}
	return lipgloss.NewStyle().Foreground(muted).MarginTop(1).Render(line)
}

