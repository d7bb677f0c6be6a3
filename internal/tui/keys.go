package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the board shortcuts. Text inputs receive their keys first, so
// none of the single-letter bindings fire while the notepad has focus.
type keyMap struct {
	Notepad  key.Binding
	Section  key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Close    key.Binding
	Conclude key.Binding
	Save     key.Binding
	Reset    key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

var keys = keyMap{
	Notepad:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notepad")),
	Section:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "section")),
	Left:     key.NewBinding(key.WithKeys("left", "h", "up", "k"), key.WithHelp("←/→", "select")),
	Right:    key.NewBinding(key.WithKeys("right", "l", "down", "j", "tab")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Conclude: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "conclude")),
	Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save notes")),
	Reset:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
}

func (k keyMap) boardHelp() []key.Binding {
	return []key.Binding{k.Section, k.Left, k.Open, k.Notepad, k.Conclude, k.Save, k.Reset, k.Quit}
}
