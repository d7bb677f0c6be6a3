package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/casebook/internal/board"
)

// BoardChangedMsg carries a board document reloaded from disk.
type BoardChangedMsg struct {
	Doc *board.Document
}

// BoardErrorMsg reports a board file that changed but no longer loads.
type BoardErrorMsg struct {
	Err error
}

// WatchBoard reloads path on every change and sends the result through
// send, typically (*tea.Program).Send. Blocks until ctx is done.
func WatchBoard(ctx context.Context, path string, send func(tea.Msg)) error {
	return board.Watch(ctx, path, func() {
		doc, err := board.Load(path)
		if err != nil {
			send(BoardErrorMsg{Err: err})
			return
		}
		send(BoardChangedMsg{Doc: doc})
	}, func(err error) {
		send(BoardErrorMsg{Err: err})
	})
}
