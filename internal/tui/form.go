package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kingrea/casebook/internal/session"
)

type theorySubmittedMsg struct{}

type formCancelledMsg struct{}

// newTheoryForm builds the conclusion form. Values land in fields when the
// form completes. The form never quits the program on its own.
func newTheoryForm(suspects []string, fields *session.Fields, width int) *huh.Form {
	var suspect huh.Field
	if len(suspects) > 0 {
		suspect = huh.NewSelect[string]().
			Key("suspect").
			Title("Who did it?").
			Options(huh.NewOptions(suspects...)...).
			Value(&fields.Suspect).
			Validate(required("choose a suspect"))
	} else {
		suspect = huh.NewInput().
			Key("suspect").
			Title("Who did it?").
			Value(&fields.Suspect).
			Validate(required("name a suspect"))
	}
	form := huh.NewForm(
		huh.NewGroup(
			suspect,
			huh.NewInput().
				Key("motive").
				Title("Motive").
				Value(&fields.Motive).
				Validate(required("a motive is required")),
			huh.NewText().
				Key("evidence").
				Title("Key evidence").
				Lines(3).
				Value(&fields.Evidence).
				Validate(required("cite your evidence")),
			huh.NewInput().
				Key("method").
				Title("Method").
				Value(&fields.Method).
				Validate(required("a method is required")),
		),
	).WithShowHelp(true)
	if width > 0 {
		form = form.WithWidth(width)
	}
	form.SubmitCmd = func() tea.Msg { return theorySubmittedMsg{} }
	form.CancelCmd = func() tea.Msg { return formCancelledMsg{} }
	return form
}

func required(message string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(message)
		}
		return nil
	}
}
