// Package board holds the content model of an investigation board and the
// in-memory render surface the session core reads from and writes to.
package board

import (
	"math"
	"time"
)

// SectionID names a top-level section. It doubles as the nav entry key.
type SectionID string

// CardID identifies a card. It is stable across restarts.
type CardID string

// Card is one unit of content, shown in full in the overlay.
type Card struct {
	ID      CardID `yaml:"id" validate:"required"`
	Title   string `yaml:"title" validate:"required"`
	Summary string `yaml:"summary,omitempty"`
	// Body is markdown.
	Body string `yaml:"body,omitempty"`
}

// Section groups cards under one nav entry.
type Section struct {
	ID     SectionID `yaml:"id" validate:"required"`
	Title  string    `yaml:"title" validate:"required"`
	Active bool      `yaml:"active,omitempty"`
	Cards  []Card    `yaml:"cards" validate:"dive"`
}

// Progress is the published view counter.
type Progress struct {
	Viewed     int     `json:"viewed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// NewProgress derives the percentage. A board without cards reports 0%.
func NewProgress(viewed, total int) Progress {
	p := Progress{Viewed: viewed, Total: total}
	if total > 0 {
		p.Percentage = float64(viewed) / float64(total) * 100
	}
	return p
}

// Percent rounds Percentage for display.
func (p Progress) Percent() int {
	return int(math.Round(p.Percentage))
}

// Ratio returns Percentage on a 0..1 scale.
func (p Progress) Ratio() float64 {
	return p.Percentage / 100
}

// Theory is the conclusion the user submits once per session.
type Theory struct {
	Ref         string    `json:"ref,omitempty"`
	Suspect     string    `json:"suspect"`
	Motive      string    `json:"motive"`
	Evidence    string    `json:"evidence"`
	Method      string    `json:"method"`
	SubmittedAt time.Time `json:"submittedAt"`
}
