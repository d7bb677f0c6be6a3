package board

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrUnknownSection is returned by lookups for ids the document does not hold.
var ErrUnknownSection = errors.New("board: unknown section")

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Document models a board file.
type Document struct {
	Title    string    `yaml:"title" validate:"required"`
	Subtitle string    `yaml:"subtitle,omitempty"`
	Sections []Section `yaml:"sections" validate:"required,min=1,dive"`
	// Suspects feed the conclusion form's choice field. Empty means free text.
	Suspects []string `yaml:"suspects,omitempty" validate:"dive,required"`
}

// Load reads and validates a board file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("board: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates board YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	doc.normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) normalize() {
	d.Title = strings.TrimSpace(d.Title)
	for i := range d.Sections {
		sec := &d.Sections[i]
		sec.ID = SectionID(strings.TrimSpace(string(sec.ID)))
		sec.Title = strings.TrimSpace(sec.Title)
		for j := range sec.Cards {
			card := &sec.Cards[j]
			card.ID = CardID(strings.TrimSpace(string(card.ID)))
			card.Title = strings.TrimSpace(card.Title)
		}
	}
	for i := range d.Suspects {
		d.Suspects[i] = strings.TrimSpace(d.Suspects[i])
	}
}

// Validate checks field constraints plus the cross-field rules: unique
// section ids, unique card ids across the board, at most one active section.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s failed %q", fe.Namespace(), fe.Tag())
		}
		return err
	}
	sections := map[SectionID]struct{}{}
	cards := map[CardID]SectionID{}
	active := 0
	for _, sec := range d.Sections {
		if _, dup := sections[sec.ID]; dup {
			return fmt.Errorf("duplicate section id %q", sec.ID)
		}
		sections[sec.ID] = struct{}{}
		if sec.Active {
			active++
		}
		for _, card := range sec.Cards {
			if owner, dup := cards[card.ID]; dup {
				return fmt.Errorf("card id %q used in both %q and %q", card.ID, owner, sec.ID)
			}
			cards[card.ID] = sec.ID
		}
	}
	if active > 1 {
		return fmt.Errorf("%d sections marked active, at most one allowed", active)
	}
	return nil
}

// Section looks up a section by id.
func (d *Document) Section(id SectionID) (Section, error) {
	for _, sec := range d.Sections {
		if sec.ID == id {
			return sec, nil
		}
	}
	return Section{}, fmt.Errorf("%w: %s", ErrUnknownSection, id)
}

// Card looks up a card and the section that owns it.
func (d *Document) Card(id CardID) (Card, SectionID, bool) {
	for _, sec := range d.Sections {
		for _, card := range sec.Cards {
			if card.ID == id {
				return card, sec.ID, true
			}
		}
	}
	return Card{}, "", false
}

// CardCount returns the number of distinct card ids.
func (d *Document) CardCount() int {
	seen := map[CardID]struct{}{}
	for _, sec := range d.Sections {
		for _, card := range sec.Cards {
			seen[card.ID] = struct{}{}
		}
	}
	return len(seen)
}
