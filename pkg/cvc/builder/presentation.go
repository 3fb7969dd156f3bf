package builder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLanguage   = errors.New("builder: invalid ISO 639-1 language code")
	ErrUnknownFormat     = errors.New("builder: unknown element format")
	ErrNoLanguages       = errors.New("builder: presentation has no languages")
	ErrDuplicateLanguage = errors.New("builder: duplicate language")
	ErrNoGroups          = errors.New("builder: presentation has no groups")
	ErrEmptyGroup        = errors.New("builder: group has no elements")
	ErrDuplicateGroup    = errors.New("builder: duplicate group id")
	ErrMissingTitle      = errors.New("builder: title missing for a presentation language")
	ErrMissingValue      = errors.New("builder: element value missing")
	ErrInvalidPointer    = errors.New("builder: value is not a JSON pointer")
)

// Element is one rendered field of the credential.
type Element struct {
	// Titles holds the label per language; every presentation language
	// needs one.
	Titles map[Language]string `json:"title"`
	// Multilanguage selects Values over Value.
	Multilanguage bool `json:"multilanguage,omitempty"`
	// Optional elements may have no value in the payload.
	Optional bool   `json:"optional,omitempty"`
	Format   Format `json:"format,omitempty"`
	// Value is a JSON pointer into the payload, e.g. "/issuanceDate".
	Value string `json:"value,omitempty"`
	// Values holds one JSON pointer per language, e.g. "/issuer/legalName/en".
	Values map[Language]string `json:"values,omitempty"`
}

// NewElement returns an element rendering the payload field at pointer.
func NewElement(titles map[Language]string, pointer string) Element {
	return Element{Titles: titles, Value: pointer}
}

// NewMultilanguageElement returns an element with one pointer per language.
func NewMultilanguageElement(titles, pointers map[Language]string) Element {
	return Element{Titles: titles, Multilanguage: true, Values: pointers}
}

// Group is a titled section of elements.
type Group struct {
	ID uint `json:"id"`
	// Titles is optional; when set it must cover every language.
	Titles   map[Language]string `json:"title,omitempty"`
	Elements []Element           `json:"elements"`
}

// NewGroup returns a group, or ErrEmptyGroup if elements is empty.
func NewGroup(id uint, titles map[Language]string, elements ...Element) (Group, error) {
	if len(elements) == 0 {
		return Group{}, fmt.Errorf("%w: group %d", ErrEmptyGroup, id)
	}
	return Group{ID: id, Titles: titles, Elements: elements}, nil
}

// Presentation is the display map of one credential.
type Presentation struct {
	Languages []Language `json:"languages"`
	Groups    []Group    `json:"groups"`
}

// Validate checks the presentation as a whole. Optional elements still need
// titles but may omit their value.
func (p *Presentation) Validate() error {
	if len(p.Languages) == 0 {
		return ErrNoLanguages
	}
	seen := make(map[Language]struct{}, len(p.Languages))
	for _, l := range p.Languages {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLanguage, l)
		}
		seen[l] = struct{}{}
	}

	if len(p.Groups) == 0 {
		return ErrNoGroups
	}
	ids := make(map[uint]struct{}, len(p.Groups))
	for _, g := range p.Groups {
		if _, dup := ids[g.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateGroup, g.ID)
		}
		ids[g.ID] = struct{}{}
		if err := p.validateGroup(g); err != nil {
			return err
		}
	}
	return nil
}

func (p *Presentation) validateGroup(g Group) error {
	if len(g.Elements) == 0 {
		return fmt.Errorf("%w: group %d", ErrEmptyGroup, g.ID)
	}
	if len(g.Titles) > 0 {
		if l, ok := p.missing(g.Titles, false); !ok {
			return fmt.Errorf("%w: group %d: %s", ErrMissingTitle, g.ID, l)
		}
	}
	for i, e := range g.Elements {
		if err := p.ValidateElement(e); err != nil {
			return fmt.Errorf("group %d element %d: %w", g.ID, i, err)
		}
	}
	return nil
}

// ValidateElement checks e against the presentation languages.
func (p *Presentation) ValidateElement(e Element) error {
	if l, ok := p.missing(e.Titles, true); !ok {
		return fmt.Errorf("%w: %s", ErrMissingTitle, l)
	}
	if err := e.Format.Validate(); err != nil {
		return err
	}

	if e.Multilanguage {
		if l, ok := p.missing(e.Values, true); !ok && !e.Optional {
			return fmt.Errorf("%w: %s", ErrMissingValue, l)
		}
		for l, v := range e.Values {
			if v != "" && !isPointer(v) {
				return fmt.Errorf("%w: %s: %q", ErrInvalidPointer, l, v)
			}
		}
		return nil
	}

	if e.Value == "" {
		if e.Optional {
			return nil
		}
		return ErrMissingValue
	}
	if !isPointer(e.Value) {
		return fmt.Errorf("%w: %q", ErrInvalidPointer, e.Value)
	}
	return nil
}

// missing returns the first presentation language without an entry in m.
func (p *Presentation) missing(m map[Language]string, nonEmpty bool) (Language, bool) {
	for _, l := range p.Languages {
		v, ok := m[l]
		if !ok || (nonEmpty && v == "") {
			return l, false
		}
	}
	return "", true
}

func isPointer(s string) bool {
	return strings.HasPrefix(s, "/")
}

// Create validates p and returns its JSON encoding. A multilanguage element
// is encoded without Value and any other element without Values.
func (p *Presentation) Create() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := Presentation{Languages: p.Languages, Groups: make([]Group, len(p.Groups))}
	for i, g := range p.Groups {
		g.Elements = append([]Element(nil), g.Elements...)
		for j := range g.Elements {
			if g.Elements[j].Multilanguage {
				g.Elements[j].Value = ""
			} else {
				g.Elements[j].Values = nil
			}
		}
		out.Groups[i] = g
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("builder: encode presentation: %w", err)
	}
	return data, nil
}

// Parse decodes and validates a presentation. Unknown fields are rejected.
func Parse(data []byte) (*Presentation, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Presentation
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("builder: decode presentation: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
