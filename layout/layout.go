// Package layout holds the display collaborators a provider hands its element to.
package layout

import "github.com/steadyplay/steadyplay/media"

// Style is the visibility styling applied to a container.
type Style struct {
	// Visible is false when visibility is left to the host's default.
	Visible bool
	Opacity float64
}

// Container hosts a media element on screen.
type Container interface {
	Append(el media.Element)
	Remove(el media.Element)
	Contains(el media.Element) bool
	SetStyle(s Style)
}

// Slot is an in-memory Container holding at most one element.
type Slot struct {
	element media.Element
	style   Style
}

// NewSlot returns an empty visible slot.
func NewSlot() *Slot {
	return &Slot{style: Style{Visible: true, Opacity: 1}}
}

func (s *Slot) Append(el media.Element) {
	s.element = el
}

func (s *Slot) Remove(el media.Element) {
	if s.element == el {
		s.element = nil
	}
}

func (s *Slot) Contains(el media.Element) bool {
	return el != nil && s.element == el
}

func (s *Slot) SetStyle(style Style) {
	s.style = style
}

// Style returns the last applied style.
func (s *Slot) Style() Style {
	return s.style
}

// Element returns the hosted element, or nil.
func (s *Slot) Element() media.Element {
	return s.element
}
