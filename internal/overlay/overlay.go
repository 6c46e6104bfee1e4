// Package overlay implements the project detail overlay: either closed, or
// open on exactly one project from the gallery.
package overlay

import (
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/content"
)

var ErrUnknownProject = errors.New("unknown project")

// Origin says where a dismiss action came from.
type Origin int

const (
	CloseButton Origin = iota
	Scrim
	Escape
	// Inner is a click that started on a control inside the overlay panel
	// and bubbled up. It never closes the overlay.
	Inner
)

// ParseOrigin maps a client-supplied origin name to an Origin. Unknown
// names are treated as Inner.
func ParseOrigin(s string) Origin {
	switch s {
	case "close":
		return CloseButton
	case "scrim":
		return Scrim
	case "escape":
		return Escape
	}
	return Inner
}

// Gallery is the set of projects the overlay may open.
type Gallery interface {
	Project(slug string) (*content.ProjectRecord, bool)
}

// Overlay holds the current selection. The zero value is not usable; use New.
type Overlay struct {
	gallery  Gallery
	selected *content.ProjectRecord
}

func New(gallery Gallery) *Overlay {
	return &Overlay{gallery: gallery}
}

// Select opens the overlay on slug, replacing any current selection. A slug
// outside the gallery closes the overlay.
func (o *Overlay) Select(slug string) (*content.ProjectRecord, error) {
	p, ok := o.gallery.Project(slug)
	if !ok {
		o.selected = nil
		return nil, errors.Wrapf(ErrUnknownProject, "%q", slug)
	}
	o.selected = p
	return p, nil
}

// Dismiss closes the overlay unless the action came from inside the panel.
// It reports whether the overlay was closed by this call.
func (o *Overlay) Dismiss(from Origin) bool {
	if from == Inner || o.selected == nil {
		return false
	}
	o.selected = nil
	return true
}

// Current returns the open project, or nil when closed.
func (o *Overlay) Current() *content.ProjectRecord {
	return o.selected
}

func (o *Overlay) IsOpen() bool {
	return o.selected != nil
}
