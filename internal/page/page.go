// Package page composes the portfolio page from its sections and owns the
// per-visitor view state behind it.
package page

import (
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/overlay"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// Section is one rendered block of the page.
type Section struct {
	Name     string
	Template string
	Data     any
}

type Anchor struct {
	Href  string
	Label string
}

var navLinks = []Anchor{
	{Href: "#about", Label: "About"},
	{Href: "#skills", Label: "Skills"},
	{Href: "#projects", Label: "Projects"},
	{Href: "#contact", Label: "Contact"},
}

// NavView is the navigation bar, the only place the display mode toggle
// is exposed.
type NavView struct {
	Name  string
	Dark  bool
	Class string
	Links []Anchor
}

func Nav(t *content.Tables, class string) NavView {
	return NavView{Name: t.Profile.Name, Dark: class == "dark", Class: class, Links: navLinks}
}

// FormView is the contact form as rendered.
type FormView struct {
	Draft   contact.Draft
	Phase   string
	Sending bool
	Invalid map[string]bool
	Notices []contact.Notice
}

func formView(f *contact.Form, rejected *contact.ValidationError, notices []contact.Notice) FormView {
	v := FormView{
		Draft:   f.Draft(),
		Phase:   f.Phase().String(),
		Sending: f.Phase() == contact.Sending,
		Invalid: map[string]bool{},
		Notices: notices,
	}
	for _, field := range contact.Fields {
		if rejected.Has(field) {
			v.Invalid[string(field)] = true
		}
	}
	return v
}

// Document is the whole page.
type Document struct {
	Title     string
	Class     string
	Supported bool
	Nav       NavView
	Sections  []Section
	Overlay   OverlayView
}

// Compose renders the six sections in their fixed order. It only reads
// state; sections never see each other's state.
func Compose(t *content.Tables, modeClass string, c *reveal.Controller, o *overlay.Overlay, form FormView, now time.Time) Document {
	doc := Document{
		Title:     t.Profile.Name + " | Portfolio",
		Class:     modeClass,
		Supported: c.Supported(),
		Nav:       Nav(t, modeClass),
		Overlay:   Overlay(o.Current()),
	}
	for _, name := range Order {
		var data any
		switch name {
		case SectionHero:
			data = Hero(t, c)
		case SectionAbout:
			data = About(t, c)
		case SectionSkills:
			data = Skills(t, c)
		case SectionProjects:
			data = Projects(t, c)
		case SectionContact:
			data = Contact(t, c, form)
		case SectionFooter:
			data = Footer(t, c, now)
		}
		doc.Sections = append(doc.Sections, Section{
			Name:     name,
			Template: "section-" + name,
			Data:     data,
		})
	}
	return doc
}
