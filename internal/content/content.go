// Package content holds the static display records the portfolio page is
// built from. Tables are loaded once at startup and never mutated.
package content

import (
	"strings"
)

// Profile describes the page owner shown in the hero and footer.
type Profile struct {
	Name     string      `yaml:"name" validate:"required"`
	Role     string      `yaml:"role" validate:"required"`
	Greeting string      `yaml:"greeting"`
	Summary  string      `yaml:"summary" validate:"required"`
	Photo    string      `yaml:"photo"`
	Facts    []QuickFact `yaml:"facts" validate:"dive"`
	Badges   []string    `yaml:"badges"`
}

// QuickFact is a label/value pair shown under the hero summary.
type QuickFact struct {
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value" validate:"required"`
}

type EducationRecord struct {
	Degree      string `yaml:"degree" validate:"required"`
	Institution string `yaml:"institution" validate:"required"`
	Period      string `yaml:"period" validate:"required"`
}

type InterestTag struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label" validate:"required"`
}

// About is the biography section: markdown paragraphs, interests,
// education and a small stats card.
type About struct {
	Journey   []string          `yaml:"journey" validate:"min=1"`
	Interests []InterestTag     `yaml:"interests" validate:"dive"`
	Education []EducationRecord `yaml:"education" validate:"min=1,dive"`
	Stats     []Stat            `yaml:"stats" validate:"dive"`
}

type SkillCategory struct {
	Title  string       `yaml:"title" validate:"required"`
	Skills []SkillEntry `yaml:"skills" validate:"min=1,dive"`
}

// SkillEntry is a named skill with a level in percent. Levels outside
// [0,100] are clamped on load.
type SkillEntry struct {
	Name  string `yaml:"name" validate:"required"`
	Level int    `yaml:"level"`
}

type Skills struct {
	Categories []SkillCategory `yaml:"categories" validate:"min=1,dive"`
	Soft       []string        `yaml:"soft"`
}

// Stat is a short label/value pair, e.g. "Accuracy: 94%".
type Stat struct {
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value" validate:"required"`
}

// ProjectRecord is one entry of the project gallery. Slug is derived from
// the title when absent and is how the overlay addresses a project.
type ProjectRecord struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title" validate:"required"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description" validate:"required"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	Stats       []Stat   `yaml:"stats" validate:"dive"`
	Features    []string `yaml:"features"`
	Link        string   `yaml:"link" validate:"required"`
}

// ContactChannel is a contact detail. Href is empty when the value is not
// actionable (e.g. a location).
type ContactChannel struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value" validate:"required"`
	Href  string `yaml:"href"`
}

type SocialLink struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label" validate:"required"`
	Href  string `yaml:"href" validate:"required"`
}

type Contact struct {
	Intro    string           `yaml:"intro"`
	Channels []ContactChannel `yaml:"channels" validate:"min=1,dive"`
}

// Tables is the full set of static content for one page.
type Tables struct {
	Profile  Profile         `yaml:"profile"`
	About    About           `yaml:"about"`
	Skills   Skills          `yaml:"skills"`
	Projects []ProjectRecord `yaml:"projects" validate:"min=1,dive"`
	Contact  Contact         `yaml:"contact"`
	Social   []SocialLink    `yaml:"social" validate:"dive"`
}

// Project returns the project with the given slug.
func (t *Tables) Project(slug string) (*ProjectRecord, bool) {
	for i := range t.Projects {
		if t.Projects[i].Slug == slug {
			return &t.Projects[i], true
		}
	}
	return nil, false
}

// Slugify turns a title into a lowercase, dash separated identifier.
func Slugify(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// ClampLevel limits a skill level to [0,100].
func ClampLevel(level int) int {
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	}
	return level
}
