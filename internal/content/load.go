package content

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTables []byte

// ErrDuplicate is returned when a table holds two records that must be unique.
var ErrDuplicate = errors.New("duplicate record")

var validate = validator.New()

// Default returns the tables embedded in the binary.
func Default() (*Tables, error) {
	t, err := Load(bytes.NewReader(defaultTables))
	if err != nil {
		return nil, errors.Wrap(err, "embedded content")
	}
	return t, nil
}

// LoadFile reads tables from a YAML file on disk.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening content file %s", path)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "content file %s", path)
	}
	return t, nil
}

// Load decodes, normalizes and validates tables from r.
func Load(r io.Reader) (*Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Tables
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(err, "decoding content")
	}

	t.normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) normalize() {
	for i := range t.Projects {
		p := &t.Projects[i]
		p.Title = strings.TrimSpace(p.Title)
		if p.Slug == "" {
			p.Slug = Slugify(p.Title)
		}
	}
	for i := range t.Skills.Categories {
		c := &t.Skills.Categories[i]
		for j := range c.Skills {
			c.Skills[j].Level = ClampLevel(c.Skills[j].Level)
		}
	}
}

// Validate checks required fields and uniqueness constraints.
func (t *Tables) Validate() error {
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(err, "invalid content")
	}

	titles := make(map[string]bool, len(t.Projects))
	slugs := make(map[string]bool, len(t.Projects))
	for _, p := range t.Projects {
		if titles[p.Title] {
			return errors.Wrapf(ErrDuplicate, "project title %q", p.Title)
		}
		titles[p.Title] = true
		if p.Slug == "" {
			return errors.Errorf("project %q has no usable slug", p.Title)
		}
		if slugs[p.Slug] {
			return errors.Wrapf(ErrDuplicate, "project slug %q", p.Slug)
		}
		slugs[p.Slug] = true
	}

	labels := make(map[string]bool, len(t.About.Interests))
	for _, in := range t.About.Interests {
		if labels[in.Label] {
			return errors.Wrapf(ErrDuplicate, "interest %q", in.Label)
		}
		labels[in.Label] = true
	}

	for _, c := range t.Skills.Categories {
		for _, s := range c.Skills {
			if s.Level < 0 || s.Level > 100 {
				return errors.Errorf("skill %q level %d out of range", s.Name, s.Level)
			}
		}
	}
	return nil
}
