// Package reveal tracks which regions of the page have scrolled into view.
//
// Each region is a one-shot latch: the first visibility report whose ratio
// reaches the region's threshold marks it entered, and the observation is
// detached. Nothing ever marks a region as not entered again. When the
// client cannot report visibility the controller fails open and treats
// every region as entered.
package reveal

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnknownRegion = errors.New("unknown region")
	ErrInvalidRatio  = errors.New("visibility ratio out of range")
)

// Region identifies an observable part of the page. Regions are compared by
// their key, so two cards with identical content still differ by index.
type Region string

// Key builds a region from path segments, e.g. Key("skills", "category").
func Key(parts ...string) Region {
	return Region(strings.Join(parts, "/"))
}

// Indexed builds an index-qualified region, e.g. "projects/card/1".
func Indexed(section, part string, i int) Region {
	return Key(section, part, strconv.Itoa(i))
}

// Section returns the first path segment of the region.
func (r Region) Section() string {
	s, _, _ := strings.Cut(string(r), "/")
	return s
}

// State is the reveal flag of a single region.
type State struct {
	Region    Region
	Threshold float64
	entered   bool
	detached  bool
}

// Entered reports whether the region has been revealed.
func (s *State) Entered() bool {
	return s != nil && s.entered
}

// Controller owns the reveal states of one page view. It is not safe for
// concurrent use; callers serialize events.
type Controller struct {
	supported bool
	states    map[Region]*State
	order     []Region
}

// New returns a controller. If supported is false every region observed
// starts out entered.
func New(supported bool) *Controller {
	return &Controller{
		supported: supported,
		states:    make(map[Region]*State),
	}
}

// Supported reports whether visibility events are being used.
func (c *Controller) Supported() bool {
	return c.supported
}

// Observe registers region with the given threshold and returns its state.
// Observing a region again returns the existing state unchanged.
func (c *Controller) Observe(region Region, threshold float64) *State {
	if s, ok := c.states[region]; ok {
		return s
	}
	s := &State{Region: region, Threshold: clamp(threshold)}
	if !c.supported {
		s.entered = true
		s.detached = true
	}
	c.states[region] = s
	c.order = append(c.order, region)
	return s
}

// State returns the state of a region, or nil if it was never observed.
func (c *Controller) State(region Region) *State {
	return c.states[region]
}

// Report delivers a visibility ratio for region. It returns true only for
// the report that flips the region to entered.
func (c *Controller) Report(region Region, ratio float64) (bool, error) {
	s, ok := c.states[region]
	if !ok {
		return false, errors.Wrapf(ErrUnknownRegion, "%q", region)
	}
	if !(ratio >= 0 && ratio <= 1) {
		return false, errors.Wrapf(ErrInvalidRatio, "%v", ratio)
	}
	if s.detached || ratio < s.Threshold {
		return false, nil
	}
	s.entered = true
	s.detached = true
	return true, nil
}

// Disable switches the controller to fail-open mode: every observed region
// becomes entered, and so does every region observed later.
func (c *Controller) Disable() {
	c.supported = false
	for _, s := range c.states {
		s.entered = true
		s.detached = true
	}
}

// Pending returns the regions still waiting for a visibility report, in
// observation order.
func (c *Controller) Pending() []Region {
	var out []Region
	for _, r := range c.order {
		if !c.states[r].detached {
			out = append(out, r)
		}
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Stagger computes per-item animation delays: Base + i*Step.
type Stagger struct {
	Base time.Duration
	Step time.Duration
}

// At returns the delay for item i. Negative steps and indexes count as 0 so
// delays never decrease along the list.
func (s Stagger) At(i int) time.Duration {
	step := s.Step
	if step < 0 {
		step = 0
	}
	if i < 0 {
		i = 0
	}
	return s.Base + time.Duration(i)*step
}

// Then returns a stagger whose base is offset by d.
func (s Stagger) Then(d time.Duration) Stagger {
	return Stagger{Base: s.Base + d, Step: s.Step}
}
