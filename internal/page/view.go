package page

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/overlay"
	"github.com/Zachkp/portfolio/internal/reveal"
	"github.com/Zachkp/portfolio/internal/theme"
)

// Options configure new views.
type Options struct {
	Threshold   float64
	Latency     time.Duration
	DefaultDark bool

	// Preferences returns the display mode store for a visitor. Nil means
	// the mode is never persisted.
	Preferences func(visitor string) theme.Store

	// AfterFunc schedules fn after d. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, fn func())
	Now       func() time.Time
}

func (o *Options) defaults() {
	if o.AfterFunc == nil {
		o.AfterFunc = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// View is one visitor's page. Every event on a view is handled under its
// lock, one at a time, including scheduled continuations.
type View struct {
	ID string

	mu       sync.Mutex
	tables   *content.Tables
	mode     *theme.Mode
	reveal   *reveal.Controller
	overlay  *overlay.Overlay
	form     *contact.Form
	rejected *contact.ValidationError
	after    func(time.Duration, func())
	now      func() time.Time
	lastSeen time.Time
}

// NewView builds the page state for visitor id and observes every region.
func NewView(ctx context.Context, id string, tables *content.Tables, opts Options) *View {
	opts.defaults()

	var store theme.Store
	if opts.Preferences != nil {
		store = opts.Preferences(id)
	}

	v := &View{
		ID:       id,
		tables:   tables,
		mode:     theme.New(ctx, opts.DefaultDark, store),
		reveal:   reveal.New(true),
		overlay:  overlay.New(tables),
		after:    opts.AfterFunc,
		now:      opts.Now,
		lastSeen: opts.Now(),
	}
	v.form = contact.NewForm(v, opts.Latency)
	for region, threshold := range Regions(tables, opts.Threshold) {
		v.reveal.Observe(region, threshold)
	}
	return v
}

// After implements contact.Scheduler. fn runs under the view lock.
func (v *View) After(d time.Duration, fn func()) {
	v.after(d, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		fn()
	})
}

func (v *View) touch() {
	v.lastSeen = v.now()
}

// LastSeen is the time of the last event on the view.
func (v *View) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Document composes the full page. Pending notices go to the contact form.
func (v *View) Document() Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	form := formView(v.form, v.rejected, v.form.TakeNotices())
	return Compose(v.tables, v.mode.Class(), v.reveal, v.overlay, form, v.now())
}

// ToggleMode flips the display mode and returns the new navigation bar.
func (v *View) ToggleMode(ctx context.Context) NavView {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	class := v.mode.Toggle(ctx)
	return Nav(v.tables, class)
}

// RevealResult describes the outcome of a visibility report.
type RevealResult struct {
	Region  reveal.Region `json:"region"`
	Entered bool          `json:"entered"`
	Changed bool          `json:"changed"`
}

// Reveal delivers a visibility report for region.
func (v *View) Reveal(region reveal.Region, ratio float64) (RevealResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	changed, err := v.reveal.Report(region, ratio)
	if err != nil {
		return RevealResult{Region: region}, err
	}
	return RevealResult{
		Region:  region,
		Entered: v.reveal.State(region).Entered(),
		Changed: changed,
	}, nil
}

// DisableReveal is called when the client cannot observe visibility.
func (v *View) DisableReveal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	v.reveal.Disable()
	log.Printf("page: view %s has no visibility support, revealing everything", v.ID)
}

// SelectProject opens the overlay on slug. An unknown slug closes it.
func (v *View) SelectProject(slug string) (OverlayView, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	p, err := v.overlay.Select(slug)
	return Overlay(p), err
}

// DismissProject closes the overlay unless the action came from inside it.
func (v *View) DismissProject(from overlay.Origin) OverlayView {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	v.overlay.Dismiss(from)
	return Overlay(v.overlay.Current())
}

// EditDraft updates one field of the contact draft.
func (v *View) EditDraft(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	field, ok := contact.ParseField(name)
	if !ok {
		return contact.ErrUnknownField
	}
	if err := v.form.Edit(field, value); err != nil {
		return err
	}
	v.rejected = nil
	return nil
}

// SubmitDraft applies d to the draft and submits it. The returned view
// reflects the form after the attempt, whether or not it was accepted.
func (v *View) SubmitDraft(d contact.Draft) (FormView, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	if v.form.Phase() != contact.Idle {
		return formView(v.form, nil, nil), contact.ErrBusy
	}
	for field, value := range map[contact.Field]string{
		contact.FieldName:    d.Name,
		contact.FieldEmail:   d.Email,
		contact.FieldMessage: d.Message,
	} {
		if err := v.form.Edit(field, value); err != nil {
			return formView(v.form, nil, nil), err
		}
	}

	err := v.form.Submit()
	v.rejected = nil
	if verr, ok := err.(*contact.ValidationError); ok {
		v.rejected = verr
	}
	if err == nil {
		log.Printf("page: view %s accepted a contact message", v.ID)
	}
	return formView(v.form, v.rejected, nil), err
}

// Form returns the contact form and hands out pending notices.
func (v *View) Form() FormView {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()

	return formView(v.form, v.rejected, v.form.TakeNotices())
}
