// Package contact implements the contact form: a draft that is edited,
// validated and then "sent" over a simulated channel that always succeeds
// after a fixed delay. Nothing is delivered anywhere.
package contact

import (
	"log"
	"time"

	"github.com/pkg/errors"
)

// DefaultLatency is the simulated delivery time.
const DefaultLatency = 1500 * time.Millisecond

var (
	ErrBusy         = errors.New("a message is already being sent")
	ErrNotEditable  = errors.New("draft is not editable while sending")
	ErrUnknownField = errors.New("unknown form field")
)

type Phase int

const (
	Idle Phase = iota
	Sending
	Sent
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Sent:
		return "sent"
	}
	return "unknown"
}

// Scheduler runs fn once after d. Implementations must serialize fn with
// the other calls made on the Form.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Notice is a toast shown to the visitor.
type Notice struct {
	Title string
	Body  string
}

// Form is the contact form state machine. It is not safe for concurrent
// use; the owner serializes calls and scheduled continuations.
type Form struct {
	draft   Draft
	phase   Phase
	latency time.Duration
	sched   Scheduler
	onPhase func(Phase)
	notices []Notice
	sent    int
}

// NewForm returns an empty form in the Idle phase. A non-positive latency
// uses DefaultLatency.
func NewForm(sched Scheduler, latency time.Duration) *Form {
	if latency <= 0 {
		latency = DefaultLatency
	}
	return &Form{sched: sched, latency: latency}
}

// OnPhase registers fn to be called on every phase transition.
func (f *Form) OnPhase(fn func(Phase)) {
	f.onPhase = fn
}

func (f *Form) Phase() Phase { return f.phase }

func (f *Form) Draft() Draft { return f.draft }

// SentCount returns the number of completed submissions.
func (f *Form) SentCount() int { return f.sent }

// Edit sets one field of the draft. Other fields are left untouched.
func (f *Form) Edit(field Field, value string) error {
	if f.phase != Idle {
		return ErrNotEditable
	}
	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldEmail:
		f.draft.Email = value
	case FieldMessage:
		f.draft.Message = value
	default:
		return errors.Wrapf(ErrUnknownField, "%q", field)
	}
	return nil
}

// Submit accepts the current draft if it is valid and starts the simulated
// send. An invalid draft is rejected with a *ValidationError and the phase
// stays Idle.
func (f *Form) Submit() error {
	if f.phase != Idle {
		return ErrBusy
	}
	if err := Validate(f.draft); err != nil {
		return err
	}

	f.setPhase(Sending)
	from := f.draft.Name
	f.sched.After(f.latency, func() { f.complete(from) })
	return nil
}

func (f *Form) complete(from string) {
	if f.phase != Sending {
		return
	}
	f.setPhase(Sent)
	f.sent++
	f.notices = append(f.notices, Notice{
		Title: "Message sent!",
		Body:  "Thank you for reaching out. I'll get back to you soon.",
	})
	log.Printf("contact: simulated delivery completed for %q", from)

	f.draft = Draft{}
	f.setPhase(Idle)
}

// TakeNotices returns pending notices and clears them.
func (f *Form) TakeNotices() []Notice {
	n := f.notices
	f.notices = nil
	return n
}

func (f *Form) setPhase(p Phase) {
	f.phase = p
	if f.onPhase != nil {
		f.onPhase(p)
	}
}
