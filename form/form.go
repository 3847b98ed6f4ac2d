// Package form keeps the state of a create-password form: the two captured
// inputs, the show/hide toggle and the outcome of the last submit.
//
// Validation itself lives in package password; a Form only applies the
// returned Result to its own state.
package form

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/km-arc/go-passform/password"
)

var (
	ErrUnknownField = errors.New("form: unknown field")
	ErrAccepted     = errors.New("form: password already accepted")
	ErrNotFound     = errors.New("form: not found")
)

// Field names one of the two password inputs.
type Field string

const (
	FieldPassword     Field = "password"
	FieldConfirmation Field = "confirmation"
)

// Fields lists the inputs a Form captures.
var Fields = []Field{FieldPassword, FieldConfirmation}

// Form is safe for concurrent use.
type Form struct {
	mu sync.Mutex

	id           string
	createdAt    time.Time
	password     string
	confirmation string
	visible      bool
	submitted    bool
	result       password.Result
	accepted     bool

	onAccept func(password string)
}

// Option configures a Form.
type Option func(*Form)

// OnAccept registers fn to run once, with the accepted password, the first
// time Submit succeeds.
func OnAccept(fn func(password string)) Option {
	return func(f *Form) { f.onAccept = fn }
}

// New returns an empty form.
func New(id string, opts ...Option) *Form {
	f := &Form{id: id, createdAt: time.Now().UTC()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) ID() string { return f.id }

// Blur captures the value of a field when the user leaves it.
func (f *Form) Blur(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.accepted {
		return ErrAccepted
	}
	switch field {
	case FieldPassword:
		f.password = value
	case FieldConfirmation:
		f.confirmation = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// ToggleVisibility flips show/hide and returns the new state.
func (f *Form) ToggleVisibility() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = !f.visible
	return f.visible
}

// InputType is the input type both fields render with: "text" or "password".
func (f *Form) InputType() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return inputType(f.visible)
}

// Submit validates the captured pair and records the outcome. Once a form is
// accepted, later submits return Success without running OnAccept again.
func (f *Form) Submit() password.Result {
	f.mu.Lock()
	if f.accepted {
		res := f.result
		f.mu.Unlock()
		return res
	}

	res := password.Validate(password.Input{
		Password:     f.password,
		Confirmation: f.confirmation,
	})
	f.submitted = true
	f.result = res
	f.accepted = res.OK()

	accept, pw := f.onAccept, f.password
	f.mu.Unlock()

	if res.OK() && accept != nil {
		accept(pw)
	}
	return res
}

// Accepted reports whether a submit has succeeded.
func (f *Form) Accepted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accepted
}

// Message is the text to show under the form; empty before the first submit
// and after success.
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result.Message()
}

// Snapshot is a point-in-time view of a Form. It never carries the raw
// password text.
type Snapshot struct {
	ID                 string         `json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	InputType          string         `json:"input_type"`
	Visible            bool           `json:"visible"`
	PasswordLength     int            `json:"password_length"`
	ConfirmationLength int            `json:"confirmation_length"`
	Submitted          bool           `json:"submitted"`
	Accepted           bool           `json:"accepted"`
	Kind               *password.Kind `json:"kind,omitempty"`
	Error              string         `json:"error"`
	Message            string         `json:"message"`
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		ID:                 f.id,
		CreatedAt:          f.createdAt,
		InputType:          inputType(f.visible),
		Visible:            f.visible,
		PasswordLength:     password.Length(f.password),
		ConfirmationLength: password.Length(f.confirmation),
		Submitted:          f.submitted,
		Accepted:           f.accepted,
		Error:              f.result.Code(),
		Message:            f.result.Message(),
	}
	if f.submitted {
		k := f.result.Kind
		s.Kind = &k
	}
	return s
}

func inputType(visible bool) string {
	if visible {
		return "text"
	}
	return "password"
}
