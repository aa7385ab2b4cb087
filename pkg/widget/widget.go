// Package widget implements the per-field capability bundle of a form: create
// a control, read a typed value from submitted data and write an external raw
// value back into a live control.
package widget

import (
	"errors"
	"net/url"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/fault"
)

// Kind identifies one of the closed set of widget variants.
type Kind string

const (
	KindText     Kind = "text"
	KindCheckBox Kind = "checkbox"
	KindSelect   Kind = "select"
)

// Widget is implemented by TextWidget, CheckBoxWidget and SelectWidget.
//
// Create builds a control named and identified by key. Read converts the raw
// value submitted under key. Write pushes the raw value stored under key into
// an existing control and never runs conversion.
type Widget interface {
	Kind() Kind
	Describe() Descriptor
	Create(key string) *html.Node
	Read(key string, data url.Values) Result
	Write(control *html.Node, key string, data url.Values)
}

// Descriptor is a read-only summary of a widget's configuration.
type Descriptor struct {
	Kind          Kind     `json:"kind"`
	Required      bool     `json:"required"`
	DefaultText   string   `json:"defaultText,omitempty"`
	Placeholder   string   `json:"placeholder,omitempty"`
	InputType     string   `json:"inputType,omitempty"`
	Checked       bool     `json:"checked,omitempty"`
	Options       []string `json:"options,omitempty"`
	DefaultOption string   `json:"defaultOption,omitempty"`
}

// Outcome discriminates a Result.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalid
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Result is the value-level outcome of Widget.Read: a converted value, a
// field-local validation message, or a fatal error that aborts a submission.
type Result struct {
	Outcome Outcome
	Value   any
	Message string
	Err     error
}

// Ok wraps a successfully converted value.
func Ok(value any) Result {
	return Result{Outcome: OutcomeOK, Value: value}
}

// Invalid reports a validation failure local to the field.
func Invalid(message string) Result {
	return Result{Outcome: OutcomeInvalid, Message: message}
}

// Fatal reports an error that must abort the submission.
func Fatal(err error) Result {
	return Result{Outcome: OutcomeFatal, Err: err}
}

// classify maps a converter return pair onto a Result.
func classify(value any, err error) Result {
	if err == nil {
		return Ok(value)
	}
	var validation *fault.ValidationError
	if errors.As(err, &validation) {
		return Invalid(validation.Message)
	}
	return Fatal(err)
}
