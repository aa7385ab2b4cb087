package form

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/output"
	"github.com/goliatone/go-f2f/pkg/param"
	"github.com/goliatone/go-f2f/pkg/urlsync"
)

// Computation is the user callback run on a valid submission. Output goes to
// out; a non-nil returned value is logged as one more line.
type Computation func(ctx context.Context, in Input, out *output.Stream) (any, error)

// FormOption configures a single form.
type FormOption func(*formConfig)

type formConfig struct {
	clearOutput bool
	submitLabel string
}

// WithClearOutput controls whether the output stream is cleared before each
// computation. Defaults to true.
func WithClearOutput(enabled bool) FormOption {
	return func(c *formConfig) {
		c.clearOutput = enabled
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) FormOption {
	return func(c *formConfig) {
		if label = strings.TrimSpace(label); label != "" {
			c.submitLabel = label
		}
	}
}

// Form is one registered group bound to its controls and output stream.
type Form struct {
	containerID string
	group       *param.Group
	qualified   string
	compute     Computation
	stream      *output.Stream
	config      formConfig
	state       State

	element  *html.Node
	controls map[string]*html.Node
	errors   map[string]*html.Node
	help     map[string]*html.Node
}

// CreateForm builds a form for group inside the element with id containerID,
// registers it and populates it from the current address.
func (s *Session) CreateForm(containerID string, group *param.Group, compute Computation, options ...FormOption) (*Form, error) {
	if group == nil {
		return nil, fault.Definition("form", "group is required")
	}
	if compute == nil {
		return nil, fault.Definition(qualify(group.Name()), "computation is required")
	}
	container := dom.FindByID(s.doc, containerID)
	if container == nil {
		return nil, fault.Structural("container %q not found", containerID)
	}

	cfg := formConfig{clearOutput: true, submitLabel: "Submit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	f := &Form{
		containerID: containerID,
		group:       group,
		qualified:   qualify(group.Name()),
		compute:     compute,
		config:      cfg,
		state:       StateIdle,
		controls:    make(map[string]*html.Node, group.Len()),
		errors:      make(map[string]*html.Node, group.Len()),
		help:        make(map[string]*html.Node),
	}
	if err := s.register(f); err != nil {
		return nil, err
	}

	f.element = f.build()
	outputRoot := dom.Element("div", dom.Attr("id", f.qualified+".output"))
	f.stream = output.New(output.WithRoot(outputRoot))
	dom.Append(container, f.element, outputRoot)

	f.Populate(s.sync.Current())
	s.logger.Debug("form created", "form", f.qualified, "container", containerID, "params", group.Len())
	return f, nil
}

func (f *Form) build() *html.Node {
	element := dom.Element("form",
		dom.Attr("id", f.qualified),
		dom.Attr("class", "f2f-form"),
		dom.Attr("data-form", f.group.Name()),
	)
	if description := f.group.Description(); description != "" {
		dom.Append(element, dom.Append(dom.Element("p", dom.Attr("class", "f2f-form-description")), dom.Text(description)))
	}

	for _, p := range f.group.Params() {
		key := f.Key(p.Name)
		field := dom.Element("div",
			dom.Attr("class", "f2f-field f2f-field-"+string(p.Widget.Kind())),
			dom.Attr("data-field", key),
		)
		label := dom.Append(dom.Element("label", dom.Attr("for", key)), dom.Text(p.Label))
		control := p.Widget.Create(key)
		dom.Append(field, label, control)
		f.controls[p.Name] = control

		if p.Description != "" {
			toggle := dom.Element("button",
				dom.Attr("type", "button"),
				dom.Attr("class", "f2f-help-toggle"),
				dom.Attr("aria-controls", key+".help"),
				dom.Attr("data-help-for", key),
			)
			dom.Append(toggle, dom.Text("?"))
			help := dom.Element("div",
				dom.Attr("id", key+".help"),
				dom.Attr("class", "f2f-help"),
				dom.Attr("hidden", ""),
			)
			dom.Append(help, helpContent(p.Description)...)
			dom.Append(field, toggle, help)
			f.help[p.Name] = help
		}

		errorNode := dom.Element("span",
			dom.Attr("id", key+".error"),
			dom.Attr("class", "f2f-error"),
			dom.Attr("role", "alert"),
		)
		dom.Append(field, errorNode)
		f.errors[p.Name] = errorNode

		dom.Append(element, field)
	}

	submit := dom.Element("button", dom.Attr("type", "submit"), dom.Attr("class", "f2f-submit"))
	dom.Append(element, dom.Append(submit, dom.Text(f.config.submitLabel)))
	return element
}

// Name returns the group name.
func (f *Form) Name() string { return f.group.Name() }

// QualifiedName returns "f2f." + group name.
func (f *Form) QualifiedName() string { return f.qualified }

// ContainerID returns the id of the element the form was mounted into.
func (f *Form) ContainerID() string { return f.containerID }

// Group returns the param group backing the form.
func (f *Form) Group() *param.Group { return f.group }

// Stream returns the form's output stream.
func (f *Form) Stream() *output.Stream { return f.stream }

// Element returns the <form> element.
func (f *Form) Element() *html.Node { return f.element }

// State returns the submission state reached by the last submission.
func (f *Form) State() State { return f.state }

// Key returns the fully-qualified key of a param.
func (f *Form) Key(name string) string {
	return f.prefix() + name
}

// Control returns the live control of a param.
func (f *Form) Control(name string) *html.Node {
	return f.controls[name]
}

// ErrorText returns the message shown next to a param, if any.
func (f *Form) ErrorText(name string) string {
	node, ok := f.errors[name]
	if !ok {
		return ""
	}
	return dom.TextContent(node)
}

// Populate implements urlsync.Target. A query without any key in the form's
// namespace resets every control to its defaults; otherwise each field is
// written from the query. Field errors from an earlier submission are
// cleared either way; nothing is re-validated.
func (f *Form) Populate(query urlsync.Query) {
	reset := !query.HasPrefix(f.prefix())
	values := query.Values()
	for _, p := range f.group.Params() {
		if reset {
			fresh := p.Widget.Create(f.Key(p.Name))
			dom.Replace(f.controls[p.Name], fresh)
			f.controls[p.Name] = fresh
		} else {
			p.Widget.Write(f.controls[p.Name], f.Key(p.Name), values)
		}
		f.clearError(p.Name)
	}
}

func (f *Form) prefix() string {
	return f.qualified + "."
}

func (f *Form) clearError(name string) {
	dom.SetText(f.errors[name], "")
	dom.RemoveAttr(f.controls[name], "aria-invalid")
}

func (f *Form) showError(name, message string) {
	dom.SetText(f.errors[name], message)
	dom.SetAttr(f.controls[name], "aria-invalid", "true")
}
