// Package tui fills forms from an interactive terminal: each param is asked
// with the prompt matching its widget, invalid answers are re-asked, and the
// collected values are submitted through the session like a browser submit.
package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-f2f/pkg/form"
	"github.com/goliatone/go-f2f/pkg/param"
	"github.com/goliatone/go-f2f/pkg/urlsync"
	"github.com/goliatone/go-f2f/pkg/widget"
)

const defaultAttempts = 3

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithMaxAttempts bounds how often an invalid answer is re-asked.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// Filler prompts for form values.
type Filler struct {
	driver   PromptDriver
	attempts int
}

// New constructs a Filler using survey on the process terminal unless a
// driver is supplied.
func New(options ...Option) *Filler {
	f := &Filler{attempts: defaultAttempts}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for every param of the named form, pre-filled from the
// session's current address, and submits the answers.
func (f *Filler) Fill(ctx context.Context, session *form.Session, name string) (form.Submission, error) {
	target, err := session.Lookup(name)
	if err != nil {
		return form.Submission{}, err
	}
	current := urlsync.ParseQuery(session.Navigator().Query()).Values()
	data, err := f.Collect(ctx, target, current)
	if err != nil {
		return form.Submission{}, err
	}
	return session.Submit(ctx, target.Name(), data)
}

// Collect prompts for every param of target and returns the raw answers keyed
// by fully-qualified key.
func (f *Filler) Collect(ctx context.Context, target *form.Form, current url.Values) (url.Values, error) {
	data := url.Values{}
	for _, p := range target.Group().Params() {
		key := target.Key(p.Name)
		var err error
		switch p.Widget.Kind() {
		case widget.KindCheckBox:
			err = f.confirm(ctx, p, key, current, data)
		case widget.KindSelect:
			err = f.choose(ctx, p, key, current, data)
		default:
			err = f.input(ctx, p, key, current, data)
		}
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (f *Filler) confirm(ctx context.Context, p param.Param, key string, current, data url.Values) error {
	checked := p.Widget.Describe().Checked
	if current.Has(key) {
		checked = current.Get(key) != ""
	}
	ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: p.Label, Default: checked, Help: p.Description})
	if err != nil {
		return err
	}
	if ok {
		data.Set(key, "on")
	}
	return nil
}

func (f *Filler) choose(ctx context.Context, p param.Param, key string, current, data url.Values) error {
	desc := p.Widget.Describe()
	selected := desc.DefaultOption
	if current.Has(key) {
		selected = current.Get(key)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      p.Label,
		Options:      desc.Options,
		DefaultIndex: indexOf(desc.Options, selected),
		Help:         p.Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(desc.Options) {
		return fmt.Errorf("tui: %s: option index %d out of range", key, idx)
	}
	data.Set(key, desc.Options[idx])
	return nil
}

func (f *Filler) input(ctx context.Context, p param.Param, key string, current, data url.Values) error {
	desc := p.Widget.Describe()
	help := p.Description
	if desc.DefaultText != "" {
		help = joinHelp(help, "default: "+desc.DefaultText)
	}
	validate := func(answer string) error {
		result := p.Widget.Read(key, url.Values{key: {answer}})
		switch result.Outcome {
		case widget.OutcomeInvalid:
			return errors.New(result.Message)
		case widget.OutcomeFatal:
			return result.Err
		}
		return nil
	}

	cfg := InputConfig{Message: p.Label, Default: current.Get(key), Help: help, Validator: validate}
	for attempt := 0; attempt < f.attempts; attempt++ {
		answer, err := f.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if err := validate(answer); err != nil {
			if infoErr := f.driver.Info(ctx, err.Error()); infoErr != nil {
				return infoErr
			}
			continue
		}
		if answer != "" {
			data.Set(key, answer)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, key)
}

func joinHelp(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += part
	}
	return out
}
