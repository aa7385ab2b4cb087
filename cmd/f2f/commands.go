package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-f2f/internal/config"
	"github.com/goliatone/go-f2f/internal/suggest"
	"github.com/goliatone/go-f2f/pkg/form"
	"github.com/goliatone/go-f2f/pkg/output/termview"
	"github.com/goliatone/go-f2f/pkg/page"
	"github.com/goliatone/go-f2f/pkg/tui"
	"github.com/goliatone/go-f2f/pkg/urlsync"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func runForms(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("forms", &common)
	if help, err := parseFlags(fs, args, stderr); help || err != nil {
		return err
	}

	a, err := newApp(ctx, common, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, f := range a.forms {
		fmt.Fprintln(stdout, nameStyle.Render(f.Name()))
		if desc := f.Group().Description(); desc != "" {
			fmt.Fprintln(stdout, "  "+desc)
		}
		for _, p := range f.Group().Params() {
			fmt.Fprintf(stdout, "  %-16s %s\n", f.Key(p.Name), faintStyle.Render(string(p.Widget.Kind())))
		}
	}
	return nil
}

func runRender(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var outPath string
	fs := newFlagSet("render", &common)
	fs.StringVarP(&outPath, "out", "o", "", "write the page to this file instead of stdout")
	if help, err := parseFlags(fs, args, stderr); help || err != nil {
		return err
	}

	a, err := newApp(ctx, common, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	w := stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		defer file.Close()
		w = file
	}
	if err := page.Render(w, a.session.Document(), a.pageOptions()...); err != nil {
		return err
	}
	if outPath != "" {
		a.logger.Info("page written", "path", outPath)
	}
	return nil
}

func runSubmit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var name string
	var sets []string
	fs := newFlagSet("submit", &common)
	fs.StringVarP(&name, "form", "f", "", "form to submit")
	fs.StringArrayVarP(&sets, "set", "s", nil, "param value as NAME=VALUE (repeatable)")
	if help, err := parseFlags(fs, args, stderr); help || err != nil {
		return err
	}

	a, err := newApp(ctx, common, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	target, err := a.target(name)
	if err != nil {
		return err
	}
	data, err := submitData(target, a.nav.Query(), sets)
	if err != nil {
		return err
	}
	sub, err := a.session.Submit(ctx, target.Name(), data)
	return a.report(stdout, stderr, target, sub, err)
}

func runPrompt(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var name string
	var attempts int
	fs := newFlagSet("prompt", &common)
	fs.StringVarP(&name, "form", "f", "", "form to fill")
	fs.IntVar(&attempts, "attempts", 3, "re-prompts allowed per invalid answer")
	if help, err := parseFlags(fs, args, stderr); help || err != nil {
		return err
	}

	a, err := newApp(ctx, common, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	target, err := a.target(name)
	if err != nil {
		return err
	}
	filler := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(stderr)),
		tui.WithMaxAttempts(attempts),
	)
	sub, err := filler.Fill(ctx, a.session, target.Name())
	if errors.Is(err, tui.ErrAborted) {
		return &exitError{code: 130, err: err}
	}
	return a.report(stdout, stderr, target, sub, err)
}

// target resolves --form, defaulting to the only form when there is one.
func (a *app) target(name string) (*form.Form, error) {
	if name == "" {
		if len(a.forms) == 1 {
			return a.forms[0], nil
		}
		return nil, &exitError{code: 2, err: errors.New("--form is required")}
	}
	return a.session.Lookup(name)
}

// report prints the output and the resulting address of a submission.
func (a *app) report(stdout, stderr io.Writer, target *form.Form, sub form.Submission, err error) error {
	if sub.Invalid() {
		for _, field := range sub.Fields {
			if field.Message != "" {
				fmt.Fprintf(stderr, "%s: %s\n", field.Key, field.Message)
			}
		}
		return &exitError{code: 1, err: fmt.Errorf("form %s has invalid fields", target.Name())}
	}
	if sub.State != form.StateRendered {
		return err
	}

	if writeErr := writeOutput(stdout, a.cfg.Output.Format, target); writeErr != nil {
		return writeErr
	}
	fmt.Fprintf(stdout, "query: ?%s\n", sub.Query)
	a.logger.Debug("submitted", "form", target.QualifiedName(), "pushed", sub.QueryChanged, "history", a.nav.Len())
	return err
}

func writeOutput(w io.Writer, format string, target *form.Form) error {
	if format == config.FormatHTML {
		if err := target.Stream().Render(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	return termview.Render(w, target.Stream())
}

// submitData starts from the form's keys in query and applies every
// NAME=VALUE assignment on top.
func submitData(target *form.Form, query string, sets []string) (url.Values, error) {
	data := url.Values{}
	prefix := target.QualifiedName() + "."
	current := urlsync.ParseQuery(query)
	for _, key := range current.Keys() {
		if strings.HasPrefix(key, prefix) {
			data.Set(key, current.Get(key))
		}
	}

	names := target.Group().Names()
	for _, assignment := range sets {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, &exitError{code: 2, err: fmt.Errorf("--set %q: expected NAME=VALUE", assignment)}
		}
		name = strings.TrimPrefix(strings.TrimSpace(name), prefix)
		if _, known := target.Group().Param(name); !known {
			err := fmt.Errorf("form %s has no param %q", target.Name(), name)
			if hint := suggest.Closest(name, names); hint != "" {
				err = fmt.Errorf("%w (did you mean %q?)", err, hint)
			}
			return nil, &exitError{code: 2, err: err}
		}
		data.Set(target.Key(name), value)
	}
	return data, nil
}
