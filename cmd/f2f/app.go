package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-f2f/internal/config"
	"github.com/goliatone/go-f2f/internal/demo"
	"github.com/goliatone/go-f2f/internal/logging"
	"github.com/goliatone/go-f2f/pkg/definition"
	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/form"
	"github.com/goliatone/go-f2f/pkg/history"
	"github.com/goliatone/go-f2f/pkg/openapi"
	"github.com/goliatone/go-f2f/pkg/page"
)

// containerID is the element every form is mounted into.
const containerID = "forms"

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	logLevel   string
	output     string
	query      string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "configuration file (default ./f2f.yaml)")
	fs.StringVar(&c.logLevel, "log-level", "", "override log.level")
	fs.StringVar(&c.output, "output", "", "override output.format (term or html)")
	fs.StringVar(&c.query, "query", "", "initial address query")
}

// app is a mounted session plus the settings it was built from.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	nav     *history.Memory
	session *form.Session
	forms   []*form.Form
}

func newApp(ctx context.Context, flags commonFlags, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.output != "" {
		cfg.Output.Format = flags.output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		return nil, err
	}

	doc, body := dom.NewDocument()
	dom.Append(body, dom.Element("main", dom.Attr("id", containerID)))
	nav := history.NewMemory(flags.query)
	session := form.New(doc, nav, form.WithLogger(logger))

	forms, err := mount(ctx, cfg, session)
	if err != nil {
		session.Close()
		return nil, err
	}
	logger.Debug("forms mounted", "count", len(forms), "query", nav.Query())
	return &app{cfg: cfg, logger: logger, nav: nav, session: session, forms: forms}, nil
}

func (a *app) Close() {
	a.session.Close()
}

// mount creates the configured forms inside the session.
func mount(ctx context.Context, cfg config.Config, session *form.Session) ([]*form.Form, error) {
	registry := demo.Registry()
	switch {
	case cfg.Forms.OpenAPI != "":
		doc, err := openapi.LoadFile(ctx, cfg.Forms.OpenAPI)
		if err != nil {
			return nil, err
		}
		group, err := doc.Group(cfg.Forms.Operation)
		if err != nil {
			return nil, err
		}
		echo, err := registry.Get(demo.EchoName)
		if err != nil {
			return nil, err
		}
		created, err := session.CreateForm(containerID, group, echo)
		if err != nil {
			return nil, err
		}
		return []*form.Form{created}, nil
	case cfg.Forms.File != "":
		set, err := definition.LoadFile(cfg.Forms.File)
		if err != nil {
			return nil, err
		}
		return set.Mount(session, containerID, registry)
	default:
		set, err := demo.Definitions(nil)
		if err != nil {
			return nil, err
		}
		return set.Mount(session, containerID, registry)
	}
}

// pageOptions maps the theme settings onto page options.
func (a *app) pageOptions() []page.Option {
	t := a.cfg.Theme
	options := []page.Option{page.WithTitle("f2f")}
	if t.Stylesheet != "" {
		options = append(options, page.WithStylesheet(t.Stylesheet))
	}
	if t.Name != "" || len(t.Tokens) > 0 {
		manifest := &theme.Manifest{
			Name:    orDefault(t.Name, "default"),
			Version: "1.0.0",
			Tokens:  t.Tokens,
		}
		options = append(options, page.WithTheme(page.ThemeConfig(manifest, t.Variant)))
	}
	return options
}

func newFlagSet(name string, common *commonFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("f2f "+name, pflag.ContinueOnError)
	common.register(fs)
	return fs
}

// parseFlags parses args and reports whether help was requested.
func parseFlags(fs *pflag.FlagSet, args []string, stderr io.Writer) (bool, error) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return true, nil
		}
		return false, &exitError{code: 2, err: err}
	}
	if fs.NArg() > 0 {
		return false, &exitError{code: 2, err: fmt.Errorf("unexpected argument: %s", fs.Arg(0))}
	}
	return false, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
