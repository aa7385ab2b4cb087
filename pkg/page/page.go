// Package page wraps a session document in a complete, themed HTML page.
package page

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/render/template"
	"github.com/goliatone/go-f2f/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// Option configures Render.
type Option func(*config)

type config struct {
	title      string
	lang       string
	stylesheet string
	template   string
	theme      *theme.RendererConfig
	renderer   template.TemplateRenderer
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = strings.TrimSpace(title)
	}
}

// WithLang sets the html lang attribute.
func WithLang(lang string) Option {
	return func(c *config) {
		if lang = strings.TrimSpace(lang); lang != "" {
			c.lang = lang
		}
	}
}

// WithStylesheet links a stylesheet, overriding the theme asset.
func WithStylesheet(href string) Option {
	return func(c *config) {
		c.stylesheet = strings.TrimSpace(href)
	}
}

// WithTheme applies resolved theme settings.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithRenderer swaps the template renderer and the template name it renders.
func WithRenderer(renderer template.TemplateRenderer, name string) Option {
	return func(c *config) {
		if renderer != nil {
			c.renderer = renderer
		}
		if name = strings.TrimSpace(name); name != "" {
			c.template = name
		}
	}
}

// Render writes a full page whose body is the content of doc's <body>, or doc
// itself when it has none.
func Render(w io.Writer, doc *html.Node, options ...Option) error {
	cfg := config{title: "f2f", lang: "en", template: "page"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return fmt.Errorf("page: template engine: %w", err)
		}
		cfg.renderer = engine
	}

	data := map[string]any{
		"title":      cfg.title,
		"lang":       cfg.lang,
		"stylesheet": cfg.stylesheet,
		"body":       body(doc),
	}
	if cfg.theme != nil {
		data["theme"] = cfg.theme.Theme
		data["variant"] = cfg.theme.Variant
		data["css_vars"] = cssVarsStyle(cfg.theme.CSSVars)
		if cfg.stylesheet == "" && cfg.theme.AssetURL != nil {
			data["stylesheet"] = cfg.theme.AssetURL(StylesheetAsset)
		}
	}

	if _, err := cfg.renderer.RenderTemplate(cfg.template, data, w); err != nil {
		return fmt.Errorf("page: render: %w", err)
	}
	return nil
}

func body(doc *html.Node) string {
	if doc == nil {
		return ""
	}
	if element := dom.Find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	}); element != nil {
		return dom.InnerHTML(element)
	}
	return dom.String(doc)
}
