package gotemplate

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

func newEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	engine, err := New(append([]Option{WithFS(os.DirFS("testdata"))}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!\n" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{"site": "f2f"}))
	got, err := engine.Render("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada from f2f!\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderStringAndFilter(t *testing.T) {
	engine := newEngine(t)
	if err := engine.RegisterFilter("f2f_shout", func(input any, _ any) (any, error) {
		return strings.ToUpper(fmt.Sprint(input)) + "!", nil
	}); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("f2f_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.Render("{{ data.Name|f2f_shout }}", struct{ Name string }{Name: "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
	if _, err := newEngine(t).RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}
