// Package testsupport holds shared helpers for package tests: session
// fixtures mounted on an in-memory history, and golden-file comparison
// driven by UPDATE_GOLDENS.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/form"
	"github.com/goliatone/go-f2f/pkg/history"
)

// ContainerID is the id of the element NewSession mounts forms into.
const ContainerID = "forms"

// NewSession builds a document with a single container and a session over an
// in-memory history starting at query. The session is closed when the test
// ends.
func NewSession(t *testing.T, query string, options ...form.Option) (*form.Session, *history.Memory) {
	t.Helper()

	doc, body := dom.NewDocument()
	dom.Append(body, dom.Element("main", dom.Attr("id", ContainerID)))
	nav := history.NewMemory(query)
	session := form.New(doc, nav, options...)
	t.Cleanup(session.Close)
	return session, nav
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, ignoring leading
// and trailing whitespace, or rewrites the file when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got+"\n")) {
		return
	}
	want := strings.TrimSpace(MustReadGoldenString(t, path))
	if diff := CompareGolden(want, strings.TrimSpace(got)); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CaptureOutput runs render against a buffer and returns what it wrote.
func CaptureOutput(t *testing.T, render func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}
