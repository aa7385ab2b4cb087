package termview

import (
	"strings"
	"testing"

	"github.com/goliatone/go-f2f/pkg/output"
)

func TestRender_AllLanes(t *testing.T) {
	s := output.New()
	s.Info("starting", 3)
	s.AddHeader("job", "cost")
	s.AddRow([]any{"a", 1}, false)
	if err := s.AddSVG(`<rect x="0" y="0" width="4" height="4"/>`); err != nil {
		t.Fatalf("add svg: %v", err)
	}
	s.AddBreak()
	s.Error("boom")

	got := String(s, WithWidth(5))
	for _, want := range []string{"starting 3", "job", "cost", "[svg: 1 elements]", "─────", "boom"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "starting") > strings.Index(got, "boom") {
		t.Fatalf("lanes rendered out of order:\n%s", got)
	}
}

func TestRender_EmptyStream(t *testing.T) {
	if got := String(output.New()); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
