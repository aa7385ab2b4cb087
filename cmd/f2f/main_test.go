package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

func TestRun_Forms(t *testing.T) {
	stdout, _, err := runCommand(t, "forms")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	for _, want := range []string{"greet", "stats", "plot", "f2f.stats.values"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in listing:\n%s", want, stdout)
		}
	}
}

func TestRun_SubmitPrintsOutputAndQuery(t *testing.T) {
	stdout, _, err := runCommand(t, "submit", "--form", "stats", "--set", "values=1,2,3", "--output", "html")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(stdout, "<table") {
		t.Fatalf("expected a table in output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "query: ?f2f.stats.values=1%2C2%2C3\n") {
		t.Fatalf("unexpected query line:\n%s", stdout)
	}
}

func TestRun_SubmitKeepsOtherFormsInQuery(t *testing.T) {
	stdout, _, err := runCommand(t, "submit", "--form", "f2f.greet",
		"--query", "f2f.stats.values=4&f2f.greet.name=Bob",
		"--set", "name=Ada")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(stdout, "query: ?f2f.stats.values=4&f2f.greet.name=Ada\n") {
		t.Fatalf("unexpected query line:\n%s", stdout)
	}
}

func TestRun_SubmitInvalid(t *testing.T) {
	_, stderr, err := runCommand(t, "submit", "--form", "stats", "--set", "precision=x")
	if exitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	for _, key := range []string{"f2f.stats.values:", "f2f.stats.precision:"} {
		if !strings.Contains(stderr, key) {
			t.Fatalf("expected %q in stderr:\n%s", key, stderr)
		}
	}
}

func TestRun_SubmitUnknownParamSuggests(t *testing.T) {
	_, _, err := runCommand(t, "submit", "--form", "stats", "--set", "valeus=1")
	if exitCode(err) != 2 || !strings.Contains(err.Error(), `did you mean "values"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestRun_Render(t *testing.T) {
	stdout, _, err := runCommand(t, "render", "--query", "f2f.greet.name=Ada")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`name="f2f.greet.name"`, `value="Ada"`, "<title>f2f</title>"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in page:\n%s", want, stdout)
		}
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if _, _, err := runCommand(t, "frobnicate"); exitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestRun_OutputFlagOverridesConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile("f2f.yaml", []byte("output:\n  format: pdf\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var stdout, stderr bytes.Buffer
	args := []string{"submit", "--form", "stats", "--set", "values=1", "--output", "html"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(stdout.String(), "<table") {
		t.Fatalf("expected html output:\n%s", stdout.String())
	}

	if err := run(context.Background(), []string{"forms"}, &stdout, &stderr); err == nil {
		t.Fatalf("expected invalid output format without the override")
	}
}
