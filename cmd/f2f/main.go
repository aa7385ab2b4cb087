// f2f renders declarative forms, submits them from the command line and
// prompts for their values interactively.
//
// Usage:
//
//	f2f forms  [flags]
//	f2f render [flags] [--query QUERY] [--out FILE]
//	f2f submit [flags] --form NAME [--set NAME=VALUE ...] [--query QUERY]
//	f2f prompt [flags] --form NAME [--query QUERY]
//
// Forms come from forms.file (YAML), forms.openapi with forms.operation, or
// the built-in samples when neither is configured.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return &exitError{code: 2, err: errors.New("missing command")}
	}

	command, rest := args[0], args[1:]
	switch command {
	case "forms":
		return runForms(ctx, rest, stdout, stderr)
	case "render":
		return runRender(ctx, rest, stdout, stderr)
	case "submit":
		return runSubmit(ctx, rest, stdout, stderr)
	case "prompt":
		return runPrompt(ctx, rest, stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return &exitError{code: 2, err: fmt.Errorf("unknown command %q", command)}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `f2f - declarative forms with addressable state

Usage:
  f2f forms  [flags]                      list the available forms
  f2f render [flags]                      print the forms as an HTML page
  f2f submit [flags] --form NAME          submit a form with --set values
  f2f prompt [flags] --form NAME          fill a form interactively

Common flags:
  --config PATH      configuration file (default ./f2f.yaml)
  --log-level LEVEL  debug, info, warn or error
  --query QUERY      initial address query, e.g. "f2f.stats.values=1,2,3"

Run "f2f COMMAND --help" for command flags.
`)
}
