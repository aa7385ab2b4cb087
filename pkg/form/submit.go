package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/urlsync"
	"github.com/goliatone/go-f2f/pkg/widget"
)

// FieldReport describes how one field fared during a submission.
type FieldReport struct {
	Name    string
	Key     string
	Raw     string
	Outcome widget.Outcome
	Message string
}

// Submission summarises a submit cycle.
type Submission struct {
	Form         string
	State        State
	Input        Input
	Fields       []FieldReport
	Result       any
	Query        string
	QueryChanged bool
}

// Invalid reports whether any field failed validation.
func (s Submission) Invalid() bool {
	return s.State == StateInvalid
}

// Submit runs one submission of the named form with the given raw data.
//
// Every field is read, so every invalid field gets its message. When any
// field is invalid nothing is computed and the address is left alone. A
// fatal read error aborts the submission. Otherwise the computation runs,
// its failure is rendered to the output stream and returned as a
// *fault.ComputationError, a separator closes the run, and the address is
// reconciled with the submitted values either way.
func (s *Session) Submit(ctx context.Context, name string, data url.Values) (Submission, error) {
	f, err := s.Lookup(name)
	if err != nil {
		return Submission{}, err
	}
	if data == nil {
		data = url.Values{}
	}

	s.run.Lock()
	defer s.run.Unlock()

	sub := Submission{Form: f.Name()}
	f.state = StateReading

	params := f.group.Params()
	input := make(Input, len(params))
	submitted := urlsync.Query{}
	failed := false
	for _, p := range params {
		key := f.Key(p.Name)
		p.Widget.Write(f.controls[p.Name], key, data)
		f.clearError(p.Name)

		report := FieldReport{Name: p.Name, Key: key, Raw: data.Get(key)}
		result := p.Widget.Read(key, data)
		report.Outcome = result.Outcome
		switch result.Outcome {
		case widget.OutcomeOK:
			input[p.Name] = result.Value
		case widget.OutcomeInvalid:
			failed = true
			report.Message = result.Message
			f.showError(p.Name, result.Message)
		default:
			f.state = StateIdle
			sub.State = StateIdle
			sub.Fields = append(sub.Fields, report)
			return sub, fmt.Errorf("form %s: read %s: %w", f.qualified, key, result.Err)
		}
		sub.Fields = append(sub.Fields, report)
		submitted.Add(key, report.Raw)
	}

	if failed {
		f.state = StateInvalid
		sub.State = StateInvalid
		s.logger.Debug("submission rejected", "form", f.qualified)
		return sub, nil
	}

	sub.Input = input
	f.state = StateComputing
	result, computeErr := s.compute(ctx, f, input)
	sub.Result = result
	sub.Query, sub.QueryChanged = s.sync.Reconcile(f.prefix(), submitted)
	f.state = StateRendered
	sub.State = StateRendered
	return sub, computeErr
}

func (s *Session) compute(ctx context.Context, f *Form, input Input) (any, error) {
	if f.config.clearOutput {
		f.stream.Clear()
	}
	defer f.stream.AddBreak()

	result, err := f.call(ctx, input)
	if err != nil {
		f.stream.Error(err)
		var computation *fault.ComputationError
		if !errors.As(err, &computation) {
			err = &fault.ComputationError{Form: f.qualified, Err: err}
		}
		s.logger.Debug("computation failed", "form", f.qualified, "error", err)
		return nil, err
	}
	if result != nil {
		f.stream.Log(result)
	}
	return result, nil
}

func (f *Form) call(ctx context.Context, input Input) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.compute(ctx, input, f.stream)
}
