package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/history"
	"github.com/goliatone/go-f2f/pkg/output"
	"github.com/goliatone/go-f2f/pkg/param"
	"github.com/goliatone/go-f2f/pkg/urlsync"
	"github.com/goliatone/go-f2f/pkg/widget"
)

type fixture struct {
	session *Session
	nav     *history.Memory
	calls   int
}

func newFixture(t *testing.T, query string) *fixture {
	t.Helper()
	doc, body := dom.NewDocument()
	dom.Append(body, dom.Element("div", dom.Attr("id", "app")))
	nav := history.NewMemory(query)
	session := New(doc, nav)
	t.Cleanup(session.Close)
	return &fixture{session: session, nav: nav}
}

func (fx *fixture) sum(ctx context.Context, in Input, out *output.Stream) (any, error) {
	fx.calls++
	a, err := Get[int](in, "a")
	if err != nil {
		return nil, err
	}
	b, err := Get[int](in, "b")
	if err != nil {
		return nil, err
	}
	out.Info("adding", a, b)
	return a + b, nil
}

func sumGroup(t *testing.T) *param.Group {
	t.Helper()
	return param.Define("sum").
		Add(
			param.New("a", widget.Integer()),
			param.New("b", widget.Integer().Default(10), param.WithDescription("Second <b>operand</b><script>x()</script>")),
		).
		MustBuild()
}

func value(node *html.Node) string {
	v, _ := dom.GetAttr(node, "value")
	return v
}

func TestSubmit_RequiredEmptyFieldIsLocal(t *testing.T) {
	fx := newFixture(t, "keep=1")
	group := param.Define("opts").
		Add(
			param.New("name", widget.String()),
			param.New("verbose", widget.CheckBox(false)),
		).
		MustBuild()
	f, err := fx.session.CreateForm("app", group, func(context.Context, Input, *output.Stream) (any, error) {
		fx.calls++
		return nil, nil
	})
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	sub, err := fx.session.Submit(context.Background(), "opts", url.Values{"f2f.opts.verbose": {"on"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !sub.Invalid() || f.State() != StateInvalid {
		t.Fatalf("expected invalid state, got %s", sub.State)
	}
	if fx.calls != 0 {
		t.Fatalf("computation must not run")
	}
	if got := f.ErrorText("name"); got != "empty value for f2f.opts.name" {
		t.Fatalf("unexpected error text %q", got)
	}
	if got := f.ErrorText("verbose"); got != "" {
		t.Fatalf("checkbox must not report an error, got %q", got)
	}
	if fx.nav.Len() != 1 || fx.nav.Query() != "keep=1" {
		t.Fatalf("address must not change, got %v", fx.nav.Entries())
	}
	if len(f.Stream().Lanes()) != 0 {
		t.Fatalf("output must not change")
	}
}

func TestSubmit_ValidUpdatesOnlyOwnKeys(t *testing.T) {
	fx := newFixture(t, "utm=x&f2f.other.q=1")
	f, err := fx.session.CreateForm("app", sumGroup(t), fx.sum)
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	sub, err := fx.session.Submit(context.Background(), "f2f.sum", url.Values{
		"f2f.sum.a": {"3"},
		"f2f.sum.b": {"4"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.State != StateRendered || sub.Result != 7 {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if fx.nav.Query() != "utm=x&f2f.other.q=1&f2f.sum.a=3&f2f.sum.b=4" {
		t.Fatalf("unexpected address %q", fx.nav.Query())
	}
	if !sub.QueryChanged || sub.Query != fx.nav.Query() {
		t.Fatalf("submission query mismatch: %+v", sub)
	}
	if diff := cmp.Diff([]output.Lane{output.LaneLog, output.LaneSeparator}, f.Stream().Lanes()); diff != "" {
		t.Fatalf("lanes mismatch (-want +got):\n%s", diff)
	}
	if text := dom.TextContent(f.Stream().Root()); !strings.Contains(text, "adding 3 4") || !strings.Contains(text, "7") {
		t.Fatalf("unexpected output %q", text)
	}
}

func TestSubmit_DefaultIsUsedAndEmptyKeysDropped(t *testing.T) {
	fx := newFixture(t, "")
	if _, err := fx.session.CreateForm("app", sumGroup(t), fx.sum); err != nil {
		t.Fatalf("create form: %v", err)
	}

	sub, err := fx.session.Submit(context.Background(), "sum", url.Values{"f2f.sum.a": {"1"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Result != 11 {
		t.Fatalf("expected default to apply, got %v", sub.Result)
	}
	if fx.nav.Query() != "f2f.sum.a=1" {
		t.Fatalf("unexpected address %q", fx.nav.Query())
	}
}

func TestSubmit_BackNavigationRestoresControls(t *testing.T) {
	fx := newFixture(t, "")
	f, err := fx.session.CreateForm("app", sumGroup(t), fx.sum)
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	ctx := context.Background()
	if _, err := fx.session.Submit(ctx, "sum", url.Values{"f2f.sum.a": {"1"}, "f2f.sum.b": {"2"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := fx.session.Submit(ctx, "sum", url.Values{"f2f.sum.a": {"5"}, "f2f.sum.b": {"6"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	calls := fx.calls

	if err := fx.nav.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got := []string{value(f.Control("a")), value(f.Control("b"))}; !cmp.Equal(got, []string{"1", "2"}) {
		t.Fatalf("expected controls restored, got %v", got)
	}

	if err := fx.nav.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got := value(f.Control("a")); got != "" {
		t.Fatalf("expected defaults after returning to empty address, got %q", got)
	}
	if dom.FindByID(fx.session.Document(), "f2f.sum.a") != f.Control("a") {
		t.Fatalf("rebuilt control must be mounted in the document")
	}
	if fx.calls != calls {
		t.Fatalf("replay must not compute")
	}
}

func TestReplay_ClearsStaleFieldErrors(t *testing.T) {
	fx := newFixture(t, "")
	f, err := fx.session.CreateForm("app", sumGroup(t), fx.sum)
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	ctx := context.Background()
	for _, a := range []string{"1", "2"} {
		if _, err := fx.session.Submit(ctx, "sum", url.Values{"f2f.sum.a": {a}}); err != nil {
			t.Fatalf("submit %s: %v", a, err)
		}
	}
	sub, err := fx.session.Submit(ctx, "sum", url.Values{"f2f.sum.a": {"x"}})
	if err != nil || !sub.Invalid() {
		t.Fatalf("expected invalid submission, got %v %v", sub.State, err)
	}
	if f.ErrorText("a") == "" {
		t.Fatalf("expected a field error before navigating")
	}

	if err := fx.nav.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got := value(f.Control("a")); got != "1" {
		t.Fatalf("expected restored value 1, got %q", got)
	}
	if got := f.ErrorText("a"); got != "" {
		t.Fatalf("stale error survived replay: %q", got)
	}
	if dom.HasAttr(f.Control("a"), "aria-invalid") {
		t.Fatalf("stale aria-invalid survived replay")
	}

	// Returning to an address without the form's keys rebuilds the controls
	// and must clear errors too.
	if _, err := fx.session.Submit(ctx, "sum", url.Values{"f2f.sum.a": {"x"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := fx.nav.Go(-1); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got := f.ErrorText("a"); got != "" {
		t.Fatalf("stale error survived reset: %q", got)
	}
}

func TestReplay_WaitsForRunningSubmission(t *testing.T) {
	fx := newFixture(t, "")
	started := make(chan struct{})
	release := make(chan struct{})
	group := param.Define("slow").Add(param.New("a", widget.Integer())).MustBuild()
	f, err := fx.session.CreateForm("app", group, func(_ context.Context, in Input, _ *output.Stream) (any, error) {
		if Must[int](in, "a") == 5 {
			close(started)
			<-release
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	ctx := context.Background()
	if _, err := fx.session.Submit(ctx, "slow", url.Values{"f2f.slow.a": {"1"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	submitted := make(chan error, 1)
	go func() {
		_, err := fx.session.Submit(ctx, "slow", url.Values{"f2f.slow.a": {"5"}})
		submitted <- err
	}()
	<-started

	navigated := make(chan error, 1)
	go func() { navigated <- fx.nav.Back() }()
	deadline := time.Now().Add(2 * time.Second)
	for fx.nav.Query() != "" {
		if time.Now().After(deadline) {
			t.Fatalf("back navigation never happened")
		}
		runtime.Gosched()
	}
	close(release)

	if err := <-submitted; err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := <-navigated; err != nil {
		t.Fatalf("back: %v", err)
	}
	address := urlsync.ParseQuery(fx.nav.Query()).Get("f2f.slow.a")
	if got := value(f.Control("a")); got != address || got != "5" {
		t.Fatalf("control %q diverged from address %q", got, address)
	}
}

func TestSession_WithoutPopStateReplay(t *testing.T) {
	doc, body := dom.NewDocument()
	dom.Append(body, dom.Element("div", dom.Attr("id", "app")))
	nav := history.NewMemory("f2f.sum.a=3")
	session := New(doc, nav, WithPopStateReplay(false))
	t.Cleanup(session.Close)
	f, err := session.CreateForm("app", sumGroup(t), func(context.Context, Input, *output.Stream) (any, error) { return nil, nil })
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	nav.Push("f2f.sum.a=4")
	if err := nav.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	nav.Replace("f2f.sum.a=7")
	if got := value(f.Control("a")); got != "3" {
		t.Fatalf("navigation must not replay, control is %q", got)
	}
	session.Replay()
	if got := value(f.Control("a")); got != "7" {
		t.Fatalf("explicit replay should apply the address, got %q", got)
	}
}

func TestSubmit_ComputationErrorIsRenderedAndReturned(t *testing.T) {
	fx := newFixture(t, "")
	boom := errors.New("boom")
	f, err := fx.session.CreateForm("app", sumGroup(t), func(_ context.Context, _ Input, out *output.Stream) (any, error) {
		out.Log("before")
		return nil, boom
	})
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	sub, err := fx.session.Submit(context.Background(), "sum", url.Values{"f2f.sum.a": {"2"}})
	if !errors.Is(err, boom) || !fault.IsComputation(err) {
		t.Fatalf("expected computation error wrapping boom, got %v", err)
	}
	if sub.State != StateRendered {
		t.Fatalf("unexpected state %s", sub.State)
	}
	if fx.nav.Query() != "f2f.sum.a=2" {
		t.Fatalf("address must update after a valid read, got %q", fx.nav.Query())
	}
	lines := dom.FindAll(f.Stream().Root(), func(n *html.Node) bool { return dom.HasClass(n, output.TagError) })
	if len(lines) != 1 || dom.TextContent(lines[0]) != "boom" {
		t.Fatalf("expected one error line, got %d", len(lines))
	}
	if diff := cmp.Diff([]output.Lane{output.LaneLog, output.LaneSeparator}, f.Stream().Lanes()); diff != "" {
		t.Fatalf("lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_WrappedComputationErrorIsRenderedAsReturned(t *testing.T) {
	fx := newFixture(t, "")
	f, err := fx.session.CreateForm("app", sumGroup(t), func(context.Context, Input, *output.Stream) (any, error) {
		return nil, fmt.Errorf("ctx: %w", &fault.ComputationError{Form: "x", Err: errors.New("inner")})
	})
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	_, err = fx.session.Submit(context.Background(), "sum", url.Values{"f2f.sum.a": {"2"}})
	want := `ctx: computation "x": inner`
	if err == nil || err.Error() != want {
		t.Fatalf("expected the computation's own error, got %v", err)
	}
	lines := dom.FindAll(f.Stream().Root(), func(n *html.Node) bool { return dom.HasClass(n, output.TagError) })
	if len(lines) != 1 || dom.TextContent(lines[0]) != want {
		t.Fatalf("expected one error line %q, got %d", want, len(lines))
	}
}

func TestSubmit_PanicIsRecovered(t *testing.T) {
	fx := newFixture(t, "")
	_, err := fx.session.CreateForm("app", sumGroup(t), func(_ context.Context, in Input, _ *output.Stream) (any, error) {
		return Must[string](in, "a"), nil
	})
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	_, err = fx.session.Submit(context.Background(), "sum", url.Values{"f2f.sum.a": {"2"}})
	if !fault.IsComputation(err) || !fault.IsStructural(err) {
		t.Fatalf("expected recovered structural panic, got %v", err)
	}
}

func TestSubmit_ClearOutputOption(t *testing.T) {
	fx := newFixture(t, "")
	f, err := fx.session.CreateForm("app", sumGroup(t), fx.sum, WithClearOutput(false))
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	ctx := context.Background()
	for _, a := range []string{"1", "2"} {
		if _, err := fx.session.Submit(ctx, "sum", url.Values{"f2f.sum.a": {a}}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	want := []output.Lane{output.LaneLog, output.LaneSeparator, output.LaneLog, output.LaneSeparator}
	if diff := cmp.Diff(want, f.Stream().Lanes()); diff != "" {
		t.Fatalf("lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_FatalReadAborts(t *testing.T) {
	fx := newFixture(t, "")
	broken := widget.Text[int](func(string) (int, error) { return 0, errors.New("disk on fire") })
	group := param.Define("broken").Add(param.New("x", broken), param.New("y", widget.String())).MustBuild()
	f, err := fx.session.CreateForm("app", group, fx.sum)
	if err != nil {
		t.Fatalf("create form: %v", err)
	}

	sub, err := fx.session.Submit(context.Background(), "broken", url.Values{"f2f.broken.x": {"1"}})
	if err == nil || fault.IsValidation(err) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if len(sub.Fields) != 1 || f.State() != StateIdle || fx.calls != 0 {
		t.Fatalf("expected abort after first field, got %+v", sub)
	}
}

func TestCreateForm_PopulatesFromAddress(t *testing.T) {
	fx := newFixture(t, "f2f.sum.a=8")
	f, err := fx.session.CreateForm("app", sumGroup(t), fx.sum)
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	if got := value(f.Control("a")); got != "8" {
		t.Fatalf("expected control populated, got %q", got)
	}
	if got := value(f.Control("b")); got != "" {
		t.Fatalf("expected absent key to clear the value, got %q", got)
	}
}

func TestCreateForm_Errors(t *testing.T) {
	fx := newFixture(t, "")
	if _, err := fx.session.CreateForm("missing", sumGroup(t), fx.sum); !fault.IsStructural(err) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if _, err := fx.session.CreateForm("app", sumGroup(t), nil); !fault.IsDefinition(err) {
		t.Fatalf("expected definition error, got %v", err)
	}
	if _, err := fx.session.CreateForm("app", sumGroup(t), fx.sum); err != nil {
		t.Fatalf("create form: %v", err)
	}
	if _, err := fx.session.CreateForm("app", sumGroup(t), fx.sum); !fault.IsDefinition(err) {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}

func TestSession_LookupSuggestsClosestForm(t *testing.T) {
	fx := newFixture(t, "")
	if _, err := fx.session.CreateForm("app", sumGroup(t), fx.sum); err != nil {
		t.Fatalf("create form: %v", err)
	}
	_, err := fx.session.Lookup("sun")
	if !fault.IsStructural(err) || !strings.Contains(err.Error(), `did you mean "sum"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
	if _, err := fx.session.Submit(context.Background(), "nothing-like-it", nil); err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected plain unknown form error, got %v", err)
	}
}

func TestSession_ToggleHelp(t *testing.T) {
	fx := newFixture(t, "")
	if _, err := fx.session.CreateForm("app", sumGroup(t), fx.sum); err != nil {
		t.Fatalf("create form: %v", err)
	}
	help := dom.FindByID(fx.session.Document(), "f2f.sum.b.help")
	if help == nil || !dom.HasAttr(help, "hidden") {
		t.Fatalf("expected hidden help block")
	}
	if strings.Contains(dom.InnerHTML(help), "script") {
		t.Fatalf("help text must be sanitised: %s", dom.InnerHTML(help))
	}

	visible, err := fx.session.ToggleHelp("f2f.sum.b")
	if err != nil || !visible || dom.HasAttr(help, "hidden") {
		t.Fatalf("expected help shown, visible=%v err=%v", visible, err)
	}
	visible, _ = fx.session.ToggleHelp("f2f.sum.b")
	if visible || !dom.HasAttr(help, "hidden") {
		t.Fatalf("expected help hidden again")
	}
	if _, err := fx.session.ToggleHelp("f2f.sum.a"); !fault.IsStructural(err) {
		t.Fatalf("expected error for field without help, got %v", err)
	}
}

func TestGet_TypeMismatch(t *testing.T) {
	in := Input{"n": 3}
	if _, err := Get[string](in, "n"); !fault.IsStructural(err) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if _, err := Get[int](in, "missing"); !fault.IsStructural(err) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if diff := cmp.Diff([]string{"n"}, in.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
