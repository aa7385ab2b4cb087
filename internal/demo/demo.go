// Package demo ships a few sample forms and computations for the CLI.
package demo

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-f2f/pkg/compute"
	"github.com/goliatone/go-f2f/pkg/definition"
	"github.com/goliatone/go-f2f/pkg/form"
	"github.com/goliatone/go-f2f/pkg/output"
	"github.com/goliatone/go-f2f/pkg/widget"
)

//go:embed forms.yaml
var formsYAML []byte

// Definitions returns the sample forms.
func Definitions(registry *widget.Registry) (*definition.Set, error) {
	return definition.Parse(formsYAML, "demo/forms.yaml", definition.WithRegistry(registry))
}

// EchoName is the computation bound to forms generated from OpenAPI
// operations.
const EchoName = "echo"

// Registry returns the computations the sample forms refer to.
func Registry() *compute.Registry {
	r := compute.NewRegistry()
	r.MustRegister("greet", Greet)
	r.MustRegister("stats", Stats)
	r.MustRegister("plot", Plot)
	r.MustRegister(EchoName, Echo)
	return r
}

// Greet logs a greeting.
func Greet(_ context.Context, in form.Input, out *output.Stream) (any, error) {
	name := form.Must[string](in, "name")
	greeting := form.Must[string](in, "language")
	line := fmt.Sprintf("%s, %s", greeting, name)
	if form.Must[bool](in, "shout") {
		line = strings.ToUpper(line) + "!"
	}
	out.Success(line)
	return nil, nil
}

// Stats prints count, sum, mean, min and max as a table and returns the mean.
func Stats(_ context.Context, in form.Input, out *output.Stream) (any, error) {
	values := form.Must[[]float64](in, "values")
	precision := form.Must[int](in, "precision")
	if len(values) == 0 {
		return nil, fmt.Errorf("no values")
	}

	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mean := sum / float64(len(values))
	format := func(v float64) string { return fmt.Sprintf("%.*f", precision, v) }

	out.AddHeader("count", "sum", "mean", "min", "max")
	out.AddRow([]any{len(values), format(sum), format(mean), format(lo), format(hi)}, false)
	return format(mean), nil
}

// Plot draws the points as a polyline scaled by "scale".
func Plot(_ context.Context, in form.Input, out *output.Stream) (any, error) {
	points := form.Must[[][]float64](in, "points")
	scale := form.Must[float64](in, "scale")
	if len(points) == 0 {
		return nil, fmt.Errorf("no points")
	}
	if len(points[0]) != 2 {
		return nil, fmt.Errorf("points need two coordinates, got %d", len(points[0]))
	}

	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%g,%g", p[0]*scale, p[1]*scale))
	}
	markup := fmt.Sprintf(`<polyline points="%s" fill="none" stroke="currentColor"/>`, strings.Join(coords, " "))
	if err := out.AddSVG(markup); err != nil {
		return nil, err
	}
	out.Info("plotted", len(points), "points")
	return nil, nil
}

// Echo prints every input as a name/value row.
func Echo(_ context.Context, in form.Input, out *output.Stream) (any, error) {
	out.AddHeader("param", "value")
	for _, name := range in.Names() {
		out.AddRow([]any{name, fmt.Sprint(in[name])}, false)
	}
	return nil, nil
}
