package definition

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-f2f/pkg/convert"
	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/param"
	"github.com/goliatone/go-f2f/pkg/widget"
)

// Builder turns specs into groups, resolving widget kinds through a registry.
type Builder struct {
	registry *widget.Registry
}

// NewBuilder uses registry to pick widget kinds; nil falls back to the
// built-in matchers.
func NewBuilder(registry *widget.Registry) *Builder {
	if registry == nil {
		registry = widget.NewRegistry()
	}
	return &Builder{registry: registry}
}

// Group builds the param group of spec.
func (b *Builder) Group(spec FormSpec) (*param.Group, error) {
	builder := param.Define(spec.Name).Describe(spec.Description)
	for _, ps := range spec.Params {
		p, err := b.Param(ps)
		if err != nil {
			return nil, fmt.Errorf("definition: form %q: %w", spec.Name, err)
		}
		builder.Add(p)
	}
	group, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("definition: form %q: %w", spec.Name, err)
	}
	return group, nil
}

// Param builds one param.
func (b *Builder) Param(spec ParamSpec) (param.Param, error) {
	w, err := b.Widget(spec)
	if err != nil {
		return param.Param{}, err
	}
	return param.New(spec.Name, w, param.WithLabel(spec.Label), param.WithDescription(spec.Description)), nil
}

// Widget builds the widget described by spec.
func (b *Builder) Widget(spec ParamSpec) (widget.Widget, error) {
	subject := "param " + strconv.Quote(spec.Name)
	typ := strings.ToLower(strings.TrimSpace(spec.Type))
	if typ == "" {
		typ = TypeString
	}

	field := widget.Field{Name: spec.Name, Type: fieldType(typ), Hint: spec.Widget}
	for _, opt := range spec.Options {
		field.Enum = append(field.Enum, opt.Name)
	}
	kind, ok := b.registry.Resolve(field)
	if !ok {
		return nil, fault.Definition(subject, "no widget matches type %q", typ)
	}

	switch kind {
	case widget.KindCheckBox:
		return checkBox(spec, subject)
	case widget.KindSelect:
		return selectWidget(spec, typ, subject)
	case widget.KindText:
		return textFor(spec, typ, subject)
	default:
		return nil, fault.Definition(subject, "unsupported widget %q", kind)
	}
}

func fieldType(typ string) string {
	switch typ {
	case TypeList:
		return "array"
	default:
		return typ
	}
}

func checkBox(spec ParamSpec, subject string) (widget.Widget, error) {
	raw, ok := defaultText(spec)
	if !ok {
		return widget.CheckBox(false), nil
	}
	checked, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fault.Definition(subject, "default %q is not a boolean", raw)
	}
	return widget.CheckBox(checked), nil
}

func selectWidget(spec ParamSpec, typ, subject string) (widget.Widget, error) {
	selected, hasDefault := defaultText(spec)
	choices := make([]widget.Choice[any], 0, len(spec.Options))
	found := false
	for _, opt := range spec.Options {
		value, err := optionValue(typ, opt)
		if err != nil {
			return nil, fault.Definition(subject, "option %q: %v", opt.Name, err)
		}
		choice := widget.Option[any](opt.Name, value)
		if hasDefault && strings.TrimSpace(opt.Name) == selected {
			choice.Selected = true
			found = true
		}
		choices = append(choices, choice)
	}
	if hasDefault && !found {
		return nil, fault.Definition(subject, "default %q is not an option", selected)
	}
	w, err := widget.Select(choices...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", subject, err)
	}
	return w, nil
}

func optionValue(typ string, opt OptionSpec) (any, error) {
	if opt.Value == nil {
		return opt.Name, nil
	}
	raw := fmt.Sprint(opt.Value)
	switch typ {
	case TypeInteger:
		return convert.ToInteger(raw)
	case TypeNumber:
		return convert.ToFloat(raw)
	case TypeBoolean:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

func textFor(spec ParamSpec, typ, subject string) (widget.Widget, error) {
	sep := orDefault(spec.Separator, defaultSeparator)
	rowSep := orDefault(spec.RowSeparator, defaultRowSeparator)
	item := strings.ToLower(strings.TrimSpace(spec.Item))
	if item == "" {
		item = TypeString
	}

	switch typ {
	case TypeString:
		return text(spec, subject, convert.Func[string](convert.Identity), "")
	case TypeInteger:
		return text(spec, subject, convert.Pipe(convert.ToInteger, intChecks(spec)...), "number")
	case TypeNumber:
		return text(spec, subject, convert.Pipe(convert.ToFloat, floatChecks(spec)...), "")
	case TypeList:
		switch item {
		case TypeString:
			return text(spec, subject, convert.ListOf(sep, convert.Func[string](convert.Identity)), "")
		case TypeInteger:
			return text(spec, subject, convert.ListOf(sep, convert.Pipe(convert.ToInteger, intChecks(spec)...)), "")
		case TypeNumber:
			return text(spec, subject, convert.ListOf(sep, convert.Pipe(convert.ToFloat, floatChecks(spec)...)), "")
		}
	case TypeMatrix:
		switch item {
		case TypeString:
			return text(spec, subject, convert.MatrixOf(rowSep, sep, convert.Func[string](convert.Identity)), "")
		case TypeInteger:
			return text(spec, subject, convert.MatrixOf(rowSep, sep, convert.Pipe(convert.ToInteger, intChecks(spec)...)), "")
		case TypeNumber:
			return text(spec, subject, convert.MatrixOf(rowSep, sep, convert.Pipe(convert.ToFloat, floatChecks(spec)...)), "")
		}
	case TypeBoolean:
		return nil, fault.Definition(subject, "boolean params need a checkbox widget")
	default:
		return nil, fault.Definition(subject, "unknown type %q", typ)
	}
	return nil, fault.Definition(subject, "unknown item type %q", item)
}

func text[T any](spec ParamSpec, subject string, conv convert.Func[T], inputType string) (widget.Widget, error) {
	w := widget.Text(conv).InputType(inputType).Placeholder(spec.Placeholder)
	if raw, ok := defaultText(spec); ok {
		value, err := conv(raw)
		if err != nil {
			return nil, fault.Definition(subject, "default %q: %v", raw, err)
		}
		return w.Default(value).DefaultText(raw), nil
	}
	if spec.Required != nil && !*spec.Required {
		w.Optional()
	}
	return w, nil
}

// intChecks rounds fractional bounds inward: min 0.5 rejects 0, max 2.5
// accepts 2.
func intChecks(spec ParamSpec) []convert.Check[int] {
	var checks []convert.Check[int]
	if spec.Min != nil {
		checks = append(checks, convert.AtLeast(int(math.Ceil(*spec.Min))))
	}
	if spec.Max != nil {
		checks = append(checks, convert.AtMost(int(math.Floor(*spec.Max))))
	}
	return checks
}

func floatChecks(spec ParamSpec) []convert.Check[float64] {
	var checks []convert.Check[float64]
	if spec.Min != nil {
		checks = append(checks, convert.AtLeast(*spec.Min))
	}
	if spec.Max != nil {
		checks = append(checks, convert.AtMost(*spec.Max))
	}
	return checks
}

// defaultText renders a YAML default back to the text a user would type.
// Sequences are joined with the separators of the param.
func defaultText(spec ParamSpec) (string, bool) {
	if spec.Default == nil {
		return "", false
	}
	sep := orDefault(spec.Separator, defaultSeparator)
	rowSep := orDefault(spec.RowSeparator, defaultRowSeparator)
	switch value := spec.Default.(type) {
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if row, ok := item.([]any); ok {
				parts = append(parts, joinAny(row, sep))
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		if len(value) > 0 {
			if _, nested := value[0].([]any); nested {
				return strings.Join(parts, rowSep), true
			}
		}
		return strings.Join(parts, sep), true
	default:
		return strings.TrimSpace(fmt.Sprint(value)), true
	}
}

func joinAny(items []any, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, sep)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
