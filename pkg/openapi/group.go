package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-f2f/pkg/definition"
	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/param"
	"github.com/goliatone/go-f2f/pkg/widget"
)

// WidgetExtension lets a parameter force a widget kind.
const WidgetExtension = "x-f2f-widget"

// Option configures group construction.
type Option func(*groupConfig)

type groupConfig struct {
	registry *widget.Registry
}

// WithRegistry sets the widget registry used to resolve kinds.
func WithRegistry(registry *widget.Registry) Option {
	return func(c *groupConfig) {
		c.registry = registry
	}
}

// Group builds a form group named after operationID from the operation's
// query parameters: integers and numbers get minimum/maximum checks,
// booleans become checkboxes, enums become selects and arrays become lists.
func (d *Document) Group(operationID string, options ...Option) (*param.Group, error) {
	cfg := groupConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	item, op, ok := d.find(operationID)
	if !ok {
		return nil, fmt.Errorf("openapi: operation %q not found in %s", operationID, d.location)
	}
	spec := definition.FormSpec{
		Name:        operationID,
		Description: firstNonEmpty(op.Summary, op.Description),
	}
	for _, p := range queryParameters(item, op) {
		ps, err := paramSpec(p)
		if err != nil {
			return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
		}
		spec.Params = append(spec.Params, ps)
	}
	if len(spec.Params) == 0 {
		return nil, fault.Definition("operation "+operationID, "no query parameters")
	}
	return definition.NewBuilder(cfg.registry).Group(spec)
}

func paramSpec(p *openapi3.Parameter) (definition.ParamSpec, error) {
	ps := definition.ParamSpec{
		Name:        p.Name,
		Description: p.Description,
	}
	if !p.Required {
		optional := false
		ps.Required = &optional
	}
	if hint, ok := p.Extensions[WidgetExtension].(string); ok {
		ps.Widget = hint
	}
	if p.Schema == nil || p.Schema.Value == nil {
		ps.Type = definition.TypeString
		return ps, nil
	}

	schema := p.Schema.Value
	switch typ := firstSchemaType(schema.Type); typ {
	case "", "string":
		ps.Type = definition.TypeString
	case "integer":
		ps.Type = definition.TypeInteger
	case "number":
		ps.Type = definition.TypeNumber
	case "boolean":
		ps.Type = definition.TypeBoolean
	case "array":
		ps.Type = definition.TypeList
		ps.Item = definition.TypeString
		if schema.Items != nil && schema.Items.Value != nil {
			switch item := firstSchemaType(schema.Items.Value.Type); item {
			case "integer", "number":
				ps.Item = item
			}
			schema = schema.Items.Value
		}
	default:
		return ps, fault.Definition("param "+p.Name, "unsupported schema type %q", typ)
	}

	ps.Min = schema.Min
	ps.Max = schema.Max
	if p.Schema.Value.Default != nil {
		ps.Default = p.Schema.Value.Default
	}
	if ps.Type != definition.TypeList {
		for _, value := range schema.Enum {
			ps.Options = append(ps.Options, definition.OptionSpec{Name: fmt.Sprint(value), Value: value})
		}
	}
	if schema.Example != nil && ps.Default == nil {
		ps.Placeholder = fmt.Sprint(schema.Example)
	}
	return ps, nil
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return strings.ToLower(values[0])
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
