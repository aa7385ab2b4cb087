// Package openapi builds form groups from the query parameters of OpenAPI
// operations, so an API's query surface can be explored through a form.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a loaded and validated OpenAPI document.
type Document struct {
	location string
	spec     *openapi3.T
}

// Operation summarises one operation of the document.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Query       []string
}

// Parse loads raw (JSON or YAML) and validates it. location is used in
// error messages.
func Parse(ctx context.Context, raw []byte, location string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", location, err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate %s: %w", location, err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi: %s does not contain any paths", location)
	}
	return &Document{location: location, spec: spec}, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Parse(ctx, raw, path)
}

// LoadFS reads and parses name from fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Document, error) {
	if fsys == nil {
		return nil, errors.New("openapi: filesystem is not configured")
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return Parse(ctx, raw, name)
}

// Location returns where the document was read from.
func (d *Document) Location() string {
	return d.location
}

// Operations lists operations with an operationId, sorted by id.
func (d *Document) Operations() []Operation {
	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			entry := Operation{
				ID:          op.OperationID,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     op.Summary,
				Description: op.Description,
			}
			for _, p := range queryParameters(item, op) {
				entry.Query = append(entry.Query, p.Name)
			}
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *Document) find(operationID string) (*openapi3.PathItem, *openapi3.Operation, bool) {
	for _, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return item, op, true
			}
		}
	}
	return nil, nil, false
}

// queryParameters merges path-level and operation-level query parameters.
// Operation parameters override path parameters with the same name.
func queryParameters(item *openapi3.PathItem, op *openapi3.Operation) []*openapi3.Parameter {
	var (
		out   []*openapi3.Parameter
		index = make(map[string]int)
	)
	add := func(refs openapi3.Parameters) {
		for _, ref := range refs {
			if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
				continue
			}
			if idx, ok := index[ref.Value.Name]; ok {
				out[idx] = ref.Value
				continue
			}
			index[ref.Value.Name] = len(out)
			out = append(out, ref.Value)
		}
	}
	add(item.Parameters)
	add(op.Parameters)
	return out
}
