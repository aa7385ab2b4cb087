package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/param"
	"github.com/goliatone/go-f2f/pkg/widget"
)

// Form is a loaded form: its group plus the submission settings.
type Form struct {
	Group       *param.Group
	Compute     string
	ClearOutput bool
	SubmitLabel string
}

// Set is the ordered collection of forms read from one document.
type Set struct {
	Source string
	forms  []Form
	index  map[string]int
}

// Forms returns the forms in document order.
func (s *Set) Forms() []Form {
	if s == nil {
		return nil
	}
	return append([]Form(nil), s.forms...)
}

// Form looks a form up by name.
func (s *Set) Form(name string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Form{}, false
	}
	return s.forms[idx], true
}

// Names lists form names in document order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for _, f := range s.forms {
		names = append(names, f.Group.Name())
	}
	return names
}

// Option configures loading.
type Option func(*loadConfig)

type loadConfig struct {
	registry *widget.Registry
}

// WithRegistry sets the widget registry used to resolve kinds.
func WithRegistry(registry *widget.Registry) Option {
	return func(c *loadConfig) {
		c.registry = registry
	}
}

// LoadFile reads and parses the definition file at path.
func LoadFile(path string, options ...Option) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path, options...)
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys fs.FS, path string, options ...Option) (*Set, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path, options...)
}

// Parse decodes a YAML or JSON document. Unknown keys, duplicate form names
// and invalid params are rejected.
func Parse(data []byte, source string, options ...Option) (*Set, error) {
	cfg := loadConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("definition: file %s is empty", source)
	}

	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("definition: parse %s: %w", source, err)
	}
	if len(file.Forms) == 0 {
		return nil, fmt.Errorf("definition: file %s declares no forms", source)
	}

	builder := NewBuilder(cfg.registry)
	set := &Set{Source: source, index: make(map[string]int, len(file.Forms))}
	for _, spec := range file.Forms {
		name := strings.TrimSpace(spec.Name)
		if _, exists := set.index[name]; exists {
			return nil, fault.Definition("form "+name, "duplicate form in %s", source)
		}
		group, err := builder.Group(spec)
		if err != nil {
			return nil, err
		}
		clearOutput := true
		if spec.ClearOutput != nil {
			clearOutput = *spec.ClearOutput
		}
		set.index[name] = len(set.forms)
		set.forms = append(set.forms, Form{
			Group:       group,
			Compute:     strings.TrimSpace(spec.Compute),
			ClearOutput: clearOutput,
			SubmitLabel: spec.SubmitLabel,
		})
	}
	return set, nil
}
