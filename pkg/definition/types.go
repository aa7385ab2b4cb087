// Package definition loads declarative form definitions from YAML (or JSON)
// and turns them into param groups bound to named computations.
//
//	forms:
//	  - name: sum
//	    compute: sum
//	    params:
//	      - name: a
//	        type: integer
//	        min: 0
//	      - name: values
//	        type: list
//	        item: number
//	        default: "1,2,3"
package definition

// File is the on-disk document.
type File struct {
	Forms []FormSpec `yaml:"forms" json:"forms"`
}

// FormSpec declares one form.
type FormSpec struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Compute     string      `yaml:"compute" json:"compute"`
	ClearOutput *bool       `yaml:"clearOutput,omitempty" json:"clearOutput,omitempty"`
	SubmitLabel string      `yaml:"submitLabel,omitempty" json:"submitLabel,omitempty"`
	Params      []ParamSpec `yaml:"params" json:"params"`
}

// ParamSpec declares one param. Type is one of string, integer, number,
// boolean, list or matrix; Item is the element type of lists and matrices.
type ParamSpec struct {
	Name         string       `yaml:"name" json:"name"`
	Label        string       `yaml:"label,omitempty" json:"label,omitempty"`
	Description  string       `yaml:"description,omitempty" json:"description,omitempty"`
	Widget       string       `yaml:"widget,omitempty" json:"widget,omitempty"`
	Type         string       `yaml:"type,omitempty" json:"type,omitempty"`
	Item         string       `yaml:"item,omitempty" json:"item,omitempty"`
	Separator    string       `yaml:"separator,omitempty" json:"separator,omitempty"`
	RowSeparator string       `yaml:"rowSeparator,omitempty" json:"rowSeparator,omitempty"`
	Min          *float64     `yaml:"min,omitempty" json:"min,omitempty"`
	Max          *float64     `yaml:"max,omitempty" json:"max,omitempty"`
	Default      any          `yaml:"default,omitempty" json:"default,omitempty"`
	Required     *bool        `yaml:"required,omitempty" json:"required,omitempty"`
	Placeholder  string       `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Options      []OptionSpec `yaml:"options,omitempty" json:"options,omitempty"`
}

// OptionSpec is one select choice. A missing value defaults to the name.
type OptionSpec struct {
	Name  string `yaml:"name" json:"name"`
	Value any    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Type names accepted in ParamSpec.Type and ParamSpec.Item.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeList    = "list"
	TypeMatrix  = "matrix"
)

const (
	defaultSeparator    = ","
	defaultRowSeparator = ";"
)
