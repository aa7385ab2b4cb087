package widget

import (
	"fmt"
	"net/url"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/convert"
	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
)

// TextWidget is a single-line input whose text is converted into T.
type TextWidget[T any] struct {
	convert      convert.Func[T]
	required     bool
	hasDefault   bool
	defaultValue T
	defaultText  string
	placeholder  string
	inputType    string
}

var _ Widget = (*TextWidget[int])(nil)

// Text builds a required text input converted with conv. A nil conv passes
// the raw text through, which requires T to be string.
func Text[T any](conv convert.Func[T]) *TextWidget[T] {
	return &TextWidget[T]{
		convert:   conv,
		required:  true,
		inputType: "text",
	}
}

// String builds a required text input returning the raw text.
func String() *TextWidget[string] {
	return Text[string](convert.Identity)
}

// Integer builds a required numeric input parsed with convert.ToInteger and
// then passed through checks.
func Integer(checks ...convert.Check[int]) *TextWidget[int] {
	return Text(convert.Pipe(convert.ToInteger, checks...)).InputType("number")
}

// Float builds a required input parsed with convert.ToFloat (rationals
// accepted) and then passed through checks.
func Float(checks ...convert.Check[float64]) *TextWidget[float64] {
	return Text(convert.Pipe(convert.ToFloat, checks...))
}

// Default sets the value returned for an empty submission. A widget with a
// default is never required.
func (w *TextWidget[T]) Default(value T) *TextWidget[T] {
	w.hasDefault = true
	w.defaultValue = value
	w.required = false
	if w.defaultText == "" {
		w.defaultText = fmt.Sprint(value)
	}
	return w
}

// DefaultText overrides the display string used for the default.
func (w *TextWidget[T]) DefaultText(text string) *TextWidget[T] {
	w.defaultText = text
	return w
}

// Optional lets an empty submission yield the zero value of T.
func (w *TextWidget[T]) Optional() *TextWidget[T] {
	w.required = false
	return w
}

// Required marks the widget required unless a default is configured.
func (w *TextWidget[T]) Required() *TextWidget[T] {
	w.required = !w.hasDefault
	return w
}

// Placeholder sets the hint shown in an empty control.
func (w *TextWidget[T]) Placeholder(text string) *TextWidget[T] {
	w.placeholder = text
	return w
}

// InputType sets the input element type attribute (text, number, ...).
func (w *TextWidget[T]) InputType(kind string) *TextWidget[T] {
	if kind != "" {
		w.inputType = kind
	}
	return w
}

func (w *TextWidget[T]) Kind() Kind {
	return KindText
}

func (w *TextWidget[T]) Describe() Descriptor {
	return Descriptor{
		Kind:        KindText,
		Required:    w.required,
		DefaultText: w.defaultText,
		Placeholder: w.effectivePlaceholder(),
		InputType:   w.inputType,
	}
}

func (w *TextWidget[T]) Create(key string) *html.Node {
	input := dom.Element("input",
		dom.Attr("type", w.inputType),
		dom.Attr("id", key),
		dom.Attr("name", key),
	)
	if w.required {
		dom.SetAttr(input, "required", "")
	}
	if placeholder := w.effectivePlaceholder(); placeholder != "" {
		dom.SetAttr(input, "placeholder", placeholder)
	}
	if w.hasDefault {
		dom.SetAttr(input, "data-default", w.defaultText)
	}
	return input
}

func (w *TextWidget[T]) Read(key string, data url.Values) Result {
	raw := data.Get(key)
	if raw == "" {
		if w.required {
			return Invalid("empty value for " + key)
		}
		return Ok(w.defaultValue)
	}
	if w.convert == nil {
		value, ok := any(raw).(T)
		if !ok {
			return Fatal(fault.Structural("widget %s: text of type %T needs a converter", key, w.defaultValue))
		}
		return Ok(value)
	}
	return classify(w.convert(raw))
}

func (w *TextWidget[T]) Write(control *html.Node, key string, data url.Values) {
	if control == nil {
		return
	}
	if raw := data.Get(key); raw != "" {
		dom.SetAttr(control, "value", raw)
		return
	}
	dom.RemoveAttr(control, "value")
}

func (w *TextWidget[T]) effectivePlaceholder() string {
	if w.placeholder != "" {
		return w.placeholder
	}
	return w.defaultText
}
