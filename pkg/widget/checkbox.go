package widget

import (
	"net/url"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
)

// CheckBoxWidget reads as true when the control was submitted with a value.
type CheckBoxWidget struct {
	checked bool
}

var _ Widget = (*CheckBoxWidget)(nil)

// CheckBox builds a checkbox, pre-checked when checked is true. A checkbox is
// never required.
func CheckBox(checked bool) *CheckBoxWidget {
	return &CheckBoxWidget{checked: checked}
}

func (w *CheckBoxWidget) Kind() Kind {
	return KindCheckBox
}

func (w *CheckBoxWidget) Describe() Descriptor {
	return Descriptor{Kind: KindCheckBox, Checked: w.checked, InputType: "checkbox"}
}

func (w *CheckBoxWidget) Create(key string) *html.Node {
	input := dom.Element("input",
		dom.Attr("type", "checkbox"),
		dom.Attr("id", key),
		dom.Attr("name", key),
	)
	dom.ToggleAttr(input, "checked", w.checked)
	return input
}

func (w *CheckBoxWidget) Read(key string, data url.Values) Result {
	return Ok(data.Get(key) != "")
}

func (w *CheckBoxWidget) Write(control *html.Node, key string, data url.Values) {
	if control == nil {
		return
	}
	dom.ToggleAttr(control, "checked", data.Get(key) != "")
}
