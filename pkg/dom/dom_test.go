package dom

import (
	"strings"
	"testing"
)

func TestElementAttributes(t *testing.T) {
	node := Element("input", Attr("id", "a"), Attr("type", "text"))
	SetAttr(node, "type", "number")
	ToggleAttr(node, "required", true)

	if got, _ := GetAttr(node, "type"); got != "number" {
		t.Fatalf("type = %q, want number", got)
	}
	if !HasAttr(node, "required") {
		t.Fatalf("expected required attribute")
	}
	ToggleAttr(node, "required", false)
	if HasAttr(node, "required") {
		t.Fatalf("required should be removed")
	}
	if got := String(node); got != `<input id="a" type="number"/>` {
		t.Fatalf("render = %q", got)
	}
}

func TestFindByIDAndText(t *testing.T) {
	doc, body := NewDocument()
	Append(body,
		Append(Element("div", Attr("id", "outer")),
			Append(Element("p", Attr("id", "inner"), Attr("class", "note big")), Text("hello")),
		),
	)

	inner := FindByID(doc, "inner")
	if inner == nil {
		t.Fatalf("expected inner element")
	}
	if !HasClass(inner, "big") || HasClass(inner, "bi") {
		t.Fatalf("class matching is token based")
	}
	SetText(inner, "bye")
	if got := TextContent(FindByID(doc, "outer")); got != "bye" {
		t.Fatalf("text = %q, want bye", got)
	}
	if FindByID(doc, "missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestReplaceAndClear(t *testing.T) {
	parent := Element("div")
	first := Element("span")
	Append(parent, first, Element("em"))
	Replace(first, Element("b"))

	if got := InnerHTML(parent); got != "<b></b><em></em>" {
		t.Fatalf("inner = %q", got)
	}
	Clear(parent)
	if parent.FirstChild != nil {
		t.Fatalf("expected no children after Clear")
	}
}

func TestParseFragmentIntoSVG(t *testing.T) {
	svg := SVG("svg")
	nodes, err := ParseFragment(`<circle r="2"/>`, svg)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Data != "circle" {
		t.Fatalf("unexpected nodes: %v", nodes)
	}
	Append(svg, nodes...)
	if !strings.Contains(String(svg), "<circle") {
		t.Fatalf("expected circle in %q", String(svg))
	}
}
