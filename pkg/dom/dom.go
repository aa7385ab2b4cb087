// Package dom wraps golang.org/x/net/html nodes with the handful of helpers the
// form engine needs: element construction, attribute access, lookup by id and
// serialisation.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a shorthand attribute constructor.
func Attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

// Element creates a detached element node.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, attr := range attrs {
		SetAttr(node, attr.Key, attr.Val)
	}
	return node
}

// SVG creates a detached element in the SVG namespace so fragments parsed
// beneath it follow foreign-content rules.
func SVG(tag string, attrs ...html.Attribute) *html.Node {
	node := Element(tag, attrs...)
	node.Namespace = "svg"
	return node
}

// Text creates a text node.
func Text(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

// Append attaches children to parent and returns parent.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Parent != nil {
			child.Parent.RemoveChild(child)
		}
		parent.AppendChild(child)
	}
	return parent
}

// Replace swaps old for replacement in old's parent. Detached nodes are left
// untouched.
func Replace(old, replacement *html.Node) {
	if old == nil || replacement == nil || old.Parent == nil {
		return
	}
	old.Parent.InsertBefore(replacement, old)
	old.Parent.RemoveChild(old)
}

// Clear removes every child of node.
func Clear(node *html.Node) {
	if node == nil {
		return
	}
	for child := node.FirstChild; child != nil; {
		next := child.NextSibling
		node.RemoveChild(child)
		child = next
	}
}

// SetText replaces the children of node with a single text node.
func SetText(node *html.Node, value string) {
	Clear(node)
	if value != "" {
		node.AppendChild(Text(value))
	}
}

// TextContent concatenates all descendant text.
func TextContent(node *html.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == html.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(TextContent(child))
	}
	return b.String()
}

// GetAttr returns the attribute value and whether it is present.
func GetAttr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present.
func HasAttr(node *html.Node, key string) bool {
	_, ok := GetAttr(node, key)
	return ok
}

// SetAttr adds or replaces an attribute.
func SetAttr(node *html.Node, key, value string) {
	for idx, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			node.Attr[idx].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(node *html.Node, key string) {
	out := node.Attr[:0]
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	node.Attr = out
}

// ToggleAttr sets a boolean attribute when on is true and removes it
// otherwise.
func ToggleAttr(node *html.Node, key string, on bool) {
	if on {
		SetAttr(node, key, "")
		return
	}
	RemoveAttr(node, key)
}

// HasClass reports whether the class attribute contains name.
func HasClass(node *html.Node, name string) bool {
	classes, _ := GetAttr(node, "class")
	for _, token := range strings.Fields(classes) {
		if token == name {
			return true
		}
	}
	return false
}

// FindByID walks the tree rooted at root and returns the first element with
// the given id.
func FindByID(root *html.Node, id string) *html.Node {
	return Find(root, func(node *html.Node) bool {
		value, ok := GetAttr(node, "id")
		return ok && value == id
	})
}

// Find returns the first element (depth-first) accepted by match.
func Find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := Find(child, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element accepted by match in document order.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Children returns the element children of node.
func Children(node *html.Node) []*html.Node {
	var out []*html.Node
	if node == nil {
		return out
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			out = append(out, child)
		}
	}
	return out
}

// Render writes node and its descendants as HTML.
func Render(w io.Writer, node *html.Node) error {
	return html.Render(w, node)
}

// String renders node to a string, returning an empty string on failure.
func String(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of node.
func InnerHTML(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return ""
		}
	}
	return buf.String()
}

// NewDocument builds an empty <html><body> document and returns the document
// node and its body.
func NewDocument() (*html.Node, *html.Node) {
	doc := &html.Node{Type: html.DocumentNode}
	root := Element("html")
	body := Element("body")
	Append(root, Element("head"), body)
	doc.AppendChild(root)
	return doc, body
}

// Parse parses a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseFragment parses markup as children of context.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(markup), context)
}
