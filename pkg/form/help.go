package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		helpPolicy = bluemonday.UGCPolicy()
	})
	return helpPolicy
}

// helpContent turns a param description into sanitised child nodes. Text
// that fails to parse is kept as plain text.
func helpContent(description string) []*html.Node {
	clean := strings.TrimSpace(helpSanitizer().Sanitize(description))
	if clean == "" {
		return nil
	}
	nodes, err := dom.ParseFragment(clean, dom.Element("div"))
	if err != nil {
		return []*html.Node{dom.Text(description)}
	}
	return nodes
}

func hidden(node *html.Node) bool {
	return dom.HasAttr(node, "hidden")
}

func setHidden(node *html.Node, on bool) {
	dom.ToggleAttr(node, "hidden", on)
}
