package output

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

func sanitizeSVG(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgSanitizer().Sanitize(trimmed))
}

func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements(append([]string{"g", "title", "desc", "text", "tspan"}, shapes...)...)

		policy.AllowAttrs("transform", "class", "opacity", "fill", "stroke").OnElements("g")

		for _, el := range shapes {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"width", "height", "points", "rx", "ry", "fill", "stroke",
				"stroke-width", "stroke-linecap", "stroke-linejoin", "opacity",
				"transform", "class",
			).OnElements(el)
		}

		policy.AllowAttrs(
			"x", "y", "dx", "dy", "fill", "font-size", "font-family",
			"text-anchor", "transform", "class",
		).OnElements("text", "tspan")

		svgPolicy = policy
	})
	return svgPolicy
}
