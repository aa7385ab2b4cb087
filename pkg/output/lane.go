package output

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
)

// Lane is the kind of content a lane container holds.
type Lane string

const (
	LaneNone      Lane = ""
	LaneLog       Lane = "log"
	LaneMisc      Lane = "misc"
	LaneTable     Lane = "table"
	LaneSVG       Lane = "svg"
	LaneSeparator Lane = "separator"
)

// ParseLane maps a lane name onto a Lane.
func ParseLane(name string) (Lane, error) {
	switch lane := Lane(strings.ToLower(strings.TrimSpace(name))); lane {
	case LaneLog, LaneMisc, LaneTable, LaneSVG, LaneSeparator:
		return lane, nil
	default:
		return LaneNone, fault.Structural("output: invalid lane %q", name)
	}
}

// containerFor is the closed lane to container mapping.
func containerFor(lane Lane) *html.Node {
	switch lane {
	case LaneTable:
		return dom.Element("table")
	case LaneSVG:
		return dom.SVG("svg", dom.Attr("xmlns", "http://www.w3.org/2000/svg"))
	case LaneSeparator:
		return dom.Append(dom.Element("div"), dom.Element("hr"))
	default:
		return dom.Element("div")
	}
}

// laneMachine tracks the current lane and its container. A lane switch
// happens iff the requested kind differs from the current one; the previous
// container stays where it is and receives nothing further.
type laneMachine struct {
	current   Lane
	container *html.Node
}

// ensure returns the container for lane, opening a new one under root when
// the lane changes. switched reports whether a container was opened.
func (m *laneMachine) ensure(root *html.Node, lane Lane, attrs []html.Attribute) (container *html.Node, switched bool) {
	if lane == m.current && m.container != nil {
		return m.container, false
	}
	container = containerFor(lane)
	dom.SetAttr(container, "class", "f2f-lane f2f-"+string(lane))
	dom.SetAttr(container, "data-lane", string(lane))
	for _, attr := range attrs {
		dom.SetAttr(container, attr.Key, attr.Val)
	}
	dom.Append(root, container)
	m.current = lane
	m.container = container
	return container, true
}

func (m *laneMachine) reset() {
	m.current = LaneNone
	m.container = nil
}
