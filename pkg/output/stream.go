// Package output implements the append-only, lane-switching output surface a
// form computation writes to. Content of the same kind as the current lane is
// appended in place; content of a different kind opens a new lane container
// after all previous ones.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
)

// Style tags understood by the line helpers.
const (
	TagInfo    = "info"
	TagWarn    = "warn"
	TagError   = "error"
	TagDebug   = "debug"
	TagSuccess = "success"
)

// Option configures a Stream.
type Option func(*Stream)

// WithRoot renders the stream into an existing element instead of a fresh
// <div>.
func WithRoot(root *html.Node) Option {
	return func(s *Stream) {
		if root != nil {
			s.root = root
		}
	}
}

// WithID fixes the stream identity, mainly for deterministic tests.
func WithID(id uuid.UUID) Option {
	return func(s *Stream) {
		s.id = id
	}
}

// Stream is the multi-lane output sink handed to computations.
type Stream struct {
	id    uuid.UUID
	root  *html.Node
	lanes laneMachine
}

// New constructs an empty stream.
func New(options ...Option) *Stream {
	s := &Stream{id: uuid.New()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.root == nil {
		s.root = dom.Element("div")
	}
	dom.SetAttr(s.root, "data-stream", s.id.String())
	if !dom.HasClass(s.root, "f2f-output") {
		classes, _ := dom.GetAttr(s.root, "class")
		dom.SetAttr(s.root, "class", strings.TrimSpace(classes+" f2f-output"))
	}
	return s
}

// ID returns the stream identity.
func (s *Stream) ID() uuid.UUID {
	return s.id
}

// Root returns the element holding every lane container.
func (s *Stream) Root() *html.Node {
	return s.root
}

// Lane reports the current lane.
func (s *Stream) Lane() Lane {
	return s.lanes.current
}

// Lanes lists the lane containers in document order.
func (s *Stream) Lanes() []Lane {
	var out []Lane
	for _, child := range dom.Children(s.root) {
		if name, ok := dom.GetAttr(child, "data-lane"); ok {
			out = append(out, Lane(name))
		}
	}
	return out
}

// SetLane switches to lane, opening a new container with attrs when the lane
// differs from the current one. It is a no-op otherwise.
func (s *Stream) SetLane(lane Lane, attrs ...html.Attribute) error {
	if _, err := ParseLane(string(lane)); err != nil {
		return err
	}
	s.lanes.ensure(s.root, lane, attrs)
	return nil
}

// Line appends one log entry tagged with the given style classes. The text is
// the space-joined string form of parts.
func (s *Stream) Line(tags []string, parts ...any) {
	container, _ := s.lanes.ensure(s.root, LaneLog, nil)
	entry := dom.Element("div", dom.Attr("class", strings.Join(append([]string{"f2f-line"}, tags...), " ")))
	dom.SetText(entry, joinParts(parts))
	dom.Append(container, entry)
}

// Log appends an untagged line.
func (s *Stream) Log(parts ...any) { s.Line(nil, parts...) }

// Info appends an info line.
func (s *Stream) Info(parts ...any) { s.Line([]string{TagInfo}, parts...) }

// Warn appends a warning line.
func (s *Stream) Warn(parts ...any) { s.Line([]string{TagWarn}, parts...) }

// Error appends an error line.
func (s *Stream) Error(parts ...any) { s.Line([]string{TagError}, parts...) }

// Debug appends a debug line.
func (s *Stream) Debug(parts ...any) { s.Line([]string{TagDebug}, parts...) }

// Success appends a success line.
func (s *Stream) Success(parts ...any) { s.Line([]string{TagSuccess}, parts...) }

// AddRow appends one table row, using header cells when header is true.
func (s *Stream) AddRow(cells []any, header bool) {
	cellTag := "td"
	if header {
		cellTag = "th"
	}
	row := dom.Element("tr")
	for _, cell := range cells {
		dom.Append(row, dom.Append(dom.Element(cellTag), dom.Text(fmt.Sprint(cell))))
	}
	s.AddRowNode(row)
}

// AddHeader appends a header row.
func (s *Stream) AddHeader(cells ...any) { s.AddRow(cells, true) }

// AddRowNode inserts a pre-built row element as-is.
func (s *Stream) AddRowNode(row *html.Node) {
	container, _ := s.lanes.ensure(s.root, LaneTable, nil)
	dom.Append(container, row)
}

// AddBreak makes the separator the current lane so the next content always
// opens a fresh lane.
func (s *Stream) AddBreak() {
	s.lanes.ensure(s.root, LaneSeparator, nil)
}

// AddSVG sanitises markup and appends the resulting shapes to the svg lane.
func (s *Stream) AddSVG(markup string, attrs ...html.Attribute) error {
	container, _ := s.lanes.ensure(s.root, LaneSVG, attrs)
	clean := sanitizeSVG(markup)
	if clean == "" {
		return nil
	}
	nodes, err := dom.ParseFragment(clean, container)
	if err != nil {
		return fmt.Errorf("output: parse svg: %w", err)
	}
	dom.Append(container, nodes...)
	return nil
}

// RawAppend appends a pre-built element verbatim to the current lane
// container. A lane must already be set.
func (s *Stream) RawAppend(node *html.Node) error {
	if s.lanes.current == LaneNone || s.lanes.container == nil {
		return fault.Structural("output: raw append without a lane")
	}
	dom.Append(s.lanes.container, node)
	return nil
}

// Clear discards all rendered content and resets the lane to none.
func (s *Stream) Clear() {
	dom.Clear(s.root)
	s.lanes.reset()
}

// Render writes the stream root as HTML.
func (s *Stream) Render(w io.Writer) error {
	return dom.Render(w, s.root)
}

// HTML renders the lane containers.
func (s *Stream) HTML() string {
	return dom.InnerHTML(s.root)
}

func joinParts(parts []any) string {
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		texts = append(texts, fmt.Sprint(part))
	}
	return strings.Join(texts, " ")
}
