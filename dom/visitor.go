package dom

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
)

// Visitor receives one callback per node during Accept.
type Visitor interface {
	VisitElement(el *Node)
	VisitText(text *Node)
}

// ElementLeaver is implemented by visitors that need to know when Accept
// has finished an element's subtree.
type ElementLeaver interface {
	LeaveElement(el *Node)
}

// Accept walks n in pre-order: each element is visited before its children.
func (n *Node) Accept(v Visitor) {
	if n.nodeType == TextNode {
		v.VisitText(n)
		return
	}
	v.VisitElement(n)
	for _, c := range n.children {
		c.Accept(v)
	}
	if l, ok := v.(ElementLeaver); ok {
		l.LeaveElement(n)
	}
}

// Validator collects structural problems in traversal order.
type Validator struct {
	Errors []string
}

func (v *Validator) VisitElement(el *Node) {
	if el.TagName() == "" {
		v.Errors = append(v.Errors, "element has no tag name")
	}
	if el.Closure() == Paired && len(el.children) == 0 {
		v.Errors = append(v.Errors, fmt.Sprintf("empty paired tag: %s", el.TagName()))
	}
}

func (v *Validator) VisitText(text *Node) {
	if strings.TrimSpace(text.text) == "" {
		v.Errors = append(v.Errors, "empty text node")
	}
}

// Err returns the findings combined into one error, or nil.
func (v *Validator) Err() error {
	var err error
	for _, msg := range v.Errors {
		err = multierr.Append(err, errors.New(msg))
	}
	return err
}

// StyleCollector counts how many elements use each CSS class.
type StyleCollector struct {
	Usage map[string]int
}

func (s *StyleCollector) VisitElement(el *Node) {
	if s.Usage == nil {
		s.Usage = make(map[string]int)
	}
	for _, class := range el.classList.tokens {
		s.Usage[class]++
	}
}

func (s *StyleCollector) VisitText(*Node) {}

// Classes returns the collected class names in natural order ("col-2"
// before "col-10").
func (s *StyleCollector) Classes() []string {
	classes := make([]string, 0, len(s.Usage))
	for class := range s.Usage {
		classes = append(classes, class)
	}
	slices.SortFunc(classes, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	return classes
}

// MetricsCollector counts elements and text nodes and records the deepest
// element nesting seen.
type MetricsCollector struct {
	Elements  int
	TextNodes int
	MaxDepth  int

	depth int
}

func (m *MetricsCollector) VisitElement(*Node) {
	m.Elements++
	m.depth++
	m.MaxDepth = max(m.MaxDepth, m.depth)
}

func (m *MetricsCollector) LeaveElement(*Node) {
	m.depth--
}

func (m *MetricsCollector) VisitText(*Node) {
	m.TextNodes++
}

// AccessibilityChecker warns about images without alternative text and about
// links and buttons without an aria-label.
type AccessibilityChecker struct {
	Warnings []string
}

func (a *AccessibilityChecker) VisitElement(el *Node) {
	switch el.TagName() {
	case "img":
		if strings.TrimSpace(el.GetAttribute("alt")) == "" {
			a.Warnings = append(a.Warnings, "image must have an alt attribute")
		}
	case "a", "button":
		if !el.HasAttribute("aria-label") {
			a.Warnings = append(a.Warnings, fmt.Sprintf("interactive element %s must have an aria-label", el.TagName()))
		}
	}
}

func (a *AccessibilityChecker) VisitText(*Node) {}
