package dom

import "strings"

// Visibility is the render state of a node. Any state can be set from any
// other state; the zero value is Visible.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
	Collapsed
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "VISIBLE"
	case Hidden:
		return "HIDDEN"
	case Collapsed:
		return "COLLAPSED"
	default:
		return "UNKNOWN_VISIBILITY"
	}
}

// visibilityState renders a node according to one Visibility value.
type visibilityState interface {
	render(n *Node, indent int) string
}

type visibleState struct{}

func (visibleState) render(n *Node, indent int) string {
	return n.Render(indent)
}

type hiddenState struct{}

func (hiddenState) render(*Node, int) string {
	return ""
}

// collapsedState renders only the node's own opening representation.
type collapsedState struct{}

func (collapsedState) render(n *Node, indent int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", max(indent, 0)))
	if n.nodeType == TextNode {
		n.writeText(&sb)
	} else {
		n.writeOpenTag(&sb)
	}
	return sb.String()
}

var visibilityStates = map[Visibility]visibilityState{
	Visible:   visibleState{},
	Hidden:    hiddenState{},
	Collapsed: collapsedState{},
}

// SetVisibility changes the node's render state. The tree is not modified.
// Unknown values are treated as Visible.
func (n *Node) SetVisibility(v Visibility) {
	if _, ok := visibilityStates[v]; !ok {
		v = Visible
	}
	n.visibility = v
}

// Visibility returns the node's render state.
func (n *Node) Visibility() Visibility {
	return n.visibility
}

// RenderWithState renders n according to its visibility: the full subtree
// when Visible, an empty string when Hidden and the opening tag alone when
// Collapsed.
func (n *Node) RenderWithState(indent int) string {
	return visibilityStates[n.visibility].render(n, indent)
}
