package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// indentStep is the number of spaces each nesting level adds.
const indentStep = 2

// Render returns the indented markup of n with its opening line at indent
// spaces. Children start at indent+2 and a paired element closes at indent.
// A paired element that is empty, or whose only child is text, renders on a
// single line.
func (n *Node) Render(indent int) string {
	var sb strings.Builder
	n.render(&sb, indent)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, indent int) {
	pad := strings.Repeat(" ", max(indent, 0))
	if n.nodeType == TextNode {
		sb.WriteString(pad)
		n.writeText(sb)
		return
	}

	sb.WriteString(pad)
	n.writeOpenTag(sb)
	if n.Closure() == SelfClosing {
		return
	}

	switch {
	case len(n.children) == 0:
	case len(n.children) == 1 && n.children[0].nodeType == TextNode:
		n.children[0].writeText(sb)
	default:
		for _, c := range n.children {
			sb.WriteByte('\n')
			c.render(sb, indent+indentStep)
		}
		sb.WriteByte('\n')
		sb.WriteString(pad)
	}
	n.writeCloseTag(sb)
}

// OuterHTML returns the compact markup of n: its own tags around the
// concatenated OuterHTML of its children.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.writeOuter(&sb)
	return sb.String()
}

// InnerHTML returns the concatenated OuterHTML of n's children. For a text
// node it is the text itself.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	if n.nodeType == TextNode {
		n.writeText(&sb)
		return sb.String()
	}
	for _, c := range n.children {
		c.writeOuter(&sb)
	}
	return sb.String()
}

func (n *Node) writeOuter(sb *strings.Builder) {
	if n.nodeType == TextNode {
		n.writeText(sb)
		return
	}
	n.writeOpenTag(sb)
	if n.Closure() == SelfClosing {
		return
	}
	for _, c := range n.children {
		c.writeOuter(sb)
	}
	n.writeCloseTag(sb)
}

func (n *Node) writeText(sb *strings.Builder) {
	sb.WriteString(html.EscapeString(n.text))
	n.notify(LifecycleTextRendered)
}

// writeOpenTag writes "<tag ...>" or "<tag .../>". The class attribute comes
// first, then attributes in insertion order, then one on<event> attribute per
// event with listeners.
func (n *Node) writeOpenTag(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(n.TagName())

	if n.classList.Len() > 0 {
		writeAttr(sb, "class", n.classList.String())
	}
	synthesized := n.eventAttributes()
	for _, a := range n.attributes {
		if !overridden(a.Name, synthesized) {
			writeAttr(sb, a.Name, a.Value)
		}
	}
	for _, a := range synthesized {
		writeAttr(sb, a.Name, a.Value)
	}

	if n.Closure() == SelfClosing {
		sb.WriteString("/>")
	} else {
		sb.WriteByte('>')
	}
}

func (n *Node) writeCloseTag(sb *strings.Builder) {
	sb.WriteString("</")
	sb.WriteString(n.TagName())
	sb.WriteByte('>')
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteByte('"')
}

func overridden(name string, attrs []Attr) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}
