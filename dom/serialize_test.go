package dom

import (
	"strings"
	"testing"
)

// buildContainer builds <div class="container"><h1>Title</h1><p>Body</p></div>.
func buildContainer(t *testing.T) *Node {
	t.Helper()
	doc := NewDocument()
	div := mustBuild(t, doc, "div", mustBuild(t, doc, "h1", "Title"), mustBuild(t, doc, "p", "Body"))
	if err := div.AddClass("container"); err != nil {
		t.Fatalf("AddClass failed: %v", err)
	}
	return div
}

func TestRender_Container(t *testing.T) {
	div := buildContainer(t)

	got := div.Render(0)
	want := strings.Join([]string{
		`<div class="container">`,
		`  <h1>Title</h1>`,
		`  <p>Body</p>`,
		`</div>`,
	}, "\n")
	if got != want {
		t.Errorf("Render mismatch.\nWant:\n%s\nGot:\n%s", want, got)
	}

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	if indentOf(lines[2])-indentOf(lines[0]) != 2 {
		t.Errorf("Expected <p> to be indented by 2 relative to <div>, got %q", lines[2])
	}
}

func TestRender_ChildIndentIsParentPlusTwo(t *testing.T) {
	doc := NewDocument()
	table := mustBuild(t, doc, "table",
		mustBuild(t, doc, "tr",
			mustBuild(t, doc, "td", "a"),
			mustBuild(t, doc, "td", "b")),
		mustBuild(t, doc, "tr",
			mustBuild(t, doc, "td", mustBuild(t, doc, "em", "c"), "d")))

	for _, base := range []int{0, 3, 8} {
		out := table.Render(base)
		lines := strings.Split(out, "\n")
		if indentOf(lines[0]) != base {
			t.Errorf("Expected first line at indent %d, got %q", base, lines[0])
		}
		checkIndent(t, table, lines, base)
	}
}

// checkIndent walks the tree alongside the rendered lines and checks that
// every multi-line element puts its children at indent+2.
func checkIndent(t *testing.T, root *Node, lines []string, base int) {
	t.Helper()
	i := 0
	var walk func(n *Node, indent int)
	walk = func(n *Node, indent int) {
		if i >= len(lines) {
			t.Fatalf("Ran out of lines at %s", n.NodeName())
		}
		if got := indentOf(lines[i]); got != indent {
			t.Errorf("Line %d (%q): expected indent %d, got %d", i, lines[i], indent, got)
		}
		i++
		multiLine := n.IsElement() && n.Closure() == Paired &&
			!(len(n.children) == 0 || (len(n.children) == 1 && n.children[0].IsText()))
		if !multiLine {
			return
		}
		for _, c := range n.children {
			walk(c, indent+2)
		}
		if got := indentOf(lines[i]); got != indent {
			t.Errorf("Closing line %d (%q): expected indent %d, got %d", i, lines[i], indent, got)
		}
		i++
	}
	walk(root, base)
	if i != len(lines) {
		t.Errorf("Expected %d lines, rendered %d", i, len(lines))
	}
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func TestRender_SelfClosing(t *testing.T) {
	doc := NewDocument()
	br := doc.CreateElementWith("br", Inline, SelfClosing)
	br.AppendChild(doc.CreateTextNode("ignored"))
	br.AddClass("spacer")

	if got := br.Render(2); got != `  <br class="spacer"/>` {
		t.Errorf("Unexpected self-closing render: %q", got)
	}
	if got := br.OuterHTML(); got != `<br class="spacer"/>` {
		t.Errorf("Unexpected self-closing outer HTML: %q", got)
	}
}

func TestRender_EmptyPaired(t *testing.T) {
	if got := NewElement("div").Render(0); got != "<div></div>" {
		t.Errorf("Expected '<div></div>', got %q", got)
	}
}

func TestRender_AttributesAndEscaping(t *testing.T) {
	a := NewElement("a")
	a.SetAttribute("href", "/search?q=1&r=2")
	a.AddClass("link")
	a.AddText("Fish & Chips")

	want := `<a class="link" href="/search?q=1&amp;r=2">Fish &amp; Chips</a>`
	if got := a.Render(0); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestOuterHTML_Container(t *testing.T) {
	div := buildContainer(t)

	want := `<div class="container"><h1>Title</h1><p>Body</p></div>`
	got := div.OuterHTML()
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if strings.Contains(got, "\n") {
		t.Error("OuterHTML must not contain newlines")
	}
}

func TestOuterHTML_IsOpenTagInnerCloseTag(t *testing.T) {
	div := buildContainer(t)

	var inner strings.Builder
	for _, c := range div.Children() {
		inner.WriteString(c.OuterHTML())
	}
	want := `<div class="container">` + inner.String() + `</div>`
	if got := div.OuterHTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := div.InnerHTML(); got != inner.String() {
		t.Errorf("Expected inner %q, got %q", inner.String(), got)
	}
}

func TestInnerHTML_Text(t *testing.T) {
	text := NewText("a < b")
	if got := text.InnerHTML(); got != "a &lt; b" {
		t.Errorf("Expected escaped text, got %q", got)
	}
}
