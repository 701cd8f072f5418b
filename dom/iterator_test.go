package dom

import (
	"errors"
	"testing"
)

// buildTree builds
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
//	    └── b1
func buildTree(t *testing.T) *Node {
	t.Helper()
	doc := NewDocument()
	return mustBuild(t, doc, "root",
		mustBuild(t, doc, "a", doc.CreateElement("a1"), doc.CreateElement("a2")),
		mustBuild(t, doc, "b", doc.CreateElement("b1")))
}

func collect(it Iterator) []string {
	var names []string
	for it.HasNext() {
		n, err := it.Next()
		if err != nil {
			break
		}
		names = append(names, n.NodeName())
	}
	return names
}

func TestDepthFirstIterator(t *testing.T) {
	got := collect(NewDepthFirstIterator(buildTree(t)))
	want := []string{"root", "a", "a1", "a2", "b", "b1"}
	if !equalStrings(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestBreadthFirstIterator(t *testing.T) {
	got := collect(NewBreadthFirstIterator(buildTree(t)))
	want := []string{"root", "a", "b", "a1", "a2", "b1"}
	if !equalStrings(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestIterators_VisitEveryNodeOnce(t *testing.T) {
	root := buildTree(t)

	seen := func(kind TraversalType) map[*Node]int {
		m := make(map[*Node]int)
		for n := range Traverse(root, kind) {
			m[n]++
		}
		return m
	}
	dfs, bfs := seen(DepthFirst), seen(BreadthFirst)

	if len(dfs) != 6 || len(bfs) != 6 {
		t.Errorf("Expected 6 nodes each, got %d and %d", len(dfs), len(bfs))
	}
	for n, count := range dfs {
		if count != 1 || bfs[n] != 1 {
			t.Errorf("Node %s visited %d (dfs) and %d (bfs) times", n.NodeName(), count, bfs[n])
		}
	}
}

func TestIterator_Exhausted(t *testing.T) {
	for _, kind := range []TraversalType{DepthFirst, BreadthFirst} {
		t.Run(kind.String(), func(t *testing.T) {
			it := NewText("only").Iterator(kind)
			if _, err := it.Next(); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if it.HasNext() {
				t.Fatal("Expected iterator to be exhausted")
			}
			n, err := it.Next()
			if n != nil || !errors.Is(err, ErrExhausted) {
				t.Errorf("Expected ErrExhausted, got %v, %v", n, err)
			}
		})
	}
}

func TestTraverse_SingleUse(t *testing.T) {
	seq := Traverse(buildTree(t), DepthFirst)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 6 || second != 0 {
		t.Errorf("Expected 6 then 0 nodes, got %d then %d", first, second)
	}
}

func TestTraverse_Lazy(t *testing.T) {
	seq := Traverse(buildTree(t), BreadthFirst)
	var got []string
	for n := range seq {
		got = append(got, n.NodeName())
		if len(got) == 2 {
			break
		}
	}
	rest := 0
	for range seq {
		rest++
	}
	if !equalStrings(got, []string{"root", "a"}) || rest != 4 {
		t.Errorf("Expected [root a] then 4 more, got %v then %d", got, rest)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
