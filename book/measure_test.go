package book

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrisuehlinger/lightdom/dom"
)

func TestMeasure(t *testing.T) {
	lines := []string{"Title", "Heading", "A paragraph line that is long enough.", "Another paragraph line, also long enough."}
	root, err := Convert(dom.NewDocument(), lines, DefaultOptions())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	stats := Measure(root)
	if stats.Elements != 5 {
		t.Errorf("Expected 5 elements, got %d", stats.Elements)
	}
	if stats.TextNodes != 4 {
		t.Errorf("Expected 4 text nodes, got %d", stats.TextNodes)
	}
	if stats.DistinctTypes != 4 {
		t.Errorf("Expected 4 distinct types, got %d", stats.DistinctTypes)
	}
	if stats.Tags["p"] != 2 {
		t.Errorf("Expected 2 paragraphs, got %d", stats.Tags["p"])
	}
}

func TestMeasure_SharingPaysOffForLargeTrees(t *testing.T) {
	lines := []string{"Title"}
	for i := 0; i < 1000; i++ {
		lines = append(lines, "A paragraph line that is long enough to be a p.")
	}
	root, err := Convert(dom.NewDocument(), lines, DefaultOptions())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	stats := Measure(root)
	if stats.SharedBytes >= stats.PerNodeBytes {
		t.Errorf("Expected shared footprint %d below per-node %d", stats.SharedBytes, stats.PerNodeBytes)
	}
	if r := stats.Reduction(); r <= 0 || r >= 1 {
		t.Errorf("Expected reduction in (0,1), got %f", r)
	}
	if (Stats{}).Reduction() != 0 {
		t.Error("Expected zero reduction for an empty tree")
	}
}

func TestWritePage(t *testing.T) {
	root, err := Convert(dom.NewDocument(), []string{"Title", "Chapter"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePage(&buf, "Romeo & Juliet", root); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Romeo &amp; Juliet</title>",
		"  <div class=\"container\">",
		"    <h1>Title</h1>",
		"</body>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}

	buf.Reset()
	WritePage(&buf, "", root)
	if !strings.Contains(buf.String(), "<title>Untitled</title>") {
		t.Error("Expected default title")
	}
}
