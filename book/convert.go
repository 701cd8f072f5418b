// Package book turns plain text books into light dom trees. Every element it
// creates is built through a dom.Document, so a few shared element types
// describe thousands of nodes.
package book

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"github.com/chrisuehlinger/lightdom/dom"
)

// DefaultShortLine is the length under which a line becomes a heading.
const DefaultShortLine = 20

// Options controls how lines map to elements.
type Options struct {
	// ShortLine: lines with fewer runes than this become h2 headings.
	ShortLine int
	// ContainerClass is the class of the root div.
	ContainerClass string
	// HeadingIDs gives every h2 a slug id.
	HeadingIDs bool
}

// DefaultOptions returns the standard conversion settings.
func DefaultOptions() Options {
	return Options{
		ShortLine:      DefaultShortLine,
		ContainerClass: "container",
		HeadingIDs:     true,
	}
}

// Convert builds a div with an h1 for the first line and one element per
// remaining non-blank line: h2 for short lines, blockquote for indented lines
// and p for everything else.
func Convert(doc *dom.Document, lines []string, opts Options) (*dom.Node, error) {
	if opts.ShortLine <= 0 {
		opts.ShortLine = DefaultShortLine
	}

	root := doc.CreateElement("div")
	if opts.ContainerClass != "" {
		if err := root.AddClass(opts.ContainerClass); err != nil {
			return nil, err
		}
	}
	if len(lines) == 0 {
		return root, nil
	}

	h1 := doc.CreateElement("h1")
	if title := strings.TrimSpace(lines[0]); title != "" {
		if err := h1.AddText(title); err != nil {
			return nil, err
		}
	}
	if err := root.AppendChild(h1); err != nil {
		return nil, err
	}

	ids := make(map[string]int)
	for _, line := range lines[1:] {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		var el *dom.Node
		switch {
		case utf8.RuneCountInString(line) < opts.ShortLine:
			el = doc.CreateElement("h2")
			if opts.HeadingIDs {
				if err := el.SetAttribute("id", uniqueID(ids, text)); err != nil {
					return nil, err
				}
			}
		case startsWithSpace(line):
			el = doc.CreateElement("blockquote")
		default:
			el = doc.CreateElement("p")
		}
		if err := el.AddText(text); err != nil {
			return nil, err
		}
		if err := root.AppendChild(el); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// ConvertText splits text into lines, strips Project Gutenberg front and back
// matter and converts the rest.
func ConvertText(doc *dom.Document, text string, opts Options) (*dom.Node, error) {
	return Convert(doc, ExtractBody(SplitLines(text)), opts)
}

func startsWithSpace(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsSpace(r)
}

// uniqueID slugs text and disambiguates repeats with a numeric suffix.
func uniqueID(seen map[string]int, text string) string {
	id := slug.Make(text)
	if id == "" {
		id = "section"
	}
	seen[id]++
	if n := seen[id]; n > 1 {
		return id + "-" + strconv.Itoa(n)
	}
	return id
}
