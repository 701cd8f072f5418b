// Package html parses markup into light dom trees using golang.org/x/net/html
// as the underlying parser implementation.
package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/lightdom/dom"
)

// HandlerBinder turns an inline on<event> attribute into an event listener.
type HandlerBinder interface {
	Bind(n *dom.Node, event, source string) error
}

type parseOptions struct {
	keepWhitespace bool
	binder         HandlerBinder
}

// Option configures parsing.
type Option func(*parseOptions)

// KeepWhitespace keeps whitespace-only text nodes, which are dropped by
// default.
func KeepWhitespace() Option {
	return func(o *parseOptions) {
		o.keepWhitespace = true
	}
}

// WithHandlerBinder hands on<event> attributes to b instead of keeping them
// as plain attributes.
func WithHandlerBinder(b HandlerBinder) Option {
	return func(o *parseOptions) {
		o.binder = b
	}
}

// voidElements never have content and render as self-closing.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// inlineElements are phrasing content; everything else is treated as block.
var inlineElements = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Bdi: true, atom.Bdo: true,
	atom.Br: true, atom.Button: true, atom.Cite: true, atom.Code: true,
	atom.Data: true, atom.Dfn: true, atom.Em: true, atom.I: true, atom.Img: true,
	atom.Input: true, atom.Kbd: true, atom.Label: true, atom.Mark: true,
	atom.Q: true, atom.S: true, atom.Samp: true, atom.Select: true,
	atom.Small: true, atom.Span: true, atom.Strong: true, atom.Sub: true,
	atom.Sup: true, atom.Textarea: true, atom.Time: true, atom.U: true,
	atom.Var: true, atom.Wbr: true,
}

// IsVoidElement returns true if tag never has content.
func IsVoidElement(tag string) bool {
	return voidElements[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// IsInlineElement returns true if tag is phrasing content.
func IsInlineElement(tag string) bool {
	return inlineElements[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// Parse parses an HTML fragment in a <body> context and returns the
// top-level nodes, built through doc.
func Parse(doc *dom.Document, markup string, opts ...Option) ([]*dom.Node, error) {
	return ParseReader(doc, strings.NewReader(markup), opts...)
}

// ParseReader parses an HTML fragment from a reader.
func ParseReader(doc *dom.Document, r io.Reader, opts ...Option) ([]*dom.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	netNodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("unable to parse fragment: %w", err)
	}
	c := newConverter(doc, opts)
	nodes := make([]*dom.Node, 0, len(netNodes))
	for _, nn := range netNodes {
		node, err := c.convert(nn)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// ParseElement parses a fragment that must contain exactly one top-level
// element and returns it.
func ParseElement(doc *dom.Document, markup string, opts ...Option) (*dom.Node, error) {
	nodes, err := Parse(doc, markup, opts...)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 || !nodes[0].IsElement() {
		return nil, fmt.Errorf("expected a single top-level element, got %d nodes", len(nodes))
	}
	return nodes[0], nil
}

// ParseDocument parses a complete document and returns its <html> element.
func ParseDocument(doc *dom.Document, r io.Reader, opts ...Option) (*dom.Node, error) {
	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	for c := netDoc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return newConverter(doc, opts).convert(c)
		}
	}
	return nil, errors.New("document has no html element")
}

type converter struct {
	doc  *dom.Document
	opts parseOptions
}

func newConverter(doc *dom.Document, opts []Option) *converter {
	c := &converter{doc: doc}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// convert converts a golang.org/x/net/html node to a dom node. Comments,
// doctypes and dropped whitespace yield nil.
func (c *converter) convert(n *html.Node) (*dom.Node, error) {
	switch n.Type {
	case html.TextNode:
		if !c.opts.keepWhitespace && strings.TrimSpace(n.Data) == "" {
			return nil, nil
		}
		return c.doc.CreateTextNode(n.Data), nil
	case html.ElementNode:
		return c.convertElement(n)
	default:
		return nil, nil
	}
}

func (c *converter) convertElement(n *html.Node) (*dom.Node, error) {
	display, closure := dom.Block, dom.Paired
	if inlineElements[n.DataAtom] {
		display = dom.Inline
	}
	if voidElements[n.DataAtom] {
		closure = dom.SelfClosing
	}
	el := c.doc.CreateElementWith(n.Data, display, closure)

	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + attr.Key
		}
		if c.opts.binder != nil && len(key) > 2 && strings.HasPrefix(key, "on") {
			if err := c.opts.binder.Bind(el, key[2:], attr.Val); err != nil {
				return nil, fmt.Errorf("<%s %s>: %w", n.Data, key, err)
			}
			continue
		}
		if err := el.SetAttribute(key, attr.Val); err != nil {
			// The tokenizer accepts names like `"x"` that cannot be rendered back.
			if errors.Is(err, dom.ErrKindInvalidCharacter) {
				continue
			}
			return nil, fmt.Errorf("<%s %s>: %w", n.Data, key, err)
		}
	}

	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		child, err := c.convert(ch)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if err := el.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return el, nil
}
