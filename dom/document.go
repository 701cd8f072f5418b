package dom

import (
	"fmt"

	"go.uber.org/zap"
)

// Document is a tree-construction session. It owns the ElementTypeFactory
// used for every element it creates and installs its lifecycle listener on
// every node it creates.
type Document struct {
	types     *ElementTypeFactory
	lifecycle LifecycleListener
	log       *zap.Logger
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithLogger sets the logger. Unless WithLifecycleListener is also given,
// lifecycle events of created nodes are logged at debug level.
func WithLogger(log *zap.Logger) DocumentOption {
	return func(d *Document) {
		d.log = log
	}
}

// WithLifecycleListener installs fn on every node created by the document.
func WithLifecycleListener(fn LifecycleListener) DocumentOption {
	return func(d *Document) {
		d.lifecycle = fn
	}
}

// WithElementTypeFactory shares an existing factory instead of creating a
// fresh one.
func WithElementTypeFactory(f *ElementTypeFactory) DocumentOption {
	return func(d *Document) {
		d.types = f
	}
}

// NewDocument creates a new document-build session.
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	if d.types == nil {
		d.types = NewElementTypeFactory()
	}
	if d.log == nil {
		d.log = zap.NewNop()
	} else if d.lifecycle == nil {
		d.lifecycle = LogLifecycle(d.log)
	}
	return d
}

// Types returns the document's descriptor factory.
func (d *Document) Types() *ElementTypeFactory {
	return d.types
}

// Logger returns the document's logger.
func (d *Document) Logger() *zap.Logger {
	return d.log
}

// CreateElement creates a paired block element.
func (d *Document) CreateElement(tagName string) *Node {
	return d.CreateElementWith(tagName, Block, Paired)
}

// CreateElementWith creates an element whose descriptor is shared through
// the document's factory.
func (d *Document) CreateElementWith(tagName string, display DisplayType, closure ClosureType) *Node {
	return d.adopt(NewElementFromType(d.types.Get(tagName, display, closure)))
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) *Node {
	return d.adopt(NewText(text))
}

func (d *Document) adopt(n *Node) *Node {
	n.lifecycle = d.lifecycle
	n.notify(LifecycleCreated)
	return n
}

// Build creates a paired block element and appends content to it: strings
// become text nodes and nodes are appended as they are.
func (d *Document) Build(tagName string, content ...any) (*Node, error) {
	el := d.CreateElement(tagName)
	for i, c := range content {
		var child *Node
		switch v := c.(type) {
		case string:
			child = d.CreateTextNode(v)
		case *Node:
			child = v
		default:
			return nil, fmt.Errorf("content %d: unsupported type %T", i, c)
		}
		if err := el.AppendChild(child); err != nil {
			return nil, fmt.Errorf("content %d: %w", i, err)
		}
	}
	return el, nil
}
