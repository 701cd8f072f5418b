// Package dom provides a small in-memory document tree of element and text
// nodes ("light nodes") with markup rendering, visitors, iterators, an
// undo/redo command history, visibility states, shared per-tag metadata and
// synchronous event dispatch.
package dom

// NodeType discriminates the two node variants.
type NodeType uint16

const (
	// ElementNode represents a tagged node that may own children and classes.
	ElementNode NodeType = 1
	// TextNode represents a leaf holding literal text.
	TextNode NodeType = 3
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}

// DisplayType is advisory layout metadata. Rendering does not use it.
type DisplayType uint8

const (
	Block DisplayType = iota
	Inline
)

func (d DisplayType) String() string {
	switch d {
	case Block:
		return "BLOCK"
	case Inline:
		return "INLINE"
	default:
		return "UNKNOWN_DISPLAY"
	}
}

// ClosureType tells whether a tag needs a matching close tag.
type ClosureType uint8

const (
	// Paired elements render children and a closing tag.
	Paired ClosureType = iota
	// SelfClosing elements render only "<tag .../>".
	SelfClosing
)

func (c ClosureType) String() string {
	switch c {
	case Paired:
		return "PAIRED"
	case SelfClosing:
		return "SELF_CLOSING"
	default:
		return "UNKNOWN_CLOSURE"
	}
}
