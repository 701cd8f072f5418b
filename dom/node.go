package dom

import (
	"slices"
	"strings"
)

// Node is a node in a light document tree. It is either an element (tag,
// children, classes, attributes, listeners) or a text leaf, as reported by
// NodeType. Element-only operations called on a text node fail with a
// HierarchyRequestError and leave the node untouched.
//
// A Node is not safe for concurrent mutation. Callers that share a tree
// between goroutines must serialize access to it.
type Node struct {
	nodeType NodeType
	parent   *Node
	children []*Node

	// element data
	elementType *ElementType
	classList   ClassList
	attributes  attrList
	listeners   map[string][]eventListener

	// text data
	text string

	visibility Visibility
	history    *CommandHistory
	lifecycle  LifecycleListener
	image      *Image
}

// NewElement creates a paired block element with the given tag name.
func NewElement(tagName string) *Node {
	return NewElementWith(tagName, Block, Paired)
}

// NewElementWith creates an element with a private descriptor. Use a
// Document or an ElementTypeFactory to share descriptors between elements.
func NewElementWith(tagName string, display DisplayType, closure ClosureType) *Node {
	return NewElementFromType(&ElementType{tagName: tagName, display: display, closure: closure})
}

// NewElementFromType creates an element that references the given descriptor.
func NewElementFromType(et *ElementType) *Node {
	return &Node{
		nodeType:    ElementNode,
		elementType: et,
	}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{
		nodeType: TextNode,
		text:     text,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n.nodeType == ElementNode
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.nodeType == TextNode
}

// NodeName returns the tag name for elements and "#text" for text nodes.
func (n *Node) NodeName() string {
	if n.nodeType == TextNode {
		return "#text"
	}
	if n.elementType == nil {
		return ""
	}
	return n.elementType.tagName
}

// TagName returns the tag name, or empty string for text nodes.
func (n *Node) TagName() string {
	if n.elementType == nil {
		return ""
	}
	return n.elementType.tagName
}

// ElementType returns the element's descriptor, or nil for text nodes.
func (n *Node) ElementType() *ElementType {
	return n.elementType
}

// Display returns the display kind. Text nodes are always inline.
func (n *Node) Display() DisplayType {
	if n.elementType == nil {
		return Inline
	}
	return n.elementType.display
}

// Closure returns the closure kind. Text nodes report Paired.
func (n *Node) Closure() ClosureType {
	if n.elementType == nil {
		return Paired
	}
	return n.elementType.closure
}

// Data returns the literal text of a text node.
func (n *Node) Data() string {
	return n.text
}

// SetData replaces the literal text of a text node.
func (n *Node) SetData(text string) error {
	if n.nodeType != TextNode {
		return ErrNotSupported("Only text nodes carry literal text.")
	}
	n.text = text
	return nil
}

// Parent returns the parent element, or nil for a detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return len(n.children) > 0
}

// ChildAt returns the child at index, or nil if out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.ChildAt(0)
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.ChildAt(len(n.children) - 1)
}

// IndexOf returns the position of child among n's children by identity, or
// -1 if it is not a child of n.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains returns true if other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for node := other; node != nil; node = node.parent {
		if node == n {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// AppendChild adds child at the end of n's children. A child that already
// has a parent is detached from it first.
func (n *Node) AppendChild(child *Node) error {
	index := len(n.children)
	if child != nil && child.parent == n {
		index--
	}
	return n.InsertChildAt(index, child)
}

// InsertChildAt inserts child so that it ends up at position index among
// n's children.
func (n *Node) InsertChildAt(index int, child *Node) error {
	if err := n.validateInsertion(child); err != nil {
		return err
	}

	limit := len(n.children)
	if child.parent == n {
		limit--
	}
	if index < 0 || index > limit {
		return ErrIndexSize("The index is not in the allowed range.")
	}

	if child.parent != nil {
		child.parent.detach(child)
	}

	n.children = slices.Insert(n.children, index, child)
	child.parent = n
	child.notify(LifecycleInserted)
	return nil
}

func (n *Node) validateInsertion(child *Node) error {
	if n.nodeType == TextNode {
		return ErrHierarchyRequest("Text nodes cannot have child nodes.")
	}
	if child == nil {
		return ErrHierarchyRequest("Cannot insert a nil node.")
	}
	if child.Contains(n) {
		return ErrHierarchyRequest("The new child element contains the parent.")
	}
	return nil
}

// RemoveChild removes the first occurrence of child by identity and clears
// its parent. It returns false if child is not a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || n.IndexOf(child) < 0 {
		return false
	}
	n.detach(child)
	return true
}

func (n *Node) detach(child *Node) {
	i := n.IndexOf(child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	child.notify(LifecycleRemoved)
}

// AddText appends a new text node holding text.
func (n *Node) AddText(text string) error {
	return n.AppendChild(NewText(text))
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.nodeType == TextNode {
		return n.text
	}
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	if n.nodeType == TextNode {
		sb.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.collectTextContent(sb)
	}
}

// AddClass adds CSS classes. Adding a class that is already present is a
// no-op.
func (n *Node) AddClass(classes ...string) error {
	if n.nodeType == TextNode {
		return ErrHierarchyRequest("Text nodes cannot have CSS classes.")
	}
	if err := n.classList.Add(classes...); err != nil {
		return err
	}
	n.notify(LifecycleClassListApplied)
	return nil
}

// RemoveClass removes a CSS class and reports whether it was present.
func (n *Node) RemoveClass(class string) bool {
	if n.nodeType == TextNode || !n.classList.Remove(class) {
		return false
	}
	n.notify(LifecycleClassListApplied)
	return true
}

// ToggleClass flips the presence of a class and returns whether it is
// present afterwards.
func (n *Node) ToggleClass(class string) (bool, error) {
	if n.nodeType == TextNode {
		return false, ErrHierarchyRequest("Text nodes cannot have CSS classes.")
	}
	present, err := n.classList.Toggle(class)
	if err != nil {
		return false, err
	}
	n.notify(LifecycleClassListApplied)
	return present, nil
}

// HasClass returns true if the element has the given class.
func (n *Node) HasClass(class string) bool {
	return n.classList.Contains(class)
}

// Classes returns the element's classes in insertion order.
func (n *Node) Classes() []string {
	return n.classList.Values()
}

// ClassList returns the live class list, or nil for text nodes.
func (n *Node) ClassList() *ClassList {
	if n.nodeType == TextNode {
		return nil
	}
	return &n.classList
}

// SetAttribute sets an attribute value, creating it if it doesn't exist.
// Setting "class" replaces the class list.
func (n *Node) SetAttribute(name, value string) error {
	if n.nodeType == TextNode {
		return ErrHierarchyRequest("Text nodes cannot have attributes.")
	}
	if err := validateAttributeName(name); err != nil {
		return err
	}
	if name == "class" {
		var cl ClassList
		if err := cl.Add(strings.Fields(value)...); err != nil {
			return err
		}
		n.classList = cl
		n.notify(LifecycleClassListApplied)
		return nil
	}
	n.attributes.set(name, value)
	if name == "style" {
		n.notify(LifecycleStylesApplied)
	}
	return nil
}

// GetAttribute returns the value of the specified attribute, or empty string
// if not found.
func (n *Node) GetAttribute(name string) string {
	if name == "class" {
		return n.classList.String()
	}
	if i := n.attributes.index(name); i >= 0 {
		return n.attributes[i].Value
	}
	return ""
}

// HasAttribute returns true if the node has the specified attribute.
func (n *Node) HasAttribute(name string) bool {
	if name == "class" {
		return n.classList.Len() > 0
	}
	return n.attributes.index(name) >= 0
}

// RemoveAttribute removes an attribute and reports whether it was present.
func (n *Node) RemoveAttribute(name string) bool {
	if name == "class" {
		had := n.classList.Len() > 0
		n.classList = ClassList{}
		return had
	}
	return n.attributes.remove(name)
}

// Attributes returns a copy of the non-class attributes in insertion order.
func (n *Node) Attributes() []Attr {
	return slices.Clone([]Attr(n.attributes))
}
