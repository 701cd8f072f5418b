package dom

import "sync"

// ElementType is the shared, immutable part of an element: its tag name,
// display kind and closure kind. Instances come from an ElementTypeFactory so
// that elements with the same configuration point at one descriptor.
type ElementType struct {
	tagName string
	display DisplayType
	closure ClosureType
}

// TagName returns the tag name.
func (et *ElementType) TagName() string {
	return et.tagName
}

// Display returns the display kind.
func (et *ElementType) Display() DisplayType {
	return et.display
}

// Closure returns the closure kind.
func (et *ElementType) Closure() ClosureType {
	return et.closure
}

type elementTypeKey struct {
	tagName string
	display DisplayType
	closure ClosureType
}

// ElementTypeFactory deduplicates ElementType descriptors. A factory usually
// lives as long as one Document and is discarded with it.
type ElementTypeFactory struct {
	types map[elementTypeKey]*ElementType
	mu    sync.Mutex
}

// NewElementTypeFactory creates an empty factory.
func NewElementTypeFactory() *ElementTypeFactory {
	return &ElementTypeFactory{
		types: make(map[elementTypeKey]*ElementType),
	}
}

// Get returns the descriptor for the given configuration, creating it on
// first use.
func (f *ElementTypeFactory) Get(tagName string, display DisplayType, closure ClosureType) *ElementType {
	key := elementTypeKey{tagName: tagName, display: display, closure: closure}

	f.mu.Lock()
	defer f.mu.Unlock()

	if et, ok := f.types[key]; ok {
		return et
	}
	et := &ElementType{tagName: tagName, display: display, closure: closure}
	f.types[key] = et
	return et
}

// Len returns the number of distinct descriptors created so far.
func (f *ElementTypeFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.types)
}
