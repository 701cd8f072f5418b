package book

import (
	"unsafe"

	"github.com/chrisuehlinger/lightdom/dom"
)

// Stats describes how much element type data a tree carries.
type Stats struct {
	Elements      int
	TextNodes     int
	DistinctTypes int
	// PerNodeBytes is the descriptor footprint if every element owned a copy
	// of its tag, display and closure data.
	PerNodeBytes int
	// SharedBytes is the footprint with one shared descriptor per type plus a
	// pointer per element.
	SharedBytes int
	// Tags counts elements by tag name.
	Tags map[string]int
}

// Reduction returns the fraction of descriptor memory saved by sharing.
func (s Stats) Reduction() float64 {
	if s.PerNodeBytes == 0 {
		return 0
	}
	return 1 - float64(s.SharedBytes)/float64(s.PerNodeBytes)
}

// Measure walks root and estimates descriptor memory with and without shared
// element types.
func Measure(root *dom.Node) Stats {
	stats := Stats{Tags: make(map[string]int)}
	seen := make(map[*dom.ElementType]bool)

	for n := range dom.Traverse(root, dom.DepthFirst) {
		if n.IsText() {
			stats.TextNodes++
			continue
		}
		et := n.ElementType()
		stats.Elements++
		stats.Tags[et.TagName()]++
		stats.PerNodeBytes += descriptorSize(et)
		stats.SharedBytes += int(unsafe.Sizeof(et))
		if !seen[et] {
			seen[et] = true
			stats.DistinctTypes++
			stats.SharedBytes += descriptorSize(et)
		}
	}
	return stats
}

func descriptorSize(et *dom.ElementType) int {
	return int(unsafe.Sizeof(*et)) + len(et.TagName())
}
