package path

import (
	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/text"
)

// Item is one pending entry in a path's nextItemList (spec.md §3): either a
// node item (a forest node still awaiting expansion, together with the
// grammatical properties its parent rule imposed on it) or a text item
// (insertion text whose conjugation had to wait for the first branch of a
// binary rule to fix the path's person-number — insertedSymIdx==1).
// Node != nil marks a node item; otherwise it is a text item carrying Text.
//
// MinCost is cumulative: a node item's MinCost is its node's own minCost
// plus the MinCost of the item it was prepended onto, so the head of the
// list always reports the admissible remaining-cost estimate for every
// item still pending, not just itself (spec.md §4.2 createPath's
// `prev.nextItemList.minCost ?? 0`).
type Item struct {
	Node      *forest.Node
	GramProps *text.GramProps
	Text      text.Text

	NodeCount int
	Size      int
	MinCost   int
	Next      *Item
}

// IsNodeItem reports whether it is a node item, as opposed to a text item.
func (it *Item) IsNodeItem() bool { return it != nil && it.Node != nil }

// NodeCountOf and MinCostOf are nil-safe accessors matching spec.md's
// `prev.nextItemList.nodeCount ?? 0` idiom.
func NodeCountOf(it *Item) int {
	if it == nil {
		return 0
	}
	return it.NodeCount
}

func MinCostOf(it *Item) int {
	if it == nil {
		return 0
	}
	return it.MinCost
}

// PrependNodeItem prepends a pending node item.
func PrependNodeItem(next *Item, node *forest.Node, gramProps *text.GramProps, nodeCount, size int) *Item {
	return &Item{
		Node: node, GramProps: gramProps,
		NodeCount: nodeCount, Size: size,
		MinCost: node.MinCost + MinCostOf(next),
		Next:    next,
	}
}

// PrependTextItem prepends a pending text item carrying insertion text to
// be conjugated once it reaches the head of the list (branch-finalize).
func PrependTextItem(next *Item, t text.Text, nodeCount, size int) *Item {
	return &Item{
		Text:      t,
		NodeCount: nodeCount, Size: size,
		MinCost: MinCostOf(next),
		Next:    next,
	}
}
