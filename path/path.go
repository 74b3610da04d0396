// Package path implements one partial derivation through a packed parse
// forest: the pending work list, semantic frame stack, person-number stack
// and accumulated display text that a parse-forest search (package
// pfsearch) advances one forest node at a time (spec.md §3, §4.2, §4.3).
package path

import (
	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/semantics"
	"github.com/npillmayer/pfsearch/text"
)

// Path is one candidate derivation, as carried on pfsearch's best-first
// search heap. Paths are immutable once created: CreatePath always builds
// a new Path from a parent, never mutates the parent, since many paths may
// share the same parent prefix (spec.md §3's "shared linked-list tails
// between paths must not be mutated").
type Path struct {
	CurNode *forest.Node

	NextItemList     *Item
	NextItemListSize int

	SemanticList     *semantics.Frame
	PersonNumberList *PersonNumberFrame

	Text      string
	GramProps *text.GramProps // grammatical properties of CurNode, assigned when it became current

	Cost    int // accumulated exact cost so far
	MinCost int // Cost + admissible heuristic remainder (search priority)

	RuleProps *forest.RuleProps // rule that produced this path, kept for derivation-tree reconstruction
	Prev      *Path             // non-nil only when Options.BuildTrees
}

// CreatePath builds the successor path obtained by taking one ruleProps
// variant of sub off prev.CurNode and folding its semantic/text/
// person-number payload into prev (spec.md §4.2 createPath). sub.Node is
// the rule's first RHS child; sub.Next is non-nil for a binary rule.
func CreatePath(prev *Path, sub forest.Subnode, rp forest.RuleProps, keepDerivation bool) (*Path, error) {
	nextNodeCount := NodeCountOf(prev.NextItemList)
	cost := prev.Cost + rp.Cost
	minCost := cost + MinCostOf(prev.NextItemList)

	np := &Path{
		NextItemList:     prev.NextItemList,
		NextItemListSize: prev.NextItemListSize,
		PersonNumberList: prev.PersonNumberList,
		Text:             prev.Text,
		Cost:             cost,
	}
	if keepDerivation {
		rpCopy := rp
		np.RuleProps = &rpCopy
		np.Prev = prev
	}

	if rp.IsNonterminal {
		sl, err := AppendSemantic(prev.SemanticList, nextNodeCount, rp)
		if err != nil {
			return nil, err
		}
		np.SemanticList = sl
		np.CurNode = sub.Node
		np.GramProps = rp.GramProps[0]
		minCost += sub.Node.MinCost

		if rp.PersonNumber != "" {
			np.PersonNumberList = PrependPersonNumber(np.PersonNumberList, rp.PersonNumber, prev.NextItemListSize)
		}

		if rp.InsertedSymIdx == forest.NoInsertion && sub.Next != nil {
			inc := 0
			if rp.SecondRHSCanProduceSemantic {
				inc = 1
			}
			np.NextItemListSize++
			np.NextItemList = PrependNodeItem(np.NextItemList, sub.Next, rp.GramProps[1], nextNodeCount+inc, np.NextItemListSize)
		}

		switch rp.InsertedSymIdx {
		case 1:
			// Conjugation deferred until the first branch fixes person-number;
			// queued as a text item consumed during branch-finalize.
			np.NextItemListSize++
			np.NextItemList = PrependTextItem(np.NextItemList, rp.Text, nextNodeCount, np.NextItemListSize)
		case 0:
			np.Text += text.Conjugate(rp.Text, HeadPersonNumber(prev.PersonNumberList), nil, "")
		}
	} else {
		sl, err := ReduceSemanticTree(prev.SemanticList, nextNodeCount, rp)
		if err != nil {
			return nil, err
		}
		np.SemanticList = sl

		if !rp.Text.IsZero() {
			np.Text += text.Conjugate(rp.Text, HeadPersonNumber(np.PersonNumberList), prev.GramProps, rp.Tense)
		}
		if rp.PersonNumber != "" {
			np.PersonNumberList = PrependPersonNumber(np.PersonNumberList, rp.PersonNumber, prev.NextItemListSize)
		}
	}

	np.MinCost = minCost
	return np, nil
}

// ConsumeTextItems implements the leading edge of branch-finalize
// (spec.md §4.2 step 3): while the head of the list is a text item,
// unwind personNumberList by the item's recorded size and append its
// conjugated text, advancing past it, until a node item is reached or the
// list empties. Returns p itself when the head is not a text item, else a
// new Path carrying the result; p is never mutated. Never fails: a text
// item with no resolvable form is a grammar
// bug and panics inside text.Conjugate, not a condition this function
// reports as an ordinary error.
func ConsumeTextItems(p *Path) *Path {
	list := p.NextItemList
	personNumberList := p.PersonNumberList
	out := p.Text
	for list != nil && !list.IsNodeItem() {
		personNumberList = UnwindPersonNumberList(personNumberList, list.Size)
		out += text.Conjugate(list.Text, HeadPersonNumber(personNumberList), nil, "")
		list = list.Next
	}
	if list == p.NextItemList {
		return p
	}
	np := *p
	np.NextItemList = list
	np.PersonNumberList = personNumberList
	np.Text = out
	return &np
}

// Advance implements spec.md §4.2 step 4: promote the head node item of
// nextItemList (assumed already consumed of leading text items via
// ConsumeTextItems) to CurNode.
func Advance(p *Path) *Path {
	item := p.NextItemList
	np := *p
	np.CurNode = item.Node
	np.GramProps = item.GramProps
	np.NextItemList = item.Next
	return &np
}
