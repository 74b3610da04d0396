// Package pfsearch implements the A* best-first parse-forest search
// (spec.md §4.2): a binary min-heap of partial paths, expanded subnode by
// subnode, stitched together via path's pending-item list, and filtered
// for semantic/textual uniqueness as trees complete.
package pfsearch

import (
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/path"
	"github.com/npillmayer/pfsearch/semantics"
)

func tracer() tracing.Trace {
	return tracing.Select("pfsearch.search")
}

// DefaultK is the default number of trees requested when Options.K is 0.
const DefaultK = 7

// Options configures one Search call (spec.md §6).
type Options struct {
	K              int  // number of trees to enumerate; DefaultK if <= 0
	BuildTrees     bool // keep a reverse derivation-step chain per tree
	PrintAmbiguity bool // log (via tracer) every ambiguous-text attachment
}

// DerivationStep is one edge of a kept derivation, reverse-linked from the
// finished tree back to the forest root (spec.md §6: "a reverse linked
// list of {ruleProps, prev} adequate to reconstruct the derivation").
type DerivationStep struct {
	RuleProps *forest.RuleProps
	Prev      *DerivationStep
}

// ParseTree is one emitted, unique completed derivation (spec.md §6).
type ParseTree struct {
	Text               string
	SemanticStr        string
	Cost               int
	AmbiguousSemantics []string
	Derivation         *DerivationStep
}

// Result is the outcome of a Search call (spec.md §6).
type Result struct {
	Trees              []ParseTree
	PathCount          int
	AmbiguousTreeCount int
}

func pathComparator(a, b interface{}) int {
	pa, pb := a.(*path.Path), b.(*path.Path)
	switch {
	case pa.MinCost < pb.MinCost:
		return -1
	case pa.MinCost > pb.MinCost:
		return 1
	default:
		return 0
	}
}

// Search enumerates the k-best complete parse trees reachable from root,
// an already heuristic-cost-annotated forest node (spec.md §4.2 main loop).
func Search(root *forest.Node, opts Options) (Result, error) {
	k := opts.K
	if k <= 0 {
		k = DefaultK
	}

	heap := binaryheap.NewWith(pathComparator)
	heap.Push(&path.Path{CurNode: root, MinCost: root.MinCost})

	var trees []ParseTree
	pathCount := 0
	ambiguousCount := 0

	for !heap.Empty() && len(trees) < k {
		v, _ := heap.Pop()
		p := v.(*path.Path)
		pathCount++

		if p.CurNode != nil {
			pushAll(heap, expand(p, opts.BuildTrees))
			continue
		}

		finalized := path.ConsumeTextItems(p)
		if finalized.NextItemList != nil {
			pushAll(heap, expand(path.Advance(finalized), opts.BuildTrees))
			continue
		}

		tree, unique, ambiguous := recordIfUnique(trees, finalized, opts.BuildTrees)
		if ambiguous {
			ambiguousCount++
			if opts.PrintAmbiguity {
				tracer().Infof("pfsearch: ambiguous text %q now carries alternates %v", tree.Text, tree.AmbiguousSemantics)
			}
		}
		if unique {
			trees = append(trees, tree)
		}
	}

	return Result{Trees: trees, PathCount: pathCount, AmbiguousTreeCount: ambiguousCount}, nil
}

func pushAll(heap *binaryheap.Heap, paths []*path.Path) {
	for _, p := range paths {
		heap.Push(p)
	}
}

// expand implements spec.md §4.2 expand: for each subnode, for each
// ruleProps variant, call createPath; a semantic rejection
// (semantics.ErrIllegal) is silently discarded, matching spec.md §7's
// "rejection is silent — the offending path is discarded and the heap
// continues." That is the only kind-1 (per-path) error createPath can
// return; a missing inflected form is a kind-2 grammar bug and panics
// instead of reaching this loop (see text.Conjugate).
func expand(p *path.Path, keepDerivation bool) []*path.Path {
	var out []*path.Path
	for _, sub := range p.CurNode.Subs {
		for _, rp := range sub.Variants() {
			np, err := path.CreatePath(p, sub, rp, keepDerivation)
			if err != nil {
				if err == semantics.ErrIllegal {
					continue
				}
				tracer().Errorf("pfsearch: unexpected error building path: %v", err)
				continue
			}
			out = append(out, np)
		}
	}
	return out
}

// recordIfUnique implements spec.md §4.2 isUniqueTree. It never appends to
// trees (Search owns the slice and appends a unique result itself); when
// the candidate duplicates an existing tree's text, it appends the
// candidate's semantic string to that tree's AmbiguousSemantics in place
// and returns a copy of that tree with the ambiguous flag set.
func recordIfUnique(trees []ParseTree, p *path.Path, keepDerivation bool) (ParseTree, bool, bool) {
	semanticStr := ""
	if p.SemanticList != nil {
		semanticStr = semantics.ToString(p.SemanticList.Semantic)
	}
	txt := strings.TrimSpace(p.Text)

	for i := len(trees) - 1; i >= 0; i-- {
		if trees[i].SemanticStr == semanticStr {
			return ParseTree{}, false, false
		}
		for _, alt := range trees[i].AmbiguousSemantics {
			if alt == semanticStr {
				return ParseTree{}, false, false
			}
		}
	}
	for i := len(trees) - 1; i >= 0; i-- {
		if trees[i].Text == txt {
			trees[i].AmbiguousSemantics = append(trees[i].AmbiguousSemantics, semanticStr)
			return trees[i], false, true
		}
	}

	tree := ParseTree{Text: txt, SemanticStr: semanticStr, Cost: p.Cost}
	if keepDerivation {
		tree.Derivation = buildDerivation(p)
	}
	return tree, true, false
}

func buildDerivation(p *path.Path) *DerivationStep {
	if p == nil || p.RuleProps == nil {
		return nil
	}
	return &DerivationStep{RuleProps: p.RuleProps, Prev: buildDerivation(p.Prev)}
}
