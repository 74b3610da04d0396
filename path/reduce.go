package path

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/semantics"
)

func tracer() tracing.Trace {
	return tracing.Select("pfsearch.path")
}

// AppendSemantic folds one rule's semantic payload into the running
// semantic frame list (spec.md §4.2). It is called when a rule with
// nonterminal RHS fires, as opposed to ReduceSemanticTree below which
// handles a terminal-rule payload.
func AppendSemantic(list *semantics.Frame, nextNodeCount int, rp forest.RuleProps) (*semantics.Frame, error) {
	switch {
	case rp.InsertedSemantic != nil:
		// A rule that both introduces a LHS function and, in the same step,
		// supplies one of its arguments via insertion.
		lhs := semantics.PushLHS(list, rp.Semantic, nextNodeCount)
		return semantics.PushRHS(lhs, rp.InsertedSemantic), nil

	case rp.Semantic != nil && rp.SemanticIsReduced:
		return appendReducedSemantic(list, nextNodeCount, rp)

	case rp.Semantic != nil:
		if semantics.IsForbiddenMultiple(list, rp.Semantic) {
			return nil, semantics.ErrIllegal
		}
		return semantics.PushLHS(list, rp.Semantic, nextNodeCount), nil

	case rp.AnaphoraPersonNumber != "":
		resolved, err := semantics.ResolveAnaphora(list, rp.AnaphoraPersonNumber)
		if err != nil {
			return nil, err
		}
		return BaseReduceSemanticTree(list, nextNodeCount, resolved)

	default:
		return list, nil
	}
}

func appendReducedSemantic(list *semantics.Frame, nextNodeCount int, rp forest.RuleProps) (*semantics.Frame, error) {
	newSem := rp.Semantic

	if list != nil && list.IsRHS {
		if semantics.IsForbiddenMultiple(list, newSem) {
			return nil, semantics.ErrIllegal
		}
		merged, err := semantics.MergeRHS(list.Semantic, newSem)
		if err != nil {
			return nil, err
		}
		return semantics.PushRHS(list.Prev, merged), nil
	}

	if !rp.RHSCanProduceSemantic {
		// No more semantics can follow on this branch; reduce up through
		// the list now instead of waiting for a sibling to trigger it.
		return BaseReduceSemanticTree(list, nextNodeCount, newSem)
	}

	if isIllegalSemanticReduction(list, newSem) {
		return nil, semantics.ErrIllegal
	}
	return semantics.PushRHS(list, newSem), nil
}

// ReduceSemanticTree folds a terminal rule's semantic payload into the
// running frame list (spec.md §4.2, the terminal-rule counterpart of
// AppendSemantic).
func ReduceSemanticTree(list *semantics.Frame, nextNodeCount int, rp forest.RuleProps) (*semantics.Frame, error) {
	switch {
	case rp.Semantic != nil:
		return BaseReduceSemanticTree(list, nextNodeCount, rp.Semantic)

	case rp.AnaphoraPersonNumber != "":
		resolved, err := semantics.ResolveAnaphora(list, rp.AnaphoraPersonNumber)
		if err != nil {
			return nil, err
		}
		return BaseReduceSemanticTree(list, nextNodeCount, resolved)

	case list != nil && list.IsRHS:
		if list.Prev == nil || list.Prev.IsRHS || nextNodeCount > list.Prev.NextNodeCount {
			return list, nil
		}
		return BaseReduceSemanticTree(list.Prev, nextNodeCount, list.Semantic)

	case list != nil && !list.IsRHS:
		if nextNodeCount <= list.NextNodeCount {
			return nil, semantics.ErrIllegal
		}
		return list, nil

	default:
		return list, nil
	}
}

// BaseReduceSemanticTree walks outward from list, merging rhs into RHS
// frames and reducing it against LHS frames whose argument span is closed
// (nextNodeCount <= frame.NextNodeCount), stopping at the first LHS frame
// still awaiting more children. It returns a new RHS frame wrapping
// whatever accumulated along the way (spec.md §4.2/§4.1).
func BaseReduceSemanticTree(list *semantics.Frame, nextNodeCount int, rhs semantics.Array) (*semantics.Frame, error) {
	for list != nil {
		if list.IsRHS {
			merged, err := semantics.MergeRHS(list.Semantic, rhs)
			if err != nil {
				return nil, err
			}
			rhs = merged
			list = list.Prev
			continue
		}

		if nextNodeCount <= list.NextNodeCount {
			reduced, err := semantics.Reduce(list.Semantic, rhs)
			if err != nil {
				return nil, err
			}
			rhs = reduced
			list = list.Prev
			continue
		}

		if isIllegalSemanticReduction(list, rhs) {
			return nil, semantics.ErrIllegal
		}
		break
	}
	tracer().Debugf("path: base-reduced to %s", semantics.ToString(rhs))
	return semantics.PushRHS(list, rhs), nil
}

// isIllegalSemanticReduction implements the lookahead guard against a
// maxParams==1 function being supplied twice across branches: if the
// pending LHS frame names such a function and an earlier RHS frame already
// carries a node built from the same function symbol, folding rhs in now
// would only be undone later, so the caller should fail immediately rather
// than build a tree it must later discard.
func isIllegalSemanticReduction(frame *semantics.Frame, rhs semantics.Array) bool {
	if frame == nil || len(frame.Semantic) == 0 {
		return false
	}
	fn, ok := frame.Semantic[0].Semantic.(*semantics.Function)
	if !ok || fn.MaxParams() != 1 {
		return false
	}
	for f := frame.Prev; f != nil; f = f.Prev {
		if !f.IsRHS {
			continue
		}
		for _, n := range f.Semantic {
			if n.Semantic == frame.Semantic[0].Semantic {
				return true
			}
		}
	}
	return false
}
