package semantics

// This file implements spec.md §4.1: RHS legality/merging, the
// forbidsMultiple lookahead, and reduce() with union lifting/distribution
// and flattening. It is the densest part of the core — grounded on the
// term-rewriting dispatch style of terex/eval.go (resolve-then-apply) but
// specialized to this module's fixed three-operator algebra instead of a
// general s-expression evaluator.

// IsIllegalRHS reports whether concatenating two RHS arrays would be
// illegal: a duplicate node appears in both, or a node in one equals the
// sole child of a `not(...)` node in the other.
func IsIllegalRHS(a, b Array) bool {
	for _, na := range a {
		for _, nb := range b {
			if NodesEqual(na, nb) {
				return true
			}
		}
	}
	return hasNotContradiction(a, b) || hasNotContradiction(b, a)
}

// hasNotContradiction checks whether any node of rhs equals the sole child
// of a not(...) node in notSide.
func hasNotContradiction(rhs, notSide Array) bool {
	for _, n := range notSide {
		if n.IsOp(OpNot) && len(n.Children) == 1 {
			for _, m := range rhs {
				if NodesEqual(m, n.Children[0]) {
					return true
				}
			}
		}
	}
	return false
}

// MergeRHS concatenates two legal RHS arrays. Returns ErrIllegal if
// IsIllegalRHS(a, b).
func MergeRHS(a, b Array) (Array, error) {
	if IsIllegalRHS(a, b) {
		return nil, ErrIllegal
	}
	merged := make(Array, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged, nil
}

// IsForbiddenMultiple implements the forbidsMultiple lookahead: when the
// frame just outside top is an intersect LHS and newLHS's function forbids
// multiple occurrences of itself, scan top's RHS for a sibling with the
// same symbol.
func IsForbiddenMultiple(top *Frame, newLHS Array) bool {
	if top == nil || top.Prev == nil || !top.IsRHS {
		return false
	}
	outer := top.Prev
	if outer.IsRHS || len(outer.Semantic) != 1 || !outer.Semantic[0].IsOp(OpIntersect) {
		return false
	}
	if len(newLHS) == 0 || !newLHS[0].Function {
		return false
	}
	fn, ok := newLHS[0].Semantic.(*Function)
	if !ok || !fn.ForbidsMultiple() {
		return false
	}
	for _, n := range top.Semantic {
		if n.Semantic == newLHS[0].Semantic {
			return true
		}
	}
	return false
}

// hasForbiddenMultiple checks an already-assembled RHS array for two
// sibling nodes sharing a forbidsMultiple symbol — used by reduce() step 1
// when rhsArray.length >= 2.
func hasForbiddenMultiple(rhs Array) bool {
	for i := 0; i < len(rhs); i++ {
		fn, ok := rhs[i].Semantic.(*Function)
		if !ok || !fn.ForbidsMultiple() {
			continue
		}
		for j := i + 1; j < len(rhs); j++ {
			if rhs[j].Semantic == rhs[i].Semantic {
				return true
			}
		}
	}
	return false
}

// requiresUnmet implements reduce() step 1's `requires` lookahead: any
// semantic within rhs that Requires() some Q, where Q is not present
// elsewhere in rhs (the walk for `requires` stops at nested intersect
// nodes; the search for Q stops at both intersect and not nodes).
func requiresUnmet(rhs Array) bool {
	for _, n := range rhs {
		req := requiresOf(n)
		if req == nil {
			continue
		}
		for _, q := range req {
			if !presentIn(rhs, q, true) {
				return true
			}
		}
	}
	return false
}

// requiresOf walks n (stopping at nested intersect) looking for a function
// with a Requires() clause.
func requiresOf(n Node) Array {
	if !n.Function {
		return nil
	}
	if fn, ok := n.Semantic.(*Function); ok && fn.Requires() != nil {
		return fn.Requires()
	}
	if n.IsOp(OpIntersect) {
		return nil
	}
	for _, ch := range n.Children {
		if req := requiresOf(ch); req != nil {
			return req
		}
	}
	return nil
}

// presentIn reports whether q occurs anywhere in rhs, stopping recursion at
// intersect and not boundaries when stopAtBoundaries is set.
func presentIn(rhs Array, q Node, stopAtBoundaries bool) bool {
	for _, n := range rhs {
		if NodesEqual(n, q) {
			return true
		}
		if !n.Function {
			continue
		}
		if stopAtBoundaries && (n.IsOp(OpIntersect) || n.IsOp(OpNot)) {
			continue
		}
		if presentIn(n.Children, q, stopAtBoundaries) {
			return true
		}
	}
	return false
}

// Reduce implements spec.md §4.1 `reduce(lhsArray, rhsArray)`. lhsArray
// must have length 1 — any other length is a grammar bug (fatal, per
// spec.md §7 kind 2).
func Reduce(lhsArray, rhsArray Array) (Array, error) {
	if len(lhsArray) != 1 {
		Bug("reduce called with |lhsArray| = %d, want 1", len(lhsArray))
	}
	lhsNode := lhsArray[0]

	if lhsNode.IsOp(OpIntersect) {
		reduced, err := reduceIntersect(rhsArray)
		if err != nil {
			return nil, err
		}
		if reduced != nil {
			return reduced, nil
		}
		rhsArray = markCompleteWalk(rhsArray)
	}

	if len(rhsArray) == 1 && rhsArray[0].IsOp(OpUnion) && !rhsArray[0].Complete {
		return reduceUnion(lhsNode, rhsArray[0])
	}

	if lhsNode.Function && len(lhsNode.Children) > 0 {
		reducedChildren, err := Reduce(lhsNode.Children[:1], rhsArray)
		if err != nil {
			return nil, err
		}
		rhsArray = reducedChildren
		lhsNode = lhsNode.WithChildren(lhsNode.Children[1:])
		if len(lhsNode.Children) > 0 {
			// Still more of the LHS's own children pending: caller must
			// keep iterating; we fold the recursion here since Go lacks
			// tail-call elimination and the fan-out is always small.
			return Reduce(Array{lhsNode}, rhsArray)
		}
	}

	fn, ok := lhsNode.Semantic.(*Function)
	if !ok {
		Bug("reduce: LHS node %v is not a function", lhsNode.Semantic)
	}
	if len(rhsArray) < fn.MinParams() {
		Bug("reduce: |rhsArray|=%d below minParams=%d for %s", len(rhsArray), fn.MinParams(), fn.Name())
	}
	if fn.MaxParams() >= 0 && len(rhsArray) > fn.MaxParams() {
		if fn.MaxParams() != 1 {
			Bug("reduce: |rhsArray|=%d exceeds maxParams=%d for %s (only maxParams=1 may copy-reduce)",
				len(rhsArray), fn.MaxParams(), fn.Name())
		}
		return copyAndReduce(fn, rhsArray)
	}
	return baseReduce(fn, rhsArray)
}

// reduceIntersect implements reduce() step 1's three-way branch for an
// intersect LHS. Returns (nil, nil) when the caller should fall through to
// marking rhsArray complete and continuing; returns (rhsArray, nil) when
// the intersect should be discarded outright (the |rhsArray|==1 case).
func reduceIntersect(rhsArray Array) (Array, error) {
	if requiresUnmet(rhsArray) {
		return nil, ErrIllegal
	}
	if len(rhsArray) == 1 {
		item := rhsArray[0]
		if item.IsOp(OpUnion) || item.IsOp(OpIntersect) {
			item = item.WithComplete()
		}
		return Array{item}, nil
	}
	if len(rhsArray) >= 2 && hasForbiddenMultiple(rhsArray) {
		return nil, ErrIllegal
	}
	return nil, nil
}

// markCompleteWalk marks every non-complete union node and every intersect
// node in rhs as complete, copying rather than mutating. Panics if an
// intersect already marked complete is found (three consecutive
// intersects: a grammar bug).
func markCompleteWalk(rhs Array) Array {
	out := make(Array, len(rhs))
	for i, n := range rhs {
		if n.IsOp(OpIntersect) {
			if n.Complete {
				Bug("three consecutive intersect nodes on the same branch")
			}
			out[i] = n.WithComplete()
		} else if n.IsOp(OpUnion) && !n.Complete {
			out[i] = n.WithComplete()
		} else {
			out[i] = n
		}
	}
	return out
}

// reduceUnion implements "union distribution" (spec.md §4.1): lhs is
// distributed across unionNode's children. Called only on a fresh,
// not-yet-complete union (spec.md §7 kind 2: redistributing an
// already-complete union is a grammar bug, not a legal search outcome).
func reduceUnion(lhs Node, unionNode Node) (Array, error) {
	if unionNode.Complete {
		Bug("reduceUnion called on an already-complete union node")
	}
	newChildren := make(Array, 0, len(unionNode.Children))
	for _, ch := range unionNode.Children {
		var distributed Array
		if ch.IsOp(OpIntersect) && !ch.Complete {
			d, err := Reduce(Array{lhs}, ch.Children)
			if err != nil {
				return nil, err
			}
			distributed = Array{App(intersectSymbolOf(ch), d.Sorted()).WithComplete()}
		} else {
			d, err := Reduce(Array{lhs}, Array{ch})
			if err != nil {
				return nil, err
			}
			distributed = d
		}
		if IsIllegalRHS(newChildren, distributed) {
			Bug("reduceUnion produced an illegal result distributing %v across union branches", lhs.Semantic)
		}
		newChildren = append(newChildren, distributed...)
	}
	union := App(unionNode.Semantic, newChildren.Sorted()).WithComplete()
	return Array{union}, nil
}

func intersectSymbolOf(n Node) Symbol { return n.Semantic }

// flattenUnion implements spec.md §4.1 flatten-union: when reducing with
// lhs=union, any top-level union child in rhsArray is replaced by its own
// children (one level of unwrap), re-checking legality at each insertion.
func flattenUnion(rhs Array) (Array, error) {
	var out Array
	for _, n := range rhs {
		if n.IsOp(OpUnion) {
			if IsIllegalRHS(out, n.Children) {
				return nil, ErrIllegal
			}
			out = append(out, n.Children...)
			continue
		}
		if IsIllegalRHS(out, Array{n}) {
			return nil, ErrIllegal
		}
		out = append(out, n)
	}
	return out, nil
}

// copyAndReduce implements reduce() step 5: when |rhsArray| exceeds a
// maxParams==1 function's capacity, produce {lhs(r)} for each r in
// rhsArray.
func copyAndReduce(fn *Function, rhsArray Array) (Array, error) {
	out := make(Array, 0, len(rhsArray))
	for _, r := range rhsArray {
		if r.IsOp(OpUnion) && !r.Complete {
			return nil, ErrIllegal
		}
		out = append(out, App(fn, Array{r}))
	}
	return out, nil
}

// baseReduce implements reduce() step 6: {semantic: lhs, children:
// sorted(rhsArray)}, flattening first when lhs is union.
func baseReduce(fn *Function, rhsArray Array) (Array, error) {
	if fn.Name() == OpUnion {
		flattened, err := flattenUnion(rhsArray)
		if err != nil {
			return nil, err
		}
		rhsArray = flattened
	}
	return Array{App(fn, rhsArray.Sorted())}, nil
}
