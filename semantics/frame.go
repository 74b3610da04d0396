package semantics

// Frame is one element of the semantic linked list (semanticList in
// spec.md §3/§4.2): a stack of RHS or LHS frames, persistent and possibly
// shared between many live search paths. Frames are never mutated after
// creation — "marking complete" or caching an antecedent produces a new
// frame (or, for the antecedent cache, writes into a map private to this
// frame instance; see ResolveAnaphora).
type Frame struct {
	Semantic Array
	IsRHS    bool // RHS frame when true; LHS frame when false
	// NextNodeCount applies only to LHS frames: the node count of the
	// path's head pending item (path.Item.NodeCount) recorded when the
	// frame was pushed. A later reduction whose count is no greater than
	// this finds the LHS's right-hand branches all parsed.
	NextNodeCount int
	Prev          *Frame

	// antecedents caches anaphora resolutions keyed by personNumber, so a
	// repeated anaphor in the same frame's scope doesn't re-walk the tree.
	// Lazily allocated, and only ever written by the frame that owns it —
	// never shared, since PushRHS/PushLHS always allocate a fresh Frame.
	antecedents map[string]Node
}

// PushRHS prepends a new RHS frame.
func PushRHS(prev *Frame, semantic Array) *Frame {
	return &Frame{Semantic: semantic, IsRHS: true, Prev: prev}
}

// PushLHS prepends a new LHS frame that becomes eligible for reduction once
// the pending node count falls back to nextNodeCount or below.
func PushLHS(prev *Frame, lhs Array, nextNodeCount int) *Frame {
	return &Frame{Semantic: lhs, NextNodeCount: nextNodeCount, Prev: prev}
}

// Top is a nil-safe accessor returning f itself.
func (f *Frame) Top() *Frame { return f }
