package semantics

import "sort"

// Node is either an argument (leaf) or a function application. Go has no
// clean idiom for "field present vs. absent" short of pointers or a
// nil-vs-empty-slice convention (both fragile here, since a pending
// function legitimately has zero children); we follow this package's own
// design note (see spec Design Notes on duck typing) and tag the variant
// explicitly instead.
type Node struct {
	Semantic Symbol
	Function bool // true: application (Children meaningful); false: argument leaf
	Children Array
	// Complete marks a union/intersect node that has already been through
	// mark-complete (§4.1) on this path, so later reduce() calls must not
	// redistribute it again. Copy-on-write: never set on a shared node,
	// always on a fresh copy (see WithComplete).
	Complete bool
}

// Arg constructs a leaf node for an argument symbol.
func Arg(sym Symbol) Node {
	return Node{Semantic: sym}
}

// App constructs a function-application node.
func App(sym Symbol, children Array) Node {
	return Node{Semantic: sym, Function: true, Children: children}
}

// IsOp reports whether the node is a function application of the named
// operator (one of OpIntersect, OpUnion, OpNot).
func (n Node) IsOp(name string) bool {
	return n.Function && n.Semantic.Name() == name
}

// WithComplete returns a shallow copy of n with Complete set, never
// mutating n itself — frames may be shared between many live paths.
func (n Node) WithComplete() Node {
	cp := n
	cp.Complete = true
	return cp
}

// WithChildren returns a shallow copy of n with different children.
func (n Node) WithChildren(children Array) Node {
	cp := n
	cp.Children = children
	return cp
}

// Array is an ordered sequence of semantic nodes: a function's argument
// list, or a completed root.
type Array []Node

// IsReduced reports whether every function node in the array (recursively)
// has at least one child, i.e. no function is still awaiting arguments.
func (a Array) IsReduced() bool {
	for _, n := range a {
		if n.Function {
			if len(n.Children) == 0 {
				return false
			}
			if !n.Children.IsReduced() {
				return false
			}
		}
	}
	return true
}

// SumCosts recursively adds every node's symbol cost plus its children's.
func (a Array) SumCosts() int {
	total := 0
	for _, n := range a {
		total += n.Semantic.Cost()
		if n.Function {
			total += n.Children.SumCosts()
		}
	}
	return total
}

// Sorted returns a new array in canonical order (see Compare), leaving a
// untouched.
func (a Array) Sorted() Array {
	cp := make(Array, len(a))
	copy(cp, a)
	sort.SliceStable(cp, func(i, j int) bool {
		return Compare(cp[i], cp[j]) < 0
	})
	return cp
}

// Compare implements the canonical ordering of spec.md §4.1: arguments
// sort before functions; two arguments sort by name (the same symbol
// compares equal; distinct symbols that happen to share a name, which a
// correctly built registry never produces, fall back to comparePointers);
// two functions sort by name, tie-broken recursively by children in order.
func Compare(a, b Node) int {
	if !a.Function && b.Function {
		return -1
	}
	if a.Function && !b.Function {
		return 1
	}
	if !a.Function {
		return compareArgs(a, b)
	}
	if a.Semantic.Name() != b.Semantic.Name() {
		if a.Semantic.Name() < b.Semantic.Name() {
			return -1
		}
		return 1
	}
	return a.Children.compareTo(b.Children)
}

func compareArgs(a, b Node) int {
	an, bn := a.Semantic.Name(), b.Semantic.Name()
	if an != bn {
		if an < bn {
			return -1
		}
		return 1
	}
	if a.Semantic == b.Semantic {
		return 0
	}
	// Same name, different identity: stable but arbitrary tie-break.
	return comparePointers(a.Semantic, b.Semantic)
}

func (a Array) compareTo(b Array) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// NodesEqual reports structural equality: identity on Semantic, plus
// (for two function nodes) structural equality of Children. Two argument
// nodes are equal iff they are the same interned symbol.
func NodesEqual(a, b Node) bool {
	if a.Semantic != b.Semantic {
		return false
	}
	if a.Function != b.Function {
		return false
	}
	if !a.Function {
		return true
	}
	return ArraysEqual(a.Children, b.Children)
}

// ArraysEqual lifts NodesEqual to sequences.
func ArraysEqual(a, b Array) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NodesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// comparePointers orders two distinct Symbol values sharing a name.
// Implemented via the %p formatting of fmt.Sprintf would allocate on every
// comparison; instead we fall back to using the Symbol's self-reported cost
// as a last-resort discriminator, which keeps Compare a strict weak
// ordering for sorting purposes without allocating. Two such symbols with
// equal cost compare equal.
func comparePointers(a, b Symbol) int {
	if a.Cost() != b.Cost() {
		if a.Cost() < b.Cost() {
			return -1
		}
		return 1
	}
	return 0
}
