package forest

import (
	"fmt"

	"github.com/cnf/structhash"
)

// Builder assembles small test forests by hand, sharing Node pointers for
// identical (sym, start, end) spans the way a real chart parser's packed
// forest would. It serves hand-built forests (the package tests and the
// pfquery demo); a forest from a real chart parser arrives as an
// already-built *Node and needs no Builder.
//
// Grounded on lr/sppf.Forest's symbol/RHS sharing discipline (search by
// span, then by a signature of the right-hand side), simplified from a
// general SPPF to this module's flatter {sym, startIdx, size, subs} Node
// shape, and using github.com/cnf/structhash for the RHS signature instead
// of the teacher's hand-rolled prime-multiplication hash (same dependency
// cnf/structhash already pulled in by the teacher's Earley parser, applied
// here to a different hashing need).
type Builder struct {
	bySpan map[spanKey]*Node
	seen   map[string]bool
}

type spanKey struct {
	name       string
	start, end int
}

// NewBuilder creates an empty forest builder.
func NewBuilder() *Builder {
	return &Builder{
		bySpan: make(map[spanKey]*Node),
		seen:   make(map[string]bool),
	}
}

// Terminal returns (creating if necessary) the shared leaf node for a
// terminal symbol occupying input position pos.
func (b *Builder) Terminal(name string, pos int) *Node {
	return b.node(name, pos, pos+1)
}

// Reduction returns (creating if necessary) the shared node for a
// nonterminal reduction spanning [start,end), recording a new Subnode
// derivation edge built from the given rule props and a single child
// (unary or already-pre-stitched production).
func (b *Builder) Reduction(name string, start, end int, rp RuleProps, child *Node) *Node {
	return b.reduce(name, start, end, rp, child, nil)
}

// BinaryReduction is like Reduction but for a binary rule: left and right
// are the two RHS subtrees, stitched via Subnode.Next.
func (b *Builder) BinaryReduction(name string, start, end int, rp RuleProps, left, right *Node) *Node {
	return b.reduce(name, start, end, rp, left, right)
}

func (b *Builder) reduce(name string, start, end int, rp RuleProps, first, next *Node) *Node {
	n := b.node(name, start, end)
	sig := rhsSignature(rp, first, next)
	key := fmt.Sprintf("%s@%d:%s", name, start, sig)
	if b.seen[key] {
		return n // identical derivation already recorded; SPPF-style sharing
	}
	b.seen[key] = true
	subCost := minCostOf(first) + minCostOf(next) + rp.Cost
	n.Subs = append(n.Subs, Subnode{
		Node:      first,
		Next:      next,
		MinCost:   subCost,
		RuleProps: []RuleProps{rp},
	})
	if len(n.Subs) == 1 || subCost < n.MinCost {
		n.MinCost = subCost
	}
	tracer().Debugf("forest: reduction %s[%d:%d) <- %v", name, start, end, rp)
	return n
}

// AddAmbiguousVariant appends an additional ruleProps alternative to the
// most recently added Subnode of n — modeling a rule that compiled to
// multiple insertion variants for the same derivation span.
func (b *Builder) AddAmbiguousVariant(n *Node, rp RuleProps) {
	if len(n.Subs) == 0 {
		panic("forest: AddAmbiguousVariant called on a node with no subnode yet")
	}
	last := &n.Subs[len(n.Subs)-1]
	last.RuleProps = append(last.RuleProps, rp)
}

func (b *Builder) node(name string, start, end int) *Node {
	key := spanKey{name, start, end}
	if n, ok := b.bySpan[key]; ok {
		return n
	}
	n := &Node{Sym: Sym{Name: name}, StartIdx: start, Size: end - start}
	b.bySpan[key] = n
	return n
}

func minCostOf(n *Node) int {
	if n == nil {
		return 0
	}
	return n.MinCost
}

// rhsSignature hashes the rule cost together with the identity of the child
// nodes. Children are interned per span by the Builder, so identity is span
// identity; their contents are not hashed, since a node's Subs may point
// back at the node itself (a word's terminal and its reduction share a span).
func rhsSignature(rp RuleProps, first, next *Node) string {
	h, err := structhash.Hash(struct {
		Cost  int
		First string
		Next  string
	}{rp.Cost, fmt.Sprintf("%p", first), fmt.Sprintf("%p", next)}, 1)
	if err != nil {
		// structhash.Hash only errors on unsupported types, which our
		// closed struct above never produces; a failure here would be a
		// programmer error in this package, not a search-time condition.
		panic(fmt.Sprintf("forest: failed to hash RHS signature: %v", err))
	}
	return h
}
