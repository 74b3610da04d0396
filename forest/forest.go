// Package forest defines the packed parse forest this module consumes
// (spec.md §3, §6): an opaque DAG of Node/Subnode objects produced by an
// external chart parser and annotated by an external heuristic-cost
// precompute. This module never constructs a forest in production; it
// only reads node.minCost, sub.minCost and sub.ruleProps while searching.
//
// The Node/Subnode/RuleProps shapes below are grounded on
// lr/sppf.SymbolNode/rhsNode, generalized from "symbol spanning an input
// range" to the simpler opaque {sym, startIdx, size, minCost, subs} record
// spec.md §3 asks for — this module's forest is handed a finished graph,
// it does not need the SPPF's own sharing machinery to build one in
// production. The Builder in build.go keeps that sharing machinery (a span
// map, RHS signatures) alive for tests and the pfquery demo, which
// construct small forests by hand.
package forest

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pfsearch/semantics"
	"github.com/npillmayer/pfsearch/text"
)

func tracer() tracing.Trace {
	return tracing.Select("pfsearch.forest")
}

// Sym is the grammar symbol a forest node denotes. Distinct from
// semantics.Symbol: a forest symbol names a grammar nonterminal/terminal,
// not a lambda-calculus semantic value.
type Sym struct {
	Name string
}

// Node is one opaque forest node (spec.md §3): a span of the input
// recognized as Sym, fanning out to one or more alternative derivations
// (Subs) when the grammar is locally ambiguous.
type Node struct {
	Sym      Sym
	StartIdx int
	Size     int
	MinCost  int // annotated by the external heuristic-cost precompute
	Subs     []Subnode
}

// Subnode is one outgoing derivation edge (spec.md §3 Subnode): a node
// (and, for a binary rule, a sibling Next node) plus the rule edge data
// that produced it. RuleProps may hold more than one alternative (a rule
// that compiled to several variants, e.g. multiple insertions); Variants
// returns them uniformly.
type Subnode struct {
	Node      *Node
	Next      *Node // non-nil for a binary rule's second child
	MinCost   int
	RuleProps []RuleProps // non-empty; >1 element only for multi-variant rules
}

// Variants returns the rule-props alternatives for this subnode. Spec.md
// §3 models ruleProps as "a single record or an ordered list"; we always
// store a slice and this accessor makes the uniform treatment explicit at
// call sites (lr/sppf's own RHS handling follows the same "always a slice"
// discipline for ambiguity fan-out).
func (s Subnode) Variants() []RuleProps { return s.RuleProps }

// GramProps is the pair of per-child-position grammatical property
// records a binary rule may impose (spec.md §3 gramProps): index 0 applies
// to the first child, index 1 to the second.
type GramProps [2]*text.GramProps

// RuleProps carries all data for a single rule edge (spec.md §3).
type RuleProps struct {
	Cost         int
	IsNonterminal bool

	Semantic              semantics.Array
	SemanticIsReduced     bool
	InsertedSemantic      semantics.Array // RHS array carried by an insertion rule alongside a LHS Semantic

	RHSCanProduceSemantic       bool
	SecondRHSCanProduceSemantic bool

	Text  text.Text
	Tense string // for terminal verbs

	GramProps GramProps

	PersonNumber string // person-number this rule imposes downward

	// InsertedSymIdx selects which sibling position's text is inserted by
	// an insertion rule: 0 (first child) or 1 (second child). -1 means
	// "not an insertion rule".
	InsertedSymIdx int

	AnaphoraPersonNumber string
}

// NoInsertion is the InsertedSymIdx sentinel for non-insertion rules.
const NoInsertion = -1
