// Package semantics implements the lambda-calculus semantic algebra: the
// symbol registry's value types, semantic nodes and arrays, and the
// compare/equal/reduce operations that build and simplify a semantic tree
// while a parse-forest search runs.
//
// Symbols are interned elsewhere (package runtime) and compared here by
// identity (pointer equality), never by name — two *Argument values with
// the same name are a grammar-construction bug, not a collision to paper
// over.
package semantics

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("pfsearch.semantics")
}

// Symbol is a semantic name: either an Argument (a leaf) or a Function
// (an application). Once interned, Symbols are compared by identity.
type Symbol interface {
	Name() string
	Cost() int
	IsArg() bool
	// AnaphoraPersonNumber is non-empty for symbols that can serve as the
	// antecedent of an anaphor (e.g. "me", or a Function representing a
	// person-set, which reports "threePl").
	AnaphoraPersonNumber() string
}

// Argument is a leaf semantic symbol, e.g. `me` or an entity id.
type Argument struct {
	name                  string
	cost                  int
	anaphoraPersonNumber  string
}

// NewArgument creates an argument symbol. Exported for use by package
// runtime; grammar authors should go through runtime.Registry instead of
// calling this directly, so that symbols are interned exactly once.
func NewArgument(name string, cost int, anaphoraPersonNumber string) *Argument {
	return &Argument{name: name, cost: cost, anaphoraPersonNumber: anaphoraPersonNumber}
}

// Name returns the argument's name.
func (a *Argument) Name() string { return a.name }

// Cost returns the argument's intrinsic cost.
func (a *Argument) Cost() int { return a.cost }

// IsArg always returns true for an Argument.
func (a *Argument) IsArg() bool { return true }

// AnaphoraPersonNumber returns the person-number this argument can stand in
// for when resolving an anaphor, or "" if it never does.
func (a *Argument) AnaphoraPersonNumber() string { return a.anaphoraPersonNumber }

func (a *Argument) String() string { return a.name }

// Function is a semantic symbol that takes between MinParams and MaxParams
// children. MaxParams of -1 means unbounded.
type Function struct {
	name                 string
	cost                 int
	minParams, maxParams int
	forbidsMultiple      bool
	requires             Array
	anaphoraPersonNumber string
}

// FunctionOption configures optional Function fields.
type FunctionOption func(*Function)

// ForbidsMultiple marks a function as forbidding more than one occurrence
// of itself as siblings under the same intersect (e.g. users-gender).
func ForbidsMultiple() FunctionOption {
	return func(f *Function) { f.forbidsMultiple = true }
}

// Requires records a reduced semantic that must already be present
// (elsewhere in the same RHS array, or an ancestor) whenever this function
// is used — e.g. "repos-type(pull-request)" requires "repos-of(x)".
func Requires(req Array) FunctionOption {
	return func(f *Function) { f.requires = req }
}

// RepresentsPersonSet marks a function whose result denotes a set of
// people, making it eligible as an anaphora antecedent for plural anaphora
// ("they"). Per spec.md this is reported as "threePl".
func RepresentsPersonSet() FunctionOption {
	return func(f *Function) { f.anaphoraPersonNumber = "threePl" }
}

// NewFunction creates a function symbol. Panics if minParams > maxParams
// (maxParams == -1 meaning unbounded is always legal) — that is a
// grammar-construction bug, not a search-time condition.
func NewFunction(name string, cost, minParams, maxParams int, opts ...FunctionOption) *Function {
	if maxParams >= 0 && minParams > maxParams {
		panic(fmt.Sprintf("semantics: function %q has minParams(%d) > maxParams(%d)", name, minParams, maxParams))
	}
	fn := &Function{name: name, cost: cost, minParams: minParams, maxParams: maxParams}
	for _, opt := range opts {
		opt(fn)
	}
	return fn
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Cost returns the function's intrinsic cost.
func (f *Function) Cost() int { return f.cost }

// IsArg always returns false for a Function.
func (f *Function) IsArg() bool { return false }

// AnaphoraPersonNumber returns "threePl" for person-set functions, else "".
func (f *Function) AnaphoraPersonNumber() string { return f.anaphoraPersonNumber }

// MinParams returns the minimum number of children this function accepts.
func (f *Function) MinParams() int { return f.minParams }

// MaxParams returns the maximum number of children this function accepts,
// or -1 for unbounded.
func (f *Function) MaxParams() int { return f.maxParams }

// ForbidsMultiple reports whether two siblings with this function symbol
// may not appear under the same intersect.
func (f *Function) ForbidsMultiple() bool { return f.forbidsMultiple }

// Requires returns the reduced semantic this function depends on, or nil.
func (f *Function) Requires() Array { return f.requires }

// AcceptsCount reports whether n children is within [minParams, maxParams].
func (f *Function) AcceptsCount(n int) bool {
	if n < f.minParams {
		return false
	}
	return f.maxParams < 0 || n <= f.maxParams
}

func (f *Function) String() string { return f.name }

// Well-known operator names recognized by the reduction algebra. These are
// ordinary interned Function symbols; the algebra distinguishes them by
// name because the grammar is free to attach arbitrary costs/params to
// them, but their distribution/flattening/contradiction behavior is fixed.
const (
	OpIntersect = "intersect"
	OpUnion     = "union"
	OpNot       = "not"
)
