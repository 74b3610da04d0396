/*
Package runtime holds the process-wide semantic symbol registry.

A registry is populated once, during grammar construction (an external
collaborator of this module), and then frozen. From that point on every
pfsearch.Search call treats it as read-only, so that concurrent searches
over the same grammar may run on independent goroutines.

This package replaces an earlier, scope-tree based symbol table (modeled
after an interpreter's runtime environment); semantic symbols have no
notion of lexical scope, so the scope tree was dropped in favor of a flat,
freeze-once registry. The interning and define-or-resolve discipline is
kept.
*/
package runtime

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pfsearch/semantics"
)

func tracer() tracing.Trace {
	return tracing.Select("pfsearch.runtime")
}

// Registry interns semantic symbols by name. Once Freeze is called, further
// Define* calls panic: the registry is meant to be built once by grammar
// construction and then shared, read-only, across every search.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]semantics.Symbol
	frozen bool
}

// NewRegistry creates an empty, writable registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]semantics.Symbol)}
}

// DefineArgument interns a new argument symbol. Panics if the name is
// already taken or the registry is frozen — both are grammar-construction
// bugs, not search-time conditions.
func (r *Registry) DefineArgument(name string, cost int, anaphoraPersonNumber string) *semantics.Argument {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeWritable(name)
	arg := semantics.NewArgument(name, cost, anaphoraPersonNumber)
	r.byName[name] = arg
	tracer().Debugf("defined argument symbol %s (cost=%d)", name, cost)
	return arg
}

// DefineFunction interns a new function symbol.
func (r *Registry) DefineFunction(name string, cost, minParams, maxParams int, opts ...semantics.FunctionOption) *semantics.Function {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeWritable(name)
	fn := semantics.NewFunction(name, cost, minParams, maxParams, opts...)
	r.byName[name] = fn
	tracer().Debugf("defined function symbol %s (cost=%d, params=%d..%d)", name, cost, minParams, maxParams)
	return fn
}

func (r *Registry) mustBeWritable(name string) {
	if r.frozen {
		panic(fmt.Sprintf("runtime: cannot define symbol %q: registry is frozen", name))
	}
	if _, ok := r.byName[name]; ok {
		panic(fmt.Sprintf("runtime: duplicate semantic symbol name %q", name))
	}
}

// Resolve looks up an interned symbol by name. Safe for concurrent use both
// before and after Freeze.
func (r *Registry) Resolve(name string) (semantics.Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sym, ok := r.byName[name]
	return sym, ok
}

// Freeze marks the registry read-only. Idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Size returns the number of interned symbols.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Each iterates over all interned symbols in unspecified order.
func (r *Registry) Each(visit func(name string, sym semantics.Symbol)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, sym := range r.byName {
		visit(name, sym)
	}
}
