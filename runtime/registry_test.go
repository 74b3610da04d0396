package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func traceOn(t *testing.T) func() {
	tracing.Select("pfsearch.runtime").SetTraceLevel(tracing.LevelDebug)
	return gotestingadapter.RedirectTracing(t)
}

func TestDefineAndResolve(t *testing.T) {
	defer traceOn(t)()
	r := NewRegistry()
	r.DefineArgument("me", 1, "")
	sym, ok := r.Resolve("me")
	if !ok || sym.Name() != "me" {
		t.Fatalf("expected to resolve 'me', got %v, %v", sym, ok)
	}
}

func TestIdentityNotName(t *testing.T) {
	r := NewRegistry()
	a := r.DefineArgument("me", 1, "")
	b, _ := r.Resolve("me")
	if a != b {
		t.Fatalf("expected the same interned pointer for repeated resolution")
	}
}

func TestDuplicateDefinitionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate symbol name")
		}
	}()
	r := NewRegistry()
	r.DefineArgument("me", 1, "")
	r.DefineArgument("me", 2, "")
}

func TestFreezeBlocksFurtherDefinitions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on define-after-freeze")
		}
	}()
	r := NewRegistry()
	r.Freeze()
	r.DefineArgument("me", 1, "")
}

func TestMinMaxParamsInvariant(t *testing.T) {
	r := NewRegistry()
	fn := r.DefineFunction("intersect", 0, 2, -1)
	if fn.MinParams() > fn.MaxParams() && fn.MaxParams() >= 0 {
		t.Fatalf("minParams must be <= maxParams")
	}
}
