package path

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/semantics"
	"github.com/npillmayer/pfsearch/text"
)

func traceOn(t *testing.T) func() {
	tracing.Select("pfsearch.path").SetTraceLevel(tracing.LevelDebug)
	return gotestingadapter.RedirectTracing(t)
}

func seedPath() *Path {
	return &Path{}
}

func TestCreatePathQueuesSecondChildAndSetsCurNode(t *testing.T) {
	defer traceOn(t)()
	i := &forest.Node{Sym: forest.Sym{Name: "I"}, MinCost: 1}
	have := &forest.Node{Sym: forest.Sym{Name: "have"}, MinCost: 1}
	sub := forest.Subnode{Node: i, Next: have}
	rp := forest.RuleProps{Cost: 1, IsNonterminal: true, InsertedSymIdx: forest.NoInsertion}

	p, err := CreatePath(seedPath(), sub, rp, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.CurNode != i {
		t.Fatalf("expected first child to become curNode")
	}
	if p.NextItemList == nil || p.NextItemList.Node != have {
		t.Fatalf("expected second child queued as a pending node item")
	}
	if p.NextItemListSize != 1 {
		t.Fatalf("expected pending list size 1, got %d", p.NextItemListSize)
	}
}

func TestCreatePathAccumulatesCost(t *testing.T) {
	leaf := &forest.Node{Sym: forest.Sym{Name: "me"}, MinCost: 2}
	sub := forest.Subnode{Node: leaf}
	rp := forest.RuleProps{Cost: 3, IsNonterminal: true, InsertedSymIdx: forest.NoInsertion}

	p, err := CreatePath(seedPath(), sub, rp, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Cost != 3 {
		t.Fatalf("expected accumulated exact cost 3, got %d", p.Cost)
	}
	if p.MinCost != 5 {
		t.Fatalf("expected minCost 3(rule)+2(curNode)=5, got %d", p.MinCost)
	}
}

func TestCreatePathConjugatesTerminalText(t *testing.T) {
	leaf := &forest.Node{Sym: forest.Sym{Name: "I"}}
	sub := forest.Subnode{Node: leaf}
	rp := forest.RuleProps{
		Cost: 1,
		Text: text.Inflect(map[string]string{"oneSg": "have", "threeSg": "has"}),
	}
	// The person-number in scope comes from the parent path; a terminal
	// rule's own PersonNumber only governs text conjugated after it.
	prev := &Path{PersonNumberList: PrependPersonNumber(nil, "oneSg", 1)}
	p, err := CreatePath(prev, sub, rp, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Text != " have" {
		t.Fatalf("got %q", p.Text)
	}
}

func TestCreatePathFailsOnUnresolvableForm(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic: no inflected form resolves for this rule")
		}
	}()
	leaf := &forest.Node{Sym: forest.Sym{Name: "I"}}
	sub := forest.Subnode{Node: leaf}
	rp := forest.RuleProps{Text: text.Inflect(map[string]string{"threeSg": "has"})}
	CreatePath(seedPath(), sub, rp, false)
}

func TestCreatePathDeferredInsertionTextQueuesTextItem(t *testing.T) {
	first := &forest.Node{Sym: forest.Sym{Name: "repos"}}
	second := &forest.Node{Sym: forest.Sym{Name: "liked"}}
	sub := forest.Subnode{Node: first, Next: second}
	rp := forest.RuleProps{
		IsNonterminal:  true,
		InsertedSymIdx: 1,
		Text:           text.Lit("liked"),
	}
	p, err := CreatePath(seedPath(), sub, rp, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.NextItemList == nil || p.NextItemList.IsNodeItem() {
		t.Fatalf("expected a pending text item, not a node item")
	}
}

func TestConsumeTextItemsAppendsAndAdvancesPastThem(t *testing.T) {
	node := &forest.Node{Sym: forest.Sym{Name: "x"}}
	items := PrependNodeItem(nil, node, nil, 0, 2)
	items = PrependTextItem(items, text.Lit("liked"), 0, 1)
	p := &Path{NextItemList: items, NextItemListSize: 2}

	out := ConsumeTextItems(p)
	if out.Text != " liked" {
		t.Fatalf("got %q", out.Text)
	}
	if !out.NextItemList.IsNodeItem() || out.NextItemList.Node != node {
		t.Fatalf("expected to stop at the node item")
	}
}

func TestAppendSemanticPushesLHSThenReduces(t *testing.T) {
	repos := semantics.NewFunction("repositories-liked", 1, 1, 1)
	me := semantics.NewArgument("me", 1, "")

	list, err := AppendSemantic(nil, 1, forest.RuleProps{Semantic: semantics.Array{semantics.App(repos, nil)}})
	if err != nil {
		t.Fatal(err)
	}
	list, err = ReduceSemanticTree(list, 1, forest.RuleProps{Semantic: semantics.Array{semantics.Arg(me)}})
	if err != nil {
		t.Fatal(err)
	}
	if semantics.ToString(list.Semantic) != "repositories-liked(me)" {
		t.Fatalf("got %s", semantics.ToString(list.Semantic))
	}
}

func TestBaseReduceSemanticTreeMergesSiblingRHS(t *testing.T) {
	a := semantics.NewArgument("a", 1, "")
	b := semantics.NewArgument("b", 1, "")
	list := semantics.PushRHS(nil, semantics.Array{semantics.Arg(a)})
	merged, err := BaseReduceSemanticTree(list, 1, semantics.Array{semantics.Arg(b)})
	if err != nil {
		t.Fatal(err)
	}
	if len(merged.Semantic) != 2 {
		t.Fatalf("expected merged RHS of size 2, got %d", len(merged.Semantic))
	}
}

func TestUnwindPersonNumberListPopsExpiredFrame(t *testing.T) {
	list := PrependPersonNumber(nil, "threeSg", 2)
	if HeadPersonNumber(list) != "threeSg" {
		t.Fatalf("expected frame active before its scope ends")
	}
	list = UnwindPersonNumberList(list, 2)
	if HeadPersonNumber(list) != "" {
		t.Fatalf("expected frame to be popped once currentSize reaches its recorded size")
	}
}
