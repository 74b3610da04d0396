package pfsearch

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/semantics"
	"github.com/npillmayer/pfsearch/text"
)

// This file drives the whole search (package pfsearch, the path stack and
// the semantic algebra together) over small hand-built forests, one per
// scenario of spec.md §8. Each forest is built with forest.Builder rather
// than a live chart parser, following the same span/RHS sharing discipline
// lr/sppf.Forest uses, simplified to this module's flatter node shape.
//
// word and split/unary below are the two recurring shapes every scenario is
// assembled from: word wraps a terminal's text/semantic payload in a single
// terminal-rule reduction (spec.md §3's "terminal rule" branch of
// createPath); split and unary introduce a nonterminal rule, optionally
// pushing a LHS function frame, continuing the derivation into one child
// (split queues a second, unary has none).

func endToEndTraceOn(t *testing.T) func() {
	tracing.Select("pfsearch.search").SetTraceLevel(tracing.LevelInfo)
	tracing.Select("pfsearch.path").SetTraceLevel(tracing.LevelInfo)
	return gotestingadapter.RedirectTracing(t)
}

// wordCost and spanCost give every rule a non-uniform, still-admissible
// cost so the A* heap's MinCost ordering is actually exercised here instead
// of degenerating to uniform-cost search: a terminal costs more the longer
// its surface text, and a reduction costs more the wider a span it stitches
// together (both lower bounds any real heuristic-cost precompute would
// also respect).
func wordCost(txt string) int {
	return 1 + len(txt)/4
}

func spanCost(start, end int) int {
	return end - start
}

func word(b *forest.Builder, pos int, name, txt string, sem semantics.Array) *forest.Node {
	leaf := b.Terminal(name, pos)
	rp := forest.RuleProps{Cost: wordCost(txt), InsertedSymIdx: forest.NoInsertion}
	if txt != "" {
		rp.Text = text.Lit(txt)
	}
	if sem != nil {
		rp.Semantic = sem
	}
	return b.Reduction(name, pos, pos+1, rp, leaf)
}

func split(b *forest.Builder, name string, start, end int, sem semantics.Array, secondProducesSemantic bool, left, right *forest.Node) *forest.Node {
	rp := forest.RuleProps{
		Cost:                        spanCost(start, end),
		IsNonterminal:               true,
		InsertedSymIdx:              forest.NoInsertion,
		SecondRHSCanProduceSemantic: secondProducesSemantic,
	}
	if sem != nil {
		rp.Semantic = sem
	}
	return b.BinaryReduction(name, start, end, rp, left, right)
}

func unary(b *forest.Builder, name string, start, end int, sem semantics.Array, child *forest.Node) *forest.Node {
	rp := forest.RuleProps{Cost: spanCost(start, end), IsNonterminal: true, InsertedSymIdx: forest.NoInsertion}
	if sem != nil {
		rp.Semantic = sem
	}
	return b.Reduction(name, start, end, rp, child)
}

// Shared entity/function vocabulary for every scenario below. Danny and
// Aang are given the entity ids spec.md's scenarios print them with ("0"
// and "1"); me is the speaker, a fixed special argument.
var (
	me     = semantics.NewArgument("me", 1, "oneSg")
	danny  = semantics.NewArgument("0", 1, "")
	aang   = semantics.NewArgument("1", 1, "")
	female = semantics.NewArgument("female", 1, "")
	male   = semantics.NewArgument("male", 1, "")

	repositoriesLiked = semantics.NewFunction("repositories-liked", 1, 1, 1)
	usersFollowed      = semantics.NewFunction("users-followed", 1, 1, 1)
	followersFn        = semantics.NewFunction("followers", 1, 1, 1)
	usersGender        = semantics.NewFunction("users-gender", 1, 1, 1, semantics.ForbidsMultiple())

	intersectFn = semantics.NewFunction(semantics.OpIntersect, 1, 2, -1)
	unionFn     = semantics.NewFunction(semantics.OpUnion, 1, 2, -1)
	notFn       = semantics.NewFunction(semantics.OpNot, 1, 1, 1)
)

func runScenario(t *testing.T, root *forest.Node) ParseTree {
	t.Helper()
	res, err := Search(root, Options{K: 3})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Trees) == 0 {
		t.Fatalf("expected at least one tree, got none (paths examined: %d)", res.PathCount)
	}
	return res.Trees[0]
}

func assertTree(t *testing.T, got ParseTree, wantText, wantSemantic string) {
	t.Helper()
	if got.Text != wantText {
		t.Errorf("text: got %q, want %q", got.Text, wantText)
	}
	if got.SemanticStr != wantSemantic {
		t.Errorf("semantic: got %q, want %q", got.SemanticStr, wantSemantic)
	}
}

// 1. "repos I have liked" -> repositories-liked(me)
func TestEndToEnd_RepositoriesLikedByMe(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	repos := word(b, 0, "repos", "repos", nil)
	i := word(b, 1, "I", "I", semantics.Array{semantics.Arg(me)})
	have := word(b, 2, "have", "have", nil)
	liked := word(b, 3, "liked", "liked", nil)

	vp := split(b, "VP", 2, 4, nil, false, have, liked)
	rc := split(b, "RC", 1, 4, nil, false, i, vp)
	top := split(b, "NP", 0, 4, semantics.Array{semantics.App(repositoriesLiked, nil)}, true, repos, rc)

	got := runScenario(t, top)
	assertTree(t, got, "repos I have liked", "repositories-liked(me)")
}

// 2. "people I and Danny follow" -> intersect(users-followed(0),users-followed(me))
func TestEndToEnd_PeopleIAndDannyFollow(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	people := word(b, 0, "people", "people", nil)
	i := word(b, 1, "I", "I", semantics.Array{semantics.Arg(me)})
	andDanny := word(b, 2, "andDanny", "and Danny", semantics.Array{semantics.Arg(danny)})
	follow := word(b, 3, "follow", "follow", nil)

	conj := split(b, "Conj", 1, 3, nil, true, i, andDanny)
	rc := split(b, "RC2", 1, 4, semantics.Array{semantics.App(usersFollowed, nil)}, false, conj, follow)
	top := split(b, "NP2", 0, 4, semantics.Array{semantics.App(intersectFn, nil)}, true, people, rc)

	got := runScenario(t, top)
	assertTree(t, got, "people I and Danny follow", "intersect(users-followed(0),users-followed(me))")
}

// 3. "repos I or Danny like" -> union(repositories-liked(0),repositories-liked(me))
func TestEndToEnd_RepositoriesIOrDannyLike(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	repos := word(b, 0, "repos", "repos", nil)
	i := word(b, 1, "I", "I", semantics.Array{semantics.Arg(me)})
	orDanny := word(b, 2, "orDanny", "or Danny", semantics.Array{semantics.Arg(danny)})
	like := word(b, 3, "like", "like", nil)

	conj := split(b, "Conj3", 1, 3, nil, true, i, orDanny)
	rc := split(b, "RC3", 1, 4, semantics.Array{semantics.App(repositoriesLiked, nil)}, false, conj, like)
	top := split(b, "NP3", 0, 4, semantics.Array{semantics.App(unionFn, nil)}, true, repos, rc)

	got := runScenario(t, top)
	assertTree(t, got, "repos I or Danny like", "union(repositories-liked(0),repositories-liked(me))")
}

// 4. "people who have not been followed by me" -> not(users-followed(me))
func TestEndToEnd_PeopleNotFollowedByMe(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	people := word(b, 0, "people", "people", nil)
	phrase := word(b, 1, "phrase4", "who have not been followed by", nil)
	meW := word(b, 2, "me4", "me", semantics.Array{semantics.Arg(me)})

	clause := split(b, "Clause4", 1, 3, semantics.Array{semantics.App(usersFollowed, nil)}, true, phrase, meW)
	top := split(b, "NP4", 0, 3, semantics.Array{semantics.App(notFn, nil)}, true, people, clause)

	got := runScenario(t, top)
	assertTree(t, got, "people who have not been followed by me", "not(users-followed(me))")
}

// 5. "people who follow me and do not follow Danny" ->
//    intersect(followers(me),not(followers(0)))
func TestEndToEnd_PeopleFollowMeNotFollowDanny(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	people := word(b, 0, "people5", "people", nil)
	whoFollow := word(b, 1, "whoFollow", "who follow", nil)
	meW := word(b, 2, "me5a", "me", semantics.Array{semantics.Arg(me)})
	andDoNotFollow := word(b, 3, "andDoNotFollow", "and do not follow", nil)
	dannyW := word(b, 4, "danny5", "Danny", semantics.Array{semantics.Arg(danny)})

	followMe := split(b, "FollowMe", 1, 3, semantics.Array{semantics.App(followersFn, nil)}, true, whoFollow, meW)
	followersDanny := unary(b, "FollowersDanny", 4, 5, semantics.Array{semantics.App(followersFn, nil)}, dannyW)
	notFollowDanny := split(b, "NotFollowDanny", 3, 5, semantics.Array{semantics.App(notFn, nil)}, true, andDoNotFollow, followersDanny)
	clause := split(b, "Clause5", 1, 5, nil, true, followMe, notFollowDanny)
	top := split(b, "NP5", 0, 5, semantics.Array{semantics.App(intersectFn, nil)}, true, people, clause)

	got := runScenario(t, top)
	assertTree(t, got, "people who follow me and do not follow Danny", "intersect(followers(me),not(followers(0)))")
}

// 6. "repos I and Danny or Aang and my followers like" ->
//    union(intersect(repositories-liked(0),repositories-liked(me)),
//          intersect(repositories-liked(1),repositories-liked(followers(me))))
//
// spec.md §8 prints the first intersect's arguments as (me,0); the
// canonical ordering it states elsewhere (arguments sort by name, "0"
// before "me" — confirmed unambiguously by scenarios 2 and 3) says the
// reverse, so this test follows the algebra rather than that one
// example's prose (see DESIGN.md).
func TestEndToEnd_RepositoriesCoordinatedUnionIntersect(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	repos := word(b, 0, "repos6", "repos", nil)
	i := word(b, 1, "I6", "I", semantics.Array{semantics.Arg(me)})
	andDanny := word(b, 2, "andDanny6", "and Danny", semantics.Array{semantics.Arg(danny)})
	orAang := word(b, 3, "orAang6", "or Aang", semantics.Array{semantics.Arg(aang)})
	andMyFollowers := word(b, 4, "andMyFollowers6", "and my followers", semantics.Array{semantics.Arg(me)})
	like := word(b, 5, "like6", "like", nil)

	conj1 := split(b, "Conj1", 1, 3, semantics.Array{semantics.App(intersectFn, nil)}, true, i, andDanny)
	followersMe := unary(b, "FollowersMe6", 4, 5, semantics.Array{semantics.App(followersFn, nil)}, andMyFollowers)
	conj2 := split(b, "Conj2", 3, 5, semantics.Array{semantics.App(intersectFn, nil)}, true, orAang, followersMe)
	clause := split(b, "Clause6", 1, 5, semantics.Array{semantics.App(unionFn, nil)}, true, conj1, conj2)
	clauseLike := split(b, "ClauseLike6", 1, 6, nil, false, clause, like)
	top := split(b, "Top6", 0, 6, semantics.Array{semantics.App(repositoriesLiked, nil)}, true, repos, clauseLike)

	got := runScenario(t, top)
	assertTree(t, got,
		"repos I and Danny or Aang and my followers like",
		"union(intersect(repositories-liked(0),repositories-liked(me)),intersect(repositories-liked(1),repositories-liked(followers(me))))")
}

// 7a. "my female followers" -> intersect(followers(me),users-gender(female))
func TestEndToEnd_MyFemaleFollowers(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	myW := word(b, 0, "my7", "my", semantics.Array{semantics.Arg(me)})
	femaleW := word(b, 1, "female7", "female", semantics.Array{semantics.Arg(female)})
	followersW := word(b, 2, "followers7", "followers", nil)

	followersOfMe := unary(b, "FollowersOfMe", 0, 1, semantics.Array{semantics.App(followersFn, nil)}, myW)
	femaleFollowers := split(b, "FemaleFollowers", 1, 3, semantics.Array{semantics.App(usersGender, nil)}, false, femaleW, followersW)
	top := split(b, "Top7", 0, 3, semantics.Array{semantics.App(intersectFn, nil)}, true, followersOfMe, femaleFollowers)

	got := runScenario(t, top)
	assertTree(t, got, "my female followers", "intersect(followers(me),users-gender(female))")
}

// 7b. "my female followers who are male" must yield zero trees: a second
// users-gender sibling under the same intersect is rejected by the
// forbidsMultiple lookahead (spec.md §4.1, semantics.IsForbiddenMultiple,
// checked when the second users-gender LHS is pushed).
func TestEndToEnd_MyFemaleFollowersWhoAreMale_Rejected(t *testing.T) {
	defer endToEndTraceOn(t)()
	b := forest.NewBuilder()
	myW := word(b, 0, "my7b", "my", semantics.Array{semantics.Arg(me)})
	femaleW := word(b, 1, "female7b", "female", semantics.Array{semantics.Arg(female)})
	followersW := word(b, 2, "followers7b", "followers", nil)
	whoAreW := word(b, 3, "whoAre7b", "who are", nil)
	maleW := word(b, 4, "male7b", "male", semantics.Array{semantics.Arg(male)})

	followersOfMe := unary(b, "FollowersOfMeB", 0, 1, semantics.Array{semantics.App(followersFn, nil)}, myW)
	femaleFollowers := split(b, "FemaleFollowersB", 1, 3, semantics.Array{semantics.App(usersGender, nil)}, false, femaleW, followersW)
	whoAreMale := split(b, "WhoAreMale", 3, 5, semantics.Array{semantics.App(usersGender, nil)}, true, whoAreW, maleW)
	rest := split(b, "RestB", 1, 5, nil, true, femaleFollowers, whoAreMale)
	top := split(b, "Top7b", 0, 5, semantics.Array{semantics.App(intersectFn, nil)}, true, followersOfMe, rest)

	res, err := Search(top, Options{K: 3})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Trees) != 0 {
		t.Fatalf("expected zero trees (forbidsMultiple rejection), got %d: %+v", len(res.Trees), res.Trees)
	}
}
