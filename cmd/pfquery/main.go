/*
Package main provides an interactive command line tool (pfquery) for
exploring package pfsearch. pfquery serves as a sandbox for poking at the
A* best-first parse-forest search without a live chart parser attached:
it offers a small fixed set of hand-built demo forests (built with
forest.Builder, the same test-construction helper pfsearch/endtoend_test.go
uses) and runs Search over whichever one the user picks.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pfsearch/forest"
	"github.com/npillmayer/pfsearch/pfsearch"
	"github.com/npillmayer/pfsearch/semantics"
	"github.com/npillmayer/pfsearch/text"
)

// tracer traces with key "pfsearch.cli"
func tracer() tracing.Trace {
	return tracing.Select("pfsearch.cli")
}

func traceLevel(s string) tracing.TraceLevel {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}

// demo is one named, pre-built forest the REPL can run a search over.
type demo struct {
	name string
	root *forest.Node
}

// main starts an interactive CLI ("pfquery"), where users pick one of a
// small set of demo forests and inspect the k-best parse trees Search
// returns for it (text, semantic string, cost). pfquery does not parse
// natural language itself (grammar construction is an external collaborator,
// spec.md §1); it only drives pfsearch.Search over forests built ahead of
// time with forest.Builder.
func main() {
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	k := flag.Int("k", pfsearch.DefaultK, "number of trees to request")
	flag.Parse()

	tracer().SetTraceLevel(traceLevel(*tlevel))

	pterm.Info.Println("Welcome to pfquery")
	demos := demoForests()

	repl, err := readline.New("pfquery> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()

	printHelp(demos)
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on ^D, readline.ErrInterrupt on ^C
			break
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "help" || line == "?":
			printHelp(demos)
		case line == "quit" || line == "exit":
			return
		default:
			runDemo(demos, line, *k)
		}
	}
}

func printHelp(demos []demo) {
	pterm.DefaultSection.Println("demo forests")
	for i, d := range demos {
		pterm.Printf("  %d  %s\n", i, d.name)
	}
	pterm.Println("enter a number to search, 'help' to repeat this list, 'quit' to exit")
}

func runDemo(demos []demo, line string, k int) {
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 || n >= len(demos) {
		pterm.Warning.Printf("not a valid demo number: %q\n", line)
		return
	}
	d := demos[n]
	result, err := pfsearch.Search(d.root, pfsearch.Options{K: k})
	if err != nil {
		pterm.Error.Printf("search failed: %v\n", err)
		return
	}
	pterm.Info.Printf("%s — %d path(s) examined, %d tree(s) found\n", d.name, result.PathCount, len(result.Trees))
	rows := pterm.TableData{{"text", "semantic", "cost"}}
	for _, t := range result.Trees {
		rows = append(rows, []string{t.Text, t.SemanticStr, strconv.Itoa(t.Cost)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		tracer().Errorf("rendering result table: %v", err)
	}
}

// demoForests builds two small forests with forest.Builder, for the first
// two natural-language examples from spec.md §8, reusing the same
// vocabulary shape pfsearch/endtoend_test.go exercises under test.
func demoForests() []demo {
	me := semantics.NewArgument("me", 1, "oneSg")
	danny := semantics.NewArgument("0", 1, "")
	repositoriesLiked := semantics.NewFunction("repositories-liked", 1, 1, 1)
	usersFollowed := semantics.NewFunction("users-followed", 1, 1, 1)
	intersectFn := semantics.NewFunction(semantics.OpIntersect, 1, 2, -1)

	word := func(b *forest.Builder, pos int, name, txt string, sem semantics.Array) *forest.Node {
		leaf := b.Terminal(name, pos)
		rp := forest.RuleProps{Cost: 1 + len(txt)/4, InsertedSymIdx: forest.NoInsertion}
		if txt != "" {
			rp.Text = text.Lit(txt)
		}
		if sem != nil {
			rp.Semantic = sem
		}
		return b.Reduction(name, pos, pos+1, rp, leaf)
	}
	split := func(b *forest.Builder, name string, start, end int, sem semantics.Array, secondProducesSemantic bool, left, right *forest.Node) *forest.Node {
		rp := forest.RuleProps{
			Cost:                        end - start,
			IsNonterminal:               true,
			InsertedSymIdx:              forest.NoInsertion,
			SecondRHSCanProduceSemantic: secondProducesSemantic,
		}
		if sem != nil {
			rp.Semantic = sem
		}
		return b.BinaryReduction(name, start, end, rp, left, right)
	}

	b1 := forest.NewBuilder()
	repos := word(b1, 0, "repos", "repos", nil)
	i := word(b1, 1, "I", "I", semantics.Array{semantics.Arg(me)})
	have := word(b1, 2, "have", "have", nil)
	liked := word(b1, 3, "liked", "liked", nil)
	vp := split(b1, "VP", 2, 4, nil, false, have, liked)
	rc := split(b1, "RC", 1, 4, nil, false, i, vp)
	demo1 := split(b1, "NP", 0, 4, semantics.Array{semantics.App(repositoriesLiked, nil)}, true, repos, rc)

	b2 := forest.NewBuilder()
	people := word(b2, 0, "people", "people", nil)
	i2 := word(b2, 1, "I2", "I", semantics.Array{semantics.Arg(me)})
	andDanny := word(b2, 2, "andDanny", "and Danny", semantics.Array{semantics.Arg(danny)})
	follow := word(b2, 3, "follow", "follow", nil)
	conj := split(b2, "Conj", 1, 3, nil, true, i2, andDanny)
	rc2 := split(b2, "RC2", 1, 4, semantics.Array{semantics.App(usersFollowed, nil)}, false, conj, follow)
	demo2 := split(b2, "NP2", 0, 4, semantics.Array{semantics.App(intersectFn, nil)}, true, people, rc2)

	return []demo{
		{name: fmt.Sprintf("%q -> repositories-liked(me)", "repos I have liked"), root: demo1},
		{name: fmt.Sprintf("%q -> intersect(users-followed(0),users-followed(me))", "people I and Danny follow"), root: demo2},
	}
}
