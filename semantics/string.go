package semantics

import (
	"fmt"
	"strings"
)

// ToString renders a semantic array in the lambda-calculus string format of
// spec.md §6: pre-order, arguments flat, functions `name(...)` with
// comma-separated children, no whitespace.
func ToString(a Array) string {
	var b strings.Builder
	writeArray(&b, a)
	return b.String()
}

func writeArray(b *strings.Builder, a Array) {
	for i, n := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNode(b, n)
	}
}

func writeNode(b *strings.Builder, n Node) {
	b.WriteString(n.Semantic.Name())
	if n.Function {
		b.WriteByte('(')
		writeArray(b, n.Children)
		b.WriteByte(')')
	}
}

// StringToObject is the exact inverse of ToString for well-formed input:
// it parses a lambda-calculus string back into a semantic array, resolving
// symbol names against resolve. It does not re-derive Complete flags (those
// are a search-time artifact, not part of the printed form). Whether a
// node is an argument or a function application is taken from the printed
// form (a name followed by '(' is an application), not from the resolved
// symbol.
func StringToObject(s string, resolve func(name string) (Symbol, bool)) (Array, error) {
	p := &stringParser{src: s, resolve: resolve}
	arr, err := p.array()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("semantics: trailing input at offset %d: %q", p.pos, p.src[p.pos:])
	}
	return arr, nil
}

type stringParser struct {
	src     string
	pos     int
	resolve func(name string) (Symbol, bool)
}

func (p *stringParser) array() (Array, error) {
	var out Array
	for {
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		return out, nil
	}
}

func (p *stringParser) node() (Node, error) {
	name := p.name()
	if name == "" {
		return Node{}, fmt.Errorf("semantics: expected symbol name at offset %d", p.pos)
	}
	sym, ok := p.resolve(name)
	if !ok {
		return Node{}, fmt.Errorf("semantics: unknown symbol %q", name)
	}
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		p.pos++
		children, err := p.array()
		if err != nil {
			return Node{}, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return Node{}, fmt.Errorf("semantics: expected ')' at offset %d", p.pos)
		}
		p.pos++
		return App(sym, children), nil
	}
	return Arg(sym), nil
}

func (p *stringParser) name() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '(' || c == ')' || c == ',' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}
