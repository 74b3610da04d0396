// Package text implements spec.md §4.3: resolving the inflected form of a
// rule's display text against grammatical form, accepted tense, and
// person-number, and concatenating insertion text once the subject's
// person-number is known.
//
// Text is modeled as a closed tagged union rather than interface{} duck
// typing, per spec.md's own Design Notes recommendation and matching the
// teacher's AtomType-tagged terex.Atom.
package text

// Kind tags a Text value's variant.
type Kind int

const (
	// Literal is a plain, already-conjugated string.
	Literal Kind = iota
	// Inflected is a set of forms keyed by grammatical form name,
	// accepted tense, or person-number (e.g. {"past": "liked", "oneSg":
	// "like", "threeSg": "likes"}).
	Inflected
	// Sequence concatenates the conjugation of each element, carrying the
	// text of an insertedSymIdx==1 insertion delayed until the first
	// branch fixed the path's person-number.
	Sequence
)

// Text is one rule's display text, in one of three shapes.
type Text struct {
	kind     Kind
	literal  string
	forms    map[string]string
	sequence []Text
}

// Lit constructs a Literal Text.
func Lit(s string) Text { return Text{kind: Literal, literal: s} }

// Inflect constructs an Inflected Text from a set of named forms.
func Inflect(forms map[string]string) Text { return Text{kind: Inflected, forms: forms} }

// Seq constructs a Sequence Text.
func Seq(parts ...Text) Text { return Text{kind: Sequence, sequence: parts} }

// Kind reports which variant this Text is.
func (t Text) Kind() Kind { return t.kind }

// IsZero reports whether t is the zero Text (no text at all, i.e. a rule
// that carries no ruleProps.text).
func (t Text) IsZero() bool { return t.kind == Literal && t.literal == "" && t.forms == nil && t.sequence == nil }
