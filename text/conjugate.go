package text

import "fmt"

// GramProps is the grammatical-properties record carried per rule-child
// position (spec.md §3 `gramProps`): an optional required form, and an
// optional tense the raw input surface form is still allowed to use.
type GramProps struct {
	Form          string
	AcceptedTense string
}

// Bug panics for programmer/grammar errors (spec.md §7 kind 2): conditions
// that can only be reached by a malformed grammar, never by legal input.
// Mirrors semantics.Bug for the same kind of error in this package.
func Bug(format string, args ...interface{}) {
	panic("text: grammar bug: " + fmt.Sprintf(format, args...))
}

// Conjugate implements spec.md §4.3 conjugateText. personNumber may be ""
// when no person-number frame is in scope; gramProps may be nil. Conjugate
// never returns an error: a Text lacking any matching inflected form is a
// grammar bug (spec.md §7 kind 2), not a legal outcome a caller can recover
// from, so it panics via Bug instead.
func Conjugate(t Text, personNumber string, gramProps *GramProps, inputTense string) string {
	switch t.kind {
	case Literal:
		return " " + t.literal
	case Sequence:
		var out string
		for _, part := range t.sequence {
			out += Conjugate(part, personNumber, gramProps, inputTense)
		}
		return out
	case Inflected:
		if gramProps != nil && gramProps.Form != "" {
			if form, ok := t.forms[gramProps.Form]; ok {
				return " " + form
			}
		}
		if gramProps != nil && inputTense != "" && inputTense == gramProps.AcceptedTense {
			if form, ok := t.forms[inputTense]; ok {
				return " " + form
			}
		}
		if personNumber != "" {
			if form, ok := t.forms[personNumber]; ok {
				return " " + form
			}
		}
		Bug("no inflected form for personNumber=%q gramProps=%+v inputTense=%q in %v",
			personNumber, gramProps, inputTense, t.forms)
		return ""
	default:
		return ""
	}
}
