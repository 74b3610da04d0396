package semantics

import (
	"errors"
	"fmt"
)

// ErrIllegal is the sentinel semantic-rejection error (spec.md §7, kind 1):
// a per-path illegality. Callers discard the offending path; the heap
// search continues. This is never used for grammar bugs — those panic,
// see the Bug helper below.
var ErrIllegal = errors.New("semantics: illegal reduction")

// Bug panics for programmer/grammar errors (spec.md §7, kind 2): conditions
// that can only be reached by a malformed grammar, never by legal input.
func Bug(format string, args ...interface{}) {
	panic("semantics: grammar bug: " + fmt.Sprintf(format, args...))
}
