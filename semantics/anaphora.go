package semantics

// ResolveAnaphora implements spec.md §4.1's anaphora resolution: walk the
// semantic frame list from most-recent outward, looking for a node whose
// symbol's AnaphoraPersonNumber matches personNumber. Returns ErrIllegal
// (-1 in spec prose) if the walk is exhausted, or if two distinct
// antecedents are found for a singular anaphor within the same frame.
func ResolveAnaphora(list *Frame, personNumber string) (Array, error) {
	for f := list; f != nil; f = f.Prev {
		if !f.IsRHS {
			continue
		}
		if f.antecedents != nil {
			if cached, ok := f.antecedents[personNumber]; ok {
				return Array{cached}, nil
			}
		}
		found, err := findAntecedent(f.Semantic, personNumber)
		if err != nil {
			return nil, err
		}
		if found != nil {
			if f.antecedents == nil {
				f.antecedents = make(map[string]Node, 1)
			}
			f.antecedents[personNumber] = *found
			return Array{*found}, nil
		}
	}
	return nil, ErrIllegal
}

// findAntecedent depth-first searches rhs for a node matching
// personNumber, stopping descent at intersect boundaries (to allow
// re-entry at an outer frame rather than over-eagerly matching inside a
// nested intersect meant for a different referent). Duplicate *distinct*
// antecedents fail; repeated occurrences of the same entity are fine.
func findAntecedent(rhs Array, personNumber string) (*Node, error) {
	var match *Node
	var walk func(a Array) error
	walk = func(a Array) error {
		for _, n := range a {
			if n.Semantic.AnaphoraPersonNumber() == personNumber {
				if match == nil {
					m := n
					match = &m
				} else if !NodesEqual(*match, n) {
					return ErrIllegal
				}
			}
			if n.Function && !n.IsOp(OpIntersect) {
				if err := walk(n.Children); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(rhs); err != nil {
		return nil, err
	}
	return match, nil
}
