package worldmodel

// Extend computes the set of identifiers positionally related to id via rel
// in s, per the relation extensor table of §4.4. It is shared by the
// referring-expression resolver and the goal test so both use an identical
// notion of "related to".
//
// Per the resolved open question of §9 (the held object's sentinel
// position), a currently-held id never participates in a positional
// relation: Extend returns an empty set for it, for every relation other
// than "holding" (which is unary and is not handled by Extend at all; goal
// tests for "holding" are evaluated directly by the caller). This also
// means the caller never reaches the extensor for holding.
func Extend(s Snapshot, id string, rel Relation) []string {
	if id == s.Holding && s.Holding != "" {
		return nil
	}
	if id == Floor {
		// floor has no stack position; under(floor, x) is handled specially
		// by relations that accept floor as an lhs, but floor itself is not
		// "at" a column/height, so none of the positional lookups below
		// apply to it.
		return nil
	}

	col, height, ok := s.Locate(id)
	if !ok {
		return nil
	}

	switch rel {
	case RelLeftOf:
		return idsInColumnsAfter(s, col)
	case RelRightOf:
		return idsInColumnsBefore(s, col)
	case RelBeside:
		var out []string
		if col-1 >= 0 {
			out = append(out, s.Stacks[col-1]...)
		}
		if col+1 < len(s.Stacks) {
			out = append(out, s.Stacks[col+1]...)
		}
		return out
	case RelInside, RelOntop:
		if height == 0 {
			if rel == RelOntop {
				return []string{Floor}
			}
			// inside(_, floor) is not meaningful; floor is not a box, so
			// nothing is "inside" it. Per §9's confirmation, this returns
			// empty rather than the floor sentinel.
			return nil
		}
		return []string{s.Stacks[col][height-1]}
	case RelUnder:
		if height+1 >= len(s.Stacks[col]) {
			return nil
		}
		return append([]string{}, s.Stacks[col][height+1:]...)
	case RelAbove:
		out := []string{Floor}
		if height > 0 {
			out = append(out, s.Stacks[col][:height]...)
		}
		return out
	default:
		panic("worldmodel: unsupported relation in extensor: " + string(rel))
	}
}

func idsInColumnsAfter(s Snapshot, col int) []string {
	var out []string
	for ci := col + 1; ci < len(s.Stacks); ci++ {
		out = append(out, s.Stacks[ci]...)
	}
	return out
}

func idsInColumnsBefore(s Snapshot, col int) []string {
	var out []string
	for ci := 0; ci < col; ci++ {
		out = append(out, s.Stacks[ci]...)
	}
	return out
}

// Contains reports whether needle is present in haystack.
func Contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
