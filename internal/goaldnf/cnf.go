package goaldnf

// clause is one CNF disjunctive clause: at least one of its literals must
// hold.
type clause []Literal

// cnfToDNF performs the iterative cross-product distribution of §4.1b:
// "a disjunct set grows as new = { c ∪ {l} | c ∈ cur, l ∈ next_clause }".
// A nil/empty clauses list yields a single empty conjunction (vacuously
// true), matching the cross-product identity.
func cnfToDNF(clauses []clause) DNF {
	cur := []Conjunction{{}}
	for _, cl := range clauses {
		if len(cl) == 0 {
			// an unsatisfiable clause (no feasible literal at all) makes the
			// whole CNF unsatisfiable.
			return DNF{}
		}
		var next []Conjunction
		for _, c := range cur {
			for _, lit := range cl {
				grown := make(Conjunction, len(c), len(c)+1)
				copy(grown, c)
				grown = append(grown, lit)
				next = append(next, grown)
			}
		}
		cur = next
	}
	return DNF(cur)
}

// flattenUnion collapses a DNF to a single conjunction containing the
// deduplicated union of every literal across every disjunct (§4.1b "all both
// sides" mode).
func flattenUnion(d DNF) DNF {
	var all []Literal
	for _, c := range d {
		all = append(all, c...)
	}
	if len(all) == 0 {
		return DNF{}
	}
	return DNF{dedupLiterals(all)}
}

// pruneInvalidMultiTarget discards conjunctions where a non-floor identifier
// appears twice as the lhs of an ontop/inside literal, or twice as the rhs of
// one (floor is exempt from the rhs rule, since many objects can be ontop of
// the floor simultaneously).
func pruneInvalidMultiTarget(d DNF, floor string) DNF {
	var out DNF
	for _, c := range d {
		if conjunctionIsValid(c, floor) {
			out = append(out, c)
		}
	}
	return out
}

func conjunctionIsValid(c Conjunction, floor string) bool {
	lhsSeen := map[string]bool{}
	rhsSeen := map[string]bool{}
	for _, lit := range c {
		if lit.Relation != "ontop" && lit.Relation != "inside" {
			continue
		}
		if lit.Arg1 != floor {
			if lhsSeen[lit.Arg1] {
				return false
			}
			lhsSeen[lit.Arg1] = true
		}
		if lit.Arg2 != floor {
			if rhsSeen[lit.Arg2] {
				return false
			}
			rhsSeen[lit.Arg2] = true
		}
	}
	return true
}
