// Package goaldnf compiles a resolved command into a disjunctive normal form
// of goal literals (§4.1b, §3.2, §3.3).
//
// One open question flagged in the source material (§9) is resolved here
// rather than left ambiguous: when both the entity and the location of a
// "move" carry the "all" quantifier, the CNF→DNF expansion is flattened to a
// single conjunction containing the union of every literal across every
// disjunct, exactly as the distilled spec directs. This is a real semantic
// strengthening — "all A paired with all B" reads stronger than "every A
// paired with every B independently" might suggest — and is called out here
// rather than silently implemented, per §9's instruction to document it.
package goaldnf

import "github.com/shrdlite/planner/internal/worldmodel"

// Literal is one relational atom: holding is unary (Arg2 unset); every other
// relation is binary.
type Literal struct {
	Polarity bool
	Relation worldmodel.Relation
	Arg1     string
	Arg2     string // unused when Relation == RelHolding
}

func HoldingLiteral(id string) Literal {
	return Literal{Polarity: true, Relation: worldmodel.RelHolding, Arg1: id}
}

func RelationLiteral(rel worldmodel.Relation, a, b string) Literal {
	return Literal{Polarity: true, Relation: rel, Arg1: a, Arg2: b}
}

// Conjunction is a list of literals all of which must hold.
type Conjunction []Literal

// DNF is a disjunction of conjunctions: satisfied iff any one conjunction is
// satisfied. An empty DNF means "no interpretation" (§3.3).
type DNF []Conjunction

// Equal reports whether two conjunctions contain the same literals,
// irrespective of order.
func (c Conjunction) equalTo(o Conjunction) bool {
	if len(c) != len(o) {
		return false
	}
	used := make([]bool, len(o))
	for _, l := range c {
		found := false
		for i, ol := range o {
			if used[i] {
				continue
			}
			if l == ol {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// dedupLiterals returns lits with duplicate (by value) literals removed,
// preserving first-seen order.
func dedupLiterals(lits []Literal) []Literal {
	seen := make(map[Literal]bool, len(lits))
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
