package search

import (
	"github.com/shrdlite/planner/internal/goaldnf"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// LiteralHolds reports whether a single goal literal is true in state,
// given the static object table objects.
func LiteralHolds(state State, objects worldmodel.Objects, lit goaldnf.Literal) bool {
	truth := literalTruth(state, objects, lit)
	return truth == lit.Polarity
}

func literalTruth(state State, objects worldmodel.Objects, lit goaldnf.Literal) bool {
	if lit.Relation == worldmodel.RelHolding {
		return state.Holding == lit.Arg1
	}
	snap := state.ToSnapshot(objects)
	return worldmodel.Contains(worldmodel.Extend(snap, lit.Arg1, lit.Relation), lit.Arg2)
}

// ConjunctionHolds reports whether every literal in c is true in state.
func ConjunctionHolds(state State, objects worldmodel.Objects, c goaldnf.Conjunction) bool {
	for _, lit := range c {
		if !LiteralHolds(state, objects, lit) {
			return false
		}
	}
	return true
}

// GoalTest builds a goal-test closure over a compiled DNF (§4.3): state
// satisfies the goal iff any one of its disjuncts is fully true.
func GoalTest(objects worldmodel.Objects, goal goaldnf.DNF) func(State) bool {
	return func(state State) bool {
		for _, c := range goal {
			if ConjunctionHolds(state, objects, c) {
				return true
			}
		}
		return false
	}
}
