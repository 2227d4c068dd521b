package search

import (
	"github.com/shrdlite/planner/internal/goaldnf"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// Heuristic builds the h(s) closure of §4.4: the minimum, over the goal's
// disjuncts, of the maximum, over that disjunct's literals, of a per-literal
// distance estimate. Taking the max within a conjunction (rather than the
// sum) keeps the estimate admissible, since several literals of the same
// conjunction are often satisfiable by overlapping action sequences; taking
// the min across disjuncts picks the cheapest way to satisfy the goal.
func Heuristic(objects worldmodel.Objects, goal goaldnf.DNF) func(State) float64 {
	return func(state State) float64 {
		if len(goal) == 0 {
			return 0
		}
		best := -1.0
		for _, c := range goal {
			h := conjunctionCost(state, objects, c)
			if best < 0 || h < best {
				best = h
			}
		}
		if best < 0 {
			return 0
		}
		return best
	}
}

func conjunctionCost(state State, objects worldmodel.Objects, c goaldnf.Conjunction) float64 {
	var worst float64
	for _, lit := range c {
		cost := literalCost(state, objects, lit)
		if cost > worst {
			worst = cost
		}
	}
	return worst
}

func literalCost(state State, objects worldmodel.Objects, lit goaldnf.Literal) float64 {
	if LiteralHolds(state, objects, lit) {
		return 0
	}
	switch lit.Relation {
	case worldmodel.RelHolding:
		return holdingCost(state, lit.Arg1)
	case worldmodel.RelOntop, worldmodel.RelInside:
		return placeCost(state, lit.Arg1, lit.Arg2)
	case worldmodel.RelAbove, worldmodel.RelUnder:
		// Symmetric with ontop/inside: above/under only requires lit.Arg1
		// to end up somewhere in the same column above/below lit.Arg2, which
		// is a weaker requirement than direct stacking adjacency, so the
		// stacking estimate still lower-bounds it correctly.
		a, b := lit.Arg1, lit.Arg2
		if lit.Relation == worldmodel.RelUnder {
			a, b = b, a
		}
		return placeCost(state, a, b)
	case worldmodel.RelLeftOf, worldmodel.RelRightOf, worldmodel.RelBeside:
		return sidewaysCost(state, lit.Relation, lit.Arg1, lit.Arg2)
	default:
		return 1
	}
}

// holdingCost is §4.4's holding(o) estimator: |col(o)-arm|·MOVE to reach o's
// column, plus remove_above(o) to clear whatever sits on o and pick it up.
func holdingCost(state State, id string) float64 {
	col, ok := columnOf(state, id)
	if !ok {
		return 0
	}
	return moveToCloserCost(state, col) + removeAboveCost(state, id)
}

// placeCost is §4.4's ontop/inside estimator (also reused for above/under).
// Same column with id already correctly stacked is 0, but literalCost only
// reaches here once LiteralHolds has already ruled that out. A same-column
// mismatch costs remove_above of whichever of the two sits higher, since
// that is the minimum clearing needed to rearrange them; different columns
// fall back to the general estimate of freeing id, freeing dst's top, and
// moving id across.
func placeCost(state State, id, dst string) float64 {
	idCol, idOK := columnOf(state, id)
	dstCol, dstOK := columnOf(state, dst)
	if !idOK && id != worldmodel.Floor {
		return 0
	}

	if idOK && dstOK && idCol == dstCol {
		idIdx := indexOf(state, idCol, id)
		dstIdx := indexOf(state, dstCol, dst)
		higher := id
		if dstIdx > idIdx {
			higher = dst
		}
		return removeAboveCost(state, higher)
	}

	cost := removeAboveCost(state, id)
	if dst != worldmodel.Floor {
		cost += clearAboveCost(state, dst)
	}
	cost += moveToCloserCost(state, dstCol)
	cost += Move // the final drop
	return cost
}

// sidewaysCost is §4.4's leftof/rightof/beside estimator:
// move_to_closer(arm,a,b) + dist·MOVE + remove_above(a) + remove_above(b),
// where dist is the column distance needed to flip a and b into the
// required order (beside only needs them adjacent, not flipped).
func sidewaysCost(state State, rel worldmodel.Relation, a, b string) float64 {
	colA, okA := columnOf(state, a)
	colB, okB := columnOf(state, b)
	if !okA || !okB {
		return 0
	}

	delta := colA - colB
	var dist int
	switch rel {
	case worldmodel.RelLeftOf:
		// satisfied requires colA < colB; literalCost only calls this when
		// unsatisfied, so colA >= colB here.
		dist = delta + 1
	case worldmodel.RelRightOf:
		// satisfied requires colA > colB.
		dist = -delta + 1
	case worldmodel.RelBeside:
		if abs(delta) == 1 {
			return 0
		}
		dist = abs(delta) - 1
	}
	if dist < 0 {
		dist = 0
	}

	return moveToCloserPair(state.Arm, colA, colB) + float64(dist)*Move + removeAboveCost(state, a) + removeAboveCost(state, b)
}

// removeAboveCost is §4.4's remove_above(p): clearing each item stacked
// above p costs at least a pick, a carry, and a drop (MOVE+CARRY+2), plus a
// final pick of p itself once it is clear. An id that is already held or
// not placed in a stack (e.g. the floor) needs no further work.
func removeAboveCost(state State, id string) float64 {
	if id == state.Holding {
		return 0
	}
	col, ok := columnOf(state, id)
	if !ok {
		return 0
	}
	idx := indexOf(state, col, id)
	above := len(state.Stacks[col]) - idx - 1
	return float64(above)*(Move+Carry+2) + 1
}

// clearAboveCost is remove_above's clearing term without the final pick:
// used for a destination, which only needs the items above it moved out of
// the way, never a pick of the destination itself.
func clearAboveCost(state State, id string) float64 {
	if id == state.Holding {
		return 0
	}
	col, ok := columnOf(state, id)
	if !ok {
		return 0
	}
	idx := indexOf(state, col, id)
	above := len(state.Stacks[col]) - idx - 1
	return float64(above) * (Move + Carry + 2)
}

// moveToCloserCost lower-bounds the arm travel needed to reach col.
func moveToCloserCost(state State, col int) float64 {
	if col < 0 {
		return 0
	}
	return float64(abs(state.Arm-col)) * Move
}

// moveToCloserPair is §4.4's move_to_closer(arm,a,b): the arm only has to
// reach whichever of the two columns it is already nearer to.
func moveToCloserPair(arm, colA, colB int) float64 {
	da := abs(arm - colA)
	db := abs(arm - colB)
	if db < da {
		da = db
	}
	return float64(da) * Move
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// columnOf returns the column id sits in within state.Stacks, and whether it
// was found there. An id that is currently held or not present (e.g. the
// floor) is not locatable.
func columnOf(state State, id string) (col int, ok bool) {
	if id == state.Holding || id == worldmodel.Floor {
		return -1, false
	}
	for c, stack := range state.Stacks {
		for _, item := range stack {
			if item == id {
				return c, true
			}
		}
	}
	return -1, false
}

// indexOf returns id's height index within the given column, or -1 if not
// found there.
func indexOf(state State, col int, id string) int {
	for i, item := range state.Stacks[col] {
		if item == id {
			return i
		}
	}
	return -1
}
