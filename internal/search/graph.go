package search

import "github.com/shrdlite/planner/internal/worldmodel"

// Edge is one successor of a State along with the cost of the action that
// produced it.
type Edge struct {
	Action string // one of "l", "r", "p", "d" (§6.2 action tokens)
	To     State
	Cost   float64
}

// Graph is the lazy successor generator of §4.2: it knows the static object
// properties (needed to price carries and feasibility-check drops) and the
// total object count (needed by the pick/drop cost formula).
type Graph struct {
	Objects worldmodel.Objects
	Total   int
}

// NewGraph builds a Graph from a world snapshot's object table. Total is the
// count of distinct identifiers appearing in objects (excludes the floor
// sentinel, which is never itself picked up or dropped on).
func NewGraph(objects worldmodel.Objects) Graph {
	return Graph{Objects: objects, Total: len(objects)}
}

// Outgoing returns every successor of s per §4.2's four candidate moves,
// each with its action token and cost.
func (g Graph) Outgoing(s State) []Edge {
	var out []Edge

	if s.Arm > 0 {
		out = append(out, Edge{Action: "l", To: g.withArm(s, s.Arm-1), Cost: g.moveCost(s)})
	}
	if s.Arm < len(s.Stacks)-1 {
		out = append(out, Edge{Action: "r", To: g.withArm(s, s.Arm+1), Cost: g.moveCost(s)})
	}

	col := s.Stacks[s.Arm]
	if s.Holding == "" && len(col) > 0 {
		out = append(out, g.pickEdge(s))
	}
	if s.Holding != "" && g.canDrop(s) {
		out = append(out, g.dropEdge(s))
	}

	return out
}

func (g Graph) withArm(s State, arm int) State {
	next := s
	next.Stacks = s.copyStacks()
	next.Arm = arm
	return next
}

func (g Graph) moveCost(s State) float64 {
	if s.Holding == "" {
		return Move
	}
	cost := float64(Move + Carry)
	if obj, ok := g.Objects[s.Holding]; ok && obj.Size == worldmodel.SizeLarge {
		cost += CarryLarge
	}
	return cost
}

func (g Graph) pickEdge(s State) Edge {
	col := s.Stacks[s.Arm]
	h := len(col)
	next := s
	next.Stacks = s.copyStacks()
	top := col[len(col)-1]
	next.Stacks[s.Arm] = next.Stacks[s.Arm][:len(next.Stacks[s.Arm])-1]
	next.Holding = top
	return Edge{Action: "p", To: next, Cost: pickDropCost(h, g.Total)}
}

func (g Graph) canDrop(s State) bool {
	col := s.Stacks[s.Arm]
	if len(col) == 0 {
		return true
	}
	top := col[len(col)-1]
	topObj := g.Objects[top]
	heldObj := g.Objects[s.Holding]
	rel := worldmodel.RelOntop
	if topObj.Form == worldmodel.FormBox {
		rel = worldmodel.RelInside
	}
	return worldmodel.CanSupport(heldObj, topObj, rel)
}

func (g Graph) dropEdge(s State) Edge {
	col := s.Stacks[s.Arm]
	h := len(col)
	next := s
	next.Stacks = s.copyStacks()
	next.Stacks[s.Arm] = append(next.Stacks[s.Arm], s.Holding)
	next.Holding = ""
	return Edge{Action: "d", To: next, Cost: pickDropCost(h, g.Total)}
}

// pickDropCost implements the shared pick/drop pricing formula of §4.2:
// 1 + MAX_PICKUP*(N-h)/N. When h==0 (picking the floor, or dropping onto an
// empty column) this reduces to 1+MAX_PICKUP, matching the spec's
// "drop onto empty column = 1 + MAX_PICKUP" special case exactly, so no
// separate branch is needed for it.
func pickDropCost(h, n int) float64 {
	if n <= 0 {
		return 1
	}
	return 1 + float64(MaxPickup)*float64(n-h)/float64(n)
}
