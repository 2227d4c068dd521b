package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrdlite/planner/internal/goaldnf"
	"github.com/shrdlite/planner/internal/worldmodel"
)

func Test_State_KeyAndEqual(t *testing.T) {
	assert := assert.New(t)

	a := State{Stacks: [][]string{{"x"}, {}}, Holding: "", Arm: 0}
	b := State{Stacks: [][]string{{"x"}, {}}, Holding: "", Arm: 0}
	c := State{Stacks: [][]string{{"x"}, {}}, Holding: "", Arm: 1}

	assert.True(a.Equal(b))
	assert.Equal(a.Key(), b.Key())
	assert.False(a.Equal(c))
}

func Test_FromSnapshot_CopiesStacks(t *testing.T) {
	assert := assert.New(t)
	snap := worldmodel.Snapshot{Stacks: [][]string{{"ball"}}, Arm: 0}
	s := FromSnapshot(snap)
	s.Stacks[0][0] = "mutated"
	assert.Equal("ball", snap.Stacks[0][0])
}

func Test_Graph_Outgoing(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall},
	}
	g := NewGraph(objects)

	s := State{Stacks: [][]string{{"ball"}, {}}, Holding: "", Arm: 0}
	edges := g.Outgoing(s)

	var actions []string
	for _, e := range edges {
		actions = append(actions, e.Action)
	}
	// arm at leftmost column with nothing held: can move right or pick, not
	// move left (no column to its left) nor drop (nothing held).
	assert.ElementsMatch([]string{"r", "p"}, actions)
}

func Test_Graph_Outgoing_HeldAndFull(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall},
	}
	g := NewGraph(objects)

	s := State{Stacks: [][]string{{}, {}}, Holding: "ball", Arm: 1}
	edges := g.Outgoing(s)

	var actions []string
	for _, e := range edges {
		actions = append(actions, e.Action)
	}
	// arm at rightmost column, holding something, column below empty: can
	// move left or drop, not move right nor pick (nothing in the column).
	assert.ElementsMatch([]string{"l", "d"}, actions)
}

func Test_Graph_PickCost_FullColumnIsCheaper(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{
		"a": {Form: worldmodel.FormBall},
		"b": {Form: worldmodel.FormBall},
	}
	g := NewGraph(objects)

	full := State{Stacks: [][]string{{"a", "b"}}, Arm: 0}
	edges := g.Outgoing(full)
	var pick Edge
	for _, e := range edges {
		if e.Action == "p" {
			pick = e
		}
	}
	// picking off a full column (h == n) costs the formula's minimum of 1.
	assert.Equal(1.0, pick.Cost)
}

func Test_Search_SimpleHold(t *testing.T) {
	assert := assert.New(t)

	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall},
	}
	start := State{Stacks: [][]string{{}, {"ball"}}, Arm: 0}
	goal := goaldnf.DNF{{goaldnf.HoldingLiteral("ball")}}
	graph := NewGraph(objects)

	path, err := Search(context.Background(), start, objects, goal, graph)
	assert.NoError(err)
	assert.Equal([]string{"r", "p"}, path.Actions)
	assert.Equal(2.0, path.Cost)
	assert.Len(path.States, 3)
	assert.Equal("ball", path.States[len(path.States)-1].Holding)
}

func Test_Search_AlreadyAtGoal(t *testing.T) {
	assert := assert.New(t)

	objects := worldmodel.Objects{"ball": {Form: worldmodel.FormBall}}
	start := State{Stacks: [][]string{{"ball"}}, Holding: "", Arm: 0}
	goal := goaldnf.DNF{{goaldnf.RelationLiteral(worldmodel.RelOntop, "ball", worldmodel.Floor)}}
	graph := NewGraph(objects)

	path, err := Search(context.Background(), start, objects, goal, graph)
	assert.NoError(err)
	assert.Empty(path.Actions)
	assert.Equal(0.0, path.Cost)
}

func Test_Search_HeuristicIsAdmissibleLowerBound(t *testing.T) {
	assert := assert.New(t)

	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall},
		"box":  {Form: worldmodel.FormBox, Size: worldmodel.SizeSmall},
	}
	start := State{Stacks: [][]string{{"ball", "box"}, {}}, Arm: 0}
	goal := goaldnf.DNF{{goaldnf.HoldingLiteral("ball")}}
	graph := NewGraph(objects)

	h := Heuristic(objects, goal)
	estimate := h(start)

	path, err := Search(context.Background(), start, objects, goal, graph)
	assert.NoError(err)
	assert.LessOrEqual(estimate, path.Cost)
	assert.Equal("ball", path.States[len(path.States)-1].Holding)
}

func Test_Search_NoValidSolution(t *testing.T) {
	objects := worldmodel.Objects{"ball": {Form: worldmodel.FormBall}}
	start := State{Stacks: [][]string{{"ball"}}, Arm: 0}
	goal := goaldnf.DNF{{goaldnf.HoldingLiteral("nonexistent")}}
	graph := NewGraph(objects)

	_, err := Search(context.Background(), start, objects, goal, graph)
	assert.ErrorContains(t, err, "")
}

func Test_GoalTest(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{"ball": {Form: worldmodel.FormBall}}
	state := State{Holding: "ball"}

	isGoal := GoalTest(objects, goaldnf.DNF{{goaldnf.HoldingLiteral("ball")}})
	assert.True(isGoal(state))

	isGoal = GoalTest(objects, goaldnf.DNF{{goaldnf.HoldingLiteral("other")}})
	assert.False(isGoal(state))
}

func Test_Heuristic_ZeroAtGoal(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{"ball": {Form: worldmodel.FormBall}}
	state := State{Holding: "ball"}

	h := Heuristic(objects, goaldnf.DNF{{goaldnf.HoldingLiteral("ball")}})
	assert.Equal(0.0, h(state))
}

func Test_Heuristic_EmptyGoalIsZero(t *testing.T) {
	assert := assert.New(t)
	h := Heuristic(worldmodel.Objects{}, goaldnf.DNF{})
	assert.Equal(0.0, h(State{}))
}
