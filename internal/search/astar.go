package search

import (
	"container/heap"
	"context"

	"github.com/shrdlite/planner/internal/goaldnf"
	"github.com/shrdlite/planner/internal/planerr"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// Path is a solved plan: the sequence of action tokens (§6.2) that carries
// the start state to a goal state, and its total cost.
type Path struct {
	Actions []string
	States  []State // len(States) == len(Actions)+1; States[0] is the start
	Cost    float64
}

// item is one entry of the A* open set.
type item struct {
	state State
	g     float64
	f     float64
	index int
}

type openSet []*item

func (o openSet) Len() int            { return len(o) }
func (o openSet) Less(i, j int) bool   { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index, o[j].index = i, j
}
func (o *openSet) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*o)
	*o = append(*o, it)
}
func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return it
}

type cameFromEntry struct {
	state  State
	action string
}

// Search runs A* (§4.3) from start toward any state satisfying goal, using
// the successor generator graph and the admissible heuristic of §4.4.
// ctx bounds the search by wall clock; once it is done the search aborts
// with planerr.SearchTimeout. Checking ctx.Err() only every checkInterval
// expansions keeps the common fast-solving case free of syscall overhead.
func Search(ctx context.Context, start State, objects worldmodel.Objects, goal goaldnf.DNF, graph Graph) (Path, error) {
	isGoal := GoalTest(objects, goal)
	h := Heuristic(objects, goal)

	startKey := start.Key()
	gScore := map[string]float64{startKey: 0}
	cameFrom := map[string]cameFromEntry{}

	open := &openSet{{state: start, g: 0, f: h(start)}}
	heap.Init(open)
	closed := map[string]bool{}

	const checkInterval = 256
	expansions := 0

	for open.Len() > 0 {
		expansions++
		if expansions%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return Path{}, planerr.New(planerr.SearchTimeout, "I couldn't find a way to do that in time", "A* wall-clock budget exceeded")
			default:
			}
		}

		cur := heap.Pop(open).(*item)
		curKey := cur.state.Key()
		if closed[curKey] {
			continue
		}

		if isGoal(cur.state) {
			return reconstructPath(cameFrom, curKey, cur.state, cur.g), nil
		}
		closed[curKey] = true

		for _, edge := range graph.Outgoing(cur.state) {
			nextKey := edge.To.Key()
			if closed[nextKey] {
				continue
			}
			g := cur.g + edge.Cost
			if prev, ok := gScore[nextKey]; ok && g >= prev {
				continue
			}
			gScore[nextKey] = g
			cameFrom[nextKey] = cameFromEntry{state: cur.state, action: edge.Action}
			heap.Push(open, &item{state: edge.To, g: g, f: g + h(edge.To)})
		}
	}

	return Path{}, planerr.New(planerr.NoValidSolution, "I can't find a way to do that", "A* exhausted the search space without reaching the goal")
}

func reconstructPath(cameFrom map[string]cameFromEntry, goalKey string, goalState State, cost float64) Path {
	var actions []string
	states := []State{goalState}
	key := goalKey
	for {
		entry, ok := cameFrom[key]
		if !ok {
			break
		}
		actions = append([]string{entry.action}, actions...)
		states = append([]State{entry.state}, states...)
		key = entry.state.Key()
	}
	return Path{Actions: actions, States: states, Cost: cost}
}
