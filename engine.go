// Package shrdlite wires the referring-expression resolver, goal compiler,
// A* planner and plan renderer into the single entry point described by
// §7: given a parsed command (or several, one per ambiguous parse) and a
// world snapshot, produce the rendered plan of actions that satisfies it.
package shrdlite

import (
	"context"
	"time"

	"github.com/shrdlite/planner/internal/goaldnf"
	"github.com/shrdlite/planner/internal/render"
	"github.com/shrdlite/planner/internal/resolve"
	"github.com/shrdlite/planner/internal/search"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// DefaultSearchTimeout bounds a single Plan call's A* search, per §4.3's
// wall-clock budget requirement.
const DefaultSearchTimeout = 5 * time.Second

// Plan is a solved instruction. Actions holds the raw primitive action
// tokens the arm must perform, for replay and audit logging. Utterances is
// the §6.2 action stream: the same tokens interleaved with the §4.5
// narration utterances that precede them, which is what should actually be
// shown to whoever issued the command. Summary wraps Utterances' narration
// into a single block of text for display contexts that want prose instead
// of a stream.
type Plan struct {
	Actions    []string
	Utterances []string
	Summary    string
	Cost       float64
}

// Engine holds the world an instruction is interpreted and planned against.
type Engine struct {
	World   worldmodel.Snapshot
	Timeout time.Duration
}

// New validates world and returns an Engine ready to plan against it. A
// zero Timeout is replaced with DefaultSearchTimeout.
func New(world worldmodel.Snapshot, timeout time.Duration) (*Engine, error) {
	if err := world.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return &Engine{World: world, Timeout: timeout}, nil
}

// Plan interprets cmd against the engine's world, compiles its goal to DNF,
// searches for the cheapest satisfying plan, and renders it. The returned
// error, when non-nil, is a *planerr.Error from either the interpreter or
// the search (see internal/planerr).
func (e *Engine) Plan(cmd resolve.Command) (Plan, error) {
	goal, err := goaldnf.Interpret(cmd, e.World)
	if err != nil {
		return Plan{}, err
	}

	start := search.FromSnapshot(e.World)
	graph := search.NewGraph(e.World.Objects)

	ctx, cancel := context.WithTimeout(context.Background(), e.Timeout)
	defer cancel()

	path, err := search.Search(ctx, start, e.World.Objects, goal, graph)
	if err != nil {
		return Plan{}, err
	}

	lines := render.Utterances(path, e.World.Objects)
	return Plan{
		Actions:    path.Actions,
		Utterances: lines,
		Summary:    render.Summarize(lines),
		Cost:       path.Cost,
	}, nil
}

// PlanAll implements the batch semantics of §7 for an ambiguously-parsed
// utterance: cmds holds one resolve.Command per candidate parse of the same
// sentence. Every parse that yields a feasible plan contributes its Plan to
// the result; a parse that fails is simply skipped. Only when every parse
// fails is an error returned, and it is the error from the first parse
// tried, since later parses' failures carry no more information once none
// of them succeeded.
func (e *Engine) PlanAll(cmds []resolve.Command) ([]Plan, error) {
	var plans []Plan
	var firstErr error

	for _, cmd := range cmds {
		p, err := e.Plan(cmd)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		plans = append(plans, p)
	}

	if len(plans) == 0 {
		return nil, firstErr
	}
	return plans, nil
}
