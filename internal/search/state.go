// Package search implements the state-space A* of §4.2–§4.4: a lazy
// successor generator over arm/holding/stack configurations, a generic A*
// with closed set and wall-clock timeout, and the goal test/heuristic
// closures parameterized by a compiled DNF.
package search

import (
	"strconv"
	"strings"

	"github.com/shrdlite/planner/internal/worldmodel"
)

// Cost model constants (§4.2).
const (
	Move       = 1
	Carry      = 2 // added to Move for a normal carry: 1+2=3
	CarryLarge = 2 // added again for a large carry: 1+2+2=5
	MaxPickup  = 10
)

// State is one node of the search graph: a candidate world configuration
// (§3.4). Stacks is copy-on-write; successors always receive a freshly
// copied slice of slices, pre-existing States are never mutated.
type State struct {
	Stacks  [][]string
	Holding string
	Arm     int
}

// FromSnapshot builds the initial search State from a world snapshot.
func FromSnapshot(s worldmodel.Snapshot) State {
	stacks := make([][]string, len(s.Stacks))
	for i, col := range s.Stacks {
		stacks[i] = append([]string{}, col...)
	}
	return State{Stacks: stacks, Holding: s.Holding, Arm: s.Arm}
}

// ToSnapshot projects a search State back onto a worldmodel.Snapshot sharing
// the given object definitions, for use by the extensor/goal test, which are
// expressed in terms of worldmodel.Snapshot.
func (s State) ToSnapshot(objects worldmodel.Objects) worldmodel.Snapshot {
	return worldmodel.Snapshot{Stacks: s.Stacks, Holding: s.Holding, Arm: s.Arm, Objects: objects}
}

// Key returns a canonical string encoding of the state suitable for use as a
// closed-set / map key. Structural equality on (Stacks, Holding, Arm) drives
// the closed set (§3.4, §9); a canonical serialization is used instead of
// relying on slice identity, which Go cannot compare directly.
func (s State) Key() string {
	var b strings.Builder
	b.WriteString(s.Holding)
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(s.Arm))
	b.WriteByte(';')
	for _, col := range s.Stacks {
		b.WriteString(strings.Join(col, ","))
		b.WriteByte('|')
	}
	return b.String()
}

// Equal reports structural equality of the two states.
func (s State) Equal(o State) bool {
	return s.Key() == o.Key()
}

// copyStacks returns a deep copy of s.Stacks suitable for a successor to
// mutate without affecting s.
func (s State) copyStacks() [][]string {
	out := make([][]string, len(s.Stacks))
	for i, col := range s.Stacks {
		out[i] = append([]string{}, col...)
	}
	return out
}
