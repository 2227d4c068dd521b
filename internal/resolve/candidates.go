package resolve

import (
	"github.com/shrdlite/planner/internal/util"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// Held is the sentinel position reported for the object currently in the
// gripper when resolving its position is meaningful (it never is positionally
// — see worldmodel.Extend — but it still participates as a plain candidate).
const heldSentinelCol, heldSentinelRow = -1, -1

// FindCandidates implements §4.1a: it resolves entity.Object against world,
// optionally restricted to the identifiers in restrict (nil means
// unrestricted), and returns every matching identifier.
//
// The quantifier post-check ("the" must yield exactly one match) is NOT
// applied here; FindCandidates always returns the full matching set so that
// callers performing a nested location check (§4.1a point 3) can inspect it
// directly. Callers resolving a surface argument must apply
// ApplyQuantifier themselves.
func FindCandidates(entity Entity, world worldmodel.Snapshot, restrict []string) []string {
	var restrictSet util.StringSet
	if restrict != nil {
		restrictSet = util.StringSetOf(restrict)
	}

	var out []string
	for _, id := range allCandidateIDs(world) {
		if restrictSet != nil && !restrictSet[id] {
			continue
		}
		if matchesObject(entity.Object, id, world) {
			out = append(out, id)
		}
	}
	return out
}

// allCandidateIDs returns every identifier that can ever be a candidate: all
// objects currently in some stack, plus the held object (positioned at the
// (-1,-1) sentinel per §4.1a), plus the floor.
func allCandidateIDs(world worldmodel.Snapshot) []string {
	ids := world.AllIDs()
	ids = append(ids, worldmodel.Floor)
	return ids
}

func matchesObject(obj Object, id string, world worldmodel.Snapshot) bool {
	props, ok := world.Describe(id)
	if !ok {
		return false
	}

	if obj.Form != "" && obj.Form != worldmodel.FormAny && obj.Form != props.Form {
		return false
	}
	if obj.Size != "" && obj.Size != props.Size {
		return false
	}
	if obj.Color != "" && obj.Color != props.Color {
		return false
	}

	// §4.1a point 2: scalar properties are matched "at every nesting level
	// of object" — a chained Inner description refines the same candidate
	// further, it does not introduce a second entity.
	if obj.Inner != nil && !matchesObject(*obj.Inner, id, world) {
		return false
	}

	if obj.Location != nil && !satisfiesLocation(*obj.Location, id, world) {
		return false
	}

	return true
}

// satisfiesLocation implements §4.1a point 3: evaluate one nested location
// clause for candidate id.
func satisfiesLocation(loc Location, id string, world worldmodel.Snapshot) bool {
	related := worldmodel.Extend(world, id, loc.Relation)

	matches := FindCandidates(loc.Entity, world, related)

	if loc.Entity.Quantifier != QuantifierAll {
		return len(matches) > 0
	}

	// quantifier = "all": the clause holds iff the recursive call returns a
	// non-empty set whose every element is in the related set — i.e. id is
	// related to ALL of them.
	if len(matches) == 0 {
		return false
	}
	relatedSet := util.StringSetOf(related)
	for _, m := range matches {
		if !relatedSet[m] {
			return false
		}
	}
	return true
}

// ApplyQuantifier implements the quantifier post-check of §4.1a: for "the",
// more than one candidate is an Ambiguous error; zero candidates (for any
// quantifier) is a NoSuchEntity error, reported by the caller.
func ApplyQuantifier(q Quantifier, candidates []string) (ok bool, ambiguous bool) {
	if len(candidates) == 0 {
		return false, false
	}
	if q == QuantifierThe && len(candidates) > 1 {
		return false, true
	}
	return true, false
}
