package goaldnf

import (
	"github.com/shrdlite/planner/internal/planerr"
	"github.com/shrdlite/planner/internal/resolve"
	"github.com/shrdlite/planner/internal/util"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// Interpret implements §4.1b: it compiles a parsed Command against world into
// a DNF of goal literals. The returned error, when non-nil, is a
// *planerr.Error classified by one of the sentinel kinds in planerr.
func Interpret(cmd resolve.Command, world worldmodel.Snapshot) (DNF, error) {
	switch cmd.Kind {
	case resolve.CommandTake:
		return interpretTake(cmd, world)
	case resolve.CommandPut:
		return interpretPut(cmd, world)
	case resolve.CommandMove:
		return interpretMove(cmd, world)
	default:
		return nil, planerr.Newf(planerr.NoEntity, "I don't know how to %q", cmd.Kind)
	}
}

func resolveCandidates(entity resolve.Entity, world worldmodel.Snapshot, restrict []string) ([]string, error) {
	candidates := resolve.FindCandidates(entity, world, restrict)
	if len(candidates) == 0 {
		return nil, planerr.Newf(planerr.NoSuchEntity, "I don't see anything matching that description")
	}
	if entity.Quantifier == resolve.QuantifierThe && len(candidates) > 1 {
		return nil, planerr.Newf(planerr.Ambiguous, "I don't know which one you mean: %s", util.MakeTextList(append([]string(nil), candidates...)))
	}
	return candidates, nil
}

func interpretTake(cmd resolve.Command, world worldmodel.Snapshot) (DNF, error) {
	if cmd.Entity == nil {
		return nil, planerr.Newf(planerr.NoEntity, "I don't know what you want to take")
	}

	candidates, err := resolveCandidates(*cmd.Entity, world, nil)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		if c == worldmodel.Floor {
			return nil, planerr.Newf(planerr.CannotPickUpFloor, "I can't pick up the floor")
		}
	}

	if cmd.Entity.Quantifier == resolve.QuantifierAll && len(candidates) > 1 {
		return nil, planerr.Newf(planerr.UnsupportedAll, "I can only hold one thing at a time")
	}

	d := make(DNF, 0, len(candidates))
	for _, c := range candidates {
		d = append(d, Conjunction{HoldingLiteral(c)})
	}
	return d, nil
}

func interpretPut(cmd resolve.Command, world worldmodel.Snapshot) (DNF, error) {
	if world.Holding == "" {
		return nil, planerr.Newf(planerr.NotHolding, "I'm not holding anything")
	}
	if cmd.Location == nil {
		return nil, planerr.Newf(planerr.NoEntity, "I don't know where you want to put it down")
	}

	held := world.Holding
	heldObj, _ := world.Describe(held)
	rel := cmd.Location.Relation

	var restrict []string
	if cmd.Location.Entity.Object.Form == worldmodel.FormFloor {
		restrict = []string{worldmodel.Floor}
	}

	dests, err := resolveCandidates(cmd.Location.Entity, world, restrict)
	if err != nil {
		return nil, err
	}

	if cmd.Location.Entity.Quantifier == resolve.QuantifierAll {
		// flipped mode (§4.1b): one clause per destination, each covered by
		// the single held source.
		var clauses []clause
		for _, dst := range dests {
			clauses = append(clauses, sourceClause([]string{held}, rel, dst, world))
		}
		d := cnfToDNF(clauses)
		d = flattenUnion(d)
		d = pruneInvalidMultiTarget(d, worldmodel.Floor)
		if len(d) == 0 {
			return nil, planerr.Newf(planerr.NoValidSolution, "I can't put it in all of those places at once")
		}
		return d, nil
	}

	var d DNF
	for _, dest := range dests {
		if !feasiblePair(held, heldObj, rel, dest, world) {
			continue
		}
		d = append(d, Conjunction{RelationLiteral(rel, held, dest)})
	}
	if len(d) == 0 {
		return nil, planerr.Newf(planerr.NoValidSolution, "there's no valid place to put that")
	}
	return d, nil
}

func interpretMove(cmd resolve.Command, world worldmodel.Snapshot) (DNF, error) {
	if cmd.Entity == nil {
		return nil, planerr.Newf(planerr.NoEntity, "I don't know what you want to move")
	}
	if cmd.Location == nil {
		return nil, planerr.Newf(planerr.NoEntity, "I don't know where you want to move it")
	}

	sources, err := resolveCandidates(*cmd.Entity, world, nil)
	if err != nil {
		return nil, err
	}
	dests, err := resolveCandidates(cmd.Location.Entity, world, nil)
	if err != nil {
		return nil, err
	}

	rel := cmd.Location.Relation
	entityAll := cmd.Entity.Quantifier == resolve.QuantifierAll
	locationAll := cmd.Location.Entity.Quantifier == resolve.QuantifierAll

	var d DNF
	switch {
	case !entityAll && !locationAll:
		for _, s := range sources {
			sObj, _ := world.Describe(s)
			for _, dst := range dests {
				if s == dst {
					continue
				}
				if !feasiblePair(s, sObj, rel, dst, world) {
					continue
				}
				d = append(d, Conjunction{RelationLiteral(rel, s, dst)})
			}
		}
	case entityAll && !locationAll:
		var clauses []clause
		for _, s := range sources {
			sObj, _ := world.Describe(s)
			clauses = append(clauses, destinationClause(s, sObj, rel, filterOut(dests, s), world))
		}
		d = cnfToDNF(clauses)
	case !entityAll && locationAll:
		var clauses []clause
		for _, dst := range dests {
			clauses = append(clauses, sourceClause(filterOut(sources, dst), rel, dst, world))
		}
		d = cnfToDNF(clauses)
	default: // both "all"
		var clauses []clause
		for _, s := range sources {
			sObj, _ := world.Describe(s)
			clauses = append(clauses, destinationClause(s, sObj, rel, filterOut(dests, s), world))
		}
		for _, dst := range dests {
			clauses = append(clauses, sourceClause(filterOut(sources, dst), rel, dst, world))
		}
		d = cnfToDNF(clauses)
		d = flattenUnion(d)
	}

	d = pruneInvalidMultiTarget(d, worldmodel.Floor)
	if len(d) == 0 {
		return nil, planerr.Newf(planerr.NoValidSolution, "there's no valid way to do that")
	}
	return d, nil
}

// destinationClause builds "s must end up related to some d in dests",
// filtered to feasible pairs (used for the entity="all" mode: one clause
// per source, each source must be placed somewhere).
func destinationClause(s string, sObj worldmodel.Object, rel worldmodel.Relation, dests []string, world worldmodel.Snapshot) clause {
	var cl clause
	for _, dst := range dests {
		if !feasiblePair(s, sObj, rel, dst, world) {
			continue
		}
		cl = append(cl, RelationLiteral(rel, s, dst))
	}
	return cl
}

// sourceClause builds "dst must be reached by some s in sources", filtered to
// feasible pairs (used for the location="all"/flipped mode: one clause per
// destination, each must be covered by some source).
func sourceClause(sources []string, rel worldmodel.Relation, dst string, world worldmodel.Snapshot) clause {
	var cl clause
	for _, s := range sources {
		sObj, _ := world.Describe(s)
		if !feasiblePair(s, sObj, rel, dst, world) {
			continue
		}
		cl = append(cl, RelationLiteral(rel, s, dst))
	}
	return cl
}

func filterOut(ids []string, exclude string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

// feasiblePair checks §3.5 physical feasibility plus the floor-usage
// restriction for a candidate literal rel(s, dst).
func feasiblePair(s string, sObj worldmodel.Object, rel worldmodel.Relation, dst string, world worldmodel.Snapshot) bool {
	if !worldmodel.ValidFloorUsage(s, rel, true) || !worldmodel.ValidFloorUsage(dst, rel, false) {
		return false
	}
	dstObj, ok := world.Describe(dst)
	if !ok {
		return false
	}
	return worldmodel.CanSupport(sObj, dstObj, rel)
}
