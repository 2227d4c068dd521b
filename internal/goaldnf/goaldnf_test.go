package goaldnf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrdlite/planner/internal/planerr"
	"github.com/shrdlite/planner/internal/resolve"
	"github.com/shrdlite/planner/internal/worldmodel"
)

func simpleWorld() worldmodel.Snapshot {
	return worldmodel.Snapshot{
		Stacks: [][]string{
			{"ball"},
			{"box"},
		},
		Objects: worldmodel.Objects{
			"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
			"box":  {Form: worldmodel.FormBox, Size: worldmodel.SizeLarge, Color: "blue"},
		},
	}
}

func Test_Interpret_Take(t *testing.T) {
	assert := assert.New(t)
	world := simpleWorld()

	cmd := resolve.Command{
		Kind:   resolve.CommandTake,
		Entity: &resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormBall}},
	}

	d, err := Interpret(cmd, world)
	assert.NoError(err)
	assert.Equal(DNF{{HoldingLiteral("ball")}}, d)
}

func Test_Interpret_Take_CannotPickUpFloor(t *testing.T) {
	world := simpleWorld()

	cmd := resolve.Command{
		Kind:   resolve.CommandTake,
		Entity: &resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormFloor}},
	}

	_, err := Interpret(cmd, world)
	var perr *planerr.Error
	assert.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, planerr.CannotPickUpFloor)
}

func Test_Interpret_Take_Ambiguous(t *testing.T) {
	world := simpleWorld()
	world.Stacks = append(world.Stacks, []string{"ball2"})
	world.Objects["ball2"] = worldmodel.Object{Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "green"}

	cmd := resolve.Command{
		Kind:   resolve.CommandTake,
		Entity: &resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormBall}},
	}

	_, err := Interpret(cmd, world)
	assert.ErrorIs(t, err, planerr.Ambiguous)
}

func Test_Interpret_Take_AllWithMultipleCandidates(t *testing.T) {
	world := simpleWorld()
	world.Stacks = append(world.Stacks, []string{"ball2"})
	world.Objects["ball2"] = worldmodel.Object{Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "green"}

	cmd := resolve.Command{
		Kind:   resolve.CommandTake,
		Entity: &resolve.Entity{Quantifier: resolve.QuantifierAll, Object: resolve.Object{Form: worldmodel.FormBall}},
	}

	_, err := Interpret(cmd, world)
	assert.ErrorIs(t, err, planerr.UnsupportedAll)
}

func Test_Interpret_Put(t *testing.T) {
	assert := assert.New(t)
	world := simpleWorld()
	world.Holding = "ball"
	world.Stacks[0] = nil

	cmd := resolve.Command{
		Kind: resolve.CommandPut,
		Location: &resolve.Location{
			Relation: worldmodel.RelOntop,
			Entity:   resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormFloor}},
		},
	}

	d, err := Interpret(cmd, world)
	assert.NoError(err)
	assert.Equal(DNF{{RelationLiteral(worldmodel.RelOntop, "ball", worldmodel.Floor)}}, d)
}

func Test_Interpret_Put_NotHolding(t *testing.T) {
	world := simpleWorld()

	cmd := resolve.Command{
		Kind: resolve.CommandPut,
		Location: &resolve.Location{
			Relation: worldmodel.RelOntop,
			Entity:   resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormBox}},
		},
	}

	_, err := Interpret(cmd, world)
	assert.ErrorIs(t, err, planerr.NotHolding)
}

func Test_Interpret_Put_Infeasible(t *testing.T) {
	world := simpleWorld()
	world.Holding = "box" // large box cannot go ontop of a small ball

	cmd := resolve.Command{
		Kind: resolve.CommandPut,
		Location: &resolve.Location{
			Relation: worldmodel.RelOntop,
			Entity:   resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormBall}},
		},
	}

	_, err := Interpret(cmd, world)
	assert.ErrorIs(t, err, planerr.NoValidSolution)
}

func Test_Interpret_Move(t *testing.T) {
	assert := assert.New(t)
	world := simpleWorld()

	cmd := resolve.Command{
		Kind:   resolve.CommandMove,
		Entity: &resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormBall}},
		Location: &resolve.Location{
			Relation: worldmodel.RelInside,
			Entity:   resolve.Entity{Quantifier: resolve.QuantifierThe, Object: resolve.Object{Form: worldmodel.FormBox}},
		},
	}

	d, err := Interpret(cmd, world)
	assert.NoError(err)
	assert.Equal(DNF{{RelationLiteral(worldmodel.RelInside, "ball", "box")}}, d)
}

func Test_cnfToDNF(t *testing.T) {
	testCases := []struct {
		name    string
		clauses []clause
		expect  DNF
	}{
		{
			name:    "no clauses yields vacuous truth",
			clauses: nil,
			expect:  DNF{{}},
		},
		{
			name:    "unsatisfiable clause makes whole thing unsatisfiable",
			clauses: []clause{{}},
			expect:  DNF{},
		},
		{
			name: "single clause distributes to one conjunction per literal",
			clauses: []clause{
				{HoldingLiteral("a"), HoldingLiteral("b")},
			},
			expect: DNF{
				{HoldingLiteral("a")},
				{HoldingLiteral("b")},
			},
		},
		{
			name: "two clauses cross-product",
			clauses: []clause{
				{HoldingLiteral("a"), HoldingLiteral("b")},
				{HoldingLiteral("c")},
			},
			expect: DNF{
				{HoldingLiteral("a"), HoldingLiteral("c")},
				{HoldingLiteral("b"), HoldingLiteral("c")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := cnfToDNF(tc.clauses)
			assert.Equal(t, len(tc.expect), len(actual))
			for i := range tc.expect {
				assert.True(t, tc.expect[i].equalTo(actual[i]), "conjunction %d mismatch: %v vs %v", i, tc.expect[i], actual[i])
			}
		})
	}
}

func Test_flattenUnion(t *testing.T) {
	assert := assert.New(t)

	d := DNF{
		{HoldingLiteral("a"), HoldingLiteral("b")},
		{HoldingLiteral("b"), HoldingLiteral("c")},
	}
	flattened := flattenUnion(d)
	assert.Len(flattened, 1)
	assert.ElementsMatch(
		[]Literal{HoldingLiteral("a"), HoldingLiteral("b"), HoldingLiteral("c")},
		[]Literal(flattened[0]),
	)

	assert.Equal(DNF{}, flattenUnion(DNF{}))
}

func Test_pruneInvalidMultiTarget(t *testing.T) {
	assert := assert.New(t)

	valid := Conjunction{RelationLiteral(worldmodel.RelOntop, "a", "b")}
	invalidSharedSource := Conjunction{
		RelationLiteral(worldmodel.RelOntop, "a", "b"),
		RelationLiteral(worldmodel.RelOntop, "a", "c"),
	}
	okFloorTarget := Conjunction{
		RelationLiteral(worldmodel.RelOntop, "a", worldmodel.Floor),
		RelationLiteral(worldmodel.RelOntop, "b", worldmodel.Floor),
	}

	d := DNF{valid, invalidSharedSource, okFloorTarget}
	pruned := pruneInvalidMultiTarget(d, worldmodel.Floor)
	assert.Equal(DNF{valid, okFloorTarget}, pruned)
}
