package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrdlite/planner/internal/worldmodel"
)

func testWorld() worldmodel.Snapshot {
	return worldmodel.Snapshot{
		Arm: 0,
		Stacks: [][]string{
			{"redBall", "blueBall"},
			{"greenBox"},
		},
		Objects: worldmodel.Objects{
			"redBall":  {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
			"blueBall": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "blue"},
			"greenBox": {Form: worldmodel.FormBox, Size: worldmodel.SizeLarge, Color: "green"},
		},
	}
}

func Test_FindCandidates(t *testing.T) {
	world := testWorld()

	testCases := []struct {
		name     string
		obj      Object
		restrict []string
		expect   []string
	}{
		{
			name:   "match by form",
			obj:    Object{Form: worldmodel.FormBall},
			expect: []string{"redBall", "blueBall"},
		},
		{
			name:   "match by form and color",
			obj:    Object{Form: worldmodel.FormBall, Color: "red"},
			expect: []string{"redBall"},
		},
		{
			name:   "any form matches everything",
			obj:    Object{Form: worldmodel.FormAny},
			expect: []string{"redBall", "blueBall", "greenBox", worldmodel.Floor},
		},
		{
			name:     "restricted to a subset",
			obj:      Object{Form: worldmodel.FormBall},
			restrict: []string{"blueBall"},
			expect:   []string{"blueBall"},
		},
		{
			name:   "no match",
			obj:    Object{Form: worldmodel.FormPyramid},
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			actual := FindCandidates(Entity{Object: tc.obj}, world, tc.restrict)
			assert.ElementsMatch(tc.expect, actual)
		})
	}
}

func Test_FindCandidates_NestedLocation(t *testing.T) {
	assert := assert.New(t)
	world := testWorld()

	// "the ball that is ontop of the greenBox" -- none is, since both balls
	// sit in the other column.
	entity := Entity{
		Object: Object{
			Form: worldmodel.FormBall,
			Location: &Location{
				Relation: worldmodel.RelOntop,
				Entity:   Entity{Quantifier: QuantifierThe, Object: Object{Form: worldmodel.FormBox}},
			},
		},
	}
	actual := FindCandidates(entity, world, nil)
	assert.Empty(actual)

	// "the ball that is ontop of the redBall" -- blueBall qualifies.
	entity2 := Entity{
		Object: Object{
			Form: worldmodel.FormBall,
			Location: &Location{
				Relation: worldmodel.RelOntop,
				Entity:   Entity{Quantifier: QuantifierThe, Object: Object{Color: "red"}},
			},
		},
	}
	actual2 := FindCandidates(entity2, world, nil)
	assert.Equal([]string{"blueBall"}, actual2)
}

func Test_ApplyQuantifier(t *testing.T) {
	testCases := []struct {
		name           string
		q              Quantifier
		candidates     []string
		expectOK       bool
		expectAmbig    bool
	}{
		{name: "none found", q: QuantifierThe, candidates: nil, expectOK: false, expectAmbig: false},
		{name: "the, exactly one", q: QuantifierThe, candidates: []string{"a"}, expectOK: true, expectAmbig: false},
		{name: "the, more than one", q: QuantifierThe, candidates: []string{"a", "b"}, expectOK: false, expectAmbig: true},
		{name: "any, more than one is fine", q: QuantifierAny, candidates: []string{"a", "b"}, expectOK: true, expectAmbig: false},
		{name: "all, more than one is fine", q: QuantifierAll, candidates: []string{"a", "b"}, expectOK: true, expectAmbig: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			ok, ambiguous := ApplyQuantifier(tc.q, tc.candidates)
			assert.Equal(tc.expectOK, ok)
			assert.Equal(tc.expectAmbig, ambiguous)
		})
	}
}
