package worldmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func exampleSnapshot() Snapshot {
	return Snapshot{
		Arm:     1,
		Holding: "",
		Stacks: [][]string{
			{"a", "b"},
			{"c"},
			{},
		},
		Objects: Objects{
			"a": {Form: FormBrick, Size: SizeLarge, Color: "red"},
			"b": {Form: FormBall, Size: SizeSmall, Color: "blue"},
			"c": {Form: FormBox, Size: SizeLarge, Color: "green"},
		},
	}
}

func Test_Snapshot_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		snap      Snapshot
		expectErr bool
	}{
		{
			name: "valid",
			snap: exampleSnapshot(),
		},
		{
			name: "no columns",
			snap: Snapshot{Stacks: nil},
			expectErr: true,
		},
		{
			name: "arm out of range",
			snap: Snapshot{Stacks: [][]string{{}}, Arm: 5},
			expectErr: true,
		},
		{
			name: "undefined identifier in stack",
			snap: Snapshot{Stacks: [][]string{{"z"}}, Objects: Objects{}},
			expectErr: true,
		},
		{
			name: "floor cannot appear in a stack",
			snap: Snapshot{Stacks: [][]string{{Floor}}, Objects: Objects{}},
			expectErr: true,
		},
		{
			name:      "undefined holding",
			snap:      Snapshot{Stacks: [][]string{{}}, Holding: "z", Objects: Objects{}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.snap.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Snapshot_Describe(t *testing.T) {
	assert := assert.New(t)
	s := exampleSnapshot()

	obj, ok := s.Describe("a")
	assert.True(ok)
	assert.Equal(FormBrick, obj.Form)

	floorObj, ok := s.Describe(Floor)
	assert.True(ok)
	assert.Equal(FormFloor, floorObj.Form)

	_, ok = s.Describe("nonexistent")
	assert.False(ok)
}

func Test_Snapshot_Locate(t *testing.T) {
	assert := assert.New(t)
	s := exampleSnapshot()

	col, height, ok := s.Locate("b")
	assert.True(ok)
	assert.Equal(0, col)
	assert.Equal(1, height)

	_, _, ok = s.Locate("nonexistent")
	assert.False(ok)
}

func Test_Snapshot_AllIDs(t *testing.T) {
	assert := assert.New(t)
	s := exampleSnapshot()
	s.Holding = "c"
	s.Stacks = [][]string{{"a", "b"}, {}}

	ids := s.AllIDs()
	assert.ElementsMatch([]string{"a", "b", "c"}, ids)
}

func Test_Extend(t *testing.T) {
	s := exampleSnapshot()

	testCases := []struct {
		name   string
		id     string
		rel    Relation
		expect []string
	}{
		{name: "leftof", id: "c", rel: RelLeftOf, expect: nil},
		{name: "rightof", id: "c", rel: RelRightOf, expect: []string{"a", "b"}},
		{name: "ontop of nonzero height", id: "b", rel: RelOntop, expect: []string{"a"}},
		{name: "ontop of floor", id: "a", rel: RelOntop, expect: []string{Floor}},
		{name: "above", id: "b", rel: RelAbove, expect: []string{Floor, "a"}},
		{name: "under with nothing above", id: "b", rel: RelUnder, expect: nil},
		{name: "held object has no position", id: "held", rel: RelOntop, expect: nil},
	}

	held := s
	held.Holding = "held"

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			var related []string
			if tc.name == "held object has no position" {
				related = Extend(held, tc.id, tc.rel)
			} else {
				related = Extend(s, tc.id, tc.rel)
			}
			assert.Equal(tc.expect, related)
		})
	}
}

func Test_CanSupport(t *testing.T) {
	testCases := []struct {
		name   string
		lhs    Object
		rhs    Object
		rel    Relation
		expect bool
	}{
		{name: "ball cannot go ontop of anything but floor", lhs: Object{Form: FormBall}, rhs: Object{Form: FormBrick}, rel: RelOntop, expect: false},
		{name: "ball can go ontop of floor", lhs: Object{Form: FormBall}, rhs: Object{Form: FormFloor}, rel: RelOntop, expect: true},
		{name: "large cannot go ontop of small", lhs: Object{Size: SizeLarge}, rhs: Object{Size: SizeSmall}, rel: RelOntop, expect: false},
		{name: "nothing goes ontop of a box or ball", lhs: Object{Form: FormBrick}, rhs: Object{Form: FormBox}, rel: RelOntop, expect: false},
		{name: "inside requires a box", lhs: Object{Form: FormBrick}, rhs: Object{Form: FormBrick}, rel: RelInside, expect: false},
		{name: "large cannot go inside small box", lhs: Object{Size: SizeLarge}, rhs: Object{Form: FormBox, Size: SizeSmall}, rel: RelInside, expect: false},
		{name: "nothing goes above a ball", lhs: Object{Form: FormBrick}, rhs: Object{Form: FormBall}, rel: RelAbove, expect: false},
		{name: "under is above reversed", lhs: Object{Form: FormBall}, rhs: Object{Form: FormBrick}, rel: RelUnder, expect: false},
		{name: "leftof is always feasible", lhs: Object{}, rhs: Object{}, rel: RelLeftOf, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, CanSupport(tc.lhs, tc.rhs, tc.rel))
		})
	}
}

func Test_ValidFloorUsage(t *testing.T) {
	assert := assert.New(t)

	assert.True(ValidFloorUsage("a", RelOntop, false))
	assert.True(ValidFloorUsage(Floor, RelUnder, true))
	assert.False(ValidFloorUsage(Floor, RelOntop, true))
	assert.True(ValidFloorUsage(Floor, RelOntop, false))
	assert.False(ValidFloorUsage(Floor, RelInside, false))
}
