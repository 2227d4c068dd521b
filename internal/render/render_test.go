package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrdlite/planner/internal/search"
	"github.com/shrdlite/planner/internal/worldmodel"
)

func Test_ShortestDescription(t *testing.T) {
	testCases := []struct {
		name    string
		objects worldmodel.Objects
		id      string
		expect  string
	}{
		{
			name:   "floor",
			id:     worldmodel.Floor,
			expect: "the floor",
		},
		{
			name: "unique form needs nothing else",
			objects: worldmodel.Objects{
				"target": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
				"other":  {Form: worldmodel.FormBox, Size: worldmodel.SizeSmall, Color: "red"},
			},
			id:     "target",
			expect: "the ball",
		},
		{
			name: "size alone disambiguates",
			objects: worldmodel.Objects{
				"target": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
				"other":  {Form: worldmodel.FormBall, Size: worldmodel.SizeLarge, Color: "blue"},
			},
			id:     "target",
			expect: "the small ball",
		},
		{
			name: "color alone disambiguates once size fails to",
			objects: worldmodel.Objects{
				"target": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
				"other":  {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "blue"},
			},
			id:     "target",
			expect: "the red ball",
		},
		{
			name: "indistinguishable twins fall back to fully qualified",
			objects: worldmodel.Objects{
				"target": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
				"other":  {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
			},
			id:     "target",
			expect: "the small red ball",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ShortestDescription(tc.objects, tc.id))
		})
	}
}

func Test_ShortestDescription_UnknownID(t *testing.T) {
	assert.Equal(t, "mystery", ShortestDescription(worldmodel.Objects{}, "mystery"))
}

func Test_Utterances_SinglePickIsTaking(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
	}
	path := search.Path{
		Actions: []string{"r", "p", "l", "d"},
		States: []search.State{
			{Stacks: [][]string{{}, {"ball"}}, Arm: 0},
			{Stacks: [][]string{{}, {"ball"}}, Arm: 1},
			{Stacks: [][]string{{}, {}}, Arm: 1, Holding: "ball"},
			{Stacks: [][]string{{}, {}}, Arm: 0, Holding: "ball"},
			{Stacks: [][]string{{"ball"}, {}}, Arm: 0},
		},
	}

	lines := Utterances(path, objects)
	assert.Equal([]string{
		"r",
		"Taking the ball",
		"p",
		"l",
		"d",
	}, lines)
}

func Test_Utterances_EarlierPickIsMoving(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
		"box":  {Form: worldmodel.FormBox, Size: worldmodel.SizeSmall, Color: "blue"},
	}
	// Two pick/drop segments: the first pick is not the last pick in the
	// path, so it renders as "Moving", not "Taking".
	path := search.Path{
		Actions: []string{"p", "d", "r", "p", "d"},
		States: []search.State{
			{Stacks: [][]string{{"ball"}, {"box"}}, Arm: 0},
			{Stacks: [][]string{{}, {"box"}}, Arm: 0, Holding: "ball"},
			{Stacks: [][]string{{"ball"}, {"box"}}, Arm: 0},
			{Stacks: [][]string{{"ball"}, {"box"}}, Arm: 1},
			{Stacks: [][]string{{"ball"}, {}}, Arm: 1, Holding: "box"},
			{Stacks: [][]string{{"ball"}, {"box"}}, Arm: 1},
		},
	}

	lines := Utterances(path, objects)
	assert.Equal([]string{
		"Moving the ball",
		"p",
		"d",
		"r",
		"Taking the box",
		"p",
		"d",
	}, lines)
}

func Test_Utterances_DropAfterPickInSameSegmentIsUnnarrated(t *testing.T) {
	assert := assert.New(t)
	objects := worldmodel.Objects{
		"ball": {Form: worldmodel.FormBall, Size: worldmodel.SizeSmall, Color: "red"},
	}
	path := search.Path{
		Actions: []string{"p", "d"},
		States: []search.State{
			{Stacks: [][]string{{"ball"}}, Arm: 0},
			{Stacks: [][]string{{}}, Arm: 0, Holding: "ball"},
			{Stacks: [][]string{{"ball"}}, Arm: 0},
		},
	}

	lines := Utterances(path, objects)
	assert.Equal([]string{"Taking the ball", "p", "d"}, lines)
}

func Test_Utterances_EmptyPlanIsAlreadyTrue(t *testing.T) {
	lines := Utterances(search.Path{}, worldmodel.Objects{})
	assert.Equal(t, []string{"That is already true!"}, lines)
}

func Test_Summarize_Empty(t *testing.T) {
	assert.Equal(t, "That is already true!", Summarize(nil))
}

func Test_Summarize_JoinsAndWraps(t *testing.T) {
	lines := []string{"r", "Moving the ball", "p", "l", "d"}
	summary := Summarize(lines)
	assert.Contains(t, summary, "Moving the ball")
	assert.NotContains(t, summary, "\"r\"")
}
