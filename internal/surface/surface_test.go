package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrdlite/planner/internal/resolve"
	"github.com/shrdlite/planner/internal/worldmodel"
)

func Test_Parse_Take(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("take the red ball")
	assert.NoError(err)
	assert.Equal(resolve.CommandTake, cmd.Kind)
	assert.NotNil(cmd.Entity)
	assert.Equal(resolve.QuantifierThe, cmd.Entity.Quantifier)
	assert.Equal(worldmodel.FormBall, cmd.Entity.Object.Form)
	assert.Equal("red", cmd.Entity.Object.Color)
}

func Test_Parse_VerbAliasesAndPhraseAliases(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("pick up a small box")
	assert.NoError(err)
	assert.Equal(resolve.CommandTake, cmd.Kind)
	assert.Equal(resolve.QuantifierAny, cmd.Entity.Quantifier)
	assert.Equal(worldmodel.SizeSmall, cmd.Entity.Object.Size)
	assert.Equal(worldmodel.FormBox, cmd.Entity.Object.Form)
}

func Test_Parse_IsCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("TAKE THE RED BALL")
	assert.NoError(err)
	assert.Equal(resolve.CommandTake, cmd.Kind)
	assert.Equal("red", cmd.Entity.Object.Color)
}

func Test_Parse_Put(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("put it on the table")
	assert.NoError(err)
	assert.Equal(resolve.CommandPut, cmd.Kind)
	assert.NotNil(cmd.Location)
	assert.Equal(worldmodel.RelOntop, cmd.Location.Relation)
	assert.Equal(worldmodel.FormTable, cmd.Location.Entity.Object.Form)
}

func Test_Parse_Put_RelationPhraseAlias(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("drop it on top of the large box")
	assert.NoError(err)
	assert.Equal(resolve.CommandPut, cmd.Kind)
	assert.Equal(worldmodel.RelOntop, cmd.Location.Relation)
	assert.Equal(worldmodel.SizeLarge, cmd.Location.Entity.Object.Size)
}

func Test_Parse_Move(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("move the ball to the left of the box")
	assert.NoError(err)
	assert.Equal(resolve.CommandMove, cmd.Kind)
	assert.NotNil(cmd.Entity)
	assert.Equal(worldmodel.FormBall, cmd.Entity.Object.Form)
	assert.NotNil(cmd.Location)
	assert.Equal(worldmodel.RelLeftOf, cmd.Location.Relation)
	assert.Equal(worldmodel.FormBox, cmd.Location.Entity.Object.Form)
}

func Test_Parse_RelativeClause(t *testing.T) {
	assert := assert.New(t)

	cmd, err := Parse("take the ball that is ontop of the box")
	assert.NoError(err)
	assert.Equal(resolve.CommandTake, cmd.Kind)
	assert.Equal(worldmodel.FormBall, cmd.Entity.Object.Form)
	assert.NotNil(cmd.Entity.Object.Location)
	assert.Equal(worldmodel.RelOntop, cmd.Entity.Object.Location.Relation)
	assert.Equal(worldmodel.FormBox, cmd.Entity.Object.Location.Entity.Object.Form)
}

func Test_Parse_Quantifiers(t *testing.T) {
	testCases := []struct {
		word   string
		expect resolve.Quantifier
	}{
		{"the", resolve.QuantifierThe},
		{"a", resolve.QuantifierAny},
		{"an", resolve.QuantifierAny},
		{"any", resolve.QuantifierAny},
		{"all", resolve.QuantifierAll},
		{"every", resolve.QuantifierAll},
		{"each", resolve.QuantifierAll},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			assert := assert.New(t)
			cmd, err := Parse("take " + tc.word + " ball")
			assert.NoError(err)
			assert.Equal(tc.expect, cmd.Entity.Quantifier)
		})
	}
}

func Test_Parse_UnrecognizedVerb(t *testing.T) {
	_, err := Parse("juggle the ball")
	assert.Error(t, err)
}

func Test_Parse_EmptyInput(t *testing.T) {
	_, err := Parse("   ")
	assert.Error(t, err)
}

func Test_Parse_MissingEntity(t *testing.T) {
	_, err := Parse("take")
	assert.Error(t, err)
}

func Test_Parse_MissingLocation(t *testing.T) {
	_, err := Parse("put it")
	assert.Error(t, err)
}
