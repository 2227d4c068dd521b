// Package surface is a compact, line-oriented stand-in grammar for turning
// text into resolve.Command trees. It exists so the planner, search and
// render packages have something to exercise from the CLI and from tests
// without depending on a full natural-language parser; the production
// grammar (ambiguity-preserving, multi-parse) is treated as an external
// collaborator and is out of scope here, same as in the distilled
// specification. Keep expectations modest: a small fixed vocabulary of
// verbs, quantifiers, relations and forms, one relative clause of nesting,
// and no tolerance for actual ambiguity — every sentence produces exactly
// one resolve.Command, never several candidate parses.
package surface

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shrdlite/planner/internal/resolve"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// caser folds input to lower case for matching against the fixed vocabulary
// below. Unicode case folding is used instead of strings.ToLower since input
// is free-form operator text, not a value this package controls.
var caser = cases.Lower(language.English)

// phrase aliases, longest first, applied to the whole lowercased sentence
// before tokenizing. Mirrors the teacher's verb-alias-expansion approach but
// done as string substitution since our phrases may be longer than two
// words.
var phraseAliases = []struct{ from, to string }{
	{"pick up", "take"},
	{"picks up", "take"},
	{"to the left of", "leftof"},
	{"to the right of", "rightof"},
	{"left of", "leftof"},
	{"right of", "rightof"},
	{"next to", "beside"},
	{"on top of", "ontop"},
	{"inside of", "inside"},
}

var verbAliases = map[string]resolve.CommandKind{
	"take":  resolve.CommandTake,
	"grab":  resolve.CommandTake,
	"get":   resolve.CommandTake,
	"put":   resolve.CommandPut,
	"drop":  resolve.CommandPut,
	"place": resolve.CommandPut,
	"move":  resolve.CommandMove,
}

var quantifierWords = map[string]resolve.Quantifier{
	"the":   resolve.QuantifierThe,
	"a":     resolve.QuantifierAny,
	"an":    resolve.QuantifierAny,
	"any":   resolve.QuantifierAny,
	"all":   resolve.QuantifierAll,
	"every": resolve.QuantifierAll,
	"each":  resolve.QuantifierAll,
}

var relationWords = map[string]worldmodel.Relation{
	"on":       worldmodel.RelOntop,
	"onto":     worldmodel.RelOntop,
	"ontop":    worldmodel.RelOntop,
	"in":       worldmodel.RelInside,
	"into":     worldmodel.RelInside,
	"inside":   worldmodel.RelInside,
	"above":    worldmodel.RelAbove,
	"over":     worldmodel.RelAbove,
	"under":    worldmodel.RelUnder,
	"below":    worldmodel.RelUnder,
	"beneath":  worldmodel.RelUnder,
	"leftof":   worldmodel.RelLeftOf,
	"rightof":  worldmodel.RelRightOf,
	"beside":   worldmodel.RelBeside,
}

var sizeWords = map[string]worldmodel.Size{
	"small": worldmodel.SizeSmall,
	"big":   worldmodel.SizeLarge,
	"large": worldmodel.SizeLarge,
}

var formWords = map[string]worldmodel.Form{
	"brick":   worldmodel.FormBrick,
	"plank":   worldmodel.FormPlank,
	"ball":    worldmodel.FormBall,
	"pyramid": worldmodel.FormPyramid,
	"box":     worldmodel.FormBox,
	"table":   worldmodel.FormTable,
	"floor":   worldmodel.FormFloor,
	"object":  worldmodel.FormAny,
	"thing":   worldmodel.FormAny,
	"one":     worldmodel.FormAny,
	"it":      worldmodel.FormAny,
}

var relativeClauseWords = map[string]bool{"that": true, "which": true, "is": true, "are": true}

// Parse turns one line of input into a resolve.Command. It returns an error
// for input it cannot make sense of at all; it never reports ambiguity,
// since this grammar does not track alternative parses (see the package
// doc).
func Parse(line string) (resolve.Command, error) {
	norm := caser.String(strings.TrimSpace(line))
	for _, alias := range phraseAliases {
		norm = strings.ReplaceAll(norm, alias.from, alias.to)
	}
	tokens := strings.Fields(norm)
	if len(tokens) == 0 {
		return resolve.Command{}, fmt.Errorf("surface: empty input")
	}

	kind, ok := verbAliases[tokens[0]]
	if !ok {
		return resolve.Command{}, fmt.Errorf("surface: unrecognized verb %q", tokens[0])
	}
	rest := tokens[1:]

	switch kind {
	case resolve.CommandTake:
		entity, _, err := parseEntity(rest)
		if err != nil {
			return resolve.Command{}, err
		}
		return resolve.Command{Kind: resolve.CommandTake, Entity: &entity}, nil

	case resolve.CommandPut:
		if len(rest) > 0 && rest[0] == "it" {
			rest = rest[1:]
		}
		loc, err := parseLocation(rest)
		if err != nil {
			return resolve.Command{}, err
		}
		return resolve.Command{Kind: resolve.CommandPut, Location: &loc}, nil

	case resolve.CommandMove:
		entity, consumed, err := parseEntity(rest)
		if err != nil {
			return resolve.Command{}, err
		}
		loc, err := parseLocation(rest[consumed:])
		if err != nil {
			return resolve.Command{}, err
		}
		return resolve.Command{Kind: resolve.CommandMove, Entity: &entity, Location: &loc}, nil
	}

	return resolve.Command{}, fmt.Errorf("surface: unhandled command kind %v", kind)
}

// parseLocation expects tokens to begin with a relation keyword followed by
// an entity description.
func parseLocation(tokens []string) (resolve.Location, error) {
	if len(tokens) == 0 {
		return resolve.Location{}, fmt.Errorf("surface: expected a location")
	}
	rel, ok := relationWords[tokens[0]]
	if !ok {
		return resolve.Location{}, fmt.Errorf("surface: expected a relation word, got %q", tokens[0])
	}
	entity, _, err := parseEntity(tokens[1:])
	if err != nil {
		return resolve.Location{}, err
	}
	return resolve.Location{Relation: rel, Entity: entity}, nil
}

// parseEntity consumes an optional quantifier, optional size, optional
// color, and a form word, then an optional trailing relative clause
// ("that is <relation> <entity>") which becomes the entity's Location.
// It returns the entity and the number of tokens consumed from the front of
// tokens, so callers (like "move", which has an entity immediately followed
// by its own destination location) know where the entity description ends.
func parseEntity(tokens []string) (resolve.Entity, int, error) {
	if len(tokens) == 0 {
		return resolve.Entity{}, 0, fmt.Errorf("surface: expected an entity description")
	}

	i := 0
	quantifier := resolve.QuantifierThe
	if q, ok := quantifierWords[tokens[i]]; ok {
		quantifier = q
		i++
	}

	obj := worldmodel.Object{Form: worldmodel.FormAny}

	for i < len(tokens) {
		tok := tokens[i]
		if relativeClauseWords[tok] {
			break
		}
		if _, isRelation := relationWords[tok]; isRelation {
			break
		}
		if size, ok := sizeWords[tok]; ok {
			obj.Size = size
			i++
			continue
		}
		if form, ok := formWords[tok]; ok {
			obj.Form = form
			i++
			break
		}
		// not a recognized keyword: treat as a color adjective.
		obj.Color = tok
		i++
	}

	// optional relative clause: "that is <relation> <entity>". The relative
	// marker must actually be present; a bare relation word immediately
	// following the entity (as in "move X onto Y") belongs to the caller's
	// own location, not to this entity's.
	sawRelativeMarker := false
	for i < len(tokens) && relativeClauseWords[tokens[i]] {
		sawRelativeMarker = true
		i++
	}
	if sawRelativeMarker && i < len(tokens) {
		if _, isRelation := relationWords[tokens[i]]; isRelation {
			loc, err := parseLocation(tokens[i:])
			if err != nil {
				return resolve.Entity{}, 0, err
			}
			obj.Location = &loc
			i = len(tokens)
		}
	}

	return resolve.Entity{Quantifier: quantifier, Object: obj}, i, nil
}
