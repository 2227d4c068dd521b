// Package resolve implements the referring-expression resolver of §4.1a: it
// turns a parsed Entity (as delivered by the external grammar parser, §6.1)
// into the set of world object identifiers it refers to.
package resolve

import "github.com/shrdlite/planner/internal/worldmodel"

// Quantifier is how many of the matching candidates the entity refers to.
type Quantifier string

const (
	QuantifierThe Quantifier = "the"
	QuantifierAny Quantifier = "any"
	QuantifierAll Quantifier = "all"
)

// Entity is a quantified, possibly-nested referring expression, as produced
// by the external grammar parser (§6.1).
type Entity struct {
	Quantifier Quantifier
	Object     Object
}

// Object is a (possibly recursive) noun-phrase description. Size and Color
// are optional filters: the zero value means "unconstrained". Form is
// required by the external grammar but worldmodel.FormAny is accepted here
// to mean "any form". Inner may nest another Object description (as in "the
// box in the large box"), and Location may attach a locative modifier.
type Object struct {
	Size  worldmodel.Size
	Color string
	Form  worldmodel.Form

	Inner    *Object
	Location *Location
}

// Location nests another Entity under a relation: "the ball [inside the
// box]" has Relation=inside, Entity={the, box}.
type Location struct {
	Relation worldmodel.Relation
	Entity   Entity
}
