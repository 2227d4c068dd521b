package worldmodel

// Relation is one of the eight relations a goal literal or location clause
// can be expressed in terms of (§3.2).
type Relation string

const (
	RelHolding  Relation = "holding"
	RelOntop    Relation = "ontop"
	RelInside   Relation = "inside"
	RelAbove    Relation = "above"
	RelUnder    Relation = "under"
	RelLeftOf   Relation = "leftof"
	RelRightOf  Relation = "rightof"
	RelBeside   Relation = "beside"
)

// IsBinary reports whether the relation takes two arguments. The only unary
// relation is "holding".
func (r Relation) IsBinary() bool {
	return r != RelHolding
}
