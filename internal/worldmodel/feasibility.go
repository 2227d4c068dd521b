package worldmodel

// CanSupport implements the physical feasibility predicate of §3.5: a purely
// static check of whether rel between an object with properties lhs and one
// with properties rhs is ever physically possible, independent of where
// either currently sits. It says nothing about whether the relation holds
// right now; see the extensor in extensor.go and the goal test for that.
//
// The source material indexes object properties by dynamic string name
// ("size", "color", "form"); per the design notes this is reimplemented as a
// dispatch over the fixed Form/Size enum instead.
func CanSupport(lhs, rhs Object, rel Relation) bool {
	switch rel {
	case RelOntop:
		return canSupportOntop(lhs, rhs)
	case RelInside:
		return canSupportInside(lhs, rhs)
	case RelAbove:
		return canSupportAbove(lhs, rhs)
	case RelUnder:
		// under is defined as can_support(rhs, "above", lhs).
		return canSupportAbove(rhs, lhs)
	case RelLeftOf, RelRightOf, RelBeside:
		return true
	case RelHolding:
		return true
	default:
		return false
	}
}

func canSupportOntop(lhs, rhs Object) bool {
	if rhs.Form == FormBox || rhs.Form == FormBall {
		return false
	}
	if lhs.Form == FormBall && rhs.Form != FormFloor {
		return false
	}
	if lhs.Size == SizeLarge && rhs.Size == SizeSmall {
		return false
	}
	if lhs.Form == FormBox && rhs.Size == SizeSmall && (rhs.Form == FormBrick || rhs.Form == FormPyramid) {
		return false
	}
	if lhs.Form == FormBox && lhs.Size == SizeLarge && rhs.Form == FormPyramid {
		return false
	}
	return true
}

func canSupportInside(lhs, rhs Object) bool {
	if rhs.Form != FormBox {
		return false
	}
	if lhs.Size == rhs.Size {
		switch lhs.Form {
		case FormBall, FormBrick, FormTable:
			// allowed regardless of same-size rule
		default:
			return false
		}
	}
	if rhs.Size == SizeSmall && lhs.Size == SizeLarge {
		return false
	}
	return true
}

func canSupportAbove(lhs, rhs Object) bool {
	if rhs.Form == FormBall {
		return false
	}
	if lhs.Size == SizeLarge && rhs.Size == SizeSmall {
		return false
	}
	return true
}

// ValidFloorUsage reports whether id (which may be the floor sentinel) is
// being used in a position that floor is allowed to occupy for rel: floor
// may only appear as the rhs of ontop/above and as the lhs of under. Any
// other use of the floor identifier is a hard error per §3.5.
func ValidFloorUsage(id string, rel Relation, isLHS bool) bool {
	if id != Floor {
		return true
	}
	if isLHS {
		return rel == RelUnder
	}
	return rel == RelOntop || rel == RelAbove
}
