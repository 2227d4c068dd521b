// Package render turns a solved search.Path into the utterance stream of
// §4.5 and provides the shortest unambiguous referring expression of §4.6.
package render

import (
	"strings"

	"github.com/shrdlite/planner/internal/worldmodel"
)

// ShortestDescription returns the shortest noun phrase that uniquely picks
// out id among every other object sharing its form, per §4.6: form alone if
// that already disambiguates, otherwise form plus whichever single one of
// size/color disambiguates, otherwise form plus both.
func ShortestDescription(objects worldmodel.Objects, id string) string {
	if id == worldmodel.Floor {
		return "the floor"
	}
	obj, ok := objects[id]
	if !ok {
		return id
	}

	var sameForm []string
	for other, o := range objects {
		if other != id && o.Form == obj.Form {
			sameForm = append(sameForm, other)
		}
	}
	if len(sameForm) == 0 {
		return phrase(obj, false, false)
	}

	// Try increasingly specific attribute combinations until no remaining
	// sibling still matches; size is tried before color arbitrarily, since
	// the spec does not prescribe an ordering between equally-disambiguating
	// attributes.
	combos := []struct{ withSize, withColor bool }{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	}
	for _, combo := range combos {
		if !anyMatches(objects, sameForm, obj, combo.withSize, combo.withColor) {
			return phrase(obj, combo.withSize, combo.withColor)
		}
	}
	// Every attribute exhausted and siblings still match: the world has two
	// indistinguishable objects. Fall back to the fully-qualified phrase;
	// whichever one the planner meant, the operator can use the identifier.
	return phrase(obj, true, true)
}

func anyMatches(objects worldmodel.Objects, candidates []string, obj worldmodel.Object, withSize, withColor bool) bool {
	for _, c := range candidates {
		other := objects[c]
		if withSize && other.Size != obj.Size {
			continue
		}
		if withColor && other.Color != obj.Color {
			continue
		}
		return true
	}
	return false
}

func phrase(obj worldmodel.Object, withSize, withColor bool) string {
	var words []string
	if withSize && obj.Size != "" {
		words = append(words, string(obj.Size))
	}
	if withColor && obj.Color != "" {
		words = append(words, obj.Color)
	}
	words = append(words, string(obj.Form))
	return "the " + strings.Join(words, " ")
}
