package render

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/shrdlite/planner/internal/search"
	"github.com/shrdlite/planner/internal/worldmodel"
)

// ConsoleWidth is the column width utterances are wrapped to by Summarize,
// matching the interactive engine's console width.
const ConsoleWidth = 80

// AlreadyTrue is the whole-plan utterance emitted when the goal was already
// satisfied at the start state, per §4.5 and §6.2.
const AlreadyTrue = "That is already true!"

// Utterances renders a solved search.Path into the single interleaved
// action/utterance stream described by §6.2: the tokens "l", "r", "p", "d"
// are the primitive actions verbatim, and every other string is a
// user-facing utterance to be displayed before the action that follows it.
//
// A pick is preceded by "Taking the <desc>" when it is the last pick in the
// path, or "Moving the <desc>" otherwise. A drop is preceded by
// "Dropping the <desc>" only when no pick utterance has already been
// emitted since the start of the plan or the previous drop — picking an
// object up and immediately setting it down in its final place is narrated
// once, at the pick.
//
// An empty path means the goal already held at the start state; its sole
// rendering is AlreadyTrue.
func Utterances(path search.Path, objects worldmodel.Objects) []string {
	if len(path.Actions) == 0 {
		return []string{AlreadyTrue}
	}

	lastPick := -1
	for i, action := range path.Actions {
		if action == "p" {
			lastPick = i
		}
	}

	stream := make([]string, 0, len(path.Actions)*2)
	pickedInSegment := false
	for i, action := range path.Actions {
		switch action {
		case "l", "r":
			stream = append(stream, action)
		case "p":
			after := path.States[i+1]
			desc := ShortestDescription(objects, after.Holding)
			if i == lastPick {
				stream = append(stream, fmt.Sprintf("Taking the %s", desc))
			} else {
				stream = append(stream, fmt.Sprintf("Moving the %s", desc))
			}
			stream = append(stream, action)
			pickedInSegment = true
		case "d":
			if !pickedInSegment {
				before := path.States[i]
				desc := ShortestDescription(objects, before.Holding)
				stream = append(stream, fmt.Sprintf("Dropping the %s", desc))
			}
			stream = append(stream, action)
			pickedInSegment = false
		default:
			stream = append(stream, action)
		}
	}
	return stream
}

// Summarize joins a rendered action/utterance stream into a single wrapped
// block of text suitable for display to an operator, word-wrapping at
// ConsoleWidth the same way the interactive engine wraps error messages.
// Primitive action tokens are not narrated here; they have no English
// rendering of their own and are left to the caller driving the arm.
func Summarize(lines []string) string {
	if len(lines) == 0 {
		return AlreadyTrue
	}
	joined := ""
	for _, l := range lines {
		switch l {
		case "l", "r", "p", "d":
			continue
		}
		joined += l + " "
	}
	if joined == "" {
		return AlreadyTrue
	}
	return rosed.Edit(joined).Wrap(ConsoleWidth).String()
}
