// Package planerr defines the tagged error surface raised by the
// interpreter and planner. Each error carries both a terse Error() message
// for logs and a human-facing GameMessage() for display to an operator.
package planerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Use errors.Is(err, planerr.Ambiguous) etc. to classify an
// error returned from the interpreter or planner.
var (
	NoEntity          = errors.New("no entity given")
	NoSuchEntity      = errors.New("no matching entity found in the world")
	Ambiguous         = errors.New("more than one entity matches and quantifier requires exactly one")
	CannotPickUpFloor = errors.New("the floor cannot be picked up")
	NotHolding        = errors.New("nothing is currently held")
	NoValidSolution   = errors.New("no physically valid interpretation of the command exists")
	UnsupportedAll    = errors.New("the manipulator cannot hold more than one thing at once")
	SearchTimeout     = errors.New("search exceeded its time budget before finding a plan")
	NoPath            = errors.New("no plan exists that satisfies the goal")
)

// Error is a planner-raised error with both a technical message and a
// human-readable one suitable for display to whoever issued the command.
type Error struct {
	msg   string
	human string
	kind  error
}

func (e *Error) Error() string {
	return e.msg
}

// GameMessage returns the message that should be displayed to the user who
// issued the command that produced this error.
func (e *Error) GameMessage() string {
	return e.human
}

// Unwrap allows errors.Is(err, planerr.Ambiguous) and similar checks against
// the sentinel kind this Error was constructed from.
func (e *Error) Unwrap() error {
	return e.kind
}

// New creates an Error of the given sentinel kind with a human-facing
// message. The technical Error() message is derived automatically from kind
// and human unless technical is non-empty.
func New(kind error, human string, technical string) *Error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %s", kind, human)
	}
	return &Error{msg: technical, human: human, kind: kind}
}

// Newf is like New but formats human with the given format string and args.
func Newf(kind error, humanFormat string, a ...interface{}) *Error {
	return New(kind, fmt.Sprintf(humanFormat, a...), "")
}

// GameMessage returns the message to show to an operator for err. If err is
// not a *Error, err.Error() is returned unchanged.
func GameMessage(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.GameMessage()
	}
	return err.Error()
}
