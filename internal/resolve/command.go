package resolve

// CommandKind is the verb of a parsed command (§6.1).
type CommandKind string

const (
	CommandTake CommandKind = "take"
	CommandPut  CommandKind = "put"
	CommandMove CommandKind = "move"
)

// Command is the parse tree delivered by the external grammar parser for one
// user utterance (§6.1). Entity is used by take/move; Location is used by
// put/move. Source for "put" is always whatever is currently held.
type Command struct {
	Kind     CommandKind
	Entity   *Entity
	Location *Location
}
