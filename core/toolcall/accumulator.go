package toolcall

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// emptyArguments is the normalized argument text for tools that declare no
// parameters. Servers may omit the empty-object text entirely for such tools;
// consumers still always receive syntactically valid JSON.
const emptyArguments = "{}"

// HasParameters reports whether a tool's schema declares parameters. Callers
// supply it once at session start so absent argument text can be normalized
// for zero-parameter tools. A nil lookup disables normalization.
type HasParameters func(toolName string) bool

// Completed is an immutable tool invocation built from an Accumulator.
type Completed struct {
	// ResponseID is the id of the response/completion this call belongs to.
	ResponseID string
	// Index is the call's position within its choice's tool list.
	Index int
	// ID is the server-supplied call id, or a synthesized one when the
	// server omitted it (required tool choice mode does that).
	ID string
	// Name is the function name.
	Name string
	// Arguments is the full argument string, concatenated in arrival order.
	Arguments string
}

// Accumulator assembles one tool invocation from fragmented deltas. One
// instance exists per (choice, tool-index) pair; it is created lazily the
// first time its index is observed and finalized exactly once.
type Accumulator struct {
	index     int
	id        string
	name      string
	arguments strings.Builder
	observed  bool
	completed *Completed
}

// NewAccumulator creates an empty accumulator for the given tool index.
func NewAccumulator(index int) *Accumulator {
	return &Accumulator{index: index}
}

// Index returns the tool index this accumulator assembles.
func (a *Accumulator) Index() int {
	return a.index
}

// Finalized reports whether Build has already run.
func (a *Accumulator) Finalized() bool {
	return a.completed != nil
}

// Observed reports whether any delta ever reached this accumulator. A slot
// created only to keep tool indices dense when the stream skips an index
// stays unobserved and never becomes a call.
func (a *Accumulator) Observed() bool {
	return a.observed
}

// Append merges one delta into the accumulator: id and name use first
// non-blank wins, argument fragments are concatenated unconditionally in
// arrival order (order is authoritative).
func (a *Accumulator) Append(id, name, argumentFragment string) {
	a.observed = true
	if a.id == "" && id != "" {
		a.id = id
	}
	if a.name == "" && strings.TrimSpace(name) != "" {
		a.name = name
	}
	if argumentFragment != "" {
		a.arguments.WriteString(argumentFragment)
	}
}

// Name returns the function name accumulated so far.
func (a *Accumulator) Name() string {
	return a.name
}

// Arguments returns the argument text accumulated so far.
func (a *Accumulator) Arguments() string {
	return a.arguments.String()
}

// Build finalizes the accumulator into a Completed call. If the server never
// supplied a call id a fresh one is synthesized; if the tool is declared
// parameterless and no argument text ever arrived, the arguments are
// normalized to the empty-object literal. Build is idempotent: repeated calls
// return the same value (including the same synthesized id), and the
// accumulator is never mutated again after the first call.
func (a *Accumulator) Build(responseID string, hasParameters HasParameters) Completed {
	if a.completed != nil {
		return *a.completed
	}

	id := a.id
	if id == "" {
		id = newCallID()
	}

	arguments := a.arguments.String()
	if strings.TrimSpace(arguments) == "" && hasParameters != nil && !hasParameters(a.name) {
		arguments = emptyArguments
	}

	a.completed = &Completed{
		ResponseID: responseID,
		Index:      a.index,
		ID:         id,
		Name:       a.name,
		Arguments:  arguments,
	}
	return *a.completed
}

// newCallID synthesizes a call id in the call_<nanoid> format servers use.
// The id only needs to be unique within the conversation, not unguessable.
func newCallID() string {
	return "call_" + gonanoid.Must()
}
