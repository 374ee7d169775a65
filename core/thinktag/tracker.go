package thinktag

import "strings"

// State identifies where the tracker currently is in the tag grammar.
type State int

const (
	// StateStart means nothing has been classified yet; the tracker is
	// deciding whether the stream opens with the reasoning tag.
	StateStart State = iota
	// StateThinking means the tracker is inside the reasoning tag.
	StateThinking
	// StateResponse means the tracker is inside the answer tag, or past the
	// reasoning tag when no distinct answer tag is configured.
	StateResponse
	// StateNoThinking means the reasoning tag never opened; all content is
	// answer content and no further tag scanning happens.
	StateNoThinking
	// StateUnknown means the tracker is between tags; text is withheld until
	// more input resolves it.
	StateUnknown
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateThinking:
		return "thinking"
	case StateResponse:
		return "response"
	case StateNoThinking:
		return "no_thinking"
	case StateUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// FragmentKind discriminates classified output fragments.
type FragmentKind int

const (
	// FragmentThinking marks reasoning content.
	FragmentThinking FragmentKind = iota
	// FragmentAnswer marks final answer content.
	FragmentAnswer
)

// Fragment is a ready-to-emit piece of classified content. Delimiter text is
// never part of a fragment.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Tracker is a per-choice state machine that classifies incoming content
// tokens. It is not safe for concurrent use; each streaming choice owns one.
type Tracker struct {
	openThink  string
	closeThink string

	// Empty when no distinct answer tag is configured, in which case all
	// text outside the reasoning tag is answer content.
	openAnswer  string
	closeAnswer string

	state State

	// residual holds as-yet-unclassified trailing text, kept between Update
	// calls to handle delimiters split across token boundaries.
	residual string
}

// New creates a Tracker for the given tag names. thinkTag is the reasoning
// tag name (e.g. "think" for <think>...</think>); answerTag optionally names
// a distinct answer tag and may be empty.
func New(thinkTag, answerTag string) *Tracker {
	t := &Tracker{
		openThink:  "<" + thinkTag + ">",
		closeThink: "</" + thinkTag + ">",
		state:      StateStart,
	}
	if answerTag != "" {
		t.openAnswer = "<" + answerTag + ">"
		t.closeAnswer = "</" + answerTag + ">"
	}
	return t
}

// State returns the tracker's current state.
func (t *Tracker) State() State {
	return t.state
}

// Update appends a newly arrived content token and returns any fragments that
// are safe to emit. Fragments are withheld while a delimiter might still be
// forming across token boundaries, so a call may return nothing even for a
// non-empty token.
func (t *Tracker) Update(token string) []Fragment {
	if token == "" {
		return nil
	}
	t.residual += token

	var fragments []Fragment
	for {
		before := t.residual
		beforeState := t.state

		switch t.state {
		case StateStart:
			fragments = t.scanStart(fragments)
		case StateThinking:
			fragments = t.scanInside(fragments, t.closeThink, FragmentThinking)
		case StateResponse:
			fragments = t.scanResponse(fragments)
		case StateNoThinking:
			fragments = t.flushAll(fragments, FragmentAnswer)
		case StateUnknown:
			t.scanBetween()
		}

		// Re-run when a state transition left unconsumed residual behind,
		// e.g. "abc</think>def" classified in two states within one token.
		if t.state == beforeState && t.residual == before {
			break
		}
	}

	return fragments
}

// Flush returns whatever residual text remains at end of stream, classified
// by the current state. A partial delimiter at end of input is literal text:
// nothing more is coming that could complete it.
func (t *Tracker) Flush() []Fragment {
	if t.residual == "" {
		return nil
	}
	text := t.residual
	t.residual = ""

	switch t.state {
	case StateThinking:
		return []Fragment{{Kind: FragmentThinking, Text: text}}
	case StateResponse, StateNoThinking:
		return []Fragment{{Kind: FragmentAnswer, Text: text}}
	case StateStart:
		// The reasoning tag never opened; the withheld prefix is answer text.
		t.state = StateNoThinking
		return []Fragment{{Kind: FragmentAnswer, Text: text}}
	default:
		// Between tags: unclassified residue is dropped with the delimiters.
		return nil
	}
}

// scanStart decides whether the stream opens with the reasoning tag. Leading
// whitespace before the tag is discarded.
func (t *Tracker) scanStart(fragments []Fragment) []Fragment {
	trimmed := strings.TrimLeft(t.residual, " \t\r\n")
	if trimmed == "" {
		t.residual = ""
		return fragments
	}

	if strings.HasPrefix(trimmed, t.openThink) {
		t.state = StateThinking
		t.residual = trimmed[len(t.openThink):]
		return fragments
	}

	if strings.HasPrefix(t.openThink, trimmed) {
		// The whole residual could still be the opening delimiter forming.
		t.residual = trimmed
		return fragments
	}

	// The stream does not open with the reasoning tag: no thinking at all.
	t.state = StateNoThinking
	return fragments
}

// scanInside emits text up to the closing delimiter (or up to the point where
// the delimiter might start forming) and transitions when the close is found.
func (t *Tracker) scanInside(fragments []Fragment, closeMarker string, kind FragmentKind) []Fragment {
	if idx := strings.Index(t.residual, closeMarker); idx >= 0 {
		if idx > 0 {
			fragments = append(fragments, Fragment{Kind: kind, Text: t.residual[:idx]})
		}
		t.residual = t.residual[idx+len(closeMarker):]
		t.state = t.afterClose(kind)
		return fragments
	}

	keep := partialSuffix(t.residual, closeMarker)
	if emit := t.residual[:len(t.residual)-keep]; emit != "" {
		fragments = append(fragments, Fragment{Kind: kind, Text: emit})
	}
	t.residual = t.residual[len(t.residual)-keep:]
	return fragments
}

// scanResponse handles answer content. With a configured answer tag the
// content is delimited; without one everything is answer text.
func (t *Tracker) scanResponse(fragments []Fragment) []Fragment {
	if t.closeAnswer == "" {
		return t.flushAll(fragments, FragmentAnswer)
	}
	return t.scanInside(fragments, t.closeAnswer, FragmentAnswer)
}

// scanBetween looks for the answer tag opening while between tags. Stray text
// between delimiters stays withheld.
func (t *Tracker) scanBetween() {
	if t.openAnswer == "" {
		return
	}
	if idx := strings.Index(t.residual, t.openAnswer); idx >= 0 {
		t.residual = t.residual[idx+len(t.openAnswer):]
		t.state = StateResponse
		return
	}
	// Keep only the tail that could still begin the opening delimiter.
	keep := partialSuffix(t.residual, t.openAnswer)
	t.residual = t.residual[len(t.residual)-keep:]
}

// flushAll emits the entire residual as one fragment of the given kind.
func (t *Tracker) flushAll(fragments []Fragment, kind FragmentKind) []Fragment {
	if t.residual == "" {
		return fragments
	}
	fragments = append(fragments, Fragment{Kind: kind, Text: t.residual})
	t.residual = ""
	return fragments
}

// afterClose returns the state entered once a closing delimiter is consumed.
func (t *Tracker) afterClose(kind FragmentKind) State {
	if kind == FragmentThinking && t.openAnswer == "" {
		// No distinct answer tag: everything after the reasoning tag is
		// answer content by definition.
		return StateResponse
	}
	return StateUnknown
}

// partialSuffix returns the length of the longest suffix of s that is a
// proper prefix of marker, i.e. the number of trailing bytes that could be a
// delimiter still forming across token boundaries.
func partialSuffix(s, marker string) int {
	max := len(marker) - 1
	if len(s) < max {
		max = len(s)
	}
	for n := max; n > 0; n-- {
		if strings.HasPrefix(marker, s[len(s)-n:]) {
			return n
		}
	}
	return 0
}
