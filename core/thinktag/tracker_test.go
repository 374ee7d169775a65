package thinktag

import (
	"strings"
	"testing"
)

// feed pushes tokens through the tracker and returns the concatenated
// thinking and answer text emitted, flushing at the end when asked.
func feed(t *testing.T, tracker *Tracker, tokens []string, flush bool) (thinking, answer string) {
	t.Helper()
	var th, an strings.Builder
	collect := func(fragments []Fragment) {
		for _, fragment := range fragments {
			switch fragment.Kind {
			case FragmentThinking:
				th.WriteString(fragment.Text)
			case FragmentAnswer:
				an.WriteString(fragment.Text)
			}
		}
	}
	for _, token := range tokens {
		collect(tracker.Update(token))
	}
	if flush {
		collect(tracker.Flush())
	}
	return th.String(), an.String()
}

func TestTracker_ThinkThenAnswer(t *testing.T) {
	tracker := New("think", "")
	thinking, answer := feed(t, tracker,
		[]string{"<think>", "step one", " step two", "</think>", "final answer"}, true)

	if thinking != "step one step two" {
		t.Errorf("thinking = %q", thinking)
	}
	if answer != "final answer" {
		t.Errorf("answer = %q", answer)
	}
	if tracker.State() != StateResponse {
		t.Errorf("state = %v, want response", tracker.State())
	}
}

func TestTracker_NoThinking(t *testing.T) {
	tracker := New("think", "")
	thinking, answer := feed(t, tracker, []string{"Hello", " world"}, true)

	if thinking != "" {
		t.Errorf("thinking = %q, want empty", thinking)
	}
	if answer != "Hello world" {
		t.Errorf("answer = %q", answer)
	}
	if tracker.State() != StateNoThinking {
		t.Errorf("state = %v, want no_thinking", tracker.State())
	}
}

func TestTracker_DelimiterSplitAcrossTokens(t *testing.T) {
	tests := []struct {
		name         string
		tokens       []string
		wantThinking string
		wantAnswer   string
	}{
		{
			name:         "open tag split",
			tokens:       []string{"<th", "ink>reasoning</think>done"},
			wantThinking: "reasoning",
			wantAnswer:   "done",
		},
		{
			name:         "close tag split",
			tokens:       []string{"<think>reasoning</th", "ink>done"},
			wantThinking: "reasoning",
			wantAnswer:   "done",
		},
		{
			name:         "close tag split one byte at a time",
			tokens:       []string{"<think>r", "<", "/", "t", "h", "i", "n", "k", ">", "a"},
			wantThinking: "r",
			wantAnswer:   "a",
		},
		{
			name:         "everything in one token",
			tokens:       []string{"<think>abc</think>xyz"},
			wantThinking: "abc",
			wantAnswer:   "xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := New("think", "")
			thinking, answer := feed(t, tracker, tt.tokens, true)
			if thinking != tt.wantThinking {
				t.Errorf("thinking = %q, want %q", thinking, tt.wantThinking)
			}
			if answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", answer, tt.wantAnswer)
			}
		})
	}
}

func TestTracker_FalseDelimiterPrefix(t *testing.T) {
	// "</thi" looks like the close tag forming, but the next token proves it
	// was literal text. Nothing may be lost.
	tracker := New("think", "")
	thinking, answer := feed(t, tracker,
		[]string{"<think>a </thi", "ng happened</think>ok"}, true)

	if thinking != "a </thing happened" {
		t.Errorf("thinking = %q", thinking)
	}
	if answer != "ok" {
		t.Errorf("answer = %q", answer)
	}
}

func TestTracker_LeadingWhitespaceBeforeTag(t *testing.T) {
	tracker := New("think", "")
	thinking, answer := feed(t, tracker, []string{"  \n", "<think>r</think>a"}, true)

	if thinking != "r" {
		t.Errorf("thinking = %q", thinking)
	}
	if answer != "a" {
		t.Errorf("answer = %q", answer)
	}
}

func TestTracker_DistinctAnswerTag(t *testing.T) {
	tracker := New("think", "answer")
	thinking, answer := feed(t, tracker,
		[]string{"<think>plan</think>", " ignored glue ", "<answer>result</answer>", " trailing"}, true)

	if thinking != "plan" {
		t.Errorf("thinking = %q", thinking)
	}
	// Text between and after the configured tags is withheld and dropped.
	if answer != "result" {
		t.Errorf("answer = %q", answer)
	}
}

func TestTracker_AnswerTagSplitAcrossTokens(t *testing.T) {
	tracker := New("think", "answer")
	thinking, answer := feed(t, tracker,
		[]string{"<think>t</think><ans", "wer>res", "ult</ans", "wer>"}, true)

	if thinking != "t" {
		t.Errorf("thinking = %q", thinking)
	}
	if answer != "result" {
		t.Errorf("answer = %q", answer)
	}
}

func TestTracker_FlushInsideThinking(t *testing.T) {
	// Stream ends mid-reasoning: the residue is still reasoning content.
	tracker := New("think", "")
	thinking, answer := feed(t, tracker, []string{"<think>unfinished thought"}, true)

	if thinking != "unfinished thought" {
		t.Errorf("thinking = %q", thinking)
	}
	if answer != "" {
		t.Errorf("answer = %q, want empty", answer)
	}
}

func TestTracker_FlushPartialOpenTag(t *testing.T) {
	// The stream ends while the open tag could still have been forming.
	// Nothing more is coming, so the withheld prefix is literal answer text.
	tracker := New("think", "")
	thinking, answer := feed(t, tracker, []string{"<thi"}, true)

	if thinking != "" {
		t.Errorf("thinking = %q, want empty", thinking)
	}
	if answer != "<thi" {
		t.Errorf("answer = %q, want the literal prefix", answer)
	}
	if tracker.State() != StateNoThinking {
		t.Errorf("state = %v, want no_thinking", tracker.State())
	}
}

func TestTracker_PartialCloseAtEOF(t *testing.T) {
	// A partial close delimiter at end of input is literal reasoning text.
	tracker := New("think", "")
	thinking, _ := feed(t, tracker, []string{"<think>abc</th"}, true)

	if thinking != "abc</th" {
		t.Errorf("thinking = %q", thinking)
	}
}

func TestTracker_EmptyToken(t *testing.T) {
	tracker := New("think", "")
	if fragments := tracker.Update(""); fragments != nil {
		t.Errorf("Update(\"\") = %v, want nil", fragments)
	}
}

func TestTracker_EmptyThinkBlock(t *testing.T) {
	tracker := New("think", "")
	thinking, answer := feed(t, tracker, []string{"<think></think>answer"}, true)

	if thinking != "" {
		t.Errorf("thinking = %q, want empty", thinking)
	}
	if answer != "answer" {
		t.Errorf("answer = %q", answer)
	}
}

func TestTracker_WithholdsUntilResolved(t *testing.T) {
	tracker := New("think", "")

	// "<think" could still be the open tag: nothing may be emitted yet.
	if fragments := tracker.Update("<think"); len(fragments) != 0 {
		t.Errorf("emitted %v while delimiter still forming", fragments)
	}
	if tracker.State() != StateStart {
		t.Errorf("state = %v, want start", tracker.State())
	}

	fragments := tracker.Update(">go")
	if len(fragments) != 1 || fragments[0].Kind != FragmentThinking || fragments[0].Text != "go" {
		t.Errorf("fragments = %v, want one thinking fragment %q", fragments, "go")
	}
}

func TestState_String(t *testing.T) {
	states := map[State]string{
		StateStart:      "start",
		StateThinking:   "thinking",
		StateResponse:   "response",
		StateNoThinking: "no_thinking",
		StateUnknown:    "unknown",
		State(99):       "invalid",
	}
	for state, want := range states {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
