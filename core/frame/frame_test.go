package frame

import "testing"

func TestParser_Classification(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantKind    Kind
		wantPayload string
	}{
		{
			name:     "blank line",
			line:     "",
			wantKind: KindIgnored,
		},
		{
			name:     "comment line",
			line:     ": keep-alive",
			wantKind: KindIgnored,
		},
		{
			name:     "unknown field",
			line:     "id: 42",
			wantKind: KindIgnored,
		},
		{
			name:        "data line",
			line:        `data: {"id":"resp-1"}`,
			wantKind:    KindData,
			wantPayload: `{"id":"resp-1"}`,
		},
		{
			name:        "data line without space after colon",
			line:        `data:{"id":"resp-1"}`,
			wantKind:    KindData,
			wantPayload: `{"id":"resp-1"}`,
		},
		{
			name:     "close marker",
			line:     "event: close",
			wantKind: KindControlClose,
		},
		{
			name:     "done sentinel",
			line:     "data: [DONE]",
			wantKind: KindControlClose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewParser().Parse(tt.line)
			if got.Kind != tt.wantKind {
				t.Errorf("Parse(%q).Kind = %v, want %v", tt.line, got.Kind, tt.wantKind)
			}
			if got.Payload != tt.wantPayload {
				t.Errorf("Parse(%q).Payload = %q, want %q", tt.line, got.Payload, tt.wantPayload)
			}
		})
	}
}

func TestParser_ErrorProtocol(t *testing.T) {
	parser := NewParser()

	marker := parser.Parse("event: error")
	if marker.Kind != KindIgnored {
		t.Fatalf("error marker should classify as ignored, got %v", marker.Kind)
	}

	payload := parser.Parse(`data: {"message":"rate limit exceeded"}`)
	if payload.Kind != KindControlError {
		t.Fatalf("line after error marker should be a control error, got %v", payload.Kind)
	}
	if payload.Payload != `{"message":"rate limit exceeded"}` {
		t.Errorf("error payload = %q", payload.Payload)
	}

	// The pending-error flag is consumed; subsequent data lines are normal.
	next := parser.Parse(`data: {"id":"resp-1"}`)
	if next.Kind != KindData {
		t.Errorf("data line after consumed error should be data, got %v", next.Kind)
	}
}

func TestParser_ErrorMarkerSurvivesInterveningNoise(t *testing.T) {
	parser := NewParser()
	parser.Parse("event: error")

	// Blank lines and comments between the marker and the payload do not
	// consume the pending flag.
	if got := parser.Parse(""); got.Kind != KindIgnored {
		t.Fatalf("blank line = %v, want ignored", got.Kind)
	}
	if got := parser.Parse(": ping"); got.Kind != KindIgnored {
		t.Fatalf("comment = %v, want ignored", got.Kind)
	}

	payload := parser.Parse("data: upstream exploded")
	if payload.Kind != KindControlError {
		t.Errorf("payload after noise = %v, want control error", payload.Kind)
	}
}
