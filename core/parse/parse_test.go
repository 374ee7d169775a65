package parse

import (
	"reflect"
	"testing"
)

func TestArguments_Valid(t *testing.T) {
	got, err := Arguments(`{"location":"Paris","units":"metric"}`)
	if err != nil {
		t.Fatalf("Arguments() error = %v", err)
	}
	want := map[string]interface{}{"location": "Paris", "units": "metric"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Arguments() = %v, want %v", got, want)
	}
}

func TestArguments_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n"} {
		got, err := Arguments(raw)
		if err != nil {
			t.Fatalf("Arguments(%q) error = %v", raw, err)
		}
		if len(got) != 0 {
			t.Errorf("Arguments(%q) = %v, want empty map", raw, got)
		}
	}
}

func TestArguments_Repaired(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]interface{}
	}{
		{
			name: "single quotes",
			raw:  `{'location': 'Paris'}`,
			want: map[string]interface{}{"location": "Paris"},
		},
		{
			name: "unquoted keys",
			raw:  `{location: "Paris", units: "metric"}`,
			want: map[string]interface{}{"location": "Paris", "units": "metric"},
		},
		{
			name: "truncated tail",
			raw:  `{"location": "Paris"`,
			want: map[string]interface{}{"location": "Paris"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Arguments(tt.raw)
			if err != nil {
				t.Fatalf("Arguments(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Arguments(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestArguments_Unrecoverable(t *testing.T) {
	if _, err := Arguments(`42`); err == nil {
		t.Error("Arguments on a non-object payload should fail")
	}
}

func TestArgumentsAs_Struct(t *testing.T) {
	type weatherQuery struct {
		Location string `json:"location"`
		Days     int    `json:"days"`
	}

	got, err := ArgumentsAs[weatherQuery](`{"location":"Oslo","days":3}`)
	if err != nil {
		t.Fatalf("ArgumentsAs() error = %v", err)
	}
	if got.Location != "Oslo" || got.Days != 3 {
		t.Errorf("ArgumentsAs() = %+v", got)
	}

	// Repair applies to typed decoding as well.
	repaired, err := ArgumentsAs[weatherQuery](`{location: 'Oslo', days: 3}`)
	if err != nil {
		t.Fatalf("ArgumentsAs() repair error = %v", err)
	}
	if repaired.Location != "Oslo" {
		t.Errorf("ArgumentsAs() after repair = %+v", repaired)
	}
}

func TestArgumentsAs_Empty(t *testing.T) {
	got, err := ArgumentsAs[map[string]string]("")
	if err != nil {
		t.Fatalf("ArgumentsAs() error = %v", err)
	}
	if got != nil {
		t.Errorf("ArgumentsAs(\"\") = %v, want zero value", got)
	}
}
