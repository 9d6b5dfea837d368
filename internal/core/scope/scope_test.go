package scope

import (
	"errors"
	"testing"

	"github.com/example/hive/internal/core/comms"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Scope
	}{
		{"all", All()},
		{"role:Tester", Role("Tester")},
		{"epic:EPIC-001", Epic("EPIC-001")},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "role:", "epic:", "team:alpha", "role", "ALL"} {
		_, err := Parse(input)
		if !errors.Is(err, comms.ErrInvalidScope) {
			t.Errorf("Parse(%q) = %v, want ErrInvalidScope", input, err)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, descriptor := range []string{"all", "role:Engineer", "epic:EPIC-042"} {
		parsed, err := Parse(descriptor)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", descriptor, err)
		}
		if got := parsed.String(); got != descriptor {
			t.Errorf("round trip of %q produced %q", descriptor, got)
		}
	}
}
