package comms

import (
	"errors"
	"testing"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"critical", PriorityCritical},
		{"c", PriorityCritical},
		{"high", PriorityHigh},
		{"H", PriorityHigh},
		{"medium", PriorityMedium},
		{"low", PriorityLow},
		{"l", PriorityLow},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if err != nil {
			t.Fatalf("ParsePriority(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParsePriorityInvalid(t *testing.T) {
	for _, input := range []string{"", "urgent", "CRITICAL", "hi"} {
		if _, err := ParsePriority(input); !errors.Is(err, ErrInvalidPriority) {
			t.Errorf("ParsePriority(%q) = %v, want ErrInvalidPriority", input, err)
		}
	}
}

func TestPriorityLetterAndRank(t *testing.T) {
	tests := []struct {
		priority Priority
		letter   string
		rank     int
	}{
		{PriorityCritical, "C", 0},
		{PriorityHigh, "H", 1},
		{PriorityMedium, "M", 2},
		{PriorityLow, "L", 3},
	}

	for _, tt := range tests {
		if got := tt.priority.Letter(); got != tt.letter {
			t.Errorf("%s.Letter() = %s, want %s", tt.priority, got, tt.letter)
		}
		if got := tt.priority.Rank(); got != tt.rank {
			t.Errorf("%s.Rank() = %d, want %d", tt.priority, got, tt.rank)
		}
	}
}
