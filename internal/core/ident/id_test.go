package ident

import (
	"testing"

	"github.com/example/hive/internal/core/comms"
)

func TestMessageID(t *testing.T) {
	tests := []struct {
		priority comms.Priority
		seq      int64
		want     string
	}{
		{comms.PriorityCritical, 1, "MSG-C-0001"},
		{comms.PriorityHigh, 42, "MSG-H-0042"},
		{comms.PriorityMedium, 999, "MSG-M-0999"},
		{comms.PriorityLow, 10000, "MSG-L-10000"},
	}

	for _, tt := range tests {
		if got := MessageID(tt.priority, tt.seq); got != tt.want {
			t.Errorf("MessageID(%s, %d) = %s, want %s", tt.priority, tt.seq, got, tt.want)
		}
	}
}

func TestConversationIDs(t *testing.T) {
	if got := ConversationID(7); got != "CONV-0007" {
		t.Errorf("ConversationID(7) = %s, want CONV-0007", got)
	}
	if got := DiscussionID(3); got != "DISC-0003" {
		t.Errorf("DiscussionID(3) = %s, want DISC-0003", got)
	}
	if got := MissionID(12); got != "MISSION-012" {
		t.Errorf("MissionID(12) = %s, want MISSION-012", got)
	}
}

func TestMessageSequence(t *testing.T) {
	tests := []struct {
		priority comms.Priority
		want     string
	}{
		{comms.PriorityCritical, "MSG-C"},
		{comms.PriorityHigh, "MSG-H"},
		{comms.PriorityMedium, "MSG-M"},
		{comms.PriorityLow, "MSG-L"},
	}

	for _, tt := range tests {
		if got := MessageSequence(tt.priority); got != tt.want {
			t.Errorf("MessageSequence(%s) = %s, want %s", tt.priority, got, tt.want)
		}
	}
}

func TestIdentifierClassification(t *testing.T) {
	tests := []struct {
		id             string
		isMessage      bool
		isConversation bool
	}{
		{"MSG-C-0001", true, false},
		{"CONV-0001", false, true},
		{"DISC-0002", false, true},
		{"MISSION-001", false, false},
		{"bogus", false, false},
	}

	for _, tt := range tests {
		if got := IsMessageID(tt.id); got != tt.isMessage {
			t.Errorf("IsMessageID(%s) = %v, want %v", tt.id, got, tt.isMessage)
		}
		if got := IsConversationID(tt.id); got != tt.isConversation {
			t.Errorf("IsConversationID(%s) = %v, want %v", tt.id, got, tt.isConversation)
		}
	}
}
