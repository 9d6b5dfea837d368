package thread

import (
	"errors"
	"testing"

	"github.com/example/hive/internal/core/comms"
)

func TestCanPost(t *testing.T) {
	if err := CanPost(comms.StateOpen); err != nil {
		t.Errorf("CanPost(open) = %v, want nil", err)
	}
	if err := CanPost(comms.StateClosed); !errors.Is(err, comms.ErrConversationClosed) {
		t.Errorf("CanPost(closed) = %v, want ErrConversationClosed", err)
	}
}

func TestResolveDirectIsFlat(t *testing.T) {
	// A reply target in a direct conversation is ignored, not an error.
	parent := &ParentRef{ID: "MSG-M-0001", ConversationID: "CONV-0001"}
	link, err := Resolve(comms.KindDirect, "CONV-0001", parent)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if link.ParentID != "" || link.ThreadRootID != "" {
		t.Errorf("direct linkage = %+v, want flat", link)
	}
}

func TestResolveGroupRoot(t *testing.T) {
	link, err := Resolve(comms.KindGroup, "DISC-0001", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if link.ParentID != "" || link.ThreadRootID != "" {
		t.Errorf("root linkage = %+v, want empty", link)
	}
}

func TestResolveReplyToRoot(t *testing.T) {
	parent := &ParentRef{ID: "MSG-M-0001", ConversationID: "DISC-0001"}
	link, err := Resolve(comms.KindGroup, "DISC-0001", parent)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if link.ParentID != "MSG-M-0001" {
		t.Errorf("ParentID = %s, want MSG-M-0001", link.ParentID)
	}
	// Replying to a root: the root becomes both parent and thread root.
	if link.ThreadRootID != "MSG-M-0001" {
		t.Errorf("ThreadRootID = %s, want MSG-M-0001", link.ThreadRootID)
	}
}

func TestResolveReplyToReplyInheritsRoot(t *testing.T) {
	parent := &ParentRef{ID: "MSG-M-0005", ConversationID: "DISC-0001", ThreadRootID: "MSG-M-0001"}
	link, err := Resolve(comms.KindGroup, "DISC-0001", parent)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if link.ParentID != "MSG-M-0005" {
		t.Errorf("ParentID = %s, want MSG-M-0005", link.ParentID)
	}
	if link.ThreadRootID != "MSG-M-0001" {
		t.Errorf("ThreadRootID = %s, want MSG-M-0001", link.ThreadRootID)
	}
}

func TestResolveCrossConversationReply(t *testing.T) {
	parent := &ParentRef{ID: "MSG-M-0001", ConversationID: "DISC-0002"}
	_, err := Resolve(comms.KindGroup, "DISC-0001", parent)
	if !errors.Is(err, comms.ErrCrossConversationReply) {
		t.Errorf("Resolve = %v, want ErrCrossConversationReply", err)
	}
}
