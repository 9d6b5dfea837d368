package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/hive/internal/adapters/sqlite"
	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/ports/secondary"
)

func TestMessageRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	conversations := sqlite.NewConversationRepository(db)
	messages := sqlite.NewMessageRepository(db)
	ctx := context.Background()

	conv, err := conversations.CreateDirect(ctx, "Review", "backend-1", "architect-1", "", "")
	if err != nil {
		t.Fatalf("CreateDirect failed: %v", err)
	}

	t.Run("priority is encoded in the identifier", func(t *testing.T) {
		cases := []struct {
			priority string
			wantID   string
		}{
			{"critical", "MSG-C-0001"},
			{"high", "MSG-H-0001"},
			{"medium", "MSG-M-0001"},
			{"low", "MSG-L-0001"},
			{"critical", "MSG-C-0002"},
		}
		for _, tc := range cases {
			msg, err := messages.Create(ctx, &secondary.NewMessageRecord{
				ConversationID: conv.ID,
				Sender:         "backend-1",
				Body:           "body",
				Priority:       tc.priority,
			})
			if err != nil {
				t.Fatalf("Create(%s) failed: %v", tc.priority, err)
			}
			if msg.ID != tc.wantID {
				t.Errorf("ID = %q, want %q (each priority keeps its own counter)", msg.ID, tc.wantID)
			}
		}
	})

	t.Run("rejects an unknown priority", func(t *testing.T) {
		_, err := messages.Create(ctx, &secondary.NewMessageRecord{
			ConversationID: conv.ID,
			Sender:         "backend-1",
			Body:           "body",
			Priority:       "urgent",
		})
		if !errors.Is(err, comms.ErrInvalidPriority) {
			t.Errorf("err = %v, want ErrInvalidPriority", err)
		}
	})

	t.Run("stores threading and metadata fields", func(t *testing.T) {
		root, err := messages.Create(ctx, &secondary.NewMessageRecord{
			ConversationID: conv.ID,
			Sender:         "backend-1",
			Subject:        "Design",
			Body:           "root",
			Priority:       "medium",
			Artifact:       "docs/design.md",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		reply, err := messages.Create(ctx, &secondary.NewMessageRecord{
			ConversationID: conv.ID,
			Sender:         "architect-1",
			Body:           "reply",
			Priority:       "medium",
			ParentID:       root.ID,
			ThreadRootID:   root.ID,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := messages.GetByID(ctx, reply.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.ParentID != root.ID || got.ThreadRootID != root.ID {
			t.Errorf("linkage = (%q, %q), want both %q", got.ParentID, got.ThreadRootID, root.ID)
		}
		if got.Sender != "architect-1" {
			t.Errorf("Sender = %q, want %q", got.Sender, "architect-1")
		}

		got, err = messages.GetByID(ctx, root.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.ParentID != "" || got.ThreadRootID != "" {
			t.Error("root message must carry no linkage")
		}
		if got.Artifact != "docs/design.md" {
			t.Errorf("Artifact = %q, want %q", got.Artifact, "docs/design.md")
		}
	})

	t.Run("bumps the conversation's updated_at", func(t *testing.T) {
		before := rawColumn(t, db, "SELECT updated_at FROM conversations WHERE id = ?", conv.ID)
		if _, err := messages.Create(ctx, &secondary.NewMessageRecord{
			ConversationID: conv.ID,
			Sender:         "backend-1",
			Body:           "bump",
			Priority:       "low",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		after := rawColumn(t, db, "SELECT updated_at FROM conversations WHERE id = ?", conv.ID)
		if !(after > before) {
			t.Errorf("updated_at %q not later than %q", after, before)
		}
	})
}

func TestMessageRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	messages := sqlite.NewMessageRepository(db)
	ctx := context.Background()

	_, err := messages.GetByID(ctx, "MSG-M-9999")
	if !errors.Is(err, comms.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMessageRepository_ListByConversation(t *testing.T) {
	db := setupTestDB(t)
	conversations := sqlite.NewConversationRepository(db)
	messages := sqlite.NewMessageRepository(db)
	ctx := context.Background()

	conv, err := conversations.CreateDirect(ctx, "Ordering", "a-1", "b-1", "", "")
	if err != nil {
		t.Fatalf("CreateDirect failed: %v", err)
	}
	other, err := conversations.CreateDirect(ctx, "Elsewhere", "a-1", "c-1", "", "")
	if err != nil {
		t.Fatalf("CreateDirect failed: %v", err)
	}

	var wantIDs []string
	for i := 0; i < 5; i++ {
		msg, err := messages.Create(ctx, &secondary.NewMessageRecord{
			ConversationID: conv.ID,
			Sender:         "a-1",
			Body:           fmt.Sprintf("message %d", i),
			Priority:       "medium",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		wantIDs = append(wantIDs, msg.ID)
	}
	if _, err := messages.Create(ctx, &secondary.NewMessageRecord{
		ConversationID: other.ID,
		Sender:         "a-1",
		Body:           "noise",
		Priority:       "medium",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("ListByConversation failed: %v", err)
	}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d messages, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}
