// Package app contains the service implementations behind the primary
// ports. Services compose the pure core rules with the repository ports;
// all shared state lives in the store, never in memory here.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/core/ident"
	"github.com/example/hive/internal/core/scope"
	"github.com/example/hive/internal/core/thread"
	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/ports/secondary"
)

// maxOpenRetries bounds the internal retry when two processes race to
// create the same direct conversation.
const maxOpenRetries = 3

// CoordinationServiceImpl implements the CoordinationService facade.
type CoordinationServiceImpl struct {
	conversations secondary.ConversationRepository
	messages      secondary.MessageRepository
	views         secondary.ViewRepository
	resolver      *ScopeResolver
}

// NewCoordinationService creates a new CoordinationService with injected
// dependencies.
func NewCoordinationService(
	conversations secondary.ConversationRepository,
	messages secondary.MessageRepository,
	views secondary.ViewRepository,
	resolver *ScopeResolver,
) *CoordinationServiceImpl {
	return &CoordinationServiceImpl{
		conversations: conversations,
		messages:      messages,
		views:         views,
		resolver:      resolver,
	}
}

// Send opens or reuses the open direct conversation between sender and
// recipient and posts into it. If the previous conversation for the pair
// was closed, a brand-new one is created; closing is a hard boundary.
func (s *CoordinationServiceImpl) Send(ctx context.Context, req primary.SendRequest) (*primary.SendResponse, error) {
	if req.Sender == "" || req.Recipient == "" {
		return nil, fmt.Errorf("send requires both sender and recipient")
	}
	if req.Sender == req.Recipient {
		return nil, fmt.Errorf("cannot send a direct message to yourself")
	}
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	conversation, err := s.openDirect(ctx, req.Sender, req.Recipient, req.Subject, req.TaskID, req.EpicID)
	if err != nil {
		return nil, err
	}

	return s.post(ctx, conversation, postArgs{
		sender:    req.Sender,
		subject:   req.Subject,
		body:      req.Body,
		priority:  priority,
		taskID:    req.TaskID,
		epicID:    req.EpicID,
		artifact:  req.Artifact,
		expiresAt: req.ExpiresAt,
	})
}

// Discuss opens a new group conversation for a scope descriptor and posts
// its root message. An existing open discussion with the same scope is
// never reused; distinct topics may share a scope.
func (s *CoordinationServiceImpl) Discuss(ctx context.Context, req primary.DiscussRequest) (*primary.SendResponse, error) {
	if req.Sender == "" {
		return nil, fmt.Errorf("discuss requires a sender")
	}
	sc, err := scope.Parse(req.Scope)
	if err != nil {
		return nil, err
	}
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	conversation, err := s.conversations.CreateGroup(ctx, req.Subject, sc.String(), req.TaskID, req.EpicID)
	if err != nil {
		return nil, fmt.Errorf("failed to open discussion: %w", err)
	}

	return s.post(ctx, conversation, postArgs{
		sender:    req.Sender,
		subject:   req.Subject,
		body:      req.Body,
		priority:  priority,
		taskID:    req.TaskID,
		epicID:    req.EpicID,
		artifact:  req.Artifact,
		expiresAt: req.ExpiresAt,
	})
}

// Reply posts a reply to an existing message, inheriting its conversation.
// In group conversations the thread root is inherited transitively; in
// direct conversations history stays flat.
func (s *CoordinationServiceImpl) Reply(ctx context.Context, req primary.ReplyRequest) (*primary.SendResponse, error) {
	if req.Sender == "" {
		return nil, fmt.Errorf("reply requires a sender")
	}
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	parent, err := s.messages.GetByID(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}
	conversation, err := s.conversations.GetByID(ctx, parent.ConversationID)
	if err != nil {
		return nil, err
	}

	return s.post(ctx, conversation, postArgs{
		sender:   req.Sender,
		subject:  parent.Subject,
		body:     req.Body,
		priority: priority,
		artifact: req.Artifact,
		parent:   parent,
	})
}

// Inbox lists the conversations visible to a participant with unread
// counts: their direct conversations plus every group conversation whose
// current audience includes them. Audience membership is re-resolved on
// each call, so a participant who just became eligible sees the entire
// backlog as unread.
func (s *CoordinationServiceImpl) Inbox(ctx context.Context, participant string, unreadOnly bool) ([]*primary.InboxEntry, error) {
	if participant == "" {
		return nil, fmt.Errorf("inbox requires a participant")
	}

	directs, err := s.conversations.List(ctx, secondary.ConversationFilters{
		Kind:        comms.KindDirect,
		Participant: participant,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	groups, err := s.conversations.List(ctx, secondary.ConversationFilters{Kind: comms.KindGroup})
	if err != nil {
		return nil, fmt.Errorf("failed to list discussions: %w", err)
	}

	candidates := make([]*secondary.ConversationRecord, 0, len(directs)+len(groups))
	candidates = append(candidates, directs...)
	for _, conversation := range groups {
		members, err := s.resolver.ResolveDescriptor(ctx, conversation.Scope)
		if err != nil {
			return nil, err
		}
		if _, ok := members[participant]; ok {
			candidates = append(candidates, conversation)
		}
	}

	var entries []*primary.InboxEntry
	for _, conversation := range candidates {
		unread, err := s.views.UnreadCount(ctx, conversation.ID, participant)
		if err != nil {
			return nil, err
		}
		if unreadOnly && unread == 0 {
			continue
		}
		entries = append(entries, &primary.InboxEntry{
			Conversation: toConversation(conversation),
			Unread:       unread,
		})
	}
	return entries, nil
}

// Show returns a conversation with its full ordered history. Closed
// conversations stay queryable; their history is frozen, not hidden.
func (s *CoordinationServiceImpl) Show(ctx context.Context, conversationID string) (*primary.ConversationView, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	records, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := make([]*primary.Message, len(records))
	for i, record := range records {
		messages[i] = toMessage(record)
	}
	return &primary.ConversationView{
		Conversation: toConversation(conversation),
		Messages:     messages,
	}, nil
}

// Close closes a conversation. A no-op when already closed; there is no
// transition back to open.
func (s *CoordinationServiceImpl) Close(ctx context.Context, conversationID string) error {
	return s.conversations.Close(ctx, conversationID)
}

// MarkViewed records that the participant has observed the conversation up
// to now. This is deliberately separate from posting: sending never counts
// as having read what came after.
func (s *CoordinationServiceImpl) MarkViewed(ctx context.Context, conversationID, participant string) error {
	if _, err := s.conversations.GetByID(ctx, conversationID); err != nil {
		return err
	}
	return s.views.MarkViewed(ctx, conversationID, participant, time.Now())
}

// UnreadCount returns the participant's unread count for a conversation.
// For group conversations the participant must be in the current audience;
// someone who left the scope gets ErrNotEligible, never a stale count.
func (s *CoordinationServiceImpl) UnreadCount(ctx context.Context, conversationID, participant string) (int, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}

	if conversation.Kind == comms.KindGroup {
		members, err := s.resolver.ResolveDescriptor(ctx, conversation.Scope)
		if err != nil {
			return 0, err
		}
		if _, ok := members[participant]; !ok {
			return 0, fmt.Errorf("%s in %s: %w", participant, conversationID, comms.ErrNotEligible)
		}
	}

	return s.views.UnreadCount(ctx, conversationID, participant)
}

// Status reports audience coverage for a conversation or message id: the
// currently-eligible participants, who is caught up, and who is behind.
func (s *CoordinationServiceImpl) Status(ctx context.Context, id string) (*primary.StatusReport, error) {
	conversationID := id
	if ident.IsMessageID(id) {
		message, err := s.messages.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		conversationID = message.ConversationID
	}

	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	var eligible map[string]struct{}
	if conversation.Kind == comms.KindDirect {
		eligible = map[string]struct{}{
			conversation.ParticipantA: {},
			conversation.ParticipantB: {},
		}
	} else {
		eligible, err = s.resolver.ResolveDescriptor(ctx, conversation.Scope)
		if err != nil {
			return nil, err
		}
	}

	viewers, err := s.views.CaughtUp(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	caughtUp := make(map[string]struct{})
	for _, viewer := range viewers {
		if _, ok := eligible[viewer]; ok {
			caughtUp[viewer] = struct{}{}
		}
	}

	report := &primary.StatusReport{
		ConversationID: conversation.ID,
		Kind:           conversation.Kind,
		State:          conversation.State,
		Scope:          conversation.Scope,
	}
	for participant := range eligible {
		report.Eligible = append(report.Eligible, participant)
		if _, ok := caughtUp[participant]; ok {
			report.CaughtUp = append(report.CaughtUp, participant)
		} else {
			report.Behind = append(report.Behind, participant)
		}
	}
	sort.Strings(report.Eligible)
	sort.Strings(report.CaughtUp)
	sort.Strings(report.Behind)

	return report, nil
}

// openDirect finds or creates the open direct conversation for a pair.
// The loser of a creation race sees ErrDuplicate from the store's
// uniqueness constraint and loops to pick up the winner's record; the
// retry is bounded and surfaces ErrContention when exhausted.
func (s *CoordinationServiceImpl) openDirect(ctx context.Context, a, b, subject, taskID, epicID string) (*secondary.ConversationRecord, error) {
	for attempt := 0; attempt < maxOpenRetries; attempt++ {
		conversation, err := s.conversations.FindOpenDirect(ctx, a, b)
		if err == nil {
			return conversation, nil
		}
		if !errors.Is(err, comms.ErrNotFound) {
			return nil, err
		}

		conversation, err = s.conversations.CreateDirect(ctx, subject, a, b, taskID, epicID)
		if err == nil {
			return conversation, nil
		}
		if !errors.Is(err, comms.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to open direct conversation %s/%s: %w", a, b, comms.ErrContention)
}

type postArgs struct {
	sender    string
	subject   string
	body      string
	priority  comms.Priority
	taskID    string
	epicID    string
	artifact  string
	expiresAt string
	parent    *secondary.MessageRecord
}

// post validates topology and persists a message. The sender's own view is
// deliberately not updated; "I sent it" and "I have seen everything since"
// are distinct operations.
func (s *CoordinationServiceImpl) post(ctx context.Context, conversation *secondary.ConversationRecord, args postArgs) (*primary.SendResponse, error) {
	if args.body == "" {
		return nil, fmt.Errorf("message body must not be empty")
	}
	if err := thread.CanPost(conversation.State); err != nil {
		return nil, fmt.Errorf("post to %s: %w", conversation.ID, err)
	}

	var parentRef *thread.ParentRef
	if args.parent != nil {
		parentRef = &thread.ParentRef{
			ID:             args.parent.ID,
			ConversationID: args.parent.ConversationID,
			ThreadRootID:   args.parent.ThreadRootID,
		}
	}
	linkage, err := thread.Resolve(conversation.Kind, conversation.ID, parentRef)
	if err != nil {
		return nil, err
	}

	record, err := s.messages.Create(ctx, &secondary.NewMessageRecord{
		ConversationID: conversation.ID,
		Sender:         args.sender,
		Subject:        args.subject,
		Body:           args.body,
		Priority:       string(args.priority),
		ParentID:       linkage.ParentID,
		ThreadRootID:   linkage.ThreadRootID,
		TaskID:         args.taskID,
		EpicID:         args.epicID,
		Artifact:       args.artifact,
		ExpiresAt:      args.expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	return &primary.SendResponse{
		ConversationID: conversation.ID,
		Message:        toMessage(record),
	}, nil
}

// normalizePriority applies the medium default and validates the rest.
func normalizePriority(raw string) (comms.Priority, error) {
	if raw == "" {
		return comms.PriorityMedium, nil
	}
	return comms.ParsePriority(raw)
}

func toConversation(record *secondary.ConversationRecord) *primary.Conversation {
	return &primary.Conversation{
		ID:           record.ID,
		Kind:         record.Kind,
		Subject:      record.Subject,
		State:        record.State,
		ParticipantA: record.ParticipantA,
		ParticipantB: record.ParticipantB,
		Scope:        record.Scope,
		TaskID:       record.TaskID,
		EpicID:       record.EpicID,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		ClosedAt:     record.ClosedAt,
	}
}

func toMessage(record *secondary.MessageRecord) *primary.Message {
	return &primary.Message{
		ID:             record.ID,
		ConversationID: record.ConversationID,
		Sender:         record.Sender,
		Subject:        record.Subject,
		Body:           record.Body,
		Priority:       record.Priority,
		ParentID:       record.ParentID,
		ThreadRootID:   record.ThreadRootID,
		TaskID:         record.TaskID,
		EpicID:         record.EpicID,
		Artifact:       record.Artifact,
		CreatedAt:      record.CreatedAt,
		ExpiresAt:      record.ExpiresAt,
	}
}

// Ensure CoordinationServiceImpl implements the interface.
var _ primary.CoordinationService = (*CoordinationServiceImpl)(nil)
