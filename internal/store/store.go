// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store maintains the client-side view of conversations and messages.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/jeranaias/docchat-tui/internal/model"
)

// MaxListed is the fixed display-limit policy: only the most recent
// conversations up to this count are kept after a listing fetch.
const MaxListed = 3

// Backend is the remote side of the store. Satisfied by api.Client; tests
// substitute a fake.
type Backend interface {
	History(ctx context.Context) ([]*model.Conversation, error)
	ConversationMessages(ctx context.Context, conversationID string) ([]*model.Message, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// Config wires the store's collaborators.
type Config struct {
	// Backend performs the remote reads and deletes.
	Backend Backend

	// Authenticated gates listing fetches; when it reports false,
	// FetchConversations is a no-op.
	Authenticated func() bool

	// Reporter receives structured failure/event notifications.
	// Defaults to NopReporter.
	Reporter Reporter
}

// =============================================================================
// STORE TYPE
// =============================================================================

// Store is the authoritative client-side state container for conversations.
// It owns two maps: conversation id to metadata, and conversation id to the
// ordered message list. All mutations go through its methods; reads hand out
// copies. Consistency is last-writer-wins against the backend: there is no
// reconciliation when a fetch races a local optimistic append, and no
// offline queue.
type Store struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation
	messages      map[string][]*model.Message
	currentID     string

	backend       Backend
	authenticated func() bool
	reporter      Reporter
}

// New creates an empty store.
func New(cfg Config) *Store {
	if cfg.Reporter == nil {
		cfg.Reporter = NopReporter{}
	}
	if cfg.Authenticated == nil {
		cfg.Authenticated = func() bool { return false }
	}
	return &Store{
		conversations: make(map[string]*model.Conversation),
		messages:      make(map[string][]*model.Message),
		backend:       cfg.Backend,
		authenticated: cfg.Authenticated,
		reporter:      cfg.Reporter,
	}
}

// =============================================================================
// READS
// =============================================================================

// Conversations returns the listed conversations, most recently updated
// first. The slice and its elements are copies.
func (s *Store) Conversations() []*model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Conversation returns a copy of one conversation's metadata, or nil.
func (s *Store) Conversation(id string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conversations[id]; ok {
		return c.Clone()
	}
	return nil
}

// Messages returns a copy of one conversation's message list. Missing or
// never-fetched conversations yield an empty list, never nil dereferences.
func (s *Store) Messages(conversationID string) []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMessages(s.messages[conversationID])
}

// HasCachedMessages reports whether a fetch already populated the list.
func (s *Store) HasCachedMessages(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.messages[conversationID]
	return ok
}

// CurrentID returns the id of the current conversation, or "".
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Current returns a copy of the current conversation's metadata, or nil.
func (s *Store) Current() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conversations[s.currentID]; ok {
		return c.Clone()
	}
	return nil
}

// =============================================================================
// SYNCHRONIZATION
// =============================================================================

// FetchConversations refreshes the conversation listing from the backend.
//
// No-op when unauthenticated. On success the listing is truncated to the
// MaxListed most recent conversations and replaces the local map; cached
// message lists survive the replacement. On failure the prior state is left
// untouched and the failure goes to the reporter only.
func (s *Store) FetchConversations(ctx context.Context) {
	if !s.authenticated() {
		return
	}

	convs, err := s.backend.History(ctx)
	if err != nil {
		s.reporter.Error("fetch_conversations", err)
		return
	}

	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	if len(convs) > MaxListed {
		convs = convs[:MaxListed]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make(map[string]*model.Conversation, len(convs))
	for _, c := range convs {
		replaced[c.ID] = c.Clone()
	}
	// A locally created conversation that has not reached the backend yet
	// stays listed; dropping it would orphan its cached messages.
	if cur, ok := s.conversations[s.currentID]; ok {
		if _, listed := replaced[s.currentID]; !listed && cur.IsEmpty() {
			replaced[s.currentID] = cur
		}
	}
	s.conversations = replaced
}

// FetchConversationMessages fetches one conversation's messages and stores
// them under its id. On failure it returns an empty list; the caller sees no
// error, only the reporter does.
func (s *Store) FetchConversationMessages(ctx context.Context, conversationID string) []*model.Message {
	msgs, err := s.backend.ConversationMessages(ctx, conversationID)
	if err != nil {
		s.reporter.Error("fetch_messages", err)
		return []*model.Message{}
	}
	if msgs == nil {
		msgs = []*model.Message{}
	}

	s.mu.Lock()
	s.messages[conversationID] = copyMessages(msgs)
	s.mu.Unlock()

	return msgs
}

// =============================================================================
// LOCAL MUTATIONS
// =============================================================================

// StartNewConversation synthesizes a new empty conversation, makes it
// current, and returns its id. Pure local operation: the backend learns of
// the conversation when its first message is sent.
func (s *Store) StartNewConversation() string {
	conv := model.NewConversation()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = conv
	s.messages[conv.ID] = []*model.Message{}
	s.currentID = conv.ID
	return conv.ID
}

// SwitchToConversation makes the given conversation current and returns its
// message list, fetching it when no cached copy exists. The switch and the
// fetch-or-use-cache decision are one operation, so the UI never sits on a
// selection whose messages belong to another conversation.
func (s *Store) SwitchToConversation(ctx context.Context, conversationID string) []*model.Message {
	s.mu.Lock()
	s.currentID = conversationID
	cached, ok := s.messages[conversationID]
	if ok {
		out := copyMessages(cached)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	return s.FetchConversationMessages(ctx, conversationID)
}

// AddMessageToConversation appends a message to a conversation's list and
// updates the metadata counters (updated_at, last_message, message_count).
// Append-only and purely local; the send pipeline calls the backend.
func (s *Store) AddMessageToConversation(conversationID string, msg *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[conversationID] = append(s.messages[conversationID], msg)
	if conv, ok := s.conversations[conversationID]; ok {
		conv.RecordAppend(msg)
	}
}

// DeleteConversation removes a conversation remotely and, on success,
// locally: both map entries go away and current is cleared if it pointed at
// the deleted id. On failure local state is unchanged; the error is both
// reported and returned so callers can tell the user.
func (s *Store) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := s.backend.DeleteConversation(ctx, conversationID); err != nil {
		s.reporter.Error("delete_conversation", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
	delete(s.messages, conversationID)
	if s.currentID == conversationID {
		s.currentID = ""
	}
	s.reporter.Event("conversation_deleted", conversationID)
	return nil
}

// Reset drops all local state, e.g. on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = make(map[string]*model.Conversation)
	s.messages = make(map[string][]*model.Message)
	s.currentID = ""
}

// =============================================================================
// MESSAGE STATUS
// =============================================================================

// ConfirmMessage marks an optimistically appended message as confirmed.
func (s *Store) ConfirmMessage(conversationID, messageID string) {
	s.setStatus(conversationID, messageID, model.StatusConfirmed)
}

// FailMessage marks an optimistically appended message as failed. The
// message stays in the list; divergence from the backend is accepted and
// visible through the status.
func (s *Store) FailMessage(conversationID, messageID string) {
	s.setStatus(conversationID, messageID, model.StatusFailed)
}

func (s *Store) setStatus(conversationID, messageID string, status model.MessageStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages[conversationID] {
		if m.ID == messageID {
			m.Status = status
			return
		}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func copyMessages(msgs []*model.Message) []*model.Message {
	out := make([]*model.Message, len(msgs))
	copy(out, msgs)
	return out
}
