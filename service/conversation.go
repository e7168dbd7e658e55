package service

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/harborview/claimchat/backend/model"
)

// maxHistoryEntries bounds a single session's history to the most recent
// 5 exchanges so the generation context stays small
const maxHistoryEntries = 10

// ConversationStore keeps per-session chat history. The session map is LRU
// bounded; when the cap is reached the least recently used session is
// evicted whole. Append holds the store lock across the read-append-trim
// sequence so two requests on the same session cannot drop each other's
// turns.
type ConversationStore struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, []model.ConversationEntry]
}

// NewConversationStore creates a store capped at maxSessions sessions
func NewConversationStore(maxSessions int) (*ConversationStore, error) {
	if maxSessions <= 0 {
		return nil, fmt.Errorf("maxSessions must be positive, got %d", maxSessions)
	}
	cache, err := lru.New[string, []model.ConversationEntry](maxSessions)
	if err != nil {
		return nil, err
	}
	return &ConversationStore{sessions: cache}, nil
}

// Get returns a copy of the session's history, empty for unknown sessions
func (s *ConversationStore) Get(sessionID string) []model.ConversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil
	}
	out := make([]model.ConversationEntry, len(entries))
	copy(out, entries)
	return out
}

// Append records one completed exchange. Entries are always appended in
// user/assistant pairs, then the history is trimmed to the most recent
// maxHistoryEntries entries, oldest first.
func (s *ConversationStore) Append(sessionID, userContent, assistantContent string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _ := s.sessions.Get(sessionID)
	entries = append(entries,
		model.ConversationEntry{Role: model.RoleUser, Content: userContent},
		model.ConversationEntry{Role: model.RoleAssistant, Content: assistantContent},
	)
	if len(entries) > maxHistoryEntries {
		trimmed := make([]model.ConversationEntry, maxHistoryEntries)
		copy(trimmed, entries[len(entries)-maxHistoryEntries:])
		entries = trimmed
	}
	s.sessions.Add(sessionID, entries)
}

// Clear removes the session entirely; clearing an unknown session is a no-op
func (s *ConversationStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Remove(sessionID)
}

// Len returns the number of live sessions
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
