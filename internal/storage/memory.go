package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

// MemoryStore keeps conversations in a process-local map. Records live for
// the process lifetime; there is no deletion path. A single mutex guards
// the map since concurrent HTTP requests may target the same conversation.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*models.Conversation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*models.Conversation),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID string) (string, error) {
	if userID == "" {
		userID = "anonymous"
	}

	id := uuid.NewString()
	now := time.Now()

	s.mu.Lock()
	s.conversations[id] = &models.Conversation{
		ConversationID: id,
		UserID:         userID,
		Messages:       []models.ConversationTurn{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.mu.Unlock()

	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, conversationID string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}

	// Copy so callers cannot mutate the stored history.
	out := *conv
	out.Messages = append([]models.ConversationTurn(nil), conv.Messages...)
	return &out, nil
}

func (s *MemoryStore) Messages(ctx context.Context, conversationID string) ([]models.ConversationTurn, error) {
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return conv.Messages, nil
}

func (s *MemoryStore) Append(_ context.Context, conversationID string, role models.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return ErrConversationNotFound
	}

	now := time.Now()
	conv.Messages = append(conv.Messages, models.ConversationTurn{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	conv.UpdatedAt = now
	return nil
}

func (s *MemoryStore) Close() error { return nil }
