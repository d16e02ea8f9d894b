package storage

import (
	"context"
	"errors"

	"github.com/joaopedroldavid-del/finsightai-api/config"
	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

// ErrConversationNotFound indicates an unknown conversation id.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationStore owns all conversation records for its lifetime.
// Histories are append-only: turns are never reordered or mutated.
type ConversationStore interface {
	// Create starts an empty conversation and returns its fresh opaque id.
	Create(ctx context.Context, userID string) (string, error)
	// Get returns the full conversation, or ErrConversationNotFound.
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	// Messages returns the ordered turns, or ErrConversationNotFound.
	Messages(ctx context.Context, conversationID string) ([]models.ConversationTurn, error)
	// Append pushes a turn and bumps updated_at, or ErrConversationNotFound.
	Append(ctx context.Context, conversationID string, role models.Role, content string) error

	Close() error
}

// NewFromConfig selects the sqlite-backed store when a database path is
// configured and the process-local in-memory store otherwise.
func NewFromConfig(cfg *config.Config) (ConversationStore, error) {
	if cfg.ConversationsDB != "" {
		return OpenSQLiteStore(cfg.ConversationsDB)
	}
	return NewMemoryStore(), nil
}
