package models

import (
	"fmt"
	"strings"
	"time"
)

type AgentType string

const (
	AgentTypeFinancialManager AgentType = "financial_manager"
)

const (
	MinMessageLength = 1
	MaxMessageLength = 4000
)

// ChatRequest is the body of POST /api/v1/agents/chat.
type ChatRequest struct {
	Message        string            `json:"message"`
	AgentType      AgentType         `json:"agent_type"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Context        map[string]string `json:"context,omitempty"`
}

// Validate applies defaults and rejects malformed requests.
func (r *ChatRequest) Validate() error {
	if r.AgentType == "" {
		r.AgentType = AgentTypeFinancialManager
	}
	if r.AgentType != AgentTypeFinancialManager {
		return fmt.Errorf("unknown agent_type %q", r.AgentType)
	}
	if n := len(strings.TrimSpace(r.Message)); n < MinMessageLength {
		return fmt.Errorf("message must not be empty")
	}
	if len(r.Message) > MaxMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}
	return nil
}

// ChatResponse is the envelope returned for every processed message.
type ChatResponse struct {
	Response       string         `json:"response"`
	ConversationID string         `json:"conversation_id"`
	AgentType      AgentType      `json:"agent_type"`
	Timestamp      time.Time      `json:"timestamp"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is immutable once appended.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an append-only log of turns keyed by an opaque id.
type Conversation struct {
	ConversationID string             `json:"conversation_id"`
	UserID         string             `json:"user_id"`
	Messages       []ConversationTurn `json:"messages"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type AgentStatus struct {
	AgentType       AgentType `json:"agent_type"`
	IsAvailable     bool      `json:"is_available"`
	LastHealthCheck time.Time `json:"last_health_check"`
	Version         string    `json:"version"`
}
