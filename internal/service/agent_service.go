package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/joaopedroldavid-del/finsightai-api/internal/agents"
	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
	"github.com/joaopedroldavid-del/finsightai-api/internal/storage"
	"github.com/joaopedroldavid-del/finsightai-api/internal/tools"
)

// ErrAgentUnavailable is returned when a chat request names an agent type
// that is not registered or failed to initialize.
var ErrAgentUnavailable = errors.New("agent unavailable")

// AgentError wraps any failure inside the agent processing pipeline so the
// HTTP layer can report it uniformly.
type AgentError struct {
	Message string
	Err     error
}

func (e *AgentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AgentError) Unwrap() error { return e.Err }

func agentErr(msg string, err error) *AgentError {
	return &AgentError{Message: msg, Err: err}
}

// AgentRunner is the slice of an agent the service needs: a type name,
// a readiness probe and a single-shot invocation.
type AgentRunner interface {
	AgentType() models.AgentType
	Ready() bool
	Run(ctx context.Context, message string) (*agents.Reply, error)
}

const (
	serviceVersion = "1.0.0"

	// historyWindow is how many prior turns are replayed into the prompt.
	historyWindow = 6

	// promptBudget caps the enriched prompt; past it we fall back to a
	// minimal form so the model call stays well inside its context.
	promptBudget = 4000

	// invocationTimeout bounds one agent run, tool calls included.
	invocationTimeout = 120 * time.Second
)

// AgentService routes chat messages to agents and persists the exchange.
type AgentService struct {
	store   storage.ConversationStore
	runners map[models.AgentType]AgentRunner
}

func NewAgentService(store storage.ConversationStore, runners ...AgentRunner) *AgentService {
	m := make(map[models.AgentType]AgentRunner, len(runners))
	for _, r := range runners {
		m[r.AgentType()] = r
	}
	return &AgentService{store: store, runners: m}
}

// InitializeAgents eagerly initializes every runner that supports it.
// Runners that are already ready are skipped.
func (s *AgentService) InitializeAgents(ctx context.Context) error {
	type initializer interface {
		Initialize(ctx context.Context) error
	}
	for t, r := range s.runners {
		if r.Ready() {
			continue
		}
		init, ok := r.(initializer)
		if !ok {
			continue
		}
		if err := init.Initialize(ctx); err != nil {
			return fmt.Errorf("initialize agent %s: %w", t, err)
		}
		log.Info().Str("agent", string(t)).Msg("agent initialized")
	}
	return nil
}

// ProcessMessage runs one chat turn: resolve the conversation, enrich the
// message with history and user context, invoke the agent once, then record
// both sides of the exchange.
func (s *AgentService) ProcessMessage(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	start := time.Now()

	runner, ok := s.runners[req.AgentType]
	if !ok || !runner.Ready() {
		return nil, agentErr(fmt.Sprintf("agent %q is not available", req.AgentType), ErrAgentUnavailable)
	}

	conversationID := req.ConversationID
	var history []models.ConversationTurn
	if conversationID == "" {
		id, err := s.store.Create(ctx, "")
		if err != nil {
			return nil, agentErr("create conversation", err)
		}
		conversationID = id
	} else {
		turns, err := s.store.Messages(ctx, conversationID)
		if err != nil {
			return nil, agentErr("load conversation history", err)
		}
		history = turns
	}

	prompt := enrichMessage(req.Message, history, req.Context, conversationID)

	runCtx, cancel := context.WithTimeout(ctx, invocationTimeout)
	defer cancel()
	runCtx, recorder := tools.WithUsageRecorder(runCtx)
	reply, err := runner.Run(runCtx, prompt)
	if err != nil {
		return nil, agentErr("agent processing failed", err)
	}
	text := reply.Render()

	if err := s.store.Append(ctx, conversationID, models.RoleUser, req.Message); err != nil {
		return nil, agentErr("record user turn", err)
	}
	if err := s.store.Append(ctx, conversationID, models.RoleAssistant, text); err != nil {
		return nil, agentErr("record assistant turn", err)
	}

	return &models.ChatResponse{
		Response:       text,
		ConversationID: conversationID,
		AgentType:      req.AgentType,
		Timestamp:      time.Now().UTC(),
		Metadata: map[string]any{
			"tool_used":       recorder.ToolFired(),
			"processing_time": time.Since(start).Seconds(),
		},
	}, nil
}

// GetConversationHistory returns the stored conversation, or an AgentError
// when it does not exist.
func (s *AgentService) GetConversationHistory(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conv, err := s.store.Get(ctx, conversationID)
	if err != nil {
		return nil, agentErr("load conversation", err)
	}
	return conv, nil
}

// CreateConversation opens an empty conversation and returns its id.
func (s *AgentService) CreateConversation(ctx context.Context, userID string) (string, error) {
	id, err := s.store.Create(ctx, userID)
	if err != nil {
		return "", agentErr("create conversation", err)
	}
	return id, nil
}

// GetAgentStatus reports each registered agent and whether it is ready.
func (s *AgentService) GetAgentStatus() []models.AgentStatus {
	statuses := make([]models.AgentStatus, 0, len(s.runners))
	for t, r := range s.runners {
		statuses = append(statuses, models.AgentStatus{
			AgentType:       t,
			IsAvailable:     r.Ready(),
			LastHealthCheck: time.Now().UTC(),
			Version:         serviceVersion,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].AgentType < statuses[j].AgentType })
	return statuses
}

// AgentTypes lists the registered agent type names.
func (s *AgentService) AgentTypes() []string {
	names := make([]string, 0, len(s.runners))
	for t := range s.runners {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// enrichMessage folds recent history and caller-supplied context around the
// current question. When the enriched form overruns promptBudget it degrades
// to a compact fallback that keeps the question intact.
func enrichMessage(message string, history []models.ConversationTurn, userContext map[string]string, conversationID string) string {
	var b strings.Builder

	if len(history) > 0 {
		recent := history
		if len(recent) > historyWindow {
			recent = recent[len(recent)-historyWindow:]
		}
		b.WriteString("Previous conversation:\n")
		for _, turn := range recent {
			label := "User"
			if turn.Role == models.RoleAssistant {
				label = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
		}
		b.WriteString("\n")
	}

	if len(userContext) > 0 {
		keys := make([]string, 0, len(userContext))
		for k := range userContext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("User context:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, userContext[k])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Current question: %s", message)

	enriched := b.String()
	if len(enriched) <= promptBudget {
		return enriched
	}

	fallback := fmt.Sprintf("Conversation ID: %s\n\nQuestion: %s", conversationID, message)
	if len(userContext) > 0 {
		keys := make([]string, 0, len(userContext))
		for k := range userContext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %s", k, userContext[k]))
		}
		fallback += "\n\nUser context: " + strings.Join(pairs, ", ")
	}
	return fallback
}
