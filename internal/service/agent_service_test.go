package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joaopedroldavid-del/finsightai-api/internal/agents"
	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
	"github.com/joaopedroldavid-del/finsightai-api/internal/storage"
	"github.com/joaopedroldavid-del/finsightai-api/internal/tools"
)

type fakeRunner struct {
	agentType  models.AgentType
	ready      bool
	reply      string
	err        error
	lastPrompt string
	fireTool   bool
}

func (f *fakeRunner) AgentType() models.AgentType { return f.agentType }

func (f *fakeRunner) Ready() bool { return f.ready }

func (f *fakeRunner) Run(ctx context.Context, message string) (*agents.Reply, error) {
	f.lastPrompt = message
	if f.fireTool {
		tools.MarkToolFired(ctx)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &agents.Reply{Kind: agents.ReplyText, Text: f.reply}, nil
}

func newTestService(runner *fakeRunner) (*AgentService, storage.ConversationStore) {
	store := storage.NewMemoryStore()
	return NewAgentService(store, runner), store
}

func TestProcessMessageNewConversation(t *testing.T) {
	runner := &fakeRunner{
		agentType: models.AgentTypeFinancialManager,
		ready:     true,
		reply:     "AAPL is trending bullish.",
		fireTool:  true,
	}
	svc, store := newTestService(runner)
	ctx := context.Background()

	resp, err := svc.ProcessMessage(ctx, &models.ChatRequest{
		Message:   "How is AAPL doing?",
		AgentType: models.AgentTypeFinancialManager,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if resp.Response != "AAPL is trending bullish." {
		t.Errorf("response: got %q", resp.Response)
	}
	if resp.ConversationID == "" {
		t.Error("a conversation id must be minted")
	}
	if resp.AgentType != models.AgentTypeFinancialManager {
		t.Errorf("agent type: got %v", resp.AgentType)
	}
	if used, ok := resp.Metadata["tool_used"].(bool); !ok || !used {
		t.Errorf("tool_used metadata: got %v", resp.Metadata["tool_used"])
	}
	if _, ok := resp.Metadata["processing_time"].(float64); !ok {
		t.Errorf("processing_time metadata: got %v", resp.Metadata["processing_time"])
	}

	turns, err := store.Messages(ctx, resp.ConversationID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("both sides of the exchange must be recorded: got %d turns", len(turns))
	}
	if turns[0].Role != models.RoleUser || turns[0].Content != "How is AAPL doing?" {
		t.Errorf("user turn: %+v", turns[0])
	}
	if turns[1].Role != models.RoleAssistant || turns[1].Content != "AAPL is trending bullish." {
		t.Errorf("assistant turn: %+v", turns[1])
	}
}

func TestProcessMessageUnavailableAgent(t *testing.T) {
	runner := &fakeRunner{agentType: models.AgentTypeFinancialManager, ready: false}
	svc, _ := newTestService(runner)

	_, err := svc.ProcessMessage(context.Background(), &models.ChatRequest{
		Message:   "hello",
		AgentType: models.AgentTypeFinancialManager,
	})
	if !errors.Is(err, ErrAgentUnavailable) {
		t.Fatalf("got %v, want ErrAgentUnavailable", err)
	}
	var agentErr *AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("failures must surface as AgentError: %T", err)
	}
}

func TestProcessMessageUnknownConversation(t *testing.T) {
	runner := &fakeRunner{agentType: models.AgentTypeFinancialManager, ready: true, reply: "ok"}
	svc, _ := newTestService(runner)

	_, err := svc.ProcessMessage(context.Background(), &models.ChatRequest{
		Message:        "hello",
		AgentType:      models.AgentTypeFinancialManager,
		ConversationID: "does-not-exist",
	})
	if !errors.Is(err, storage.ErrConversationNotFound) {
		t.Fatalf("got %v, want ErrConversationNotFound", err)
	}
}

func TestProcessMessageRunnerFailure(t *testing.T) {
	runner := &fakeRunner{
		agentType: models.AgentTypeFinancialManager,
		ready:     true,
		err:       errors.New("model timeout"),
	}
	svc, store := newTestService(runner)
	ctx := context.Background()

	id, _ := store.Create(ctx, "")
	_, err := svc.ProcessMessage(ctx, &models.ChatRequest{
		Message:        "hello",
		AgentType:      models.AgentTypeFinancialManager,
		ConversationID: id,
	})
	if err == nil {
		t.Fatal("runner failure must surface")
	}
	var agentErr *AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("got %T, want AgentError", err)
	}

	// A failed invocation records nothing.
	turns, _ := store.Messages(ctx, id)
	if len(turns) != 0 {
		t.Errorf("failed exchange must not be recorded: %d turns", len(turns))
	}
}

func TestProcessMessageEnrichesWithHistoryAndContext(t *testing.T) {
	runner := &fakeRunner{agentType: models.AgentTypeFinancialManager, ready: true, reply: "noted"}
	svc, store := newTestService(runner)
	ctx := context.Background()

	id, _ := store.Create(ctx, "")
	_ = store.Append(ctx, id, models.RoleUser, "earlier question")
	_ = store.Append(ctx, id, models.RoleAssistant, "earlier answer")

	_, err := svc.ProcessMessage(ctx, &models.ChatRequest{
		Message:        "follow-up question",
		AgentType:      models.AgentTypeFinancialManager,
		ConversationID: id,
		Context:        map[string]string{"risk_profile": "conservative"},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	prompt := runner.lastPrompt
	if !strings.Contains(prompt, "Previous conversation:") {
		t.Errorf("prompt missing history header: %q", prompt)
	}
	if !strings.Contains(prompt, "User: earlier question") || !strings.Contains(prompt, "Assistant: earlier answer") {
		t.Errorf("prompt missing replayed turns: %q", prompt)
	}
	if !strings.Contains(prompt, "risk_profile: conservative") {
		t.Errorf("prompt missing user context: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Current question: follow-up question") {
		t.Errorf("question must come last: %q", prompt)
	}
}

func TestEnrichMessageHistoryWindow(t *testing.T) {
	history := make([]models.ConversationTurn, 0, 10)
	for i := 0; i < 10; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.ConversationTurn{Role: role, Content: "turn"})
	}
	history[3].Content = "outside window"
	history[4].Content = "inside window"

	prompt := enrichMessage("q", history, nil, "conv-1")
	if strings.Contains(prompt, "outside window") {
		t.Error("turns beyond the window must be dropped")
	}
	if !strings.Contains(prompt, "inside window") {
		t.Error("turns inside the window must be kept")
	}
}

func TestEnrichMessageFallsBackOverBudget(t *testing.T) {
	long := strings.Repeat("x", promptBudget)
	history := []models.ConversationTurn{{Role: models.RoleUser, Content: long}}

	prompt := enrichMessage("short question", history, map[string]string{"k": "v"}, "conv-42")
	if len(prompt) > promptBudget {
		t.Fatalf("fallback prompt still over budget: %d chars", len(prompt))
	}
	if !strings.Contains(prompt, "Conversation ID: conv-42") {
		t.Errorf("fallback must name the conversation: %q", prompt)
	}
	if !strings.Contains(prompt, "Question: short question") {
		t.Errorf("fallback must keep the question: %q", prompt)
	}
	if !strings.Contains(prompt, "k: v") {
		t.Errorf("fallback must keep user context: %q", prompt)
	}
}

func TestGetAgentStatus(t *testing.T) {
	runner := &fakeRunner{agentType: models.AgentTypeFinancialManager, ready: true}
	svc, _ := newTestService(runner)

	statuses := svc.GetAgentStatus()
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses", len(statuses))
	}
	st := statuses[0]
	if st.AgentType != models.AgentTypeFinancialManager || !st.IsAvailable || st.Version == "" {
		t.Errorf("status: %+v", st)
	}
}

func TestGetConversationHistoryNotFound(t *testing.T) {
	runner := &fakeRunner{agentType: models.AgentTypeFinancialManager, ready: true}
	svc, _ := newTestService(runner)

	_, err := svc.GetConversationHistory(context.Background(), "missing")
	if !errors.Is(err, storage.ErrConversationNotFound) {
		t.Fatalf("got %v, want wrapped ErrConversationNotFound", err)
	}
}
