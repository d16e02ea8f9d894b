package agents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/joaopedroldavid-del/finsightai-api/config"
	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
	"github.com/joaopedroldavid-del/finsightai-api/internal/tools"
)

// ErrNoAPIKey means the chat-model credential is missing; agent
// construction fails fatally without it.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is not configured")

const financialManagerPrompt = `# Financial Analysis Agent

You are a financial analysis expert with access to real-time data tools.

## TOOLS AVAILABLE:
1. get_price_analysis(symbol, period) - Get price data, trends, technical indicators
2. get_news_sentiment(symbol) - Get market sentiment, news, fear/greed index
3. get_comprehensive_analysis(symbol, period) - Get complete analysis (recommended)

## MANDATORY WORKFLOW:
1. ALWAYS call a tool first to get real data
2. Use get_comprehensive_analysis() for most requests
3. Extract symbol (AAPL, TSLA, BTC, etc.) and period from user message
4. Present ACTUAL data from tool responses

## CRITICAL RULES:
- NEVER invent or estimate numbers - use only tool data
- NO placeholders like "XXXXX" or "XX%" - use actual values
- If tools fail, explain the issue but don't make up data
- Always specify the symbol and period in your response

## RESPONSE STRUCTURE:
1. State what you're analyzing (symbol + period)
2. Present actual price data from tools
3. Present actual sentiment data from tools
4. Provide insights based on the real data
5. Note any data limitations if tools fail

Your responses must be data-driven and accurate!`

// FinancialManager wraps a single react agent bound to the fixed system
// prompt and the three data tools. Construction is lazy and idempotent.
type FinancialManager struct {
	mu      sync.Mutex
	agent   *react.Agent
	toolset *tools.Toolset
	cfg     *config.Config
}

func NewFinancialManager(cfg *config.Config, toolset *tools.Toolset) *FinancialManager {
	return &FinancialManager{
		cfg:     cfg,
		toolset: toolset,
	}
}

func (fm *FinancialManager) AgentType() models.AgentType {
	return models.AgentTypeFinancialManager
}

// Initialize constructs the agent once. Repeated calls are no-ops.
func (fm *FinancialManager) Initialize(ctx context.Context) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.agent != nil {
		return nil
	}
	if fm.cfg.OpenAIAPIKey == "" {
		return ErrNoAPIKey
	}

	maxTokens := 4096
	chatModel, err := openaiModel.NewChatModel(ctx, &openaiModel.ChatModelConfig{
		BaseURL:   fm.cfg.OpenAIBaseURL,
		APIKey:    fm.cfg.OpenAIAPIKey,
		Model:     fm.cfg.OpenAIModel,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return fmt.Errorf("create chat model: %w", err)
	}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		MaxStep:          40,
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: fm.toolset.All(),
		},
		StreamToolCallChecker: toolCallChecker,
	})
	if err != nil {
		return fmt.Errorf("create react agent: %w", err)
	}

	fm.agent = agent
	log.Info().Str("model", fm.cfg.OpenAIModel).Msg("financial manager agent initialized")
	return nil
}

// Ready reports whether the agent has been constructed.
func (fm *FinancialManager) Ready() bool {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.agent != nil
}

// Run invokes the agent with a single pinned calling convention and folds
// the final message into the reply union.
func (fm *FinancialManager) Run(ctx context.Context, message string) (*Reply, error) {
	fm.mu.Lock()
	agent := fm.agent
	fm.mu.Unlock()

	if agent == nil {
		return nil, fmt.Errorf("financial manager agent is not initialized")
	}

	out, err := agent.Generate(ctx, []*schema.Message{
		schema.SystemMessage(financialManagerPrompt),
		schema.UserMessage(message),
	})
	if err != nil {
		return nil, fmt.Errorf("agent invocation: %w", err)
	}

	return ExtractReply(out), nil
}

func toolCallChecker(ctx context.Context, sr *schema.StreamReader[*schema.Message]) (bool, error) {
	defer sr.Close()
	for {
		msg, err := sr.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if len(msg.ToolCalls) > 0 {
			return true, nil
		}
	}
}
