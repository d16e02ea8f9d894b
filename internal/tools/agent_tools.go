package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/joaopedroldavid-del/finsightai-api/config"
	"github.com/joaopedroldavid-del/finsightai-api/internal/dataflows"
	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

// Toolset owns the data clients behind the agent-facing tools. Tool calls
// never return an error to the agent runtime: failures degrade into
// structured placeholder outputs carrying an explanation, never invented
// numbers.
type Toolset struct {
	prices *dataflows.YahooChartClient
	news   *dataflows.NewsAPIClient
}

func NewToolset(cfg *config.Config) *Toolset {
	return &Toolset{
		prices: dataflows.NewYahooChartClient(),
		news:   dataflows.NewNewsAPIClient(cfg.NewsAPIKey),
	}
}

// All returns the three tools exposed to the agent.
func (ts *Toolset) All() []tool.BaseTool {
	return []tool.BaseTool{
		ts.NewPriceAnalysisTool(),
		ts.NewNewsSentimentTool(),
		ts.NewComprehensiveAnalysisTool(),
	}
}

func (ts *Toolset) NewPriceAnalysisTool() tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_price_analysis",
			Desc: "Get price data, trend direction and technical levels for a stock or cryptocurrency symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "Stock or cryptocurrency symbol (e.g., AAPL, BTC)",
					Required: true,
				},
				"period": {
					Type:     "string",
					Desc:     "Analysis period: 1week, 2weeks, 1month, 3months, 6months, 1year (default: 1month)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.PriceAnalysisInput) (*models.PriceAnalysisOutput, error) {
			MarkToolFired(ctx)
			return ts.priceAnalysis(ctx, input), nil
		},
	)
}

func (ts *Toolset) priceAnalysis(ctx context.Context, input models.PriceAnalysisInput) *models.PriceAnalysisOutput {
	period := models.AnalysisPeriod(input.Period)
	if period == "" {
		period = models.PeriodOneMonth
	}

	result, err := ts.prices.GetPriceAnalysis(ctx, input.Symbol, period, "1d")
	if err != nil {
		log.Error().Err(err).Str("symbol", input.Symbol).Msg("price analysis failed")
		return &models.PriceAnalysisOutput{
			Symbol:           input.Symbol,
			PriceRange:       "N/A",
			TrendDirection:   models.TrendUnknown,
			VolumeTrend:      models.VolumeUnknown,
			SupportLevels:    []float64{},
			ResistanceLevels: []float64{},
			MovingAverages:   map[string]float64{},
			AnalysisPeriod:   string(period),
			Error:            fmt.Sprintf("Failed to get price data: %v", err),
		}
	}

	return &models.PriceAnalysisOutput{
		Symbol:                result.Symbol,
		CurrentPrice:          result.CurrentPrice,
		PriceChangePercentage: result.PriceChangePercentage,
		PriceRange:            result.PriceRange,
		TrendDirection:        result.TrendDirection,
		VolumeTrend:           result.VolumeTrend,
		SupportLevels:         result.SupportLevels,
		ResistanceLevels:      result.ResistanceLevels,
		MovingAverages:        result.MovingAverages,
		AnalysisPeriod:        string(period),
	}
}

func (ts *Toolset) NewNewsSentimentTool() tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_news_sentiment",
			Desc: "Get recent news, market sentiment and the fear/greed index for a symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "Stock or cryptocurrency symbol to search news for",
					Required: true,
				},
				"max_results": {
					Type:     "integer",
					Desc:     "Maximum number of news articles to consider (default: 5)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.NewsSentimentInput) (*models.NewsSentimentOutput, error) {
			MarkToolFired(ctx)
			return ts.newsSentiment(ctx, input), nil
		},
	)
}

func (ts *Toolset) newsSentiment(ctx context.Context, input models.NewsSentimentInput) *models.NewsSentimentOutput {
	result := ts.news.GetFinancialNews(ctx, input.Symbol, "", input.MaxResults)

	headlines := make([]string, 0, len(result.Articles))
	sentiments := make([]models.Sentiment, 0, len(result.Articles))
	riskFactors := make([]string, 0)
	for _, article := range result.Articles {
		headlines = append(headlines, article.Title)
		if article.Sentiment != "" {
			sentiments = append(sentiments, article.Sentiment)
		}
		if article.Sentiment == models.SentimentNegative {
			riskFactors = append(riskFactors, "Negative news: "+article.Title)
		}
	}

	return &models.NewsSentimentOutput{
		Symbol:            result.Symbol,
		OverallSentiment:  result.OverallSentiment,
		FearGreedIndex:    result.FearGreedIndex,
		KeyThemes:         result.KeyThemes,
		TopHeadlines:      headlines,
		ArticleSentiments: sentiments,
		RiskFactors:       riskFactors,
	}
}

func (ts *Toolset) NewComprehensiveAnalysisTool() tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_comprehensive_analysis",
			Desc: "Get a complete financial analysis combining price data and market sentiment (recommended)",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "Stock or cryptocurrency symbol",
					Required: true,
				},
				"period": {
					Type:     "string",
					Desc:     "Analysis period: 1week, 2weeks, 1month, 3months, 6months, 1year (default: 1month)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.ComprehensiveAnalysisInput) (*models.ComprehensiveAnalysisOutput, error) {
			MarkToolFired(ctx)

			period := input.Period
			if period == "" {
				period = string(models.PeriodOneMonth)
			}

			// Both halves run even when one degrades; neither blocks the other.
			priceData := ts.priceAnalysis(ctx, models.PriceAnalysisInput{Symbol: input.Symbol, Period: period})
			newsData := ts.newsSentiment(ctx, models.NewsSentimentInput{Symbol: input.Symbol})

			return &models.ComprehensiveAnalysisOutput{
				Symbol:            input.Symbol,
				AnalysisPeriod:    period,
				PriceAnalysis:     priceData,
				SentimentAnalysis: newsData,
				KeyInsights:       combinedInsights(priceData, newsData),
				Summary:           fmt.Sprintf("Comprehensive analysis of %s over %s", input.Symbol, period),
			}, nil
		},
	)
}
