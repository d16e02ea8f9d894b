package dataflows

import (
	"strings"
	"time"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

type mockHeadline struct {
	title     string
	source    string
	sentiment models.Sentiment
}

// mockNewsTable provides deterministic articles when no news credential is
// configured or the live source fails.
var mockNewsTable = map[string][]mockHeadline{
	"AAPL": {
		{"Apple announces record iPhone sales", "Bloomberg", models.SentimentPositive},
		{"New Apple AI features impress analysts", "CNBC", models.SentimentPositive},
		{"Apple faces regulatory challenges in EU", "Reuters", models.SentimentNegative},
	},
	"TSLA": {
		{"Tesla deliveries exceed expectations", "Wall Street Journal", models.SentimentPositive},
		{"New Tesla factory accelerates production", "Bloomberg", models.SentimentPositive},
		{"Tesla faces competition from legacy automakers", "Reuters", models.SentimentNegative},
	},
	"BTC": {
		{"Bitcoin ETF approvals drive institutional adoption", "CoinDesk", models.SentimentPositive},
		{"Regulatory clarity improves for cryptocurrencies", "Bloomberg", models.SentimentPositive},
		{"Market volatility concerns persist", "Reuters", models.SentimentNegative},
	},
}

var genericMockNews = []mockHeadline{
	{"Strong quarterly earnings reported", "Financial Times", models.SentimentPositive},
	{"Market shows positive momentum", "Bloomberg", models.SentimentPositive},
	{"Economic uncertainty affects performance", "Reuters", models.SentimentNegative},
}

// buildMockNews materializes the per-symbol table (or the generic fallback)
// into a news analysis. Published timestamps walk backwards one day per
// article index.
func buildMockNews(symbol string, maxResults int) *models.NewsAnalysis {
	headlines, ok := mockNewsTable[strings.ToUpper(symbol)]
	if !ok {
		headlines = genericMockNews
	}
	if maxResults > 0 && len(headlines) > maxResults {
		headlines = headlines[:maxResults]
	}

	now := time.Now()
	articles := make([]models.NewsArticle, 0, len(headlines))
	for i, h := range headlines {
		articles = append(articles, models.NewsArticle{
			Title:       h.title,
			Source:      h.source,
			PublishedAt: now.AddDate(0, 0, -i).Format(time.RFC3339),
			Sentiment:   h.sentiment,
		})
	}

	return &models.NewsAnalysis{
		Symbol:           symbol,
		Articles:         articles,
		OverallSentiment: OverallSentiment(articles),
		FearGreedIndex:   FearGreedIndex(articles),
		KeyThemes:        ExtractKeyThemes(articles),
		Timestamp:        now,
	}
}
