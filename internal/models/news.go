package models

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type NewsArticle struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt string    `json:"published_at"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Sentiment   Sentiment `json:"sentiment,omitempty"`
}

// NewsAnalysis is a fresh-per-request sentiment summary for a symbol.
type NewsAnalysis struct {
	Symbol           string        `json:"symbol"`
	Articles         []NewsArticle `json:"articles"`
	OverallSentiment Sentiment     `json:"overall_sentiment"`
	FearGreedIndex   int           `json:"fear_greed_index"`
	KeyThemes        []string      `json:"key_themes"`
	Timestamp        time.Time     `json:"timestamp"`
}

type NewsSentimentInput struct {
	Symbol     string `json:"symbol"`
	MaxResults int    `json:"max_results"`
}

type NewsSentimentOutput struct {
	Symbol            string      `json:"symbol"`
	OverallSentiment  Sentiment   `json:"overall_sentiment"`
	FearGreedIndex    int         `json:"fear_greed_index"`
	KeyThemes         []string    `json:"key_themes"`
	TopHeadlines      []string    `json:"top_headlines"`
	ArticleSentiments []Sentiment `json:"article_sentiments"`
	RiskFactors       []string    `json:"risk_factors"`
	Error             string      `json:"error,omitempty"`
}

type ComprehensiveAnalysisInput struct {
	Symbol string `json:"symbol"`
	Period string `json:"period"`
}

type ComprehensiveAnalysisOutput struct {
	Symbol            string               `json:"symbol"`
	AnalysisPeriod    string               `json:"analysis_period"`
	PriceAnalysis     *PriceAnalysisOutput `json:"price_analysis"`
	SentimentAnalysis *NewsSentimentOutput `json:"sentiment_analysis"`
	KeyInsights       []string             `json:"key_insights"`
	Summary           string               `json:"summary"`
	Error             string               `json:"error,omitempty"`
}
