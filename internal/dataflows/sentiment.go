package dataflows

import (
	"strings"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

var positiveWords = []string{
	"bullish", "positive", "strong", "record", "beat",
	"growth", "profit", "gain", "rise", "up",
}

var negativeWords = []string{
	"bearish", "negative", "weak", "loss", "fall",
	"drop", "decline", "risk", "concern", "down",
}

// themeBucket maps trigger keywords to a human-readable theme. Buckets are
// scanned in fixed order and a title contributes each bucket at most once.
type themeBucket struct {
	theme    string
	keywords []string
}

var themeBuckets = []themeBucket{
	{"Financial Performance", []string{"earnings", "profit", "revenue"}},
	{"Product Development", []string{"product", "launch", "release"}},
	{"Regulatory Environment", []string{"regulation", "legal", "law"}},
	{"Business Partnerships", []string{"partnership", "deal", "acquisition"}},
	{"Market Activity", []string{"market", "trading", "volume"}},
}

// AnalyzeSentiment classifies text by counting keyword hits. More positive
// than negative hits is positive, the reverse is negative, ties (including
// zero hits) are neutral.
func AnalyzeSentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)

	positive := 0
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	negative := 0
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// OverallSentiment is the majority vote across article sentiments.
func OverallSentiment(articles []models.NewsArticle) models.Sentiment {
	if len(articles) == 0 {
		return models.SentimentNeutral
	}

	positive, negative := 0, 0
	for _, article := range articles {
		switch article.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// FearGreedIndex scores sentiment intensity into [0,100]: the positive
// ratio scaled to 100, nudged by 10 in the direction of the overall vote.
func FearGreedIndex(articles []models.NewsArticle) int {
	if len(articles) == 0 {
		return 50
	}

	total := 0
	positive := 0
	for _, article := range articles {
		if article.Sentiment == "" {
			continue
		}
		total++
		if article.Sentiment == models.SentimentPositive {
			positive++
		}
	}
	if total == 0 {
		return 50
	}

	score := float64(positive) / float64(total) * 100

	switch OverallSentiment(articles) {
	case models.SentimentPositive:
		score += 10
	case models.SentimentNegative:
		score -= 10
	}

	index := int(score)
	if index < 0 {
		index = 0
	}
	if index > 100 {
		index = 100
	}
	return index
}

// ExtractKeyThemes scans article titles against the fixed buckets,
// deduplicates in first-appearance order and caps the list at five.
func ExtractKeyThemes(articles []models.NewsArticle) []string {
	seen := make(map[string]bool)
	themes := make([]string, 0, len(themeBuckets))

	for _, article := range articles {
		title := strings.ToLower(article.Title)
		for _, bucket := range themeBuckets {
			for _, keyword := range bucket.keywords {
				if strings.Contains(title, keyword) {
					if !seen[bucket.theme] {
						seen[bucket.theme] = true
						themes = append(themes, bucket.theme)
					}
					break
				}
			}
		}
	}

	if len(themes) > 5 {
		themes = themes[:5]
	}
	return themes
}
