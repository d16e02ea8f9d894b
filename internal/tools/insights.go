package tools

import (
	"fmt"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

// combinedInsights derives up to five human-readable insights from the two
// analysis halves. Assembly order is fixed and the list is truncated, not
// reordered. An empty result falls back to a generic completion line.
func combinedInsights(price *models.PriceAnalysisOutput, news *models.NewsSentimentOutput) []string {
	var insights []string

	if price != nil && price.CurrentPrice > 0 {
		switch price.TrendDirection {
		case models.TrendBullish:
			insights = append(insights, fmt.Sprintf("Strong upward momentum with %v%% gain over the period", price.PriceChangePercentage))
		case models.TrendBearish:
			insights = append(insights, fmt.Sprintf("Facing downward pressure with %v%% decline", price.PriceChangePercentage))
		}
		if price.VolumeTrend == models.VolumeIncreasing {
			insights = append(insights, "Increasing trading volume supports the price trend")
		}
	}

	if news != nil {
		switch news.OverallSentiment {
		case models.SentimentPositive:
			insights = append(insights, "Positive market sentiment aligns with recent news flow")
		case models.SentimentNegative:
			insights = append(insights, "Market sentiment shows concerns that may impact performance")
		}

		if news.FearGreedIndex > 70 {
			insights = append(insights, "High greed index suggests optimistic market sentiment")
		} else if news.FearGreedIndex < 30 {
			insights = append(insights, "Low fear index may indicate potential buying opportunity")
		}

		if len(news.TopHeadlines) > 0 {
			insights = append(insights, fmt.Sprintf("Recent news includes %d key developments", len(news.TopHeadlines)))
		}
	}

	if len(insights) == 0 {
		return []string{"Analysis completed with available market data"}
	}
	if len(insights) > 5 {
		insights = insights[:5]
	}
	return insights
}
