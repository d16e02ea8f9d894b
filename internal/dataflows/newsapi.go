package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPIClient fetches recent financial news for a symbol, degrading to
// the deterministic mock tables when no credential is configured or the
// live source fails.
type NewsAPIClient struct {
	client *resty.Client
	apiKey string
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	client := resty.New()
	client.SetBaseURL(newsAPIBaseURL)
	client.SetTimeout(30 * time.Second)

	return &NewsAPIClient{
		client: client,
		apiKey: apiKey,
	}
}

// SetBaseURL repoints the client at an alternate news endpoint.
func (nc *NewsAPIClient) SetBaseURL(u string) {
	nc.client.SetBaseURL(u)
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// GetFinancialNews returns a sentiment summary for symbol. It never fails:
// any live-fetch problem is absorbed into the mock fallback.
func (nc *NewsAPIClient) GetFinancialNews(ctx context.Context, symbol, query string, maxResults int) *models.NewsAnalysis {
	if maxResults <= 0 {
		maxResults = 5
	}

	if nc.apiKey == "" {
		return buildMockNews(symbol, maxResults)
	}

	result, err := nc.fetchLiveNews(ctx, symbol, query, maxResults)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("live news fetch failed, serving mock articles")
		return buildMockNews(symbol, maxResults)
	}
	return result
}

func (nc *NewsAPIClient) fetchLiveNews(ctx context.Context, symbol, query string, maxResults int) (*models.NewsAnalysis, error) {
	if query == "" {
		query = fmt.Sprintf("%s stock OR %s shares OR %s earnings", symbol, symbol, symbol)
	}

	var data newsAPIResponse
	resp, err := nc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        query,
			"apiKey":   nc.apiKey,
			"pageSize": fmt.Sprintf("%d", maxResults),
			"sortBy":   "publishedAt",
			"language": "en",
			"from":     time.Now().AddDate(0, 0, -7).Format("2006-01-02"),
		}).
		SetResult(&data).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("news request for %s returned status %d", symbol, resp.StatusCode())
	}

	articles := make([]models.NewsArticle, 0, maxResults)
	for _, raw := range data.Articles {
		if len(articles) >= maxResults {
			break
		}
		source := raw.Source.Name
		if source == "" {
			source = "Unknown"
		}
		article := models.NewsArticle{
			Title:       raw.Title,
			Source:      source,
			PublishedAt: raw.PublishedAt,
			Description: raw.Description,
			URL:         raw.URL,
		}
		article.Sentiment = AnalyzeSentiment(article.Title + " " + article.Description)
		articles = append(articles, article)
	}

	return &models.NewsAnalysis{
		Symbol:           symbol,
		Articles:         articles,
		OverallSentiment: OverallSentiment(articles),
		FearGreedIndex:   FearGreedIndex(articles),
		KeyThemes:        ExtractKeyThemes(articles),
		Timestamp:        time.Now(),
	}, nil
}
