package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joaopedroldavid-del/finsightai-api/internal/dataflows"
	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

func newTestToolset(t *testing.T, priceHandler http.HandlerFunc) *Toolset {
	t.Helper()

	prices := dataflows.NewYahooChartClient()
	if priceHandler != nil {
		srv := httptest.NewServer(priceHandler)
		t.Cleanup(srv.Close)
		prices.SetBaseURL(srv.URL)
	}

	return &Toolset{
		prices: prices,
		news:   dataflows.NewNewsAPIClient(""),
	}
}

func TestPriceAnalysisDegradesOnFetchFailure(t *testing.T) {
	ts := newTestToolset(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	})

	out := ts.priceAnalysis(context.Background(), models.PriceAnalysisInput{Symbol: "AAPL"})

	if out.Error == "" || !strings.HasPrefix(out.Error, "Failed to get price data:") {
		t.Errorf("error field: got %q", out.Error)
	}
	if out.Symbol != "AAPL" {
		t.Errorf("symbol: got %q", out.Symbol)
	}
	if out.CurrentPrice != 0 {
		t.Errorf("degraded output must not invent prices: got %v", out.CurrentPrice)
	}
	if out.TrendDirection != models.TrendUnknown || out.VolumeTrend != models.VolumeUnknown {
		t.Errorf("degraded trends: got %v / %v", out.TrendDirection, out.VolumeTrend)
	}
	if out.PriceRange != "N/A" {
		t.Errorf("degraded range: got %q", out.PriceRange)
	}
	if out.SupportLevels == nil || out.ResistanceLevels == nil || out.MovingAverages == nil {
		t.Error("degraded output must keep empty collections, not nils")
	}
	if out.AnalysisPeriod != string(models.PeriodOneMonth) {
		t.Errorf("default period: got %q", out.AnalysisPeriod)
	}
}

func TestNewsSentimentProjection(t *testing.T) {
	ts := newTestToolset(t, nil)

	out := ts.newsSentiment(context.Background(), models.NewsSentimentInput{Symbol: "AAPL"})

	if out.OverallSentiment != models.SentimentPositive {
		t.Errorf("overall: got %v", out.OverallSentiment)
	}
	if len(out.TopHeadlines) != 3 || len(out.ArticleSentiments) != 3 {
		t.Fatalf("projection: %d headlines, %d sentiments", len(out.TopHeadlines), len(out.ArticleSentiments))
	}
	if len(out.RiskFactors) != 1 {
		t.Fatalf("risk factors: got %v", out.RiskFactors)
	}
	if out.RiskFactors[0] != "Negative news: Apple faces regulatory challenges in EU" {
		t.Errorf("risk factor text: got %q", out.RiskFactors[0])
	}
}

func TestAllExposesThreeTools(t *testing.T) {
	ts := newTestToolset(t, nil)
	all := ts.All()
	if len(all) != 3 {
		t.Fatalf("got %d tools, want 3", len(all))
	}

	wantNames := map[string]bool{
		"get_price_analysis":         true,
		"get_news_sentiment":         true,
		"get_comprehensive_analysis": true,
	}
	for _, tl := range all {
		info, err := tl.Info(context.Background())
		if err != nil {
			t.Fatalf("tool info: %v", err)
		}
		if !wantNames[info.Name] {
			t.Errorf("unexpected tool %q", info.Name)
		}
		delete(wantNames, info.Name)
	}
	if len(wantNames) != 0 {
		t.Errorf("missing tools: %v", wantNames)
	}
}

func TestUsageRecorder(t *testing.T) {
	// Without a recorder marking is a no-op.
	MarkToolFired(context.Background())

	ctx, rec := WithUsageRecorder(context.Background())
	if rec.ToolFired() {
		t.Error("fresh recorder should be unfired")
	}
	MarkToolFired(ctx)
	if !rec.ToolFired() {
		t.Error("recorder should observe the tool firing")
	}
}

func TestCombinedInsightsFixedOrder(t *testing.T) {
	price := &models.PriceAnalysisOutput{
		CurrentPrice:          150,
		PriceChangePercentage: 5.5,
		TrendDirection:        models.TrendBullish,
		VolumeTrend:           models.VolumeIncreasing,
	}
	news := &models.NewsSentimentOutput{
		OverallSentiment: models.SentimentPositive,
		FearGreedIndex:   80,
		TopHeadlines:     []string{"a", "b", "c"},
	}

	got := combinedInsights(price, news)
	want := []string{
		"Strong upward momentum with 5.5% gain over the period",
		"Increasing trading volume supports the price trend",
		"Positive market sentiment aligns with recent news flow",
		"High greed index suggests optimistic market sentiment",
		"Recent news includes 3 key developments",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d insights: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insight %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCombinedInsightsSuppressedByZeroPrice(t *testing.T) {
	price := &models.PriceAnalysisOutput{
		TrendDirection: models.TrendBullish,
		VolumeTrend:    models.VolumeIncreasing,
		Error:          "Failed to get price data: boom",
	}
	news := &models.NewsSentimentOutput{
		OverallSentiment: models.SentimentNegative,
		FearGreedIndex:   20,
		TopHeadlines:     []string{"x"},
	}

	got := combinedInsights(price, news)
	for _, insight := range got {
		if strings.Contains(insight, "momentum") || strings.Contains(insight, "volume") {
			t.Errorf("price insights must be suppressed without a price: %q", insight)
		}
	}
	if got[0] != "Market sentiment shows concerns that may impact performance" {
		t.Errorf("first insight: got %q", got[0])
	}
}

func TestCombinedInsightsFallback(t *testing.T) {
	got := combinedInsights(&models.PriceAnalysisOutput{}, &models.NewsSentimentOutput{FearGreedIndex: 50})
	if len(got) != 1 || got[0] != "Analysis completed with available market data" {
		t.Errorf("fallback: got %v", got)
	}
}
