package dataflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

const yahooChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// cryptoTickers is the whitelist of symbols that get a -USD quote suffix
// when the caller passes a bare crypto ticker.
var cryptoTickers = map[string]bool{
	"BTC": true, "ETH": true, "USDT": true, "BNB": true, "XRP": true,
	"SOL": true, "USDC": true, "DOGE": true, "ADA": true, "TRX": true,
	"LINK": true, "LTC": true, "BCH": true, "XLM": true, "SUI": true,
	"AVAX": true, "HBAR": true, "ZEC": true, "ETC": true, "NEO": true,
	"XMR": true, "FIL": true, "APE": true, "MKR": true, "ATOM": true,
	"THETA": true, "EOS": true, "ALGO": true, "VET": true,
}

var exchangeSuffixes = []string{"-USD", ".SA", ".AX", ".L", ".TO"}

// periodRanges maps analysis periods to the Yahoo chart range vocabulary.
var periodRanges = map[models.AnalysisPeriod]string{
	models.PeriodOneWeek:     "5d",
	models.PeriodTwoWeeks:    "10d",
	models.PeriodOneMonth:    "1mo",
	models.PeriodThreeMonths: "3mo",
	models.PeriodSixMonths:   "6mo",
	models.PeriodOneYear:     "1y",
}

// YahooChartClient fetches price history from the Yahoo Finance chart API
// and derives the per-request price analysis record.
type YahooChartClient struct {
	client *resty.Client
}

func NewYahooChartClient() *YahooChartClient {
	client := resty.New()
	client.SetBaseURL(yahooChartBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeaders(map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	})

	return &YahooChartClient{client: client}
}

// SetBaseURL repoints the client at an alternate chart endpoint.
func (yc *YahooChartClient) SetBaseURL(u string) {
	yc.client.SetBaseURL(u)
}

type chartQuote struct {
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []chartQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FormatSymbol resolves a user symbol to its upstream-queryable form,
// appending -USD for bare whitelisted crypto tickers.
func FormatSymbol(symbol string) string {
	upper := strings.ToUpper(strings.TrimSpace(symbol))
	for _, suffix := range exchangeSuffixes {
		if strings.Contains(upper, suffix) {
			return upper
		}
	}
	if cryptoTickers[upper] {
		return upper + "-USD"
	}
	return upper
}

// RangeForPeriod maps a period token to the upstream range. Unknown
// periods fall back to one month, matching the fetch contract.
func RangeForPeriod(period models.AnalysisPeriod) string {
	if r, ok := periodRanges[period]; ok {
		return r
	}
	return "1mo"
}

// GetPriceAnalysis fetches the chart series for symbol over period and
// derives the analysis record. Errors surface raw to the caller; the tool
// layer is the boundary that degrades them.
func (yc *YahooChartClient) GetPriceAnalysis(ctx context.Context, symbol string, period models.AnalysisPeriod, interval string) (*models.PriceAnalysis, error) {
	if interval == "" {
		interval = "1d"
	}

	formatted := FormatSymbol(symbol)

	var data chartResponse
	resp, err := yc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":          RangeForPeriod(period),
			"interval":       interval,
			"includePrePost": "false",
		}).
		SetResult(&data).
		Get("/" + formatted)
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", formatted, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chart request for %s returned status %d", formatted, resp.StatusCode())
	}
	if data.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", formatted, data.Chart.Error.Description)
	}
	if len(data.Chart.Result) == 0 || len(data.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", formatted)
	}

	quote := data.Chart.Result[0].Indicators.Quote[0]

	return &models.PriceAnalysis{
		Symbol:                symbol,
		CurrentPrice:          lastClose(quote.Close),
		PriceChangePercentage: priceChangePercentage(quote.Close),
		PriceRange:            priceRange(quote.High, quote.Low),
		TrendDirection:        trendDirection(quote.Close),
		VolumeTrend:           volumeTrend(quote.Volume),
		SupportLevels:         supportLevels(quote.Low),
		ResistanceLevels:      resistanceLevels(quote.High),
		MovingAverages:        movingAverages(quote.Close),
		Timestamp:             time.Now(),
	}, nil
}

func round2(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}

func formatPrice(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
