package models

import "time"

// AnalysisPeriod is the fixed vocabulary accepted by the price fetcher.
type AnalysisPeriod string

const (
	PeriodOneWeek     AnalysisPeriod = "1week"
	PeriodTwoWeeks    AnalysisPeriod = "2weeks"
	PeriodOneMonth    AnalysisPeriod = "1month"
	PeriodThreeMonths AnalysisPeriod = "3months"
	PeriodSixMonths   AnalysisPeriod = "6months"
	PeriodOneYear     AnalysisPeriod = "1year"
)

type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
	TrendUnknown TrendDirection = "unknown"
)

type VolumeTrend string

const (
	VolumeIncreasing VolumeTrend = "increasing"
	VolumeDecreasing VolumeTrend = "decreasing"
	VolumeStable     VolumeTrend = "stable"
	VolumeUnknown    VolumeTrend = "unknown"
)

// PriceAnalysis is a fresh-per-request derivation of a price series.
type PriceAnalysis struct {
	Symbol                string             `json:"symbol"`
	CurrentPrice          float64            `json:"current_price"`
	PriceChangePercentage float64            `json:"price_change_percentage"`
	PriceRange            string             `json:"price_range"`
	TrendDirection        TrendDirection     `json:"trend_direction"`
	VolumeTrend           VolumeTrend        `json:"volume_trend"`
	SupportLevels         []float64          `json:"support_levels"`
	ResistanceLevels      []float64          `json:"resistance_levels"`
	MovingAverages        map[string]float64 `json:"moving_averages"`
	Timestamp             time.Time          `json:"timestamp"`
}

type PriceAnalysisInput struct {
	Symbol string `json:"symbol"`
	Period string `json:"period"`
}

type PriceAnalysisOutput struct {
	Symbol                string             `json:"symbol"`
	CurrentPrice          float64            `json:"current_price"`
	PriceChangePercentage float64            `json:"price_change_percentage"`
	PriceRange            string             `json:"price_range"`
	TrendDirection        TrendDirection     `json:"trend_direction"`
	VolumeTrend           VolumeTrend        `json:"volume_trend"`
	SupportLevels         []float64          `json:"support_levels"`
	ResistanceLevels      []float64          `json:"resistance_levels"`
	MovingAverages        map[string]float64 `json:"moving_averages"`
	AnalysisPeriod        string             `json:"analysis_period"`
	Error                 string             `json:"error,omitempty"`
}
