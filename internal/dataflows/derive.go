package dataflows

import (
	"sort"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

func validFloats(values []*float64) []float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			valid = append(valid, *v)
		}
	}
	return valid
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func lastClose(closes []*float64) float64 {
	if len(closes) == 0 || closes[len(closes)-1] == nil {
		return 0
	}
	return *closes[len(closes)-1]
}

func priceChangePercentage(closes []*float64) float64 {
	current := lastClose(closes)
	start := current
	if len(closes) > 0 && closes[0] != nil {
		start = *closes[0]
	}
	if start == 0 {
		return 0
	}
	return round2((current - start) / start * 100)
}

// priceRange formats "$low-$high" from the non-null extremes, or N/A when
// either side has no valid samples.
func priceRange(highs, lows []*float64) string {
	validHighs := validFloats(highs)
	validLows := validFloats(lows)
	if len(validHighs) == 0 || len(validLows) == 0 {
		return "N/A"
	}

	low := validLows[0]
	for _, v := range validLows[1:] {
		if v < low {
			low = v
		}
	}
	high := validHighs[0]
	for _, v := range validHighs[1:] {
		if v > high {
			high = v
		}
	}
	return formatPrice(low) + "-" + formatPrice(high)
}

// trendDirection compares the last close against the close five samples
// back. Shorter series are neutral.
func trendDirection(closes []*float64) models.TrendDirection {
	if len(closes) < 5 {
		return models.TrendNeutral
	}
	last := closes[len(closes)-1]
	back := closes[len(closes)-5]
	if last == nil || back == nil {
		return models.TrendNeutral
	}
	switch {
	case *last > *back:
		return models.TrendBullish
	case *last < *back:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// volumeTrend compares the mean of the last five valid volumes against the
// mean of the preceding five.
func volumeTrend(volumes []*int64) models.VolumeTrend {
	if len(volumes) < 5 {
		return models.VolumeStable
	}

	var recent []float64
	for _, v := range volumes[len(volumes)-5:] {
		if v != nil {
			recent = append(recent, float64(*v))
		}
	}
	if len(recent) == 0 {
		return models.VolumeUnknown
	}
	recentAvg := mean(recent)

	lo := 0
	if len(volumes) > 10 {
		lo = len(volumes) - 10
	}
	var earlier []float64
	for _, v := range volumes[lo : len(volumes)-5] {
		if v != nil {
			earlier = append(earlier, float64(*v))
		}
	}
	earlierAvg := recentAvg
	if len(earlier) > 0 {
		earlierAvg = mean(earlier)
	}

	if recentAvg > earlierAvg {
		return models.VolumeIncreasing
	}
	return models.VolumeDecreasing
}

// significantLevels picks the extreme of the valid prices plus an
// approximate decile level when the series has more than 10 samples.
// Levels are integer-index picks into the sorted series, not interpolated
// percentiles.
func significantLevels(prices []*float64, support bool) []float64 {
	valid := validFloats(prices)
	if len(valid) == 0 {
		return []float64{}
	}

	sorted := append([]float64(nil), valid...)
	sort.Float64s(sorted)

	var levels []float64
	if support {
		levels = append(levels, sorted[0])
		if len(sorted) > 10 {
			levels = append(levels, sorted[len(sorted)/10])
		}
	} else {
		levels = append(levels, sorted[len(sorted)-1])
		if len(sorted) > 10 {
			levels = append(levels, sorted[len(sorted)-(len(sorted)+9)/10])
		}
	}

	for i, level := range levels {
		levels[i] = round2(level)
	}
	return levels
}

func supportLevels(lows []*float64) []float64 {
	return significantLevels(lows, true)
}

func resistanceLevels(highs []*float64) []float64 {
	return significantLevels(highs, false)
}

// movingAverages computes MA_20 and MA_50 over the valid closes, gated by
// minimum sample counts: fewer than 5 samples reuses the last close, fewer
// than 10 reuses the shorter average.
func movingAverages(closes []*float64) map[string]float64 {
	valid := validFloats(closes)
	if len(valid) == 0 {
		return map[string]float64{}
	}

	ma20 := valid[len(valid)-1]
	if len(valid) >= 5 {
		window := 20
		if len(valid) < window {
			window = len(valid)
		}
		ma20 = mean(valid[len(valid)-window:])
	}

	ma50 := ma20
	if len(valid) >= 10 {
		window := 50
		if len(valid) < window {
			window = len(valid)
		}
		ma50 = mean(valid[len(valid)-window:])
	}

	return map[string]float64{
		"MA_20": round2(ma20),
		"MA_50": round2(ma50),
	}
}
