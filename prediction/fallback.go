package prediction

import (
	"math"
	"strings"

	"gebo/types"
)

// rpmByCategory is the assumed ad revenue in USD per 1000 views
var rpmByCategory = map[string]float64{
	"tech":          4.5,
	"education":     4.0,
	"finance":       5.0,
	"gaming":        2.5,
	"entertainment": 2.0,
	"music":         1.5,
}

const (
	defaultRPM         = 2.0
	maxEngagement      = 0.5
	fallbackSpread     = 0.25
	fallbackConfidence = 0.55
)

// RPM returns the revenue per mille for a category
func RPM(category string) float64 {
	if rpm, ok := rpmByCategory[strings.ToLower(strings.TrimSpace(category))]; ok {
		return rpm
	}
	return defaultRPM
}

// EngagementRate is weighted interactions per view, capped at 0.5
func EngagementRate(req types.RevenueRequest) float64 {
	views := req.Views
	if views < 1 {
		views = 1
	}
	rate := float64(req.Likes+2*req.Comments+3*req.Shares) / float64(views)
	return math.Min(rate, maxEngagement)
}

// DurationFactor rewards long-form content, which carries more ad slots
func DurationFactor(seconds int) float64 {
	switch {
	case seconds < 60:
		return 0.6
	case seconds <= 600:
		return 1.0
	default:
		return 1.3
	}
}

// Fallback computes the deterministic revenue estimate
func Fallback(req types.RevenueRequest) types.RevenuePrediction {
	rpm := RPM(req.Category)
	engagement := EngagementRate(req)
	revenue := float64(req.Views) / 1000 * rpm * (1 + 2*engagement) * DurationFactor(req.DurationSeconds)

	return types.RevenuePrediction{
		PredictedRevenueUSD: round(revenue, 2),
		LowUSD:              round(revenue*(1-fallbackSpread), 2),
		HighUSD:             round(revenue*(1+fallbackSpread), 2),
		RPM:                 rpm,
		EngagementRate:      round(engagement, 4),
		Confidence:          fallbackConfidence,
		Source:              types.SourceFallback,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
