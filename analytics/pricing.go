// Package analytics derives pricing and audience insights for listings.
package analytics

import (
	"context"
	"fmt"
	"math"

	"gebo/config"
	"gebo/types"
)

// RevenuePredictor estimates ad revenue for content
type RevenuePredictor interface {
	Predict(ctx context.Context, req types.RevenueRequest) (types.RevenuePrediction, error)
}

// Service computes insights using a revenue predictor
type Service struct {
	predictor   RevenuePredictor
	ethPriceUSD float64
}

// NewService creates a Service. A non-positive ethPriceUSD uses the default
// reference price.
func NewService(predictor RevenuePredictor, ethPriceUSD float64) *Service {
	if ethPriceUSD <= 0 {
		ethPriceUSD = config.DefaultETHPriceUSD
	}
	return &Service{predictor: predictor, ethPriceUSD: ethPriceUSD}
}

// Pricing suggests an NFT price from the creator's share of a year of
// predicted revenue
func (s *Service) Pricing(ctx context.Context, v types.Video) (types.PricingInsight, error) {
	pred, err := s.predictor.Predict(ctx, types.RevenueRequestFor(v))
	if err != nil {
		return types.PricingInsight{}, fmt.Errorf("failed to predict revenue for %s: %w", v.ID, err)
	}

	return types.PricingInsight{
		VideoID:             v.ID,
		SuggestedPriceETH:   s.toETH(pred.PredictedRevenueUSD),
		MinPriceETH:         s.toETH(pred.LowUSD),
		MaxPriceETH:         s.toETH(pred.HighUSD),
		PredictedRevenueUSD: pred.PredictedRevenueUSD,
		Confidence:          pred.Confidence,
		Source:              pred.Source,
	}, nil
}

func (s *Service) toETH(monthlyUSD float64) float64 {
	eth := monthlyUSD * config.RevenueHorizonMonths / s.ethPriceUSD * config.CreatorRevenueShare
	eth = math.Max(config.MinPriceETH, math.Min(config.MaxPriceETH, eth))
	return math.Round(eth*10000) / 10000
}
