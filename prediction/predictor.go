// Package prediction forwards content metrics to the external revenue
// prediction service and falls back to a deterministic RPM formula when the
// service is unavailable.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"gebo/config"
	"gebo/types"
)

// ErrInvalidMetrics is returned for negative view or interaction counts
var ErrInvalidMetrics = errors.New("metrics must be non-negative")

// Predictor calls the prediction API
type Predictor struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewPredictor creates a Predictor. With an empty url every prediction uses
// the fallback formula.
func NewPredictor(url, apiKey string) *Predictor {
	return &Predictor{
		url:        strings.TrimSpace(url),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
	}
}

type apiResponse struct {
	PredictedRevenue *float64 `json:"predicted_revenue"`
	Confidence       float64  `json:"confidence"`
	RPM              float64  `json:"rpm"`
	Range            *struct {
		Low  float64 `json:"low"`
		High float64 `json:"high"`
	} `json:"range"`
}

// Validate checks the request metrics
func Validate(req types.RevenueRequest) error {
	if req.Views < 0 || req.Likes < 0 || req.Comments < 0 || req.Shares < 0 {
		return ErrInvalidMetrics
	}
	if req.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration", ErrInvalidMetrics)
	}
	return nil
}

// Predict returns the revenue estimate for req. Only invalid input is an
// error; any upstream problem yields the fallback estimate.
func (p *Predictor) Predict(ctx context.Context, req types.RevenueRequest) (types.RevenuePrediction, error) {
	if err := Validate(req); err != nil {
		return types.RevenuePrediction{}, err
	}
	if p == nil || p.url == "" {
		return Fallback(req), nil
	}

	pred, err := p.callAPI(ctx, req)
	if err != nil {
		log.Printf("Warning: prediction API failed, using fallback: %v", err)
		return Fallback(req), nil
	}
	return pred, nil
}

func (p *Predictor) callAPI(ctx context.Context, req types.RevenueRequest) (types.RevenuePrediction, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.RevenuePrediction{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return types.RevenuePrediction{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return types.RevenuePrediction{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return types.RevenuePrediction{}, fmt.Errorf("prediction API returned %d: %s", resp.StatusCode, string(b))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.RevenuePrediction{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.PredictedRevenue == nil || *out.PredictedRevenue < 0 {
		return types.RevenuePrediction{}, errors.New("response has no predicted_revenue")
	}

	revenue := *out.PredictedRevenue
	pred := types.RevenuePrediction{
		PredictedRevenueUSD: round(revenue, 2),
		LowUSD:              round(revenue*(1-fallbackSpread), 2),
		HighUSD:             round(revenue*(1+fallbackSpread), 2),
		RPM:                 out.RPM,
		EngagementRate:      round(EngagementRate(req), 4),
		Confidence:          out.Confidence,
		Source:              types.SourceAPI,
	}
	if out.Range != nil && out.Range.Low <= revenue && revenue <= out.Range.High {
		pred.LowUSD = round(out.Range.Low, 2)
		pred.HighUSD = round(out.Range.High, 2)
	}
	return pred, nil
}
