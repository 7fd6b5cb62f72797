// Package thumbnails generates listing thumbnails through a third-party
// image-generation API. Jobs are submitted, then polled at a fixed interval
// until they finish or the attempt budget runs out; any failure yields the
// built-in placeholder images.
package thumbnails

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
	"time"

	"gebo/config"
	"gebo/types"
)

// ErrEmptyPrompt is returned when no prompt text is given
var ErrEmptyPrompt = errors.New("prompt is required")

// Job statuses reported by the image API
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

// Generator talks to the image-generation API
type Generator struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	interval    time.Duration
	maxAttempts int
	cache       Cache
}

// Option customizes a Generator
type Option func(*Generator)

// WithPolling overrides the poll interval and attempt limit
func WithPolling(interval time.Duration, maxAttempts int) Option {
	return func(g *Generator) {
		g.interval = interval
		g.maxAttempts = maxAttempts
	}
}

// WithCache enables result caching per prompt
func WithCache(c Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) { g.httpClient = c }
}

// NewGenerator creates a Generator. An empty baseURL means every request is
// answered with placeholders.
func NewGenerator(baseURL, apiKey string, opts ...Option) *Generator {
	g := &Generator{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: config.HTTPTimeout},
		interval:    config.ThumbnailPollInterval,
		maxAttempts: config.ThumbnailMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type jobRequest struct {
	Prompt    string `json:"prompt"`
	NumImages int    `json:"num_images"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type jobResponse struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error,omitempty"`
}

// Generate returns n thumbnail URLs for prompt. Only an empty prompt is an
// error; API failures and timeouts produce the fallback result.
func (g *Generator) Generate(ctx context.Context, prompt string, n int) (types.ThumbnailResult, error) {
	prompt = strings.Join(strings.Fields(prompt), " ")
	if prompt == "" {
		return types.ThumbnailResult{}, ErrEmptyPrompt
	}
	n = clampImages(n)
	key := cacheKey(prompt, n)

	if g.cache != nil {
		if urls, ok := g.cache.Get(ctx, key); ok {
			return types.ThumbnailResult{Prompt: prompt, ImageURLs: urls, Status: StatusSucceeded, Source: types.SourceCache}, nil
		}
	}

	if g.baseURL == "" {
		return Fallback(prompt, n), nil
	}

	job, err := g.submit(ctx, jobRequest{
		Prompt:    prompt,
		NumImages: n,
		Width:     config.ThumbnailWidth,
		Height:    config.ThumbnailHeight,
	})
	if err != nil {
		log.Printf("Warning: thumbnail job submit failed: %v", err)
		return Fallback(prompt, n), nil
	}

	if job.Status != StatusSucceeded {
		job, err = g.poll(ctx, job.ID)
		if err != nil {
			log.Printf("Warning: thumbnail job %s did not finish: %v", job.ID, err)
			result := Fallback(prompt, n)
			result.JobID = job.ID
			return result, nil
		}
	}

	urls := job.Output
	if len(urls) > n {
		urls = urls[:n]
	}
	if g.cache != nil {
		g.cache.Set(ctx, key, urls)
	}
	return types.ThumbnailResult{
		JobID:     job.ID,
		Prompt:    prompt,
		ImageURLs: urls,
		Status:    StatusSucceeded,
		Source:    types.SourceAPI,
	}, nil
}

func (g *Generator) submit(ctx context.Context, req jobRequest) (jobResponse, error) {
	var job jobResponse
	if err := g.doJSONRequest(ctx, http.MethodPost, "/jobs", req, &job); err != nil {
		return job, err
	}
	if job.Status == StatusFailed {
		return job, fmt.Errorf("job rejected: %s", job.Error)
	}
	if job.Status == StatusSucceeded {
		if len(job.Output) == 0 {
			return job, errors.New("job succeeded without output")
		}
		return job, nil
	}
	if job.ID == "" {
		return job, errors.New("image API returned no job id")
	}
	return job, nil
}

// poll checks the job every interval until it succeeds, fails, the attempt
// budget is spent or ctx is done
func (g *Generator) poll(ctx context.Context, id string) (jobResponse, error) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	last := jobResponse{ID: id}
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}

		var job jobResponse
		if err := g.doJSONRequest(ctx, http.MethodGet, "/jobs/"+id, nil, &job); err != nil {
			log.Printf("Warning: thumbnail status check %d/%d failed: %v", attempt, g.maxAttempts, err)
			continue
		}
		if job.ID == "" {
			job.ID = id
		}
		last = job

		switch job.Status {
		case StatusSucceeded:
			if len(job.Output) == 0 {
				return job, errors.New("job succeeded without output")
			}
			return job, nil
		case StatusFailed:
			return job, fmt.Errorf("job failed: %s", job.Error)
		}
	}
	return last, fmt.Errorf("timed out after %d attempts", g.maxAttempts)
}

func (g *Generator) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("image API returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func clampImages(n int) int {
	if n < 1 {
		return 1
	}
	if n > config.ThumbnailMaxImages {
		return config.ThumbnailMaxImages
	}
	return n
}

func cacheKey(prompt string, n int) string {
	return fmt.Sprintf("thumbnails:%s:%d", types.GenerateID(strings.ToLower(prompt)), n)
}
