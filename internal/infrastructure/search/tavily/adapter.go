package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ysmood/gson"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

const defaultBaseURL = "https://api.tavily.com/search"

var _ output.SearchPort = (*TavilyAdapter)(nil)

// TavilyAdapter implements the search port against the Tavily REST API.
// The request timeout is enforced by the caller's context, not assumed of
// the provider.
type TavilyAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  output.LoggerPort
}

type Config struct {
	APIKey  string
	BaseURL string
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
	}
}

func NewTavilyAdapter(cfg Config) *TavilyAdapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &TavilyAdapter{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  cfg.Logger,
	}
}

func (t *TavilyAdapter) Search(ctx context.Context, query string, opts output.SearchOptions) ([]entity.SearchResult, error) {
	if strings.TrimSpace(t.apiKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	body := map[string]any{
		"api_key":             t.apiKey,
		"query":               query,
		"max_results":         opts.MaxResults,
		"include_answer":      opts.IncludeAnswer,
		"include_raw_content": opts.IncludeRawContent,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("tavily: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily: http %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tavily: read response: %w", err)
	}

	results, err := parseResults(raw, opts.MaxResults)
	if err != nil {
		return nil, err
	}

	if t.logger != nil {
		t.logger.Debug("tavily search completed", "query", query, "results", len(results))
	}
	return results, nil
}

// parseResults accepts either a wrapper object carrying a results field or a
// bare array of result objects.
func parseResults(raw []byte, limit int) ([]entity.SearchResult, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}

	list, ok := v.([]any)
	if !ok {
		wrapper, okm := v.(map[string]any)
		if !okm {
			return nil, fmt.Errorf("tavily: unexpected response shape %T", v)
		}
		list, _ = wrapper["results"].([]any)
	}

	results := make([]entity.SearchResult, 0, len(list))
	for _, item := range list {
		it := gson.New(item)
		title, _ := it.Get("title").Val().(string)
		url, _ := it.Get("url").Val().(string)
		content, _ := it.Get("content").Val().(string)

		results = append(results, entity.SearchResult{
			Title:   title,
			URL:     url,
			Content: content,
		})
		if limit > 0 && len(results) == limit {
			break
		}
	}

	return results, nil
}
