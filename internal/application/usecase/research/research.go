// Package research runs the search-and-summarize pipeline: query the search
// capability with retries, deduplicate and truncate results, build a
// grounding prompt and delegate to the summarizer. The pipeline never fails
// outward; every failure path resolves to an error-mode payload.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/prompts"
	"github.com/arinjayjha/calc-research-agent/internal/retry"
)

const (
	defaultMaxResults = 5
	maxSnippets       = 3
	titleRuneLimit    = 120
	contentRuneLimit  = 600
)

type Pipeline struct {
	search     output.SearchPort // nil when the capability is not configured
	summarizer output.SummarizerPort
	logger     output.LoggerPort
	policy     retry.Policy
}

func New(search output.SearchPort, summarizer output.SummarizerPort, logger output.LoggerPort) *Pipeline {
	return &Pipeline{
		search:     search,
		summarizer: summarizer,
		logger:     logger,
		policy:     retry.DefaultPolicy(),
	}
}

// Run answers query through web search. Equivalent to RunWithLimit with the
// default result limit.
func (p *Pipeline) Run(ctx context.Context, query string) entity.AgentResponse {
	return p.RunWithLimit(ctx, query, defaultMaxResults)
}

func (p *Pipeline) RunWithLimit(ctx context.Context, query string, maxResults int) entity.AgentResponse {
	if p.search == nil {
		// No retry, no network: the capability is simply absent.
		return entity.ErrorResponse("Tavily API key not set.")
	}

	opts := output.DefaultSearchOptions()
	if maxResults > 0 {
		opts.MaxResults = maxResults
	}

	results, err := retry.Do(ctx, p.policy, func(ctx context.Context) ([]entity.SearchResult, error) {
		searchCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		return p.search.Search(searchCtx, query, opts)
	})
	if err != nil {
		return p.fail(query, fmt.Errorf("search provider: %w", err))
	}

	sources := dedupSources(results)
	snippets := buildSnippets(results)

	prompt, err := prompts.BuildGroundingPrompt(query, snippets)
	if err != nil {
		return p.fail(query, err)
	}

	if p.summarizer == nil {
		return p.fail(query, errors.New("summarizer not configured"))
	}

	summary, err := p.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return p.fail(query, fmt.Errorf("summarizer: %w", err))
	}

	p.logger.Info("search pipeline completed",
		"query", query,
		"results", len(results),
		"sources", len(sources),
	)

	return entity.AgentResponse{
		Mode:    entity.ModeSearch,
		Answer:  strings.TrimSpace(summary),
		Sources: sources,
	}
}

func (p *Pipeline) fail(query string, err error) entity.AgentResponse {
	p.logger.Error("search pipeline failed", "query", query, "error", err)
	return entity.ErrorResponse(fmt.Sprintf("Search failed: %v", err))
}

// dedupSources keeps the first occurrence of each non-empty URL, preserving
// the provider's relevance order, capped at entity.MaxSources.
func dedupSources(results []entity.SearchResult) []string {
	seen := make(map[string]struct{}, len(results))
	sources := make([]string, 0, entity.MaxSources)

	for _, r := range results {
		url := strings.TrimSpace(r.URL)
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		sources = append(sources, url)
		if len(sources) == entity.MaxSources {
			break
		}
	}

	return sources
}

func buildSnippets(results []entity.SearchResult) []prompts.Snippet {
	snippets := make([]prompts.Snippet, 0, maxSnippets)
	for i, r := range results {
		if i == maxSnippets {
			break
		}
		snippets = append(snippets, prompts.Snippet{
			Title:   truncateRunes(r.Title, titleRuneLimit),
			Content: truncateRunes(strings.ReplaceAll(r.Content, "\n", " "), contentRuneLimit),
			URL:     r.URL,
		})
	}
	return snippets
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
