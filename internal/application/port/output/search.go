package output

import (
	"context"
	"time"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

// SearchPort is the web search capability consumed by the research pipeline.
// Implementations return results in relevance order.
type SearchPort interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]entity.SearchResult, error)
}

type SearchOptions struct {
	MaxResults        int
	IncludeAnswer     bool
	IncludeRawContent bool
	Timeout           time.Duration
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxResults:        5,
		IncludeAnswer:     false,
		IncludeRawContent: true,
		Timeout:           30 * time.Second,
	}
}
