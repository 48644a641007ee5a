package input

import (
	"context"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

// QueryAnswerer resolves one free-text query into a validated response.
// Implementations never return an error; failures surface as error-mode
// payloads.
type QueryAnswerer interface {
	AnswerQuery(ctx context.Context, query string) entity.AgentResponse
}
