// Package router classifies a query as math or search intent and dispatches
// to the matching handler. Every result passes through the response
// validator, so callers always receive a well-formed payload.
package router

import (
	"context"
	"fmt"
	"regexp"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/input"
	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
	"github.com/arinjayjha/calc-research-agent/internal/application/usecase/mathsolver"
	"github.com/arinjayjha/calc-research-agent/internal/application/validate"
	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

var (
	arithmeticPattern = regexp.MustCompile(`[0-9]+\s*[+\-*/^%]\s*[0-9]+`)
	triggerPattern    = regexp.MustCompile(`(?i)\b(calc|compute|what is|how many)\b`)
)

// looksLikeArithmetic reports a <digits> <operator> <digits> pattern.
func looksLikeArithmetic(query string) bool {
	return arithmeticPattern.MatchString(query)
}

// hasMathTrigger reports a whole-word math trigger, case-insensitive.
func hasMathTrigger(query string) bool {
	return triggerPattern.MatchString(query)
}

// DecideMode classifies a query. This is a heuristic, not a parser:
// ambiguous or partially numeric queries default to search.
func DecideMode(query string) entity.Mode {
	if looksLikeArithmetic(query) || hasMathTrigger(query) {
		return entity.ModeMath
	}
	return entity.ModeSearch
}

// SearchHandler is the research pipeline as seen by the router. It never
// fails outward.
type SearchHandler interface {
	Run(ctx context.Context, query string) entity.AgentResponse
}

type Router struct {
	search SearchHandler
	logger output.LoggerPort
}

var _ input.QueryAnswerer = (*Router)(nil)

func New(search SearchHandler, logger output.LoggerPort) *Router {
	return &Router{
		search: search,
		logger: logger,
	}
}

// AnswerQuery dispatches to the classified handler and validates the result.
// The math handler is not internally guarded the way the search pipeline is,
// so its failures are converted to error-mode payloads here.
func (r *Router) AnswerQuery(ctx context.Context, query string) entity.AgentResponse {
	mode := DecideMode(query)
	r.logger.Debug("query classified", "query", query, "mode", mode)

	var raw entity.AgentResponse
	switch mode {
	case entity.ModeMath:
		resp, err := mathsolver.Solve(query)
		if err != nil {
			r.logger.Warn("math handler failed", "query", query, "error", err)
			raw = entity.ErrorResponse(fmt.Sprintf("Math failed: %v", err))
		} else {
			raw = resp
		}
	default:
		raw = r.search.Run(ctx, query)
	}

	return validate.SafeReturn(raw)
}
