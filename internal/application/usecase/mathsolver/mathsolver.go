// Package mathsolver extracts the longest plausible arithmetic substring
// from free text and evaluates it with a restricted parser. No identifiers,
// function calls or string literals ever reach the evaluator.
package mathsolver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

// ErrNoExpression means the query contained no arithmetic candidate at all.
var ErrNoExpression = errors.New("no math expression found")

// EvalError means a candidate was extracted but could not be safely
// computed.
type EvalError struct {
	Expr   string
	Reason string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %s", e.Expr, e.Reason)
}

// exprRun matches maximal runs of decimal numbers (optional signed
// exponent), the permitted operators, parentheses and whitespace.
var exprRun = regexp.MustCompile(`(?:(?:\d+\.\d*|\.\d+|\d+)(?:[eE][+\-]?\d+)?|[+\-*/%()]|\s+)+`)

// charGate is the closed character set re-checked before evaluation.
// It deliberately duplicates the constraint already imposed by exprRun.
var charGate = regexp.MustCompile(`^[0-9.+\-*/%()\seE]+$`)

// Solve resolves a math-classified query. Sources are always empty for
// math results.
func Solve(query string) (entity.AgentResponse, error) {
	expr, err := Extract(query)
	if err != nil {
		return entity.AgentResponse{}, err
	}

	value, err := Evaluate(expr)
	if err != nil {
		return entity.AgentResponse{}, err
	}

	return entity.AgentResponse{
		Mode:    entity.ModeMath,
		Answer:  strconv.FormatFloat(value, 'g', -1, 64),
		Sources: []string{},
	}, nil
}

// Extract scans the query for candidate runs and returns the longest one by
// character length (ties keep the first encountered). Picking the longest
// run avoids stray digits embedded in prose (like a year) when a genuine
// expression is present elsewhere. Whitespace-only runs are not candidates.
func Extract(query string) (string, error) {
	// The caret is normalized to the power operator before scanning.
	q := strings.ReplaceAll(query, "^", "**")

	var best string
	for _, run := range exprRun.FindAllString(q, -1) {
		if strings.TrimSpace(run) == "" {
			continue
		}
		if len(run) > len(best) {
			best = run
		}
	}

	if best == "" {
		return "", ErrNoExpression
	}
	return strings.TrimSpace(best), nil
}

// Evaluate computes the arithmetic value of expr, restricted to the five
// operators, the power operator and parentheses.
func Evaluate(expr string) (float64, error) {
	expr = strings.TrimSpace(strings.ReplaceAll(expr, "^", "**"))
	if expr == "" {
		return 0, &EvalError{Expr: expr, Reason: "empty expression"}
	}
	if !charGate.MatchString(expr) {
		return 0, &EvalError{Expr: expr, Reason: "invalid characters in expression"}
	}

	tokens, err := tokenize(expr)
	if err != nil {
		return 0, &EvalError{Expr: expr, Reason: err.Error()}
	}

	p := &parser{tokens: tokens}
	value, err := p.parseExpr()
	if err != nil {
		return 0, &EvalError{Expr: expr, Reason: err.Error()}
	}
	if !p.done() {
		return 0, &EvalError{Expr: expr, Reason: "unexpected trailing input"}
	}
	if !isFinite(value) {
		return 0, &EvalError{Expr: expr, Reason: "result is not finite"}
	}

	return value, nil
}
