// Package validate enforces the response contract on every payload leaving
// the core, so the router's return shape is uniform regardless of which
// handler produced it.
package validate

import (
	"fmt"

	"github.com/ysmood/gson"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

// SafeReturn narrows a raw handler payload to the strict AgentResponse
// shape. An unknown mode is coerced to error, never rejected outright; a
// structural or type failure discards the payload entirely and yields an
// error-mode response. Applying SafeReturn twice gives the same result as
// applying it once.
func SafeReturn(payload any) entity.AgentResponse {
	switch p := payload.(type) {
	case entity.AgentResponse:
		return normalize(p)
	case *entity.AgentResponse:
		if p == nil {
			return entity.ErrorResponse("Invalid payload: nil response")
		}
		return normalize(*p)
	}

	resp, err := fromLoose(payload)
	if err != nil {
		return entity.ErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	return normalize(resp)
}

// fromLoose handles untyped payloads (maps, decoded JSON) that arrive from
// outside the typed handler paths.
func fromLoose(payload any) (entity.AgentResponse, error) {
	var resp entity.AgentResponse

	j := gson.New(payload)
	if _, ok := j.Val().(map[string]any); !ok {
		return resp, fmt.Errorf("expected an object, got %T", j.Val())
	}

	mode, ok := j.Get("mode").Val().(string)
	if !ok {
		return resp, fmt.Errorf("mode is missing or not a string")
	}

	answer, ok := j.Get("answer").Val().(string)
	if !ok {
		return resp, fmt.Errorf("answer is missing or not a string")
	}

	sources, err := stringSlice(j.Get("sources").Val())
	if err != nil {
		return resp, err
	}

	resp.Mode = entity.Mode(mode)
	resp.Answer = answer
	resp.Sources = sources
	return resp, nil
}

func stringSlice(v any) ([]string, error) {
	switch s := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string(nil), s...), nil
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("source entry is %T, not a string", item)
			}
			out = append(out, str)
		}
		return out, nil
	}
	return nil, fmt.Errorf("sources is %T, not a list", v)
}

// normalize applies the contract invariants: mode within the closed set,
// sources present, deduplicated in first-seen order and capped at
// entity.MaxSources.
func normalize(resp entity.AgentResponse) entity.AgentResponse {
	if !resp.Mode.Valid() {
		resp.Mode = entity.ModeError
	}

	seen := make(map[string]struct{}, len(resp.Sources))
	sources := make([]string, 0, entity.MaxSources)
	for _, url := range resp.Sources {
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		sources = append(sources, url)
		if len(sources) == entity.MaxSources {
			break
		}
	}
	resp.Sources = sources

	return resp
}
