package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

func TestSafeReturn_ValidTypedPayload(t *testing.T) {
	in := entity.AgentResponse{
		Mode:    entity.ModeSearch,
		Answer:  "three bullets",
		Sources: []string{"https://a.example", "https://b.example"},
	}

	got := SafeReturn(in)

	assert.Equal(t, in, got)
}

func TestSafeReturn_Idempotent(t *testing.T) {
	payloads := []any{
		entity.AgentResponse{Mode: entity.ModeMath, Answer: "1280", Sources: []string{}},
		entity.AgentResponse{Mode: "bogus", Answer: "x", Sources: nil},
		map[string]any{"mode": "search", "answer": "ok", "sources": []any{"https://a.example"}},
		map[string]any{"mode": 7},
	}

	for _, p := range payloads {
		once := SafeReturn(p)
		twice := SafeReturn(once)
		assert.Equal(t, once, twice)
	}
}

func TestSafeReturn_CoercesInvalidMode(t *testing.T) {
	got := SafeReturn(map[string]any{"mode": "bogus", "answer": "x", "sources": []any{}})

	assert.Equal(t, entity.ModeError, got.Mode)
	assert.Equal(t, "x", got.Answer)
	assert.Empty(t, got.Sources)
}

func TestSafeReturn_StructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"nil payload", nil},
		{"not an object", "just a string"},
		{"missing mode", map[string]any{"answer": "x"}},
		{"missing answer", map[string]any{"mode": "math"}},
		{"non-string answer", map[string]any{"mode": "math", "answer": 42}},
		{"non-list sources", map[string]any{"mode": "math", "answer": "x", "sources": "url"}},
		{"non-string source entry", map[string]any{"mode": "math", "answer": "x", "sources": []any{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeReturn(tt.payload)

			assert.Equal(t, entity.ModeError, got.Mode)
			assert.Contains(t, got.Answer, "Invalid payload")
			assert.Empty(t, got.Sources)
		})
	}
}

func TestSafeReturn_MissingSourcesDefaultsEmpty(t *testing.T) {
	got := SafeReturn(map[string]any{"mode": "math", "answer": "3"})

	assert.Equal(t, entity.ModeMath, got.Mode)
	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
}

func TestSafeReturn_DedupesAndCapsSources(t *testing.T) {
	got := SafeReturn(entity.AgentResponse{
		Mode:   entity.ModeSearch,
		Answer: "ok",
		Sources: []string{
			"https://a.example",
			"https://a.example",
			"https://b.example",
			"https://c.example",
			"https://d.example",
		},
	})

	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, got.Sources)
}

func TestSafeReturn_NilSourcesBecomeEmpty(t *testing.T) {
	got := SafeReturn(entity.AgentResponse{Mode: entity.ModeMath, Answer: "3"})

	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
}
