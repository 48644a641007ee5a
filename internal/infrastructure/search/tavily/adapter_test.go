package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
)

func TestSearch_MissingAPIKey(t *testing.T) {
	adapter := NewTavilyAdapter(Config{APIKey: "  "})

	_, err := adapter.Search(context.Background(), "query", output.DefaultSearchOptions())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestSearch_SendsExpectedRequest(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"title": "A", "url": "https://a.example", "content": "aa"}]}`))
	}))
	defer server.Close()

	adapter := NewTavilyAdapter(Config{APIKey: "test-key", BaseURL: server.URL})
	opts := output.DefaultSearchOptions()

	results, err := adapter.Search(context.Background(), "latest Go release", opts)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Title)
	assert.Equal(t, "https://a.example", results[0].URL)
	assert.Equal(t, "aa", results[0].Content)

	assert.Equal(t, "test-key", captured["api_key"])
	assert.Equal(t, "latest Go release", captured["query"])
	assert.Equal(t, float64(opts.MaxResults), captured["max_results"])
	assert.Equal(t, true, captured["include_raw_content"])
	assert.Equal(t, false, captured["include_answer"])
}

func TestSearch_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := NewTavilyAdapter(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := adapter.Search(context.Background(), "query", output.DefaultSearchOptions())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestParseResults_WrapperObject(t *testing.T) {
	raw := []byte(`{"results": [
		{"title": "A", "url": "https://a.example", "content": "aa"},
		{"title": "B", "url": "https://b.example", "content": "bb"}
	]}`)

	results, err := parseResults(raw, 0)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "B", results[1].Title)
}

func TestParseResults_BareArray(t *testing.T) {
	raw := []byte(`[{"title": "A", "url": "https://a.example", "content": "aa"}]`)

	results, err := parseResults(raw, 0)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://a.example", results[0].URL)
}

func TestParseResults_AppliesLimit(t *testing.T) {
	raw := []byte(`[
		{"title": "A", "url": "https://a.example", "content": "aa"},
		{"title": "B", "url": "https://b.example", "content": "bb"},
		{"title": "C", "url": "https://c.example", "content": "cc"}
	]`)

	results, err := parseResults(raw, 2)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestParseResults_MissingFieldsDefaultEmpty(t *testing.T) {
	raw := []byte(`{"results": [{"url": "https://a.example"}]}`)

	results, err := parseResults(raw, 0)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Title)
	assert.Empty(t, results[0].Content)
}

func TestParseResults_UnexpectedShape(t *testing.T) {
	_, err := parseResults([]byte(`"just a string"`), 0)

	require.Error(t, err)
}
