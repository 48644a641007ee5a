package azureopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
)

var _ output.SummarizerPort = (*AzureOpenAIAdapter)(nil)

// AzureOpenAIAdapter implements the summarizer port against an Azure OpenAI
// deployment.
type AzureOpenAIAdapter struct {
	client      *openai.Client
	deployment  string
	temperature float32
	logger      output.LoggerPort
}

type Config struct {
	APIKey      string
	Endpoint    string
	Deployment  string
	APIVersion  string
	Temperature float32
	Logger      output.LoggerPort
}

func DefaultConfig(apiKey, endpoint, deployment string) Config {
	return Config{
		APIKey:     apiKey,
		Endpoint:   endpoint,
		Deployment: deployment,
		APIVersion: "2025-01-01-preview",
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.logger != nil {
		var bodyBytes []byte
		if req.Body != nil {
			bodyBytes, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		var requestData map[string]interface{}
		if len(bodyBytes) > 0 {
			json.Unmarshal(bodyBytes, &requestData)
		}

		t.logger.Debug("HTTP Request",
			"method", req.Method,
			"url", req.URL.String(),
			"body", requestData,
		)
	}

	resp, err := t.base.RoundTrip(req)

	if t.logger != nil && resp != nil {
		t.logger.Debug("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func NewAzureOpenAIAdapter(cfg Config) *AzureOpenAIAdapter {
	config := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		config.APIVersion = cfg.APIVersion
	}

	if cfg.Logger != nil {
		transport := &loggingTransport{
			base:   http.DefaultTransport,
			logger: cfg.Logger,
		}
		config.HTTPClient = &http.Client{
			Transport: transport,
		}
	}

	return &AzureOpenAIAdapter{
		client:      openai.NewClientWithConfig(config),
		deployment:  cfg.Deployment,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

func (a *AzureOpenAIAdapter) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: a.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
