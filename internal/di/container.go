package di

import (
	"fmt"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/input"
	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
	"github.com/arinjayjha/calc-research-agent/internal/application/usecase/research"
	"github.com/arinjayjha/calc-research-agent/internal/application/usecase/router"
	"github.com/arinjayjha/calc-research-agent/internal/history"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/env"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/llm/azureopenai"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/logger"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/search/tavily"
)

type Container struct {
	Env        *env.EnvService
	Logger     output.LoggerPort
	Search     output.SearchPort // nil when the search credential is absent
	Summarizer output.SummarizerPort
	Answerer   input.QueryAnswerer
	History    *history.Store
	Deployment string
}

type Config struct {
	Debug bool
}

func NewContainer(envService *env.EnvService, cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(logger.Config{Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Absence of the search credential is the only condition that
	// short-circuits the research pipeline before any network call.
	var search output.SearchPort
	if key := envService.Get("TAVILY_API_KEY"); key != "" {
		tavilyCfg := tavily.DefaultConfig(key)
		tavilyCfg.Logger = log.WithField("component", "tavily")
		search = tavily.NewTavilyAdapter(tavilyCfg)
	} else {
		log.Warn("TAVILY_API_KEY not set, search capability disabled")
	}

	deployment := envService.Get("AZURE_OPENAI_DEPLOYMENT_NAME")

	llmCfg := azureopenai.DefaultConfig(
		envService.Get("AZURE_OPENAI_API_KEY"),
		envService.Get("AZURE_OPENAI_ENDPOINT"),
		deployment,
	)
	llmCfg.APIVersion = envService.GetWithDefault("AZURE_OPENAI_API_VERSION", llmCfg.APIVersion)
	if cfg.Debug {
		llmCfg.Logger = log.WithField("component", "azureopenai")
	}
	summarizer := azureopenai.NewAzureOpenAIAdapter(llmCfg)

	pipeline := research.New(search, summarizer, log.WithField("component", "research"))
	answerer := router.New(pipeline, log.WithField("component", "router"))

	return &Container{
		Env:        envService,
		Logger:     log,
		Search:     search,
		Summarizer: summarizer,
		Answerer:   answerer,
		History:    history.NewStore(),
		Deployment: deployment,
	}, nil
}

func (c *Container) SearchConfigured() bool {
	return c.Search != nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
