package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/digest-agent/internal/llm"
	"github.com/jonathan/digest-agent/internal/observability"
	"github.com/jonathan/digest-agent/internal/producer"
	"github.com/jonathan/digest-agent/internal/prompts"
	"github.com/jonathan/digest-agent/internal/rendering"
	"github.com/jonathan/digest-agent/internal/store"
)

// newClient resolves credentials and connects to the configured backend.
// A missing key fails here, before any network call.
func newClient(ctx context.Context) (llm.Client, error) {
	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}

	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	system, err := prompts.SystemPrompt()
	if err != nil {
		return nil, err
	}
	llmCfg.System = system

	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", llmCfg.Provider, err)
	}
	return client, nil
}

// newProducer wires a Producer to the configured stores
func newProducer(client llm.Client, progress io.Writer) (*producer.Producer, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	opts := producer.Options{
		PromptFile:     cfg.PromptFile,
		MinItems:       cfg.MinItems,
		MaxItems:       cfg.MaxItems,
		Timeout:        timeout,
		RecordFailures: cfg.RecordFailures,
		Logger:         logger,
	}
	if cfg.Verbose && progress != nil {
		printer := observability.NewPrinter(progress)
		opts.OnProgress = func(e producer.ProgressEvent) { printer.PrintStep(e.Step, e.Message) }
	}

	return producer.New(client, latestStore(), historyStore(), opts), nil
}

func newRenderer() *rendering.Renderer {
	return rendering.NewRenderer(latestStore(), cfg.OutputPath, cfg.PageTitle, logger)
}

func latestStore() *store.LatestStore {
	return store.NewLatestStore(cfg.LatestPath())
}

func historyStore() *store.HistoryStore {
	return store.NewHistoryStore(cfg.HistoryPath(), cfg.HistoryLimit)
}
