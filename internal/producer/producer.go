// Package producer runs one digest generation: prompt, model call, envelope, stores.
package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/digest-agent/internal/envelope"
	"github.com/jonathan/digest-agent/internal/llm"
	"github.com/jonathan/digest-agent/internal/prompts"
	"github.com/jonathan/digest-agent/internal/store"
	"github.com/jonathan/digest-agent/internal/types"
)

// Progress steps reported through Options.OnProgress
const (
	StepPrompt   = "prompt"
	StepGenerate = "generate"
	StepEnvelope = "envelope"
	StepLatest   = "latest"
	StepHistory  = "history"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a Producer
type Options struct {
	PromptFile     string        // Overrides the embedded prompt template
	MinItems       int           // Lower bound on news items requested
	MaxItems       int           // Upper bound on news items requested
	Timeout        time.Duration // Bounds the model call; zero means no bound
	RecordFailures bool          // Persist a failure envelope when the model call fails
	Builder        *envelope.Builder
	Logger         *zap.Logger
	OnProgress     ProgressCallback
}

// Producer fetches a digest from the model and persists it
type Producer struct {
	client  llm.Client
	latest  *store.LatestStore
	history *store.HistoryStore
	builder *envelope.Builder
	opts    Options
	logger  *zap.Logger
}

// New creates a Producer writing to the given stores
func New(client llm.Client, latest *store.LatestStore, history *store.HistoryStore, opts Options) *Producer {
	builder := opts.Builder
	if builder == nil {
		builder = envelope.NewBuilder()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Producer{
		client:  client,
		latest:  latest,
		history: history,
		builder: builder,
		opts:    opts,
		logger:  logger,
	}
}

// Run performs one generation. On success the envelope has been written to
// the Latest-Result store and appended to the history.
//
// A malformed model response writes nothing. A failed model call writes a
// failure envelope only when RecordFailures is set.
func (p *Producer) Run(ctx context.Context) (*types.Envelope, error) {
	model := p.client.GetModel()
	logger := p.logger.With(zap.String("model", model))

	prompt, err := prompts.DigestPrompt(p.opts.PromptFile, prompts.DigestOptions{
		Date:     p.builder.Now(),
		MinItems: p.opts.MinItems,
		MaxItems: p.opts.MaxItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}
	p.emit(StepPrompt, fmt.Sprintf("Built prompt (%d bytes)", len(prompt)), "")

	logger.Info("requesting digest")
	start := time.Now()
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		logger.Error("model call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		var callErr *llm.ExternalCallError
		if p.opts.RecordFailures && errors.As(err, &callErr) {
			failure := p.builder.Failure(model, err)
			if recErr := p.persist(failure, logger); recErr != nil {
				logger.Error("failed to record failure envelope", zap.Error(recErr))
			}
		}
		return nil, fmt.Errorf("digest generation failed: %w", err)
	}
	logger.Debug("received response", zap.Int("bytes", len(raw)), zap.Duration("elapsed", time.Since(start)))
	p.emit(StepGenerate, fmt.Sprintf("Received %d bytes from %s", len(raw), model), "")

	env, err := p.builder.Build(raw, model)
	if err != nil {
		logger.Error("response is not a JSON object", zap.Error(err))
		return nil, err
	}
	p.emit(StepEnvelope, "Parsed response into envelope", env.RunID)

	if err := p.persist(env, logger); err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("run_id", env.RunID)}
	if digest, derr := env.Digest(); derr == nil {
		fields = append(fields, zap.Int("news", len(digest.News)), zap.Int("trends", len(digest.Trends)))
	}
	logger.Info("digest stored", fields...)
	return env, nil
}

func (p *Producer) generate(ctx context.Context, prompt string) (string, error) {
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}
	return p.client.GenerateContent(ctx, prompt)
}

// persist writes the latest result first, then appends to the history
func (p *Producer) persist(env *types.Envelope, logger *zap.Logger) error {
	if err := p.latest.Write(env); err != nil {
		return fmt.Errorf("failed to write latest result: %w", err)
	}
	p.emit(StepLatest, fmt.Sprintf("Wrote %s", p.latest.Path()), env.RunID)

	n, err := p.history.Append(env)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	logger.Debug("history appended", zap.String("path", p.history.Path()), zap.Int("entries", n))
	p.emit(StepHistory, fmt.Sprintf("History now holds %d entries", n), env.RunID)
	return nil
}

// emit calls the progress callback if configured
func (p *Producer) emit(step, message, runID string) {
	if p.opts.OnProgress != nil {
		p.opts.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID})
	}
}
