package agent

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"agenteval/domain/core"
	intlog "agenteval/internal"
	apperrors "agenteval/internal/errors"
	"agenteval/ports"
)

const (
	maxRetries      = 5
	baseWaitSeconds = 2
	maxOutputTokens = 2048
)

// Simulator runs queries against an agent through a chat client. Rate-limit
// errors retry with exponential backoff plus a small random jitter to avoid
// a thundering herd against the provider.
type Simulator struct {
	client ports.LLMClient
	log    *intlog.Logger
	sleep  func(time.Duration) // replaced in tests
}

// NewSimulator creates a transcript simulator over the given chat client
func NewSimulator(client ports.LLMClient) *Simulator {
	return &Simulator{
		client: client,
		log:    intlog.DefaultLogger,
		sleep:  time.Sleep,
	}
}

// Simulate sends one query to one agent and records the completed
// interaction with operational metrics. The agent id doubles as the model
// or deployment identifier.
func (s *Simulator) Simulate(ctx context.Context, agent core.Agent, example ports.InputExample) (*ports.InteractionRecord, error) {
	var resp *ports.LLMResponse
	var elapsed time.Duration
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		start := time.Now()
		resp, err = s.client.ChatCompletionWithUsage(ctx, string(agent.ID), example.Query, maxOutputTokens)
		elapsed = time.Since(start)

		if err == nil {
			break
		}
		if !errors.Is(err, ErrRateLimited) || attempt == maxRetries-1 {
			return nil, apperrors.ExternalService("agent run failed", err)
		}

		// exponential backoff (2^attempt * base) with jitter
		jitter := time.Duration(rand.Float64() * 500 * float64(time.Millisecond))
		wait := time.Duration(1<<attempt)*baseWaitSeconds*time.Second + jitter
		s.log.Warn("rate limit exceeded (attempt %d/%d), retrying in %s", attempt+1, maxRetries, wait)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			s.sleep(wait)
		}
	}
	if err != nil {
		return nil, apperrors.ExternalService("agent run failed after retries", err)
	}

	metrics := map[string]any{
		"client-run-duration-in-seconds": elapsed.Seconds(),
	}
	if resp.Usage != nil {
		metrics["completion-tokens"] = resp.Usage.CompletionTokens
		metrics["prompt-tokens"] = resp.Usage.PromptTokens
	}

	return &ports.InteractionRecord{
		ExampleID: core.ExampleID(example.ID),
		Query:     example.Query,
		Response:  resp.Content,
		Metrics:   metrics,
		Fields:    example.Fields,
	}, nil
}
