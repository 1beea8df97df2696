// Package app orchestrates an evaluation run: load the input dataset, run
// every example through every agent variant, score the transcripts, and
// render the comparison summary.
package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"agenteval/adapters/evaluators"
	"agenteval/domain/core"
	"agenteval/domain/result"
	"agenteval/domain/score"
	"agenteval/internal"
	apperrors "agenteval/internal/errors"
	"agenteval/internal/render"
	"agenteval/ports"
)

const defaultConcurrency = 4

// EvaluationService wires the simulator, the evaluator set and the renderer
// into one end-to-end run
type EvaluationService struct {
	source      ports.DatasetSource
	simulator   ports.TranscriptSimulator
	evaluators  map[core.EvaluatorKey]ports.Evaluator
	renderer    *render.Renderer
	meta        score.Metadata
	concurrency int
	log         *internal.Logger
}

// RunRequest names the variants to evaluate. Baseline must be one of Agents;
// AgentBaseURL, when set, becomes the per-variant report link.
type RunRequest struct {
	Agents       []core.Agent
	Baseline     core.AgentID
	View         score.ResultView
	AgentBaseURL string
}

// RunOutput is the full result of an evaluation run
type RunOutput struct {
	Results  map[core.AgentID]*result.EvaluationResult
	Markdown string
}

func NewEvaluationService(
	source ports.DatasetSource,
	simulator ports.TranscriptSimulator,
	evaluatorSet map[core.EvaluatorKey]ports.Evaluator,
	renderer *render.Renderer,
	meta score.Metadata,
) *EvaluationService {
	merged := make(map[core.EvaluatorKey]ports.Evaluator, len(evaluatorSet)+1)
	for key, evaluator := range evaluatorSet {
		merged[key] = evaluator
	}
	// operational metrics reach every result even when the dataset never
	// names their evaluator
	if _, ok := merged[evaluators.OperationalKey]; !ok {
		merged[evaluators.OperationalKey] = evaluators.OperationalMetricsEvaluator{}
	}
	return &EvaluationService{
		source:      source,
		simulator:   simulator,
		evaluators:  merged,
		renderer:    renderer,
		meta:        meta,
		concurrency: defaultConcurrency,
		log:         internal.NewDefaultLogger(),
	}
}

// WithConcurrency caps how many examples run against one variant at a time
func (s *EvaluationService) WithConcurrency(n int) *EvaluationService {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Run evaluates every agent variant against the input dataset and renders
// the markdown summary
func (s *EvaluationService) Run(ctx context.Context, req RunRequest) (*RunOutput, error) {
	if len(req.Agents) == 0 {
		return nil, apperrors.InvalidInput("at least one agent variant is required")
	}
	baselineFound := false
	for _, agent := range req.Agents {
		if agent.ID == req.Baseline {
			baselineFound = true
			break
		}
	}
	if !baselineFound {
		return nil, apperrors.InvalidInput(fmt.Sprintf("baseline agent %q is not among the variants", req.Baseline))
	}

	dataset, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	assignExampleIDs(dataset)
	s.log.Info("loaded dataset %q: %d examples, %d evaluator classes",
		dataset.Name, len(dataset.Data), len(dataset.Evaluators))

	out := &RunOutput{Results: make(map[core.AgentID]*result.EvaluationResult, len(req.Agents))}
	order := make([]core.AgentID, 0, len(req.Agents))
	agents := make(map[core.AgentID]core.Agent, len(req.Agents))
	for _, agent := range req.Agents {
		res, err := s.evaluateVariant(ctx, agent, dataset, req.AgentBaseURL)
		if err != nil {
			return nil, apperrors.Wrapf(err, "evaluation of variant %s failed", agent.Name)
		}
		out.Results[agent.ID] = res
		order = append(order, agent.ID)
		agents[agent.ID] = agent
	}

	markdown, err := s.renderer.Summarize(render.SummaryInput{
		Results:      out.Results,
		Agents:       agents,
		Order:        order,
		Baseline:     req.Baseline,
		Evaluators:   dataset.Evaluators,
		AgentBaseURL: req.AgentBaseURL,
		View:         req.View,
		Metadata:     s.meta,
	})
	if err != nil {
		return nil, err
	}
	out.Markdown = markdown
	return out, nil
}

// evaluateVariant simulates and scores every example for one agent. Failed
// examples are logged and skipped so one flaky interaction does not sink the
// whole run; the pairing check downstream reports any resulting imbalance.
func (s *EvaluationService) evaluateVariant(
	ctx context.Context,
	agent core.Agent,
	dataset *ports.InputDataset,
	agentBaseURL string,
) (*result.EvaluationResult, error) {
	records := make([]*ports.InteractionRecord, len(dataset.Data))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	var mu sync.Mutex
	for i, example := range dataset.Data {
		i, example := i, example
		g.Go(func() error {
			record, err := s.simulator.Simulate(gctx, agent, example)
			if err != nil {
				s.log.Warn("example %s against %s failed: %v", example.ID, agent.Name, err)
				return nil
			}
			mu.Lock()
			records[i] = record
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []result.Row
	for _, record := range records {
		if record == nil {
			continue
		}
		row, err := s.scoreRecord(ctx, record)
		if err != nil {
			s.log.Warn("scoring example %s against %s failed: %v", record.ExampleID, agent.Name, err)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, apperrors.ValidationError(fmt.Sprintf("no examples completed for variant %s", agent.Name))
	}

	rows = NormalizePassFail(rows, s.meta)
	return result.New(agent.Name, rows, reportURL(agentBaseURL, agent))
}

// scoreRecord runs every configured evaluator over one interaction and
// flattens the scores into a result row
func (s *EvaluationService) scoreRecord(ctx context.Context, record *ports.InteractionRecord) (result.Row, error) {
	row := result.Row{result.IdentityColumn: string(record.ExampleID)}
	for key, evaluator := range s.evaluators {
		fields, err := evaluator.Evaluate(ctx, record)
		if err != nil {
			return nil, apperrors.Wrapf(err, "evaluator %s", key)
		}
		for field, value := range fields {
			row[fmt.Sprintf("outputs.%s.%s", key, field)] = value
		}
	}
	return row, nil
}

// assignExampleIDs fills in identities for examples that arrived without one
func assignExampleIDs(dataset *ports.InputDataset) {
	for i := range dataset.Data {
		if dataset.Data[i].ID == "" {
			dataset.Data[i].ID = core.NewID().String()
		}
	}
}

func reportURL(baseURL string, agent core.Agent) string {
	if baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", baseURL, agent.ID)
}
