package evaluators

import (
	"context"

	"agenteval/domain/core"
	"agenteval/ports"
)

// OperationalKey is the evaluator key operational metrics publish under
const OperationalKey core.EvaluatorKey = "operational_metrics"

// OperationalMetricsEvaluator propagates the simulator's operational
// metrics to the final evaluation results unchanged.
//
// E.g. a record with metrics {"completion-tokens": 100} yields the result
// column "outputs.operational_metrics.completion-tokens".
type OperationalMetricsEvaluator struct{}

func (OperationalMetricsEvaluator) Key() core.EvaluatorKey {
	return OperationalKey
}

func (OperationalMetricsEvaluator) Evaluate(ctx context.Context, record *ports.InteractionRecord) (map[string]any, error) {
	return record.Metrics, nil
}
