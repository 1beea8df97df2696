package ports

import (
	"context"

	"agenteval/domain/core"
)

// Evaluator scores one interaction record, returning score field keys to
// values. Values land in result rows under "outputs.<key>.<field>".
type Evaluator interface {
	Key() core.EvaluatorKey
	Evaluate(ctx context.Context, record *InteractionRecord) (map[string]any, error)
}

// EvaluatorConfig holds the dependencies an evaluator factory may need.
// Each factory declares which fields it requires.
type EvaluatorConfig struct {
	Client LLMClient
	Model  string
}

// EvaluatorFactory constructs an evaluator of one class. The registry of
// factories replaces runtime reflection: every class declares its required
// configuration statically.
type EvaluatorFactory struct {
	Class          string
	RequiredConfig []string
	New            func(cfg EvaluatorConfig) (Evaluator, error)
}
