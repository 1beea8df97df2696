package evaluators

import (
	"fmt"

	"agenteval/domain/core"
	"agenteval/domain/score"
	intlog "agenteval/internal"
	"agenteval/ports"
)

// Registry maps evaluator class names to factories. An explicit table
// instead of reflection: every class declares its required configuration
// up front.
type Registry struct {
	factories map[string]ports.EvaluatorFactory
	log       *intlog.Logger
}

// NewRegistry creates a registry pre-populated with the built-in evaluator
// classes
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]ports.EvaluatorFactory),
		log:       intlog.DefaultLogger,
	}

	r.Register(ports.EvaluatorFactory{
		Class: score.OperationalMetricsClass,
		New: func(cfg ports.EvaluatorConfig) (ports.Evaluator, error) {
			return OperationalMetricsEvaluator{}, nil
		},
	})

	judgeClasses := map[string]string{
		"FluencyEvaluator":   "fluency: the response reads naturally and grammatically",
		"CoherenceEvaluator": "coherence: the response is logically organized and consistent",
		"RelevanceEvaluator": "relevance: the response addresses the query directly",
	}
	for class, criterion := range judgeClasses {
		class, criterion := class, criterion
		r.Register(ports.EvaluatorFactory{
			Class:          class,
			RequiredConfig: []string{"Client", "Model"},
			New: func(cfg ports.EvaluatorConfig) (ports.Evaluator, error) {
				if cfg.Client == nil || cfg.Model == "" {
					return nil, fmt.Errorf("%s requires a judge client and model", class)
				}
				return NewJudgeEvaluator(evaluatorKeyForClass(class), criterion, cfg.Client, cfg.Model), nil
			},
		})
	}

	return r
}

// Register adds or replaces a factory
func (r *Registry) Register(factory ports.EvaluatorFactory) {
	r.factories[factory.Class] = factory
}

// Build instantiates evaluators for the requested classes, keyed per the
// metadata. Unrecognized classes are logged and skipped; the operational
// metrics evaluator is always appended so its scores reach every result.
func (r *Registry) Build(classes []string, cfg ports.EvaluatorConfig, meta score.Metadata) (map[core.EvaluatorKey]ports.Evaluator, error) {
	built := make(map[core.EvaluatorKey]ports.Evaluator)

	for _, class := range classes {
		factory, ok := r.factories[class]
		if !ok {
			r.log.Warn("unrecognized evaluator %q", class)
			continue
		}
		info, ok := meta.FindEvaluatorByClass(class)
		if !ok {
			r.log.Warn("evaluator %q has no score metadata", class)
			continue
		}
		evaluator, err := factory.New(cfg)
		if err != nil {
			return nil, err
		}
		built[info.Key] = evaluator
	}

	built[OperationalKey] = OperationalMetricsEvaluator{}
	return built, nil
}

// evaluatorKeyForClass derives the metadata key convention from a class
// name, e.g. FluencyEvaluator -> fluency
func evaluatorKeyForClass(class string) core.EvaluatorKey {
	const suffix = "Evaluator"
	name := class
	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		name = name[:len(name)-len(suffix)]
	}
	lowered := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lowered[i] = c
	}
	return core.EvaluatorKey(lowered)
}
