package evaluators

import (
	"context"
	"testing"

	"agenteval/adapters/agent"
	"agenteval/domain/score"
	"agenteval/ports"
)

func registryMetadata() score.Metadata {
	return score.Metadata{
		Sections: []score.Section{
			{
				Name: "AI quality",
				Evaluators: []score.EvaluatorInfo{
					{Key: "fluency", Class: "FluencyEvaluator"},
					{Key: "coherence", Class: "CoherenceEvaluator"},
				},
			},
			{
				Name: "Operational metrics",
				Evaluators: []score.EvaluatorInfo{
					{Key: "operational_metrics", Class: score.OperationalMetricsClass},
				},
			},
		},
	}
}

func TestBuild_KnownClasses(t *testing.T) {
	registry := NewRegistry()
	cfg := ports.EvaluatorConfig{Client: &agent.MockLLMClient{Response: "4"}, Model: "judge-model"}

	built, err := registry.Build([]string{"FluencyEvaluator", "CoherenceEvaluator"}, cfg, registryMetadata())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if _, ok := built["fluency"]; !ok {
		t.Error("fluency evaluator missing")
	}
	if _, ok := built["coherence"]; !ok {
		t.Error("coherence evaluator missing")
	}
	if _, ok := built[OperationalKey]; !ok {
		t.Error("operational metrics evaluator must always be present")
	}
}

func TestBuild_SkipsUnrecognizedClass(t *testing.T) {
	registry := NewRegistry()
	cfg := ports.EvaluatorConfig{Client: &agent.MockLLMClient{}, Model: "judge-model"}

	built, err := registry.Build([]string{"GroundednessEvaluator"}, cfg, registryMetadata())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(built) != 1 {
		t.Errorf("got %d evaluators, want only the operational one", len(built))
	}
}

func TestBuild_JudgeRequiresClientAndModel(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Build([]string{"FluencyEvaluator"}, ports.EvaluatorConfig{}, registryMetadata()); err == nil {
		t.Error("judge evaluator without client configuration must fail")
	}
}

func TestEvaluatorKeyForClass(t *testing.T) {
	cases := map[string]string{
		"FluencyEvaluator":   "fluency",
		"CoherenceEvaluator": "coherence",
		"Evaluator":          "evaluator",
		"Custom":             "custom",
	}
	for class, want := range cases {
		if got := string(evaluatorKeyForClass(class)); got != want {
			t.Errorf("evaluatorKeyForClass(%q) = %q, want %q", class, got, want)
		}
	}
}

func TestJudgeEvaluator_Evaluate(t *testing.T) {
	judge := NewJudgeEvaluator("fluency", "fluency: reads naturally", &agent.MockLLMClient{Response: "4"}, "judge-model")

	record := &ports.InteractionRecord{Query: "q", Response: "r"}
	fields, err := judge.Evaluate(context.Background(), record)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if fields["score"] != 4 {
		t.Errorf("score = %v, want 4", fields["score"])
	}
	if fields["passing"] != true {
		t.Errorf("passing = %v, want true (4 meets the passing bar)", fields["passing"])
	}

	failing := NewJudgeEvaluator("fluency", "fluency", &agent.MockLLMClient{Response: "2."}, "judge-model")
	fields, err = failing.Evaluate(context.Background(), record)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if fields["score"] != 2 || fields["passing"] != false {
		t.Errorf("fields = %v, want score 2 failing", fields)
	}
}

func TestParseRating(t *testing.T) {
	cases := []struct {
		reply string
		want  int
		ok    bool
	}{
		{"4", 4, true},
		{" 5 ", 5, true},
		{"3.", 3, true},
		{"7", 5, true},  // clamped
		{"0", 1, true},  // clamped
		{"great", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseRating(tc.reply)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("parseRating(%q) = (%d, %v), want %d", tc.reply, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseRating(%q) should fail", tc.reply)
		}
	}
}

func TestOperationalMetricsEvaluator(t *testing.T) {
	record := &ports.InteractionRecord{
		Metrics: map[string]any{"completion-tokens": 42, "prompt-tokens": 10},
	}
	fields, err := OperationalMetricsEvaluator{}.Evaluate(context.Background(), record)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if fields["completion-tokens"] != 42 || fields["prompt-tokens"] != 10 {
		t.Errorf("fields = %v", fields)
	}
}
