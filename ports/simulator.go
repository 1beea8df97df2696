package ports

import (
	"context"

	"agenteval/domain/core"
)

// InteractionRecord is one completed simulated interaction between a query
// and an agent variant. Metrics carries operational measurements keyed by
// score field name.
type InteractionRecord struct {
	ExampleID core.ExampleID
	Query     string
	Response  string
	Metrics   map[string]any
	Fields    map[string]any // pass-through of the input example's extra data
}

// TranscriptSimulator runs one query against one agent and returns the
// completed interaction. Implementations own retry and rate-limit handling;
// the comparison core never sees the network.
type TranscriptSimulator interface {
	Simulate(ctx context.Context, agent core.Agent, example InputExample) (*InteractionRecord, error)
}
