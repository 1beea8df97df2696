package evaluators

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"agenteval/domain/core"
	apperrors "agenteval/internal/errors"
	"agenteval/ports"
)

const judgeMaxTokens = 16

// passingScore is the ordinal rating at or above which a response counts
// as passing
const passingScore = 4

// JudgeEvaluator rates a response on a 1-5 scale by prompting a judge
// model, emitting the raw rating under "score" and a derived pass/fail
// under "passing"
type JudgeEvaluator struct {
	key       core.EvaluatorKey
	criterion string
	client    ports.LLMClient
	model     string
}

// NewJudgeEvaluator creates a judge for one quality criterion, e.g.
// "fluency: the response reads naturally and grammatically"
func NewJudgeEvaluator(key core.EvaluatorKey, criterion string, client ports.LLMClient, model string) *JudgeEvaluator {
	return &JudgeEvaluator{key: key, criterion: criterion, client: client, model: model}
}

func (e *JudgeEvaluator) Key() core.EvaluatorKey {
	return e.key
}

func (e *JudgeEvaluator) Evaluate(ctx context.Context, record *ports.InteractionRecord) (map[string]any, error) {
	prompt := fmt.Sprintf(
		"Rate the following response to a user query on %s.\n\n"+
			"Query:\n%s\n\nResponse:\n%s\n\n"+
			"Reply with a single integer from 1 (worst) to 5 (best) and nothing else.",
		e.criterion, record.Query, record.Response)

	reply, err := e.client.ChatCompletion(ctx, e.model, prompt, judgeMaxTokens)
	if err != nil {
		return nil, apperrors.ExternalService(fmt.Sprintf("judge %s failed", e.key), err)
	}

	rating, err := parseRating(reply)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"score":   rating,
		"passing": rating >= passingScore,
	}, nil
}

// parseRating extracts the leading integer of a judge reply and clamps it
// to the 1-5 scale
func parseRating(reply string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(reply))
	if len(fields) == 0 {
		return 0, apperrors.ValidationError("judge returned an empty reply")
	}
	rating, err := strconv.Atoi(strings.Trim(fields[0], ".,"))
	if err != nil {
		return 0, apperrors.ValidationError(fmt.Sprintf("judge reply %q is not a rating", reply))
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return rating, nil
}
