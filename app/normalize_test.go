package app

import (
	"testing"

	"agenteval/domain/result"
	"agenteval/domain/score"
)

func normalizeMetadata() score.Metadata {
	return score.Metadata{
		Sections: []score.Section{
			{
				Name: "AI quality",
				Evaluators: []score.EvaluatorInfo{
					{
						Key:   "safety",
						Class: "SafetyEvaluator",
						Scores: []score.ScoreInfo{
							{Name: "Safe", Key: "verdict", Type: score.Boolean, DesiredDirection: score.Increase},
							{Name: "Harmful", Key: "harm", Type: score.Boolean, DesiredDirection: score.Decrease},
							{Name: "Rating", Key: "score", Type: score.Ordinal, DesiredDirection: score.Increase},
						},
					},
				},
			},
		},
	}
}

func TestNormalizePassFail(t *testing.T) {
	rows := []result.Row{
		{
			result.IdentityColumn:          "1",
			"outputs.safety.verdict":       "pass",
			"outputs.safety.harm":          "PASS",
			"outputs.safety.score":         "pass", // ordinal, untouched
			"outputs.safety.unknown-field": "pass", // unknown column, untouched
		},
		{
			result.IdentityColumn:    "2",
			"outputs.safety.verdict": "FAIL",
			"outputs.safety.harm":    "fail",
		},
		{
			result.IdentityColumn:    "3",
			"outputs.safety.verdict": true, // already boolean, untouched
			"outputs.safety.harm":    "maybe",
		},
	}

	normalized := NormalizePassFail(rows, normalizeMetadata())

	// increasing direction: pass maps to true
	if normalized[0]["outputs.safety.verdict"] != true {
		t.Errorf("pass/Increase = %v, want true", normalized[0]["outputs.safety.verdict"])
	}
	if normalized[1]["outputs.safety.verdict"] != false {
		t.Errorf("FAIL/Increase = %v, want false", normalized[1]["outputs.safety.verdict"])
	}

	// decreasing direction: the mapping inverts
	if normalized[0]["outputs.safety.harm"] != false {
		t.Errorf("PASS/Decrease = %v, want false", normalized[0]["outputs.safety.harm"])
	}
	if normalized[1]["outputs.safety.harm"] != true {
		t.Errorf("fail/Decrease = %v, want true", normalized[1]["outputs.safety.harm"])
	}

	// non-verdict strings and non-boolean columns stay as they are
	if normalized[0]["outputs.safety.score"] != "pass" {
		t.Error("ordinal column must not be normalized")
	}
	if normalized[0]["outputs.safety.unknown-field"] != "pass" {
		t.Error("unknown column must not be normalized")
	}
	if normalized[2]["outputs.safety.verdict"] != true {
		t.Error("existing boolean must survive unchanged")
	}
	if normalized[2]["outputs.safety.harm"] != "maybe" {
		t.Error("unrecognized verdict string must survive unchanged")
	}
}
