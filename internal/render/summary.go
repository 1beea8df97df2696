package render

import (
	"fmt"
	"strings"

	"agenteval/domain/core"
	"agenteval/domain/result"
	"agenteval/domain/score"
	apperrors "agenteval/internal/errors"
)

// SummaryInput carries everything the summary document needs. Results and
// agents are keyed by agent id; Order fixes the column order of the
// comparison tables.
type SummaryInput struct {
	Results      map[core.AgentID]*result.EvaluationResult
	Agents       map[core.AgentID]core.Agent
	Order        []core.AgentID
	Baseline     core.AgentID
	Evaluators   []string
	AgentBaseURL string
	View         score.ResultView
	Metadata     score.Metadata
}

// Summarize generates the markdown summary of an evaluation run: the variant
// listing, then one table per metadata section in the metadata-defined
// order. With two or more variants the tables compare against the baseline;
// with exactly one they show confidence intervals.
func (r *Renderer) Summarize(in SummaryInput) (string, error) {
	if len(in.Results) == 0 {
		return "", apperrors.InvalidInput("no evaluation results provided")
	}
	if _, ok := in.Results[in.Baseline]; !ok {
		return "", apperrors.InvalidInput(fmt.Sprintf("baseline agent %q has no evaluation result", in.Baseline))
	}

	// operational metrics always render, whether or not the dataset names them
	in.Evaluators = withOperational(in.Evaluators)

	var md []string
	viewLabel := ""
	if in.View != score.ViewDefault {
		viewLabel = fmt.Sprintf(" (%s)", in.View)
	}
	md = append(md, fmt.Sprintf("## Agent evaluation%s\n", viewLabel))

	md = append(md, r.variantListing(in)...)

	if len(in.Results) >= 2 {
		md = append(md, "\n### Compare evaluation scores between variants\n")
	} else {
		md = append(md, "\n### Evaluation results\n")
	}

	for _, section := range in.Metadata.Sections {
		sectionMD, err := r.sectionTable(in, section)
		if err != nil {
			return "", err
		}
		if sectionMD != "" {
			md = append(md, fmt.Sprintf("#### %s\n", section.Name), sectionMD, "")
		}
	}

	md = append(md, "### References\n")
	md = append(md,
		"- See the evaluator score metadata file for the full list of supported evaluators and score definitions")
	md = append(md, "")

	return strings.Join(md, "\n"), nil
}

func withOperational(classes []string) []string {
	for _, class := range classes {
		if class == score.OperationalMetricsClass {
			return classes
		}
	}
	return append(append([]string{}, classes...), score.OperationalMetricsClass)
}

// variantListing renders the agent table with the baseline row first
func (r *Renderer) variantListing(in SummaryInput) []string {
	rows := []string{
		"### Agent variants\n",
		"| Agent name | Agent ID | Evaluation results |",
		"|:-----------|:---------|:-------------------|",
	}

	formatRow := func(id core.AgentID) string {
		agent := in.Agents[id]
		resultLink := ""
		if res, ok := in.Results[id]; ok && res.ReportURL() != "" {
			resultLink = FmtHyperlink("Click here", res.ReportURL(), "")
		}
		agentLink := FmtHyperlink(string(agent.ID), in.AgentBaseURL+string(agent.ID), "")
		return fmt.Sprintf("| %s | %s | %s |", agent.Name, agentLink, resultLink)
	}

	rows = append(rows, formatRow(in.Baseline))
	for _, id := range in.Order {
		if id != in.Baseline {
			rows = append(rows, formatRow(id))
		}
	}
	return rows
}

// sectionTable renders one metadata section, or "" when none of its
// evaluators were selected or every score was filtered out by the view
func (r *Renderer) sectionTable(in SummaryInput, section score.Section) (string, error) {
	selected := false
	for _, evaluator := range section.Evaluators {
		for _, class := range in.Evaluators {
			if evaluator.Class == class {
				selected = true
			}
		}
	}
	if !selected {
		return "", nil
	}

	scores, err := in.Metadata.SectionScores(section, in.Evaluators, in.View)
	if err != nil {
		return "", err
	}
	if len(scores) == 0 {
		return "", nil
	}

	baseline := in.Results[in.Baseline]
	if len(in.Results) == 1 {
		return r.TableCI(scores, baseline)
	}

	ordered := make([]*result.EvaluationResult, 0, len(in.Order))
	for _, id := range in.Order {
		if res, ok := in.Results[id]; ok {
			ordered = append(ordered, res)
		}
	}
	return r.TableCompare(scores, ordered, baseline)
}
