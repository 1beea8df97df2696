package app

import (
	"strings"

	"agenteval/domain/result"
	"agenteval/domain/score"
)

// NormalizePassFail rewrites textual "pass"/"fail" cells of boolean score
// columns into booleans, oriented by the score's desired direction. With an
// increasing direction "pass" maps to true; with a decreasing one the
// mapping inverts so that higher is always the preferred proportion.
func NormalizePassFail(rows []result.Row, meta score.Metadata) []result.Row {
	byColumn := meta.ScoreByColumn()
	for _, row := range rows {
		for column, value := range row {
			info, ok := byColumn[column]
			if !ok || info.Type != score.Boolean {
				continue
			}
			text, ok := value.(string)
			if !ok {
				continue
			}
			var verdict bool
			switch strings.ToLower(text) {
			case "pass":
				verdict = true
			case "fail":
				verdict = false
			default:
				continue
			}
			if info.DesiredDirection != score.Increase {
				verdict = !verdict
			}
			row[column] = verdict
		}
	}
	return rows
}
