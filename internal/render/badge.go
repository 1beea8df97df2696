package render

import (
	"fmt"
	"math"

	"agenteval/internal/analysis"
)

// Badge color palette
const (
	darkGreen  = "157e3b"
	paleGreen  = "a1d99b"
	darkRed    = "d03536"
	paleRed    = "fcae91"
	darkBlue   = "1c72af"
	paleBlue   = "9ecae1"
	paleYellow = "f0e543"
	paleGrey   = "e6e6e3"
	white      = "ffffff"
)

// colorMap crosses the effect category with the significance tier
var colorMap = map[string]string{
	"ImprovedStrong": darkGreen,
	"ImprovedWeak":   paleGreen,
	"DegradedStrong": darkRed,
	"DegradedWeak":   paleRed,
	"ChangedStrong":  darkBlue,
	"ChangedWeak":    paleBlue,
	"Inconclusive":   paleGrey,
	"Warning":        paleYellow,
	"Pass":           darkGreen,
	"Fail":           darkRed,
}

// Significance thresholds for badge styling: Strong when p is at or below
// the strong threshold, Weak when at or below the weak threshold.
const (
	StrongSignificance = 0.001
	WeakSignificance   = 0.05
)

// TreatmentBadge formats a comparison's treatment effect as a badge. A
// Warning badge flags an effect/p-value combination that contradicts the
// classification rules; that should not occur when the engine is correct
// and is surfaced to the reader rather than swallowed.
func TreatmentBadge(c *analysis.Comparison) string {
	effect := c.Effect()

	var color, tooltip string
	switch effect {
	case analysis.EffectImproved, analysis.EffectDegraded, analysis.EffectChanged:
		if c.PValue <= StrongSignificance {
			color = string(effect) + "Strong"
			tooltip = "Highly statistically significant"
		} else if c.PValue <= WeakSignificance {
			color = string(effect) + "Weak"
			tooltip = "Marginally statistically significant"
		} else {
			color = "Warning"
			tooltip = "Unexpected classification"
		}
		tooltip += fmt.Sprintf(" (p-value: %s).", FmtPValue(c.PValue))
	case analysis.EffectInconclusive:
		if math.IsNaN(c.PValue) || c.PValue >= WeakSignificance {
			color = string(effect)
			tooltip = "Not statistically significant"
		} else {
			color = "Warning"
			tooltip = "Unexpected classification"
		}
		tooltip += fmt.Sprintf(" (p-value: %s).", FmtPValue(c.PValue))
	case analysis.EffectTooFewSamples:
		color = "Warning"
		tooltip = "Insufficient observations to determine statistical significance"
	case analysis.EffectZeroSamples:
		color = "Warning"
		tooltip = "Zero observations might indicate a problem with data collection"
	default:
		color = paleGrey
	}

	value := FmtMetricValue(c.TreatmentMean, c.Score.DataType, false)
	delta := FmtMetricValue(c.Delta, c.Score.DataType, true)
	return FmtBadge(string(effect), fmt.Sprintf("%s (%s)", value, delta), color, tooltip)
}

// ControlBadge formats the baseline value of a comparison
func ControlBadge(c *analysis.Comparison) string {
	value := FmtMetricValue(c.ControlMean, c.Score.DataType, false)
	return FmtBadge("Baseline", value, white, "")
}

// FmtCI formats a confidence interval cell
func FmtCI(ci *analysis.ConfidenceInterval) string {
	if ci.Lower == nil || ci.Upper == nil {
		return "n/a"
	}
	if ci.SampleCount < 10 {
		return "Too few samples"
	}
	lower := FmtMetricValue(*ci.Lower, ci.Score.DataType, false)
	upper := FmtMetricValue(*ci.Upper, ci.Score.DataType, false)
	return fmt.Sprintf("(%s, %s)", lower, upper)
}
