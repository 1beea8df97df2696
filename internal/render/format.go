// Package render turns confidence intervals and comparisons into markdown
// badges, tables and summary documents. Purely derived presentation; all
// computation happens in internal/analysis.
package render

import (
	"fmt"
	"net/url"
	"strings"

	"agenteval/domain/score"
)

// FmtMetricValue formats a metric value according to its data type:
// ordinal with two decimals, continuous with three significant digits,
// boolean as a percentage with one decimal. Signed adds an explicit sign
// for deltas.
func FmtMetricValue(x float64, dataType score.DataType, signed bool) string {
	switch dataType {
	case score.Ordinal:
		if signed {
			return fmt.Sprintf("%+.2f", x)
		}
		return fmt.Sprintf("%.2f", x)
	case score.Boolean:
		if signed {
			return fmt.Sprintf("%+.1f%%", x*100)
		}
		return fmt.Sprintf("%.1f%%", x*100)
	default: // Continuous
		if signed {
			return fmt.Sprintf("%+.3g", x)
		}
		return fmt.Sprintf("%.3g", x)
	}
}

// FmtPValue formats a p-value: exact zero renders as "≈0", values below
// 0.001 in scientific notation with a compact exponent, otherwise three
// decimals.
func FmtPValue(x float64) string {
	if x <= 0 {
		return "≈0"
	}
	if x < 0.001 {
		return strings.Replace(fmt.Sprintf("%.0e", x), "e-0", "e-", 1)
	}
	return fmt.Sprintf("%.3f", x)
}

// FmtHyperlink renders a markdown hyperlink with a tooltip
func FmtHyperlink(text, linkURL, tooltip string) string {
	tooltip = strings.ReplaceAll(tooltip, "\n", "&#013;")
	tooltip = strings.ReplaceAll(tooltip, `"`, "&quot;")
	return fmt.Sprintf(`[%s](%s "%s")`, text, linkURL, tooltip)
}

// FmtImage renders a markdown image with alt text and a tooltip
func FmtImage(imageURL, altText, tooltip string) string {
	return "!" + FmtHyperlink(altText, imageURL, tooltip)
}

// FmtBadge renders a shields.io badge. Color accepts a preset name from the
// color map or any literal color value. The default tooltip follows the
// significance tier encoded in the preset name.
func FmtBadge(label, message, color, tooltip string) string {
	if tooltip == "" {
		switch {
		case strings.HasSuffix(color, "Strong"):
			tooltip = "Highly statistically significant."
		case strings.HasSuffix(color, "Weak"):
			tooltip = "Marginally statistically significant."
		case color == "Inconclusive":
			tooltip = "Not statistically significant."
		}
	}

	if mapped, ok := colorMap[color]; ok {
		color = mapped
	}

	badgeContent := strings.Join([]string{
		escapeBadgeField(label),
		escapeBadgeField(message),
		escapeBadgeField(color),
	}, "-")
	badgeURL := "https://img.shields.io/badge/" + badgeContent
	altText := fmt.Sprintf("%s: %s", label, message)

	return FmtImage(badgeURL, altText, tooltip)
}

// escapeBadgeField percent-encodes a badge segment and doubles the dash and
// underscore characters shields.io treats as separators
func escapeBadgeField(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	escaped = strings.ReplaceAll(escaped, "-", "--")
	escaped = strings.ReplaceAll(escaped, "_", "__")
	return escaped
}
