package render

import (
	"strings"
	"testing"

	"agenteval/domain/score"
)

func TestFmtPValue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "≈0"},
		{-1e-10, "≈0"},
		{0.0001, "1e-4"},
		{0.00005, "5e-5"},
		{0.001, "0.001"},
		{0.0390625, "0.039"},
		{0.05, "0.050"},
		{1.0, "1.000"},
	}
	for _, tc := range cases {
		if got := FmtPValue(tc.in); got != tc.want {
			t.Errorf("FmtPValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtMetricValue(t *testing.T) {
	cases := []struct {
		x        float64
		dataType score.DataType
		signed   bool
		want     string
	}{
		{3.14159, score.Ordinal, false, "3.14"},
		{0.05, score.Ordinal, true, "+0.05"},
		{-0.5, score.Ordinal, true, "-0.50"},
		{0.356, score.Boolean, false, "35.6%"},
		{0.05, score.Boolean, true, "+5.0%"},
		{-0.124, score.Boolean, true, "-12.4%"},
		{0.123456, score.Continuous, false, "0.123"},
		{0.123456, score.Continuous, true, "+0.123"},
		{12345.6, score.Continuous, false, "1.23e+04"},
	}
	for _, tc := range cases {
		if got := FmtMetricValue(tc.x, tc.dataType, tc.signed); got != tc.want {
			t.Errorf("FmtMetricValue(%v, %s, %v) = %q, want %q", tc.x, tc.dataType, tc.signed, got, tc.want)
		}
	}
}

func TestFmtHyperlink_EscapesTooltip(t *testing.T) {
	link := FmtHyperlink("Click here", "https://example.com", "line one\nsays \"hi\"")
	if strings.Contains(link, "\n") {
		t.Error("tooltip newline must be escaped")
	}
	if !strings.Contains(link, "&#013;") || !strings.Contains(link, "&quot;") {
		t.Errorf("tooltip escapes missing from %q", link)
	}
	if !strings.HasPrefix(link, "[Click here](https://example.com ") {
		t.Errorf("unexpected hyperlink shape: %q", link)
	}
}

func TestFmtBadge_Escaping(t *testing.T) {
	badge := FmtBadge("Too few samples", "a-b_c", "Warning", "check data")

	if !strings.Contains(badge, "Too%20few%20samples") {
		t.Errorf("spaces must encode as %%20: %q", badge)
	}
	if !strings.Contains(badge, "a--b__c") {
		t.Errorf("dash and underscore must be doubled: %q", badge)
	}
	if !strings.Contains(badge, "f0e543") {
		t.Errorf("Warning preset must map to its hex color: %q", badge)
	}
	if !strings.HasPrefix(badge, "![Too few samples: a-b_c](https://img.shields.io/badge/") {
		t.Errorf("unexpected badge shape: %q", badge)
	}
}

func TestFmtBadge_DefaultTooltips(t *testing.T) {
	strong := FmtBadge("Improved", "1.0", "ImprovedStrong", "")
	if !strings.Contains(strong, "Highly statistically significant.") {
		t.Errorf("strong badge missing default tooltip: %q", strong)
	}
	weak := FmtBadge("Improved", "1.0", "ImprovedWeak", "")
	if !strings.Contains(weak, "Marginally statistically significant.") {
		t.Errorf("weak badge missing default tooltip: %q", weak)
	}
	inconclusive := FmtBadge("Inconclusive", "1.0", "Inconclusive", "")
	if !strings.Contains(inconclusive, "Not statistically significant.") {
		t.Errorf("inconclusive badge missing default tooltip: %q", inconclusive)
	}
}
