package score

import (
	"testing"
)

func TestParseDataType(t *testing.T) {
	for _, valid := range []string{"Ordinal", "Continuous", "Boolean"} {
		if _, err := ParseDataType(valid); err != nil {
			t.Errorf("ParseDataType(%q) error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "ordinal", "Categorical"} {
		if _, err := ParseDataType(invalid); err == nil {
			t.Errorf("ParseDataType(%q) should fail", invalid)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, valid := range []string{"Increase", "Decrease", "Neutral"} {
		if _, err := ParseDirection(valid); err != nil {
			t.Errorf("ParseDirection(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseDirection("Up"); err == nil {
		t.Error("ParseDirection(\"Up\") should fail")
	}
}

func TestParseResultView(t *testing.T) {
	for _, valid := range []string{"default", "all-scores", "raw-scores-only"} {
		if _, err := ParseResultView(valid); err != nil {
			t.Errorf("ParseResultView(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseResultView("everything"); err == nil {
		t.Error("ParseResultView(\"everything\") should fail")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "fluency", "passing", Boolean, Increase); err == nil {
		t.Error("empty name should fail")
	}
	if _, err := New("Pass rate", "", "passing", Boolean, Increase); err == nil {
		t.Error("empty evaluator should fail")
	}
	if _, err := New("Pass rate", "fluency", "", Boolean, Increase); err == nil {
		t.Error("empty field should fail")
	}
	if _, err := New("Pass rate", "fluency", "passing", "Categorical", Increase); err == nil {
		t.Error("unknown data type should fail")
	}
	if _, err := New("Pass rate", "fluency", "passing", Boolean, "Up"); err == nil {
		t.Error("unknown direction should fail")
	}
}

func TestColumnKey(t *testing.T) {
	sc := MustNew("Pass rate", "fluency", "passing", Boolean, Increase)
	if got := sc.ColumnKey(); got != "outputs.fluency.passing" {
		t.Errorf("ColumnKey() = %q", got)
	}
}

func TestShouldInclude(t *testing.T) {
	judge := EvaluatorInfo{Key: "fluency", Class: "FluencyEvaluator"}
	operational := EvaluatorInfo{Key: "operational_metrics", Class: OperationalMetricsClass}
	boolScore := ScoreInfo{Name: "Pass rate", Key: "passing", Type: Boolean, DesiredDirection: Increase}
	rawScore := ScoreInfo{Name: "Rating", Key: "score", Type: Ordinal, DesiredDirection: Increase}

	cases := []struct {
		name      string
		info      ScoreInfo
		evaluator EvaluatorInfo
		view      ResultView
		want      bool
	}{
		{"boolean in default", boolScore, judge, ViewDefault, true},
		{"raw in default", rawScore, judge, ViewDefault, false},
		{"boolean in all", boolScore, judge, ViewAll, true},
		{"raw in all", rawScore, judge, ViewAll, true},
		{"boolean in raw-only", boolScore, judge, ViewRawScores, false},
		{"raw in raw-only", rawScore, judge, ViewRawScores, true},
		{"operational in default", rawScore, operational, ViewDefault, true},
		{"operational in raw-only", boolScore, operational, ViewRawScores, true},
	}
	for _, tc := range cases {
		if got := ShouldInclude(tc.info, tc.evaluator, tc.view); got != tc.want {
			t.Errorf("%s: ShouldInclude() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMetadataLookups(t *testing.T) {
	meta := Metadata{
		Sections: []Section{
			{
				Name: "AI quality",
				Evaluators: []EvaluatorInfo{
					{
						Key:   "fluency",
						Class: "FluencyEvaluator",
						Scores: []ScoreInfo{
							{Name: "Fluency", Key: "score", Type: Ordinal, DesiredDirection: Increase},
							{Name: "Fluency pass rate", Key: "passing", Type: Boolean, DesiredDirection: Increase},
						},
					},
				},
			},
		},
	}

	classes := meta.EvaluatorClasses()
	if len(classes) != 1 || classes[0] != "FluencyEvaluator" {
		t.Errorf("EvaluatorClasses() = %v", classes)
	}

	if _, ok := meta.FindEvaluatorByClass("FluencyEvaluator"); !ok {
		t.Error("FindEvaluatorByClass() missed a known class")
	}
	if _, ok := meta.FindEvaluatorByClass("CoherenceEvaluator"); ok {
		t.Error("FindEvaluatorByClass() invented a class")
	}

	byColumn := meta.ScoreByColumn()
	if info, ok := byColumn["outputs.fluency.passing"]; !ok || info.Type != Boolean {
		t.Errorf("ScoreByColumn() = %v", byColumn)
	}
}

func TestSectionScores_PreservesOrderAndFilters(t *testing.T) {
	section := Section{
		Name: "AI quality",
		Evaluators: []EvaluatorInfo{
			{
				Key:   "fluency",
				Class: "FluencyEvaluator",
				Scores: []ScoreInfo{
					{Name: "Fluency", Key: "score", Type: Ordinal, DesiredDirection: Increase},
					{Name: "Fluency pass rate", Key: "passing", Type: Boolean, DesiredDirection: Increase},
				},
			},
			{
				Key:   "coherence",
				Class: "CoherenceEvaluator",
				Scores: []ScoreInfo{
					{Name: "Coherence pass rate", Key: "passing", Type: Boolean, DesiredDirection: Increase},
				},
			},
		},
	}
	meta := Metadata{Sections: []Section{section}}

	scores, err := meta.SectionScores(section, []string{"FluencyEvaluator", "CoherenceEvaluator"}, ViewDefault)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("SectionScores() returned %d scores, want 2", len(scores))
	}
	if scores[0].Name != "Fluency pass rate" || scores[1].Name != "Coherence pass rate" {
		t.Errorf("score order = [%s, %s]", scores[0].Name, scores[1].Name)
	}

	// unselected evaluator classes contribute nothing
	onlyFluency, err := meta.SectionScores(section, []string{"FluencyEvaluator"}, ViewAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyFluency) != 2 {
		t.Errorf("SectionScores(all, fluency only) returned %d scores, want 2", len(onlyFluency))
	}
}
