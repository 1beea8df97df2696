// Package metadata loads the declarative evaluator score schema. The core
// only ever sees the parsed score.Metadata structure; file handling stays
// at this boundary.
package metadata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"agenteval/domain/core"
	"agenteval/domain/score"
	apperrors "agenteval/internal/errors"
)

type fileSchema struct {
	Sections []sectionSchema `yaml:"sections"`
}

type sectionSchema struct {
	Name       string            `yaml:"name"`
	Evaluators []evaluatorSchema `yaml:"evaluators"`
}

type evaluatorSchema struct {
	Key    string        `yaml:"key"`
	Class  string        `yaml:"class"`
	Scores []scoreSchema `yaml:"scores"`
}

type scoreSchema struct {
	Name             string `yaml:"name"`
	Key              string `yaml:"key"`
	Type             string `yaml:"type"`
	DesiredDirection string `yaml:"desired_direction"`
}

// Load reads and validates an evaluator-scores YAML file
func Load(path string) (score.Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return score.Metadata{}, apperrors.Wrapf(err, "failed to read evaluator metadata at %s", path)
	}
	return Parse(raw)
}

// Parse converts raw YAML into the typed metadata, rejecting unknown data
// types and directions at the boundary
func Parse(raw []byte) (score.Metadata, error) {
	var schema fileSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return score.Metadata{}, apperrors.Wrap(err, "failed to parse evaluator metadata")
	}

	meta := score.Metadata{Sections: make([]score.Section, 0, len(schema.Sections))}
	for _, s := range schema.Sections {
		section := score.Section{Name: s.Name}
		for _, e := range s.Evaluators {
			if e.Key == "" || e.Class == "" {
				return score.Metadata{}, apperrors.ValidationError(
					fmt.Sprintf("evaluator in section %q needs both key and class", s.Name))
			}
			evaluator := score.EvaluatorInfo{
				Key:   core.EvaluatorKey(e.Key),
				Class: e.Class,
			}
			for _, sc := range e.Scores {
				dataType, err := score.ParseDataType(sc.Type)
				if err != nil {
					return score.Metadata{}, apperrors.Wrapf(err, "score %q of evaluator %q", sc.Name, e.Key)
				}
				direction, err := score.ParseDirection(sc.DesiredDirection)
				if err != nil {
					return score.Metadata{}, apperrors.Wrapf(err, "score %q of evaluator %q", sc.Name, e.Key)
				}
				evaluator.Scores = append(evaluator.Scores, score.ScoreInfo{
					Name:             sc.Name,
					Key:              sc.Key,
					Type:             dataType,
					DesiredDirection: direction,
				})
			}
			section.Evaluators = append(section.Evaluators, evaluator)
		}
		meta.Sections = append(meta.Sections, section)
	}
	return meta, nil
}
