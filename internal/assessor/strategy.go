package assessor

import (
	"fmt"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/forest"
	"github.com/abhisek/mindcheck/internal/rules"
)

// Strategy maps a validated record to exactly one condition label.
type Strategy interface {
	Name() string
	Classify(r *assessment.FeatureRecord) (assessment.Condition, error)
}

// explainer is implemented by strategies that can name the rule that fired.
type explainer interface {
	Explain(r *assessment.FeatureRecord) (assessment.Condition, string)
}

// NewStrategy builds the named strategy. The forest strategy loads its
// artifacts from modelDir and fails if any are missing or inconsistent.
func NewStrategy(name, modelDir string) (Strategy, error) {
	switch name {
	case rules.StrategyName:
		return rules.NewEngine(), nil
	case forest.StrategyName:
		a, err := forest.Load(modelDir)
		if err != nil {
			return nil, fmt.Errorf("load forest artifacts: %w", err)
		}
		return forest.NewClassifier(a), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (expected %s or %s)", name, rules.StrategyName, forest.StrategyName)
	}
}
