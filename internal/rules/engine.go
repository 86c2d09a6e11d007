package rules

import "github.com/abhisek/mindcheck/internal/assessment"

// StrategyName identifies the rule cascade in results and configuration.
const StrategyName = "rules"

// Engine classifies records with a fixed rule cascade. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the default cascade.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

func (e *Engine) Name() string { return StrategyName }

// Classify returns the label for r. It never fails for a validated record.
func (e *Engine) Classify(r *assessment.FeatureRecord) (assessment.Condition, error) {
	cond, _ := Evaluate(e.rules, r)
	return cond, nil
}

// Explain returns the label together with the name of the rule that fired,
// or an empty name when the Normal default applied.
func (e *Engine) Explain(r *assessment.FeatureRecord) (assessment.Condition, string) {
	return Evaluate(e.rules, r)
}
