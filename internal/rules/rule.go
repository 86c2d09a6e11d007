package rules

import "github.com/abhisek/mindcheck/internal/assessment"

// Rule is one predicate in the screening cascade.
type Rule interface {
	Name() string
	Condition() assessment.Condition
	Match(r *assessment.FeatureRecord) bool
}

// predicateRule adapts a plain function into a Rule.
type predicateRule struct {
	name      string
	condition assessment.Condition
	match     func(r *assessment.FeatureRecord) bool
}

func (p *predicateRule) Name() string { return p.name }
func (p *predicateRule) Condition() assessment.Condition { return p.condition }
func (p *predicateRule) Match(r *assessment.FeatureRecord) bool { return p.match(r) }

// DefaultRules returns the cascade in priority order. Conditions with the
// most specific signatures come first, so a record matching several
// predicates is labelled by the earliest one.
func DefaultRules() []Rule {
	return []Rule{
		&predicateRule{name: "depression", condition: assessment.ConditionDepression, match: depression},
		&predicateRule{name: "anxiety", condition: assessment.ConditionAnxiety, match: anxiety},
		&predicateRule{name: "stress", condition: assessment.ConditionStress, match: stress},
		&predicateRule{name: "adhd", condition: assessment.ConditionADHD, match: adhd},
		&predicateRule{name: "ptsd", condition: assessment.ConditionPTSD, match: ptsd},
		&predicateRule{name: "ocd", condition: assessment.ConditionOCD, match: ocd},
		&predicateRule{name: "bipolar", condition: assessment.ConditionBipolar, match: bipolar},
		&predicateRule{name: "eating-disorder", condition: assessment.ConditionEatingDisorder, match: eatingDisorder},
		&predicateRule{name: "adjustment-disorder", condition: assessment.ConditionAdjustmentDisorder, match: adjustmentDisorder},
	}
}

// Evaluate walks rules in order and returns the first match.
// Returns (Normal, "") when no rule applies.
func Evaluate(rules []Rule, r *assessment.FeatureRecord) (assessment.Condition, string) {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule.Condition(), rule.Name()
		}
	}
	return assessment.ConditionNormal, ""
}
