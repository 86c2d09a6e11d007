package forest

import (
	"github.com/abhisek/mindcheck/internal/assessment"
)

// StrategyName identifies the trained classifier in results and configuration.
const StrategyName = "forest"

// Classifier serves predictions from loaded artifacts. The artifacts are
// never written after Load, so one Classifier may be shared by any number of
// goroutines.
type Classifier struct {
	artifacts *Artifacts
}

// NewClassifier wraps loaded artifacts.
func NewClassifier(a *Artifacts) *Classifier {
	return &Classifier{artifacts: a}
}

func (c *Classifier) Name() string { return StrategyName }

// Classify runs Infer against the wrapped artifacts.
func (c *Classifier) Classify(r *assessment.FeatureRecord) (assessment.Condition, error) {
	return Infer(r, c.artifacts)
}

// Infer encodes r, predicts with the forest and decodes the label.
func Infer(r *assessment.FeatureRecord, a *Artifacts) (assessment.Condition, error) {
	x, err := Vector(r, a.Academic)
	if err != nil {
		return "", err
	}
	idx, err := a.Model.Predict(x)
	if err != nil {
		return "", err
	}
	name, err := a.Labels.Decode(idx)
	if err != nil {
		return "", err
	}
	cond := assessment.Condition(name)
	if !cond.Valid() {
		return "", &assessment.SchemaMismatchError{Detail: "decoded label " + name + " is not a known condition"}
	}
	return cond, nil
}

// Vector assembles the feature vector in assessment.FeatureColumns order.
func Vector(r *assessment.FeatureRecord, academic *LabelTable) ([]float64, error) {
	code, err := academic.Encode("academic_performance", string(r.AcademicPerformance))
	if err != nil {
		return nil, err
	}
	return []float64{
		float64(r.SleepHours),
		float64(code),
		boolFeature(r.Bullied),
		boolFeature(r.HasCloseFriends),
		float64(r.HomesickLevel),
		float64(r.MessFoodRating),
		boolFeature(r.SportsParticipation),
		float64(r.SocialActivities),
		float64(r.StudyHours),
		float64(r.ScreenTime),
	}, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
