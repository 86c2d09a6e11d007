package assessor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/forest"
	"github.com/abhisek/mindcheck/internal/rules"
	"github.com/abhisek/mindcheck/internal/store"
)

func stressed() *assessment.FeatureRecord {
	return &assessment.FeatureRecord{
		SleepHours:          6,
		AcademicPerformance: assessment.AcademicAverage,
		HasCloseFriends:     true,
		HomesickLevel:       2,
		MessFoodRating:      3,
		SportsParticipation: true,
		SocialActivities:    3,
		StudyHours:          8,
		ScreenTime:          4,
	}
}

func clinical(t *testing.T) *advice.Table {
	t.Helper()
	tbl, err := advice.Lookup(advice.SetClinical)
	require.NoError(t, err)
	return tbl
}

type fakeStrategy struct {
	cond assessment.Condition
	err  error
}

func (f *fakeStrategy) Name() string { return "fake" }

func (f *fakeStrategy) Classify(*assessment.FeatureRecord) (assessment.Condition, error) {
	return f.cond, f.err
}

type fakeNoter struct {
	note string
	err  error
}

func (f *fakeNoter) Note(context.Context, *assessment.FeatureRecord, assessment.Condition, string) (string, error) {
	return f.note, f.err
}

type memRecorder struct {
	mu     sync.Mutex
	events []store.AssessmentEventData
	err    error
}

func (m *memRecorder) AppendAssessment(_ context.Context, data store.AssessmentEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, data)
	return nil
}

func TestAssess_RulesStrategy(t *testing.T) {
	rec := &memRecorder{}
	svc := NewService(rules.NewEngine(), clinical(t), WithRecorder(rec))

	res, err := svc.Assess(context.Background(), stressed())
	require.NoError(t, err)

	assert.Equal(t, assessment.ConditionStress, res.Condition)
	assert.Equal(t, clinical(t).Recommend(assessment.ConditionStress), res.Recommendation)
	assert.Equal(t, rules.StrategyName, res.Strategy)
	assert.Equal(t, "stress", res.MatchedRule)
	assert.NotEmpty(t, res.ID)
	assert.False(t, res.Timestamp.IsZero())

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, res.ID, ev.AssessmentID)
	assert.Equal(t, advice.SetClinical, ev.ContentSet)
	assert.Equal(t, "Stress", ev.Condition)
	assert.Equal(t, *stressed(), ev.Features)
}

func TestAssess_ValidationError(t *testing.T) {
	rec := &memRecorder{}
	svc := NewService(rules.NewEngine(), clinical(t), WithRecorder(rec))

	bad := stressed()
	bad.SleepHours = 20
	_, err := svc.Assess(context.Background(), bad)

	var verr *assessment.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, rec.events)
}

func TestAssess_SchemaMismatchLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	strategy := &fakeStrategy{err: &assessment.SchemaMismatchError{Detail: "vector length 9, want 10"}}
	svc := NewService(strategy, clinical(t), WithLogger(zap.New(core)))

	_, err := svc.Assess(context.Background(), stressed())

	var mismatch *assessment.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, logs.Len())
}

func TestAssess_UnknownCategoryPassesThrough(t *testing.T) {
	strategy := &fakeStrategy{err: &assessment.UnknownCategoryError{Field: "academic_performance", Value: "Excellent"}}
	svc := NewService(strategy, clinical(t))

	_, err := svc.Assess(context.Background(), stressed())

	var unknown *assessment.UnknownCategoryError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Excellent", unknown.Value)
}

func TestAssess_CoachNote(t *testing.T) {
	svc := NewService(&fakeStrategy{cond: assessment.ConditionNormal}, clinical(t),
		WithCoach(&fakeNoter{note: "Keep it up."}))

	res, err := svc.Assess(context.Background(), stressed())
	require.NoError(t, err)
	assert.Equal(t, "Keep it up.", res.Note)
	assert.Empty(t, res.MatchedRule)
}

func TestAssess_CollaboratorFailuresDoNotFail(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewService(&fakeStrategy{cond: assessment.ConditionNormal}, clinical(t),
		WithCoach(&fakeNoter{err: errors.New("provider down")}),
		WithRecorder(&memRecorder{err: errors.New("disk full")}),
		WithLogger(zap.New(core)),
	)

	res, err := svc.Assess(context.Background(), stressed())
	require.NoError(t, err)
	assert.Equal(t, assessment.ConditionNormal, res.Condition)
	assert.Empty(t, res.Note)
	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestAssess_RecordsToStore(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	svc := NewService(rules.NewEngine(), clinical(t), WithRecorder(s.EventRepo()))
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	res, err := svc.Assess(context.Background(), stressed())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), res.Timestamp)

	got, err := s.EventRepo().GetAssessment(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "stress", got.MatchedRule)
	assert.True(t, res.Timestamp.Equal(got.Timestamp), "stored %v, returned %v", got.Timestamp, res.Timestamp)
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy(rules.StrategyName, "")
	require.NoError(t, err)
	assert.Equal(t, rules.StrategyName, s.Name())

	_, err = NewStrategy("neural", "")
	assert.Error(t, err)

	_, err = NewStrategy(forest.StrategyName, filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestNewStrategy_ForestFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, constantForest(assessment.ConditionAnxiety).Save(dir))

	s, err := NewStrategy(forest.StrategyName, dir)
	require.NoError(t, err)
	assert.Equal(t, forest.StrategyName, s.Name())

	svc := NewService(s, clinical(t))
	res, err := svc.Assess(context.Background(), stressed())
	require.NoError(t, err)
	assert.Equal(t, assessment.ConditionAnxiety, res.Condition)
	assert.Empty(t, res.MatchedRule)

	bad := stressed()
	bad.AcademicPerformance = "Excellent"
	_, err = svc.Assess(context.Background(), bad)
	var unknown *assessment.UnknownCategoryError
	assert.True(t, errors.As(err, &unknown))
}

// constantForest is a one-leaf forest that always predicts cond.
func constantForest(cond assessment.Condition) *forest.Artifacts {
	labels := make([]string, 0, 10)
	for _, c := range assessment.AllConditions() {
		labels = append(labels, string(c))
	}
	value := make([]float64, len(labels))
	for i, l := range labels {
		if l == string(cond) {
			value[i] = 1
		}
	}
	return &forest.Artifacts{
		Model: &forest.Model{
			Format:       "v1.0.0",
			FeatureNames: append([]string(nil), assessment.FeatureColumns...),
			NClasses:     len(labels),
			Trees: []forest.Tree{{Nodes: []forest.Node{
				{Feature: -2, Left: -1, Right: -1, Value: value},
			}}},
		},
		Academic: &forest.LabelTable{Classes: []string{"Average", "Good", "Poor"}},
		Labels:   &forest.LabelTable{Classes: labels},
	}
}
