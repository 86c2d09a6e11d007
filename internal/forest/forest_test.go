package forest

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// Sorted class names, as produced by the training pipeline's label encoder.
var trainedLabels = []string{
	"ADHD", "Adjustment Disorder", "Anxiety", "Bipolar Disorder", "Depression",
	"Eating Disorder", "Normal", "OCD", "PTSD", "Stress",
}

func labelIndex(t *testing.T, c assessment.Condition) int {
	t.Helper()
	for i, l := range trainedLabels {
		if l == string(c) {
			return i
		}
	}
	t.Fatalf("no label %q", c)
	return -1
}

func leafFor(t *testing.T, c assessment.Condition, weight float64) Node {
	v := make([]float64, len(trainedLabels))
	v[labelIndex(t, c)] = weight
	return Node{Feature: -2, Left: leafChild, Right: leafChild, Value: v}
}

// testArtifacts builds a two-tree forest:
//
//	tree 0: sleep_hours <= 5.5 → Depression, else study_hours <= 6.5 → Normal | Stress
//	tree 1: academic(code) <= 1.5 → Normal-leaning, else Anxiety-leaning
func testArtifacts(t *testing.T) *Artifacts {
	t.Helper()
	tree0 := Tree{Nodes: []Node{
		{Feature: 0, Threshold: 5.5, Left: 1, Right: 2},
		leafFor(t, assessment.ConditionDepression, 30),
		{Feature: 8, Threshold: 6.5, Left: 3, Right: 4},
		leafFor(t, assessment.ConditionNormal, 50),
		leafFor(t, assessment.ConditionStress, 20),
	}}

	anxietyLeaning := make([]float64, len(trainedLabels))
	anxietyLeaning[labelIndex(t, assessment.ConditionAnxiety)] = 6
	anxietyLeaning[labelIndex(t, assessment.ConditionNormal)] = 4
	normalLeaning := make([]float64, len(trainedLabels))
	normalLeaning[labelIndex(t, assessment.ConditionNormal)] = 8
	normalLeaning[labelIndex(t, assessment.ConditionStress)] = 2

	tree1 := Tree{Nodes: []Node{
		{Feature: 1, Threshold: 1.5, Left: 1, Right: 2},
		{Feature: -2, Left: leafChild, Right: leafChild, Value: normalLeaning},
		{Feature: -2, Left: leafChild, Right: leafChild, Value: anxietyLeaning},
	}}

	return &Artifacts{
		Model: &Model{
			Format:       "v1.0.0",
			FeatureNames: append([]string(nil), assessment.FeatureColumns...),
			NClasses:     len(trainedLabels),
			Trees:        []Tree{tree0, tree1},
		},
		Academic: &LabelTable{Classes: []string{"Average", "Good", "Poor"}},
		Labels:   &LabelTable{Classes: append([]string(nil), trainedLabels...)},
	}
}

func neutral() *assessment.FeatureRecord {
	return &assessment.FeatureRecord{
		SleepHours:          7,
		AcademicPerformance: assessment.AcademicAverage,
		HasCloseFriends:     true,
		HomesickLevel:       2,
		MessFoodRating:      3,
		SportsParticipation: true,
		SocialActivities:    5,
		StudyHours:          4,
		ScreenTime:          3,
	}
}

func TestInfer(t *testing.T) {
	a := testArtifacts(t)
	require.NoError(t, a.Check())

	tests := []struct {
		name   string
		mutate func(r *assessment.FeatureRecord)
		want   assessment.Condition
	}{
		{"neutral", func(r *assessment.FeatureRecord) {}, assessment.ConditionNormal},
		{"short sleep", func(r *assessment.FeatureRecord) { r.SleepHours = 4 }, assessment.ConditionDepression},
		{"long study", func(r *assessment.FeatureRecord) { r.StudyHours = 8 }, assessment.ConditionStress},
		// Tree 1's Anxiety 0.6 / Normal 0.4 loses to Depression 1.0 from tree 0.
		{"poor grades short sleep", func(r *assessment.FeatureRecord) {
			r.AcademicPerformance = assessment.AcademicPoor
			r.SleepHours = 5
		}, assessment.ConditionDepression},
		// Tree 0 says Normal (1.0), tree 1 says Anxiety 0.6 / Normal 0.4.
		{"poor grades", func(r *assessment.FeatureRecord) {
			r.AcademicPerformance = assessment.AcademicPoor
		}, assessment.ConditionNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := neutral()
			tt.mutate(r)
			got, err := Infer(r, a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInfer_UnknownCategory(t *testing.T) {
	r := neutral()
	r.AcademicPerformance = "Excellent"

	_, err := NewClassifier(testArtifacts(t)).Classify(r)
	require.Error(t, err)

	var uc *assessment.UnknownCategoryError
	require.True(t, errors.As(err, &uc), "got %T", err)
	assert.Equal(t, "Excellent", uc.Value)
	assert.Equal(t, []string{"Average", "Good", "Poor"}, uc.Known)
}

func TestVector_ColumnOrder(t *testing.T) {
	r := &assessment.FeatureRecord{
		SleepHours:          6,
		AcademicPerformance: assessment.AcademicPoor,
		Bullied:             true,
		HasCloseFriends:     false,
		HomesickLevel:       4,
		MessFoodRating:      2,
		SportsParticipation: true,
		SocialActivities:    1,
		StudyHours:          9,
		ScreenTime:          11,
	}
	x, err := Vector(r, &LabelTable{Classes: []string{"Average", "Good", "Poor"}})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 2, 1, 0, 4, 2, 1, 1, 9, 11}, x)
}

func TestPredict_WrongLength(t *testing.T) {
	_, err := testArtifacts(t).Model.Predict([]float64{1, 2, 3})
	var sm *assessment.SchemaMismatchError
	require.ErrorAs(t, err, &sm)
}

func TestPredict_TieGoesToLowestIndex(t *testing.T) {
	m := &Model{
		Format:       "v1.0.0",
		FeatureNames: []string{"a"},
		NClasses:     3,
		Trees: []Tree{
			{Nodes: []Node{{Left: leafChild, Right: leafChild, Value: []float64{0, 0, 5}}}},
			{Nodes: []Node{{Left: leafChild, Right: leafChild, Value: []float64{0, 2, 0}}}},
		},
	}
	require.NoError(t, m.check())
	idx, err := m.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestDecode_OutOfRange(t *testing.T) {
	l := &LabelTable{Classes: []string{"Normal"}}
	_, err := l.Decode(3)
	var sm *assessment.SchemaMismatchError
	assert.ErrorAs(t, err, &sm)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testArtifacts(t).Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.Dir)

	r := neutral()
	r.SleepHours = 3
	got, err := NewClassifier(loaded).Classify(r)
	require.NoError(t, err)
	assert.Equal(t, assessment.ConditionDepression, got)
}

func TestLoad_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testArtifacts(t).Save(dir))
	require.NoError(t, os.Remove(filepath.Join(dir, DecoderFile)))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DecoderFile)
}

func TestLoad_CorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testArtifacts(t).Save(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFile), []byte("{not json"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse "+ModelFile)
}

func TestCheck_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(a *Artifacts)
		wantSchema bool
	}{
		{"unsupported format", func(a *Artifacts) { a.Model.Format = "v2.1.0" }, false},
		{"invalid format", func(a *Artifacts) { a.Model.Format = "latest" }, false},
		{"reordered features", func(a *Artifacts) {
			a.Model.FeatureNames[0], a.Model.FeatureNames[1] = a.Model.FeatureNames[1], a.Model.FeatureNames[0]
		}, true},
		{"decoder size", func(a *Artifacts) { a.Labels.Classes = a.Labels.Classes[:9] }, true},
		{"unknown decoder label", func(a *Artifacts) { a.Labels.Classes[0] = "ADD" }, true},
		{"empty encoder", func(a *Artifacts) { a.Academic.Classes = nil }, true},
		{"no trees", func(a *Artifacts) { a.Model.Trees = nil }, true},
		{"child out of range", func(a *Artifacts) { a.Model.Trees[0].Nodes[0].Right = 99 }, true},
		{"backward child", func(a *Artifacts) { a.Model.Trees[0].Nodes[2].Left = 0 }, true},
		{"split feature out of range", func(a *Artifacts) { a.Model.Trees[1].Nodes[0].Feature = 10 }, true},
		{"short leaf", func(a *Artifacts) { a.Model.Trees[0].Nodes[1].Value = []float64{1} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArtifacts(t)
			tt.mutate(a)
			err := a.Check()
			require.Error(t, err)
			var sm *assessment.SchemaMismatchError
			assert.Equal(t, tt.wantSchema, errors.As(err, &sm), "error: %v", err)
		})
	}
}

func TestClassifier_ConcurrentReads(t *testing.T) {
	c := NewClassifier(testArtifacts(t))
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(sleep int) {
			defer wg.Done()
			r := neutral()
			r.SleepHours = sleep
			for range 200 {
				got, err := c.Classify(r)
				assert.NoError(t, err)
				if sleep <= 5 {
					assert.Equal(t, assessment.ConditionDepression, got)
				} else {
					assert.Equal(t, assessment.ConditionNormal, got)
				}
			}
		}(2 + i%10)
	}
	wg.Wait()
	assert.Equal(t, StrategyName, c.Name())
}
