package forest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/mod/semver"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// Artifact file names inside a model directory.
const (
	ModelFile   = "model.json"
	EncoderFile = "academic_encoder.json"
	DecoderFile = "condition_decoder.json"
)

// SupportedFormat is the artifact format major version this build reads.
const SupportedFormat = "v1"

// Artifacts bundles the forest with its two encoding tables.
type Artifacts struct {
	Model    *Model
	Academic *LabelTable
	Labels   *LabelTable
	Dir      string
}

// Load reads and cross-checks the three artifacts in dir. Any failure here is
// meant to stop the process before it serves requests.
func Load(dir string) (*Artifacts, error) {
	var a Artifacts
	a.Dir = dir

	a.Model = &Model{}
	if err := readJSON(filepath.Join(dir, ModelFile), a.Model); err != nil {
		return nil, err
	}
	a.Academic = &LabelTable{}
	if err := readJSON(filepath.Join(dir, EncoderFile), a.Academic); err != nil {
		return nil, err
	}
	a.Labels = &LabelTable{}
	if err := readJSON(filepath.Join(dir, DecoderFile), a.Labels); err != nil {
		return nil, err
	}

	if err := a.Check(); err != nil {
		return nil, fmt.Errorf("model artifacts in %s: %w", dir, err)
	}
	return &a, nil
}

// Check validates format version, feature order, class counts and that
// every decodable label is a known condition.
func (a *Artifacts) Check() error {
	if !semver.IsValid(a.Model.Format) {
		return fmt.Errorf("model format %q is not a semantic version", a.Model.Format)
	}
	if major := semver.Major(a.Model.Format); major != SupportedFormat {
		return fmt.Errorf("model format %s not supported (want %s.x)", a.Model.Format, SupportedFormat)
	}
	if !slices.Equal(a.Model.FeatureNames, assessment.FeatureColumns) {
		return &assessment.SchemaMismatchError{
			Detail: fmt.Sprintf("model features %v, want %v", a.Model.FeatureNames, assessment.FeatureColumns),
		}
	}
	if len(a.Labels.Classes) != a.Model.NClasses {
		return &assessment.SchemaMismatchError{
			Detail: fmt.Sprintf("decoder has %d labels, model has %d classes", len(a.Labels.Classes), a.Model.NClasses),
		}
	}
	for _, name := range a.Labels.Classes {
		if !assessment.Condition(name).Valid() {
			return &assessment.SchemaMismatchError{Detail: fmt.Sprintf("decoder label %q is not a known condition", name)}
		}
	}
	if len(a.Academic.Classes) == 0 {
		return &assessment.SchemaMismatchError{Detail: "academic encoder has no classes"}
	}
	return a.Model.check()
}

// Save writes the artifacts into dir, creating it if needed.
func (a *Artifacts) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	files := map[string]any{
		ModelFile:   a.Model,
		EncoderFile: a.Academic,
		DecoderFile: a.Labels,
	}
	for name, v := range files {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
