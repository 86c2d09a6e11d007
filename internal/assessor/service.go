package assessor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/store"
)

// Noter writes an optional personalised note for an outcome.
type Noter interface {
	Note(ctx context.Context, rec *assessment.FeatureRecord, cond assessment.Condition, recommendation string) (string, error)
}

// Recorder persists completed assessments.
type Recorder interface {
	AppendAssessment(ctx context.Context, data store.AssessmentEventData) error
}

// Service runs one assessment end to end: validate, classify, look up the
// recommendation, then optionally add a coach note and record history.
// It is safe for concurrent use when its strategy and collaborators are.
type Service struct {
	strategy Strategy
	table    *advice.Table
	coach    Noter
	recorder Recorder
	log      *zap.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCoach attaches a note writer.
func WithCoach(n Noter) Option {
	return func(s *Service) { s.coach = n }
}

// WithRecorder attaches a history recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates an assessment service.
func NewService(strategy Strategy, table *advice.Table, opts ...Option) *Service {
	s := &Service{
		strategy: strategy,
		table:    table,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StrategyName reports the active decision strategy.
func (s *Service) StrategyName() string { return s.strategy.Name() }

// Advice returns the active content set.
func (s *Service) Advice() *advice.Table { return s.table }

// Assess validates rec, classifies it and attaches the recommendation.
// Validation and classification errors are returned unchanged so callers
// can match them with errors.As. Note and history failures are logged and
// never fail the assessment.
func (s *Service) Assess(ctx context.Context, rec *assessment.FeatureRecord) (*assessment.Result, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	var (
		cond assessment.Condition
		rule string
		err  error
	)
	if ex, ok := s.strategy.(explainer); ok {
		cond, rule = ex.Explain(rec)
	} else {
		cond, err = s.strategy.Classify(rec)
	}
	if err != nil {
		var mismatch *assessment.SchemaMismatchError
		if errors.As(err, &mismatch) {
			s.log.Error("model artifacts do not match the feature schema",
				zap.String("strategy", s.strategy.Name()), zap.Error(err))
		}
		return nil, err
	}

	res := &assessment.Result{
		ID:             uuid.NewString(),
		Condition:      cond,
		Recommendation: s.table.Recommend(cond),
		Strategy:       s.strategy.Name(),
		MatchedRule:    rule,
		Timestamp:      s.now().UTC(),
	}

	if s.coach != nil {
		note, err := s.coach.Note(ctx, rec, cond, res.Recommendation)
		if err != nil {
			s.log.Warn("coach note unavailable", zap.String("assessment_id", res.ID), zap.Error(err))
		} else {
			res.Note = note
		}
	}

	if s.recorder != nil {
		err := s.recorder.AppendAssessment(ctx, store.AssessmentEventData{
			AssessmentID:   res.ID,
			Strategy:       res.Strategy,
			ContentSet:     s.table.Name(),
			Condition:      string(res.Condition),
			MatchedRule:    res.MatchedRule,
			Recommendation: res.Recommendation,
			Note:           res.Note,
			Features:       *rec,
			AssessedAt:     res.Timestamp,
		})
		if err != nil {
			s.log.Warn("failed to record assessment", zap.String("assessment_id", res.ID), zap.Error(err))
		}
	}

	s.log.Info("assessment complete",
		zap.String("assessment_id", res.ID),
		zap.String("strategy", res.Strategy),
		zap.String("condition", string(res.Condition)),
		zap.String("rule", res.MatchedRule),
	)
	return res, nil
}
