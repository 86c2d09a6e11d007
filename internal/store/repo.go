package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Condition restricts assessment queries to one outcome label.
	Condition string
	// Purpose restricts LLM queries to one request purpose.
	Purpose string
}

// predicates translates the shared filters into ent SQL predicates.
func (o QueryOpts) predicates() []*entsql.Predicate {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", o.From.UTC()))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", o.To.UTC()))
	}
	return preds
}

// AssessmentEventData captures one completed assessment.
type AssessmentEventData struct {
	AssessmentID   string
	Strategy       string
	ContentSet     string
	Condition      string
	MatchedRule    string
	Recommendation string
	Note           string
	Features       assessment.FeatureRecord
	// AssessedAt is when the result was produced; zero means now.
	AssessedAt time.Time
}

// AssessmentEvent is a persisted assessment.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM call.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls sharing a purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ConditionCount is one row of an outcome tally.
type ConditionCount struct {
	Condition string
	Count     int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAssessment records a completed assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error

	// QueryAssessments returns assessments newest first.
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	// GetAssessment returns the assessment with the given ID, or nil if none.
	GetAssessment(ctx context.Context, assessmentID string) (*AssessmentEvent, error)

	// CountByCondition tallies assessments per outcome, largest first.
	CountByCondition(ctx context.Context, opts QueryOpts) ([]ConditionCount, error)

	// PurgeAssessments deletes assessments older than before and reports
	// how many rows were removed.
	PurgeAssessments(ctx context.Context, before time.Time) (int64, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if none.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM usage per request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM usage per serving model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
