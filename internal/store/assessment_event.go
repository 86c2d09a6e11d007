package store

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	db      *sql.DB
	dialect string
	seq     *sequenceCounter
}

var assessmentColumns = []string{
	"id", "sequence", "timestamp", "assessment_id", "strategy", "content_set",
	"condition", "matched_rule", "recommendation", "note", "features",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	features, err := json.Marshal(data.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}

	at := data.AssessedAt
	if at.IsZero() {
		at = time.Now()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(tableAssessmentEvents).
		Columns(assessmentColumns[1:]...).
		Values(
			seqNum, at.UTC(), data.AssessmentID, data.Strategy, data.ContentSet,
			data.Condition, data.MatchedRule, data.Recommendation, data.Note, string(features),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	sel := entsql.Dialect(r.dialect).
		Select(assessmentColumns...).
		From(entsql.Table(tableAssessmentEvents))
	for _, p := range opts.predicates() {
		sel.Where(p)
	}
	if opts.Condition != "" {
		sel.Where(entsql.EQ("condition", opts.Condition))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var events []AssessmentEvent
	for rows.Next() {
		e, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessment events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetAssessment(ctx context.Context, assessmentID string) (*AssessmentEvent, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(assessmentColumns...).
		From(entsql.Table(tableAssessmentEvents)).
		Where(entsql.EQ("assessment_id", assessmentID)).
		Limit(1).
		Query()

	e, err := scanAssessment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepo) CountByCondition(ctx context.Context, opts QueryOpts) ([]ConditionCount, error) {
	sel := entsql.Dialect(r.dialect).
		Select("condition", entsql.Count("*")).
		From(entsql.Table(tableAssessmentEvents))
	for _, p := range opts.predicates() {
		sel.Where(p)
	}
	sel.GroupBy("condition")

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count assessment events: %w", err)
	}
	defer rows.Close()

	var counts []ConditionCount
	for rows.Next() {
		var c ConditionCount
		if err := rows.Scan(&c.Condition, &c.Count); err != nil {
			return nil, fmt.Errorf("scan condition count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate condition counts: %w", err)
	}

	slices.SortFunc(counts, func(a, b ConditionCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Condition, b.Condition)
	})
	return counts, nil
}

func (r *eventRepo) PurgeAssessments(ctx context.Context, before time.Time) (int64, error) {
	query, args := entsql.Dialect(r.dialect).
		Delete(tableAssessmentEvents).
		Where(entsql.LT("timestamp", before.UTC())).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge assessment events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge assessment events: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s rowScanner) (*AssessmentEvent, error) {
	var (
		e        AssessmentEvent
		features []byte
	)
	err := s.Scan(
		&e.ID, &e.Sequence, &e.Timestamp, &e.AssessmentID, &e.Strategy, &e.ContentSet,
		&e.Condition, &e.MatchedRule, &e.Recommendation, &e.Note, &features,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment event: %w", err)
	}
	if err := json.Unmarshal(features, &e.Features); err != nil {
		return nil, fmt.Errorf("decode features for %s: %w", e.AssessmentID, err)
	}
	e.AssessedAt = e.Timestamp
	return &e, nil
}
