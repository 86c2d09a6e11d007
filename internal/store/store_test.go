package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	"github.com/DATA-DOG/go-sqlmock"

	"github.com/abhisek/mindcheck/internal/assessment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAssessment(id, condition string) AssessmentEventData {
	return AssessmentEventData{
		AssessmentID:   id,
		Strategy:       "rules",
		ContentSet:     "clinical",
		Condition:      condition,
		MatchedRule:    "stress",
		Recommendation: "Take breaks.",
		Features: assessment.FeatureRecord{
			SleepHours:          7,
			AcademicPerformance: assessment.AcademicGood,
			HasCloseFriends:     true,
			HomesickLevel:       2,
			MessFoodRating:      3,
			SocialActivities:    3,
			StudyHours:          8,
			ScreenTime:          4,
		},
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Dialect() != dialect.SQLite {
		t.Errorf("dialect = %q, want %q", s.Dialect(), dialect.SQLite)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{tableAssessmentEvents, tableLLMRequestEvents, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendAssessment(ctx, sampleAssessment("a-1", "Stress")); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendAssessment(ctx, sampleAssessment("a-2", "Normal")); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	events, err := s.EventRepo().QueryAssessments(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Sequence != 2 || events[1].Sequence != 1 {
		t.Errorf("sequences = %d,%d, want 2,1", events[0].Sequence, events[1].Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAssessmentAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := sampleAssessment("abc-123", "Stress")
	data.Note = "Try a short walk."
	if err := repo.AppendAssessment(ctx, data); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.GetAssessment(ctx, "abc-123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected assessment, got nil")
	}
	if got.Condition != "Stress" || got.Strategy != "rules" || got.ContentSet != "clinical" {
		t.Errorf("unexpected row: %+v", got.AssessmentEventData)
	}
	if got.Note != "Try a short walk." {
		t.Errorf("note = %q", got.Note)
	}
	if got.Features != data.Features {
		t.Errorf("features = %+v, want %+v", got.Features, data.Features)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	missing, err := repo.GetAssessment(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing assessment, got %+v", missing)
	}
}

func TestQueryAssessmentsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	conds := []string{"Stress", "Normal", "Stress", "Anxiety", "Normal"}
	for i, c := range conds {
		if err := repo.AppendAssessment(ctx, sampleAssessment(string(rune('a'+i)), c)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryAssessments(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d, want 5", len(all))
	}
	if all[0].AssessmentID != "e" {
		t.Errorf("newest = %q, want e", all[0].AssessmentID)
	}

	limited, err := repo.QueryAssessments(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit: got %d, want 2", len(limited))
	}

	stress, err := repo.QueryAssessments(ctx, QueryOpts{Condition: "Stress"})
	if err != nil {
		t.Fatalf("query condition: %v", err)
	}
	if len(stress) != 2 {
		t.Errorf("condition filter: got %d, want 2", len(stress))
	}

	window, err := repo.QueryAssessments(ctx, QueryOpts{After: 1, Before: 4})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(window) != 2 {
		t.Errorf("sequence window: got %d, want 2", len(window))
	}

	future, err := repo.QueryAssessments(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future window: got %d, want 0", len(future))
	}
}

func TestCountByCondition(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, c := range []string{"Normal", "Stress", "Normal", "Anxiety", "Normal", "Stress"} {
		if err := repo.AppendAssessment(ctx, sampleAssessment(string(rune('a'+i)), c)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	counts, err := repo.CountByCondition(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	want := []ConditionCount{{"Normal", 3}, {"Stress", 2}, {"Anxiety", 1}}
	if len(counts) != len(want) {
		t.Fatalf("got %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %v, want %v", i, counts[i], want[i])
		}
	}
}

func TestPurgeAssessments(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.AppendAssessment(ctx, sampleAssessment(string(rune('a'+i)), "Normal")); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	n, err := repo.PurgeAssessments(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("purge past: %v", err)
	}
	if n != 0 {
		t.Errorf("purged %d rows older than an hour ago, want 0", n)
	}

	n, err = repo.PurgeAssessments(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("purge all: %v", err)
	}
	if n != 3 {
		t.Errorf("purged %d, want 3", n)
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"coach-note", "probe", "coach-note"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			InputTokens:  100,
			OutputTokens: 20,
			LatencyMs:    42,
			Success:      true,
			RequestBody:  `{"q":1}`,
			ResponseBody: `{"a":2}`,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "coach-note"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d coach events, want 2", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if !e.Success || e.InputTokens != 100 || e.LatencyMs != 42 || e.ResponseBody != `{"a":2}` {
		t.Errorf("unexpected event: %+v", e.LLMRequestEventData)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "coach-note", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "coach-note", InputTokens: 30, OutputTokens: 15, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "probe", InputTokens: 1, OutputTokens: 1, LatencyMs: 50, Success: false},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	coach := byPurpose[0]
	if coach.Key != "coach-note" || coach.Calls != 2 || coach.InputTokens != 40 || coach.OutputTokens != 20 || coach.AvgLatencyMs != 200 {
		t.Errorf("coach usage = %+v", coach)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Key != "m2" || byModel[1].Calls != 1 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestAppendAssessmentSequenceError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE global_sequence").WillReturnError(errors.New("disk I/O error"))

	repo := &eventRepo{db: db, dialect: dialect.SQLite, seq: &sequenceCounter{db: db}}
	err = repo.AppendAssessment(context.Background(), sampleAssessment("x", "Normal"))
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAppendAssessmentInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE global_sequence").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))
	mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("constraint failed"))

	repo := &eventRepo{db: db, dialect: dialect.SQLite, seq: &sequenceCounter{db: db}}
	err = repo.AppendAssessment(context.Background(), sampleAssessment("x", "Normal"))
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("MINDCHECK_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINDCHECK_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "mindcheck", "history.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestAppendAssessmentKeepsResultTime(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	at := time.Date(2025, 11, 3, 8, 15, 0, 0, time.FixedZone("IST", 5*3600+1800))
	data := sampleAssessment("timed", "Stress")
	data.AssessedAt = at
	if err := repo.AppendAssessment(ctx, data); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.GetAssessment(ctx, "timed")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, at)
	}
	if !got.AssessedAt.Equal(at) {
		t.Errorf("assessed at = %v, want %v", got.AssessedAt, at)
	}
}
