package result

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/router"
)

func testResult() *assessment.Result {
	return &assessment.Result{
		ID:             "7d3c1f1e-0000-4000-8000-000000000001",
		Condition:      assessment.ConditionStress,
		Recommendation: "Try short breaks between study blocks.",
		Strategy:       "rules",
		MatchedRule:    "stress",
		Note:           "You are carrying a lot right now.",
		Timestamp:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestResultScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Result" {
		t.Errorf("Title = %q, want %q", s.Title(), "Result")
	}
}

func TestResultScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(80, 24)
	for _, want := range []string{"Stress", "short breaks", "carrying a lot", "rule: stress"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultScreen_NoNote(t *testing.T) {
	res := testResult()
	res.Note = ""
	res.MatchedRule = ""
	view := New(res).View(80, 24)
	if strings.Contains(view, "A note for you") {
		t.Error("note heading should be hidden without a note")
	}
	if strings.Contains(view, "rule:") {
		t.Error("rule should be hidden without a matched rule")
	}
}

func TestResultScreen_Navigation_Enter(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestResultScreen_Navigation_Esc(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestResultScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
