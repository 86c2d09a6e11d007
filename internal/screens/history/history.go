package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// pageSize caps how many past assessments the screen loads.
const pageSize = 50

// Reader is the slice of the event store this screen needs.
type Reader interface {
	QueryAssessments(ctx context.Context, opts store.QueryOpts) ([]store.AssessmentEvent, error)
}

type historyLoadedMsg struct {
	Events []store.AssessmentEvent
	Err    error
}

// HistoryScreen lists recent assessments; Enter expands one to show its answers.
type HistoryScreen struct {
	reader   Reader
	events   []store.AssessmentEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(reader Reader) *HistoryScreen {
	return &HistoryScreen{
		reader:   reader,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.reader.QueryAssessments(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-20s  %s",
			prefix, ev.Timestamp.Local().Format("Jan 02, 2006 15:04"), ev.Condition, ev.Strategy)

		style := lipgloss.NewStyle().Foreground(conditionColor(ev.Condition))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range details(ev) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func details(ev store.AssessmentEvent) []string {
	f := ev.Features
	lines := []string{
		fmt.Sprintf("    sleep %dh  study %dh  screen %dh  academic %s",
			f.SleepHours, f.StudyHours, f.ScreenTime, f.AcademicPerformance),
		fmt.Sprintf("    bullied %s  close friends %s  sports %s",
			yesNo(f.Bullied), yesNo(f.HasCloseFriends), yesNo(f.SportsParticipation)),
		fmt.Sprintf("    homesick %d/5  mess food %d/5  social %d/5",
			f.HomesickLevel, f.MessFoodRating, f.SocialActivities),
	}
	if ev.Note != "" {
		lines = append(lines, "    note: "+ev.Note)
	}
	return lines
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func conditionColor(c string) color.Color {
	switch assessment.Condition(c) {
	case assessment.ConditionNormal:
		return theme.Success
	case assessment.ConditionStress, assessment.ConditionAnxiety:
		return theme.Accent
	default:
		return theme.Text
	}
}
