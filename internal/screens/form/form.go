package form

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Assessor classifies a completed questionnaire.
type Assessor interface {
	Assess(ctx context.Context, rec *assessment.FeatureRecord) (*assessment.Result, error)
}

type assessedMsg struct {
	Result *assessment.Result
	Err    error
}

// FormScreen walks the user through the questionnaire one item at a time.
type FormScreen struct {
	assessor  Assessor
	questions []assessment.Question
	idx       int
	rec       assessment.FeatureRecord
	input     components.NumberInput
	choice    components.Choice
	errMsg    string
	pending   bool
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates a questionnaire screen that submits to a.
func New(a Assessor) *FormScreen {
	f := &FormScreen{
		assessor:  a,
		questions: assessment.Questions,
	}
	f.prepare()
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	return f.input.Init()
}

func (f *FormScreen) Title() string {
	return "Assessment"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	if f.current().Kind == assessment.KindInt {
		return []layout.KeyHint{
			{Key: "0-9", Description: "Answer"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (f *FormScreen) current() assessment.Question {
	return f.questions[f.idx]
}

// prepare resets the input widgets for the current question.
func (f *FormScreen) prepare() {
	q := f.current()
	switch q.Kind {
	case assessment.KindInt:
		f.input = components.NewNumberInput(q.Min, q.Max)
	case assessment.KindBool:
		f.choice = components.NewChoice(q.Text, []string{"No", "Yes"})
	case assessment.KindAcademic:
		opts := assessment.AcademicOptions()
		labels := make([]string, len(opts))
		for i, o := range opts {
			labels[i] = o.String()
		}
		f.choice = components.NewChoice(q.Text, labels)
	}
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case assessedMsg:
		f.pending = false
		if msg.Err != nil {
			f.errMsg = msg.Err.Error()
			return f, nil
		}
		return f, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: result.New(msg.Result)}
		}

	case tea.KeyMsg:
		if f.pending {
			return f, nil
		}
		return f.handleKey(msg)
	}

	return f, nil
}

func (f *FormScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := f.current()

	if q.Kind == assessment.KindInt {
		if msg.String() != "enter" {
			var cmd tea.Cmd
			f.input, cmd = f.input.Update(msg)
			return f, cmd
		}
		n, err := f.input.Parse()
		if err != nil {
			f.errMsg = fmt.Sprintf("Please enter a number between %d and %d.", q.Min, q.Max)
			return f, nil
		}
		if err := f.rec.SetInt(q.Field, n); err != nil {
			f.errMsg = err.Error()
			return f, nil
		}
		return f, f.advance()
	}

	f.choice, _ = f.choice.Update(msg)
	if !f.choice.Submitted {
		return f, nil
	}
	v := f.choice.Value()
	if q.Kind == assessment.KindAcademic {
		f.rec.AcademicPerformance = assessment.AcademicOptions()[v]
	} else if err := f.rec.SetBool(q.Field, v == 1); err != nil {
		f.errMsg = err.Error()
		return f, nil
	}
	return f, f.advance()
}

// advance moves to the next question, or submits once the last one is answered.
func (f *FormScreen) advance() tea.Cmd {
	f.errMsg = ""
	if f.idx < len(f.questions)-1 {
		f.idx++
		f.prepare()
		if f.current().Kind == assessment.KindInt {
			return f.input.Init()
		}
		return nil
	}

	f.pending = true
	rec := f.rec
	a := f.assessor
	return func() tea.Msg {
		res, err := a.Assess(context.Background(), &rec)
		return assessedMsg{Result: res, Err: err}
	}
}

// Record returns the answers collected so far.
func (f *FormScreen) Record() assessment.FeatureRecord {
	return f.rec
}

func (f *FormScreen) View(width, height int) string {
	cw := width - 8
	if cw > 72 {
		cw = 72
	}

	var b strings.Builder
	b.WriteString("\n")

	label := fmt.Sprintf("Question %d of %d", f.idx+1, len(f.questions))
	b.WriteString(components.StepBar(label, f.idx, len(f.questions), cw))
	b.WriteString("\n\n")

	q := f.current()
	if q.Kind == assessment.KindInt {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
		b.WriteString("\n\n")
		b.WriteString(f.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(f.choice.View())
	}

	switch {
	case f.pending:
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Assessing..."))
	case f.errMsg != "":
		b.WriteString("\n" + theme.Warning.Render(f.errMsg))
	}

	card := theme.Card.Width(cw + 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
