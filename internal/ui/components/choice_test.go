package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceNavigation(t *testing.T) {
	c := NewChoice("Do you have close friends?", []string{"No", "Yes"})
	assert.Equal(t, -1, c.Value())

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, c.Selected)

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, c.Selected, "selection stays on the last option")

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, c.Selected)

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, c.Submitted)
	assert.Equal(t, 0, c.Value())

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, c.Value(), "submitted choice ignores input")
}

func TestChoiceDigitSelect(t *testing.T) {
	c := NewChoice("Academic performance", []string{"Poor", "Average", "Good"})

	c, _ = c.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Equal(t, 2, c.Selected)

	c, _ = c.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	assert.Equal(t, 2, c.Selected, "out of range digit is ignored")
}

func TestChoiceView(t *testing.T) {
	c := NewChoice("Academic performance", []string{"Poor", "Average", "Good"})
	v := c.View()
	assert.True(t, strings.Contains(v, "Academic performance"))
	assert.True(t, strings.Contains(v, "1)  Average"))
}

func TestMenuSkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd {
			called = true
			return nil
		}},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	_, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, called)
}

func TestStepBar(t *testing.T) {
	assert.Contains(t, StepBar("Question 3 of 10", 2, 10, 60), "2/10")
	assert.Contains(t, StepBar("", 15, 10, 20), "10/10")
	assert.Contains(t, StepBar("", -1, 0, 4), "0/0")
}

func TestNumberInput(t *testing.T) {
	n := NewNumberInput(0, 12)
	for _, r := range "1a2" {
		n, _ = n.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "12", n.Value())

	v, err := n.Parse()
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	n, _ = n.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	n, _ = n.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	_, err = n.Parse()
	assert.Error(t, err)
	assert.Contains(t, n.View(), "✗")
}
