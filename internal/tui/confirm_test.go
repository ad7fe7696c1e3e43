package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name      string
		typed     string
		final     tea.KeyType
		confirmed bool
	}{
		{name: "yes confirms", typed: "yes", final: tea.KeyEnter, confirmed: true},
		{name: "case insensitive", typed: "YES", final: tea.KeyEnter, confirmed: true},
		{name: "anything else declines", typed: "y", final: tea.KeyEnter},
		{name: "empty answer declines", final: tea.KeyEnter},
		{name: "esc declines even after yes", typed: "yes", final: tea.KeyEsc},
		{name: "ctrl+c declines", typed: "yes", final: tea.KeyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewConfirmModel("Clear ALL data?")
			if tt.typed != "" {
				m = typeText(m, tt.typed)
			}

			m, cmd := m.Update(tea.KeyMsg{Type: tt.final})

			result := m.(ConfirmModel)
			assert.Equal(t, tt.confirmed, result.Confirmed())
			assert.NotNil(t, cmd)
			assert.Empty(t, result.View())
		})
	}
}

func TestConfirmModel_ViewShowsPrompt(t *testing.T) {
	m := NewConfirmModel("Clear ALL data?")

	assert.Contains(t, m.View(), "Clear ALL data?")
}
