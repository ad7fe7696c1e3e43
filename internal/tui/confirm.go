package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmWord must be typed exactly (case-insensitive) to confirm.
const confirmWord = "yes"

// ConfirmModel asks the operator to type "yes" before a destructive command.
// Enter with any other answer, esc or ctrl+c declines.
type ConfirmModel struct {
	prompt    string
	input     textinput.Model
	confirmed bool
	done      bool
}

func NewConfirmModel(prompt string) ConfirmModel {
	input := textinput.New()
	input.Placeholder = confirmWord
	input.CharLimit = 16
	input.Width = 20
	input.Focus()

	return ConfirmModel{prompt: prompt, input: input}
}

func (m ConfirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.enter):
			m.confirmed = strings.EqualFold(strings.TrimSpace(m.input.Value()), confirmWord)
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	content := warnStyle.Render(m.prompt) + "\n\n" +
		m.input.View() + "\n\n" +
		helpStyle.Render(`type "yes" and press enter to confirm, esc to cancel`)
	return overlayBoxStyle.Render(content)
}

// Confirmed reports whether the operator typed the confirmation word.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Confirm runs the prompt on the given terminal streams and reports the
// answer.
func Confirm(prompt string, in io.Reader, out io.Writer) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(prompt), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, err
	}

	result, ok := final.(ConfirmModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.Confirmed(), nil
}
