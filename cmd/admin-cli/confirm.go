package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// confirmDeletion asks the operator to type the account email back
// before anything irreversible happens.
func confirmDeletion(email string) (bool, error) {
	model, err := tea.NewProgram(newConfirmModel(email)).Run()
	if err != nil {
		return false, err
	}

	return model.(confirmModel).confirmed, nil
}

type confirmModel struct {
	email     string
	input     textinput.Model
	confirmed bool
	done      bool
}

func newConfirmModel(email string) confirmModel {
	input := textinput.New()
	input.Placeholder = email
	input.Focus()

	return confirmModel{
		email: email,
		input: input,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.confirmed = m.input.Value() == m.email
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s\n",
		warningStyle.Render("⚠ This permanently deletes the account and all of its quizzes, results and challenges."),
		"Type the account email to confirm:",
		m.input.View(),
		hintStyle.Render("enter to confirm · esc to abort"),
	)
}
