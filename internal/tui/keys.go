package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Answer key.Binding
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Answer: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "answer")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) quizHelp() []key.Binding {
	return []key.Binding{k.Answer, k.Up, k.Down, k.Enter, k.Quit}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// answerIndex maps a digit key to a zero-based option index.
func answerIndex(msg tea.KeyMsg) (int, bool) {
	n, err := strconv.Atoi(msg.String())
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
