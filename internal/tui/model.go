// Package tui renders a quiz session in the terminal.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"apple-quiz/internal/domain"
)

// Session is the part of a quiz session the UI drives.
type Session interface {
	Start()
	SubmitAnswer(selected int) (domain.Feedback, bool)
	Snapshot() domain.Snapshot
	Close()
}

// EventMsg carries a session event into the program.
type EventMsg domain.Event

// Model hosts one quiz session. It never changes session state directly: it
// forwards input to the session and renders the latest snapshot.
type Model struct {
	session Session
	title   string
	keys    keyMap
	snap    domain.Snapshot
	width   int

	// cursor belongs to question cursorFor and resets when it changes.
	cursor    int
	cursorFor int
}

func New(session Session, title string) Model {
	return Model{
		session: session,
		title:   title,
		keys:    newKeyMap(),
		snap:    session.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	m.session.Start()
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case EventMsg:
		// events only signal a change; the session is the source of truth
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.session.Close()
			return m, tea.Quit
		}
		m = m.handleKey(msg)
	}
	m.snap = m.session.Snapshot()
	if m.snap.QuestionIndex != m.cursorFor {
		m.cursor = 0
		m.cursorFor = m.snap.QuestionIndex
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	// answer buttons are disabled unless a question is awaiting an answer
	if !m.snap.AcceptsInput() {
		return m
	}
	options := len(m.snap.Options)
	switch {
	case key.Matches(msg, m.keys.Answer):
		if idx, ok := answerIndex(msg); ok && idx < options {
			m.cursor = idx
			m.session.SubmitAnswer(idx)
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < options-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.session.SubmitAnswer(m.cursor)
	}
	return m
}

// Snapshot returns the state the model last rendered from.
func (m Model) Snapshot() domain.Snapshot {
	return m.snap
}
