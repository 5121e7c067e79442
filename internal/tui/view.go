package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"apple-quiz/internal/domain"
)

// urgentSeconds is the threshold at which the countdown turns red.
const urgentSeconds = 3

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).MarginBottom(1)
	progressStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(1, 2)
	timerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	urgentStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Border(lipgloss.RoundedBorder()).Padding(0, 1)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Border(lipgloss.RoundedBorder()).Padding(0, 1)
	optionStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Width(40)
	selectedStyle  = optionStyle.BorderForeground(lipgloss.Color("39")).Bold(true)
	disabledStyle  = optionStyle.Foreground(lipgloss.Color("241")).BorderForeground(lipgloss.Color("238"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).Padding(1, 2)
)

func (m Model) View() string {
	if m.snap.Status == domain.StatusFinished && m.snap.Result != nil {
		return m.resultView(*m.snap.Result)
	}
	if m.snap.Status == domain.StatusNotStarted {
		return titleStyle.Render(m.title) + "\n" + progressStyle.Render("starting...")
	}
	return m.quizView()
}

func (m Model) quizView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(progressStyle.Render(fmt.Sprintf("Q%d / %d   score %d", m.snap.QuestionIndex+1, m.snap.TotalQuestions, m.snap.Score)))
	b.WriteString("\n")
	b.WriteString(questionStyle.Render(m.snap.Question))
	b.WriteString("\n")
	b.WriteString(countdownLine(m.snap.RemainingSeconds))
	b.WriteString("\n\n")

	if m.snap.FeedbackVisible() {
		b.WriteString(feedbackLine(*m.snap.Feedback))
	}
	b.WriteString("\n")

	for i, option := range m.snap.Options {
		style := optionStyle
		switch {
		case !m.snap.AcceptsInput():
			style = disabledStyle
		case i == m.cursor:
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d. %s", i+1, option)))
		b.WriteString("\n")
	}

	b.WriteString(helpLine(m.keys.quizHelp()))
	return b.String()
}

func (m Model) resultView(res domain.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(ResultText(res)))
	b.WriteString("\n")
	b.WriteString(helpLine(m.keys.resultHelp()))
	return b.String()
}

func countdownLine(remaining int) string {
	style := timerStyle
	if remaining <= urgentSeconds {
		style = urgentStyle
	}
	return "残り時間： " + style.Render(fmt.Sprintf("%d", remaining)) + " 秒"
}

// FeedbackText is the message shown after an answer.
func FeedbackText(fb domain.Feedback) string {
	if fb.Correct {
		return "正解！"
	}
	return fmt.Sprintf("不正解... 正解は「%s」", fb.CorrectAnswer)
}

func feedbackLine(fb domain.Feedback) string {
	if fb.Correct {
		return correctStyle.Render(FeedbackText(fb))
	}
	return incorrectStyle.Render(FeedbackText(fb))
}

// ResultText summarizes a finished session.
func ResultText(res domain.Result) string {
	return fmt.Sprintf("%d / %d 問正解", res.Score, res.Total)
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return footerStyle.Render(strings.Join(parts, "  •  "))
}
