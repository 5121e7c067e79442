package domain

import "fmt"

// TimeoutAnswer is submitted on behalf of the player when the countdown expires.
const TimeoutAnswer = -1

// QuizItem is one multiple-choice question.
type QuizItem struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// NewQuizItem builds a validated QuizItem.
func NewQuizItem(question string, options []string, correct int) (QuizItem, error) {
	item := QuizItem{
		Question:           question,
		Options:            append([]string(nil), options...),
		CorrectAnswerIndex: correct,
	}
	if err := item.Validate(); err != nil {
		return QuizItem{}, err
	}
	return item, nil
}

// Validate checks that the correct answer points at one of the options.
func (q QuizItem) Validate() error {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d with %d options", ErrInvalidItem, q.CorrectAnswerIndex, len(q.Options))
	}
	return nil
}

// IsCorrect reports whether selected is the correct option. Out of range
// selections, including TimeoutAnswer, are never correct.
func (q QuizItem) IsCorrect(selected int) bool {
	if selected < 0 || selected >= len(q.Options) {
		return false
	}
	return selected == q.CorrectAnswerIndex
}

// CorrectAnswer returns the text of the correct option.
func (q QuizItem) CorrectAnswer() string {
	return q.Options[q.CorrectAnswerIndex]
}

// Quiz is an ordered collection of questions.
type Quiz struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []QuizItem `json:"items"`
}

// Validate rejects quizzes that cannot be played.
func (q Quiz) Validate() error {
	if len(q.Items) == 0 {
		return ErrEmptyQuiz
	}
	for i, item := range q.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
