package domain

import "errors"

var (
	// ErrEmptyQuiz is returned when a quiz has no questions to play.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrInvalidItem indicates a question whose correct answer index is outside its options.
	ErrInvalidItem = errors.New("invalid quiz item")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
)
