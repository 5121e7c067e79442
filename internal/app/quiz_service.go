package app

import (
	"context"
	"fmt"
	"log"

	"apple-quiz/internal/domain"
	"github.com/google/uuid"
)

// QuizLoader loads quiz content by id.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizService builds quiz attempts from loaded quiz content.
type QuizService struct {
	quizzes QuizLoader
	cfg     SessionConfig
	newID   func() string
}

func NewQuizService(quizzes QuizLoader, cfg SessionConfig) *QuizService {
	return &QuizService{
		quizzes: quizzes,
		cfg:     cfg,
		newID:   func() string { return uuid.NewString() },
	}
}

// NewQuizServiceWithIDs is test-only for deterministic attempt ids.
func NewQuizServiceWithIDs(quizzes QuizLoader, cfg SessionConfig, newID func() string) *QuizService {
	svc := NewQuizService(quizzes, cfg)
	svc.newID = newID
	return svc
}

// NewAttempt loads the quiz and returns an unstarted session for it.
func (s *QuizService) NewAttempt(ctx context.Context, quizID string) (*Session, domain.Quiz, error) {
	quiz, err := s.quizzes.LoadQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.Quiz{}, fmt.Errorf("load quiz %q: %w", quizID, err)
	}
	session, err := NewSession(s.newID(), quiz.Items, s.cfg)
	if err != nil {
		return nil, domain.Quiz{}, fmt.Errorf("quiz %q: %w", quizID, err)
	}
	log.Printf("attempt %s created for quiz %s (%d questions)", session.ID(), quiz.ID, session.Total())
	return session, quiz, nil
}

// LogEvent writes a log line for events worth keeping.
func LogEvent(ev domain.Event) {
	snap := ev.Snapshot
	switch ev.Kind {
	case domain.EventFeedback:
		if snap.Feedback == nil {
			return
		}
		verdict := "incorrect"
		if snap.Feedback.Correct {
			verdict = "correct"
		}
		log.Printf("attempt %s question %d/%d answered %s (score %d)",
			snap.AttemptID, snap.Feedback.QuestionIndex+1, snap.TotalQuestions, verdict, snap.Score)
	case domain.EventFinished:
		if snap.Result == nil {
			return
		}
		log.Printf("attempt %s finished: %d/%d", snap.AttemptID, snap.Result.Score, snap.Result.Total)
	}
}
