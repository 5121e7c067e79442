package domain

// Status is the position of a quiz session in its lifecycle.
type Status string

const (
	StatusNotStarted      Status = "not_started"
	StatusAwaitingAnswer  Status = "awaiting_answer"
	StatusShowingFeedback Status = "showing_feedback"
	StatusFinished        Status = "finished"
)

// Feedback is shown after each answer. A timeout and a wrong answer
// produce the same feedback.
type Feedback struct {
	QuestionIndex int    `json:"questionIndex"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Result is the terminal payload of a finished session.
type Result struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// Snapshot is a read-only copy of session state for rendering.
type Snapshot struct {
	AttemptID        string    `json:"attemptId"`
	Status           Status    `json:"status"`
	QuestionIndex    int       `json:"questionIndex"`
	TotalQuestions   int       `json:"totalQuestions"`
	Question         string    `json:"question"`
	Options          []string  `json:"options"`
	RemainingSeconds int       `json:"remainingSeconds"`
	Score            int       `json:"score"`
	Feedback         *Feedback `json:"feedback,omitempty"`
	Result           *Result   `json:"result,omitempty"`
}

// FeedbackVisible reports whether the answer feedback should be displayed.
func (s Snapshot) FeedbackVisible() bool {
	return s.Status == StatusShowingFeedback && s.Feedback != nil
}

// AcceptsInput reports whether answer buttons are enabled.
func (s Snapshot) AcceptsInput() bool {
	return s.Status == StatusAwaitingAnswer
}

// EventKind names what changed in a session.
type EventKind string

const (
	EventQuestion EventKind = "question"
	EventTick     EventKind = "tick"
	EventFeedback EventKind = "feedback"
	EventFinished EventKind = "finished"
)

// Event is published to session subscribers after every state change.
type Event struct {
	Kind     EventKind `json:"kind"`
	Snapshot Snapshot  `json:"snapshot"`
}
