package app

import (
	"sync"
	"time"

	"apple-quiz/internal/countdown"
	"apple-quiz/internal/domain"
)

const (
	DefaultSeconds       = 10
	DefaultTickInterval  = time.Second
	DefaultFeedbackDelay = 2 * time.Second
)

// SessionConfig controls countdown length and pacing.
type SessionConfig struct {
	Seconds       int
	TickInterval  time.Duration
	FeedbackDelay time.Duration
	// Scheduler drives the countdown and the feedback delay. When nil the
	// caller drives the session through Tick and Advance.
	Scheduler countdown.Scheduler
}

// DefaultSessionConfig returns a ten second countdown ticking once per second
// with a two second feedback pause, without a scheduler.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Seconds:       DefaultSeconds,
		TickInterval:  DefaultTickInterval,
		FeedbackDelay: DefaultFeedbackDelay,
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.Seconds <= 0 {
		c.Seconds = DefaultSeconds
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.FeedbackDelay <= 0 {
		c.FeedbackDelay = DefaultFeedbackDelay
	}
	return c
}

// Session is a single quiz attempt. All methods are safe to call from timer
// callbacks and input handlers concurrently; calls made in a state that does
// not accept them are ignored.
type Session struct {
	id    string
	items []domain.QuizItem
	cfg   SessionConfig

	mu        sync.Mutex
	status    domain.Status
	current   int
	score     int
	remaining int
	feedback  *domain.Feedback
	result    *domain.Result
	closed    bool

	// timer is the single live countdown or feedback timer. generation is
	// bumped whenever it is replaced so that late callbacks are discarded.
	timer      countdown.Handle
	generation uint64

	subscribers map[chan domain.Event]struct{}
}

// NewSession builds a session over items. It fails on an empty or invalid
// question list.
func NewSession(id string, items []domain.QuizItem, cfg SessionConfig) (*Session, error) {
	quiz := domain.Quiz{ID: id, Items: items}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	copied := make([]domain.QuizItem, len(items))
	for i, item := range items {
		copied[i] = domain.QuizItem{
			Question:           item.Question,
			Options:            append([]string(nil), item.Options...),
			CorrectAnswerIndex: item.CorrectAnswerIndex,
		}
	}
	cfg = cfg.withDefaults()
	return &Session{
		id:          id,
		items:       copied,
		cfg:         cfg,
		status:      domain.StatusNotStarted,
		remaining:   cfg.Seconds,
		subscribers: make(map[chan domain.Event]struct{}),
	}, nil
}

// ID returns the attempt identifier.
func (s *Session) ID() string {
	return s.id
}

// Total returns the number of questions.
func (s *Session) Total() int {
	return len(s.items)
}

// Start shows the first question and starts its countdown. Only the first
// call has an effect.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.status != domain.StatusNotStarted {
		return
	}
	s.current = 0
	s.score = 0
	s.beginQuestionLocked()
}

// Tick counts one second off the active question. Reaching zero submits a
// timeout answer.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked()
}

// SubmitAnswer records the answer for the active question. It returns the
// feedback and true when the answer was accepted, or false when the session
// was not awaiting an answer.
func (s *Session) SubmitAnswer(selected int) (domain.Feedback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(selected)
}

// Advance leaves the feedback state, moving to the next question or finishing
// the session. It returns the result and true only on the call that finishes.
func (s *Session) Advance() (domain.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

// Result returns the final score once the session has finished.
func (s *Session) Result() (domain.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return domain.Result{}, false
	}
	return *s.result, true
}

// Snapshot returns a copy of the state for rendering.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives an event after every state change.
// The current snapshot is delivered first as a question event. The caller must
// invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	initial := domain.Event{Kind: domain.EventQuestion, Snapshot: s.snapshotLocked()}
	if s.status == domain.StatusFinished {
		initial.Kind = domain.EventFinished
	}
	ch <- initial
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close cancels the live timer and closes subscriber channels. Every later
// call on the session is ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) beginQuestionLocked() {
	s.stopTimerLocked()
	s.remaining = s.cfg.Seconds
	s.feedback = nil
	s.status = domain.StatusAwaitingAnswer
	if sched := s.cfg.Scheduler; sched != nil {
		gen := s.generation
		s.timer = sched.Every(s.cfg.TickInterval, func() { s.onTick(gen) })
	}
	s.publishLocked(domain.EventQuestion)
}

func (s *Session) tickLocked() {
	if s.closed || s.status != domain.StatusAwaitingAnswer || s.remaining <= 0 {
		return
	}
	s.remaining--
	s.publishLocked(domain.EventTick)
	if s.remaining == 0 {
		s.submitLocked(domain.TimeoutAnswer)
	}
}

func (s *Session) submitLocked(selected int) (domain.Feedback, bool) {
	if s.closed || s.status != domain.StatusAwaitingAnswer {
		return domain.Feedback{}, false
	}
	s.stopTimerLocked()

	item := s.items[s.current]
	correct := item.IsCorrect(selected)
	if correct {
		s.score++
	}
	fb := domain.Feedback{
		QuestionIndex: s.current,
		Correct:       correct,
		CorrectAnswer: item.CorrectAnswer(),
	}
	s.feedback = &fb
	s.status = domain.StatusShowingFeedback

	if sched := s.cfg.Scheduler; sched != nil {
		gen := s.generation
		s.timer = sched.After(s.cfg.FeedbackDelay, func() { s.onFeedbackElapsed(gen) })
	}
	s.publishLocked(domain.EventFeedback)
	return fb, true
}

func (s *Session) advanceLocked() (domain.Result, bool) {
	if s.closed || s.status != domain.StatusShowingFeedback {
		return domain.Result{}, false
	}
	s.stopTimerLocked()

	if s.current < len(s.items)-1 {
		s.current++
		s.beginQuestionLocked()
		return domain.Result{}, false
	}

	s.status = domain.StatusFinished
	res := domain.Result{Score: s.score, Total: len(s.items)}
	s.result = &res
	s.publishLocked(domain.EventFinished)
	return res, true
}

func (s *Session) onTick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.tickLocked()
}

func (s *Session) onFeedbackElapsed(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.advanceLocked()
}

// stopTimerLocked cancels the live timer and invalidates any callback that
// already fired but has not yet acquired the lock.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

func (s *Session) publishLocked(kind domain.EventKind) {
	ev := domain.Event{Kind: kind, Snapshot: s.snapshotLocked()}
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// drop the oldest event so slow readers still see the latest state
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		AttemptID:        s.id,
		Status:           s.status,
		QuestionIndex:    s.current,
		TotalQuestions:   len(s.items),
		RemainingSeconds: s.remaining,
		Score:            s.score,
	}
	item := s.items[s.current]
	snap.Question = item.Question
	snap.Options = append([]string(nil), item.Options...)
	if s.feedback != nil {
		fb := *s.feedback
		snap.Feedback = &fb
	}
	if s.result != nil {
		res := *s.result
		snap.Result = &res
	}
	return snap
}
