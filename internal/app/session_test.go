package app_test

import (
	"errors"
	"testing"
	"time"

	"apple-quiz/internal/app"
	"apple-quiz/internal/countdown"
	"apple-quiz/internal/domain"
)

func twoQuestions() []domain.QuizItem {
	return []domain.QuizItem{
		{Question: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswerIndex: 1},
		{Question: "What is 3 + 3?", Options: []string{"6", "7", "8"}, CorrectAnswerIndex: 0},
	}
}

func newManualSession(t *testing.T, items []domain.QuizItem) *app.Session {
	t.Helper()
	session, err := app.NewSession("attempt-1", items, app.DefaultSessionConfig())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestNewSessionRejectsEmptyQuiz(t *testing.T) {
	_, err := app.NewSession("attempt-1", nil, app.DefaultSessionConfig())
	if !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
}

func TestNewSessionRejectsInvalidItem(t *testing.T) {
	items := []domain.QuizItem{{Question: "q", Options: []string{"a", "b", "c"}, CorrectAnswerIndex: 3}}
	_, err := app.NewSession("attempt-1", items, app.DefaultSessionConfig())
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestStartInitializesFirstQuestion(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	if got := session.Snapshot().Status; got != domain.StatusNotStarted {
		t.Fatalf("expected not started, got %s", got)
	}

	session.Start()
	snap := session.Snapshot()
	if snap.Status != domain.StatusAwaitingAnswer {
		t.Fatalf("expected awaiting answer, got %s", snap.Status)
	}
	if snap.QuestionIndex != 0 || snap.Score != 0 || snap.RemainingSeconds != 10 {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}
	if snap.Question != "What is 2 + 2?" || len(snap.Options) != 3 {
		t.Fatalf("unexpected question %+v", snap)
	}
	if snap.FeedbackVisible() {
		t.Fatalf("feedback must be hidden while awaiting an answer")
	}
}

func TestCallsBeforeStartAreIgnored(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	session.Tick()
	if _, ok := session.SubmitAnswer(1); ok {
		t.Fatalf("submit accepted before start")
	}
	if _, ok := session.Advance(); ok {
		t.Fatalf("advance accepted before start")
	}
	if snap := session.Snapshot(); snap.Score != 0 || snap.RemainingSeconds != 10 {
		t.Fatalf("state changed before start: %+v", snap)
	}
}

func TestCorrectAnswerScoresOnce(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	session.Start()

	fb, ok := session.SubmitAnswer(1)
	if !ok || !fb.Correct || fb.CorrectAnswer != "4" {
		t.Fatalf("unexpected feedback %+v ok=%v", fb, ok)
	}
	// late timer or double tap
	if _, ok := session.SubmitAnswer(1); ok {
		t.Fatalf("second submission accepted")
	}
	session.Tick()

	snap := session.Snapshot()
	if snap.Score != 1 {
		t.Fatalf("expected score 1, got %d", snap.Score)
	}
	if snap.Status != domain.StatusShowingFeedback || !snap.FeedbackVisible() {
		t.Fatalf("expected visible feedback, got %+v", snap)
	}
}

func TestWrongAndOutOfRangeAnswersDoNotScore(t *testing.T) {
	for _, selected := range []int{0, 2, domain.TimeoutAnswer, 3, 42, -7} {
		session := newManualSession(t, twoQuestions())
		session.Start()
		fb, ok := session.SubmitAnswer(selected)
		if !ok {
			t.Fatalf("selected %d: submission rejected", selected)
		}
		if fb.Correct {
			t.Fatalf("selected %d: marked correct", selected)
		}
		if fb.CorrectAnswer != "4" {
			t.Fatalf("selected %d: expected correct answer text 4, got %q", selected, fb.CorrectAnswer)
		}
		if got := session.Snapshot().Score; got != 0 {
			t.Fatalf("selected %d: expected score 0, got %d", selected, got)
		}
	}
}

func TestCountdownTimesOutExactlyOnce(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	session.Start()

	for i := 0; i < 9; i++ {
		session.Tick()
	}
	snap := session.Snapshot()
	if snap.RemainingSeconds != 1 || snap.Status != domain.StatusAwaitingAnswer {
		t.Fatalf("expected 1s left and awaiting, got %+v", snap)
	}

	session.Tick()
	snap = session.Snapshot()
	if snap.RemainingSeconds != 0 {
		t.Fatalf("expected 0s left, got %d", snap.RemainingSeconds)
	}
	if snap.Status != domain.StatusShowingFeedback || snap.Feedback == nil || snap.Feedback.Correct {
		t.Fatalf("expected timeout feedback, got %+v", snap)
	}

	for i := 0; i < 5; i++ {
		session.Tick()
	}
	if got := session.Snapshot().RemainingSeconds; got != 0 {
		t.Fatalf("remaining went to %d", got)
	}
}

func TestAdvanceMovesToNextQuestionAndResetsCountdown(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	session.Start()
	session.Tick()
	session.Tick()
	session.SubmitAnswer(1)

	if _, finished := session.Advance(); finished {
		t.Fatalf("finished after first question")
	}
	snap := session.Snapshot()
	if snap.QuestionIndex != 1 || snap.RemainingSeconds != 10 || snap.Status != domain.StatusAwaitingAnswer {
		t.Fatalf("unexpected snapshot after advance %+v", snap)
	}
	if snap.Feedback != nil {
		t.Fatalf("feedback should reset on a new question")
	}
	// advance is only valid while showing feedback
	if _, finished := session.Advance(); finished {
		t.Fatalf("advance accepted while awaiting an answer")
	}
	if got := session.Snapshot().QuestionIndex; got != 1 {
		t.Fatalf("advance moved index while awaiting: %d", got)
	}
}

func TestCorrectThenTimeoutScenario(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	session.Start()

	session.SubmitAnswer(1)
	session.Advance()
	for i := 0; i < 10; i++ {
		session.Tick()
	}
	res, finished := session.Advance()
	if !finished {
		t.Fatalf("expected finish")
	}
	if res.Score != 1 || res.Total != 2 {
		t.Fatalf("expected 1/2, got %+v", res)
	}
	if got, ok := session.Result(); !ok || got != res {
		t.Fatalf("result mismatch %+v ok=%v", got, ok)
	}
}

func TestSingleQuestionTransitions(t *testing.T) {
	items := twoQuestions()[:1]
	session := newManualSession(t, items)
	events, cancel := session.Subscribe()
	defer cancel()

	if ev := <-events; ev.Snapshot.Status != domain.StatusNotStarted {
		t.Fatalf("expected initial not-started snapshot, got %s", ev.Snapshot.Status)
	}

	session.Start()
	session.SubmitAnswer(1)
	session.Advance()

	var statuses []domain.Status
	for i := 0; i < 3; i++ {
		statuses = append(statuses, (<-events).Snapshot.Status)
	}
	want := []domain.Status{domain.StatusAwaitingAnswer, domain.StatusShowingFeedback, domain.StatusFinished}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("transition %d: expected %s, got %s", i, want[i], statuses[i])
		}
	}
	res, ok := session.Result()
	if !ok || res.Score != 1 || res.Total != 1 {
		t.Fatalf("expected 1/1, got %+v ok=%v", res, ok)
	}
}

func TestFinishedSessionIgnoresInput(t *testing.T) {
	session := newManualSession(t, twoQuestions()[:1])
	session.Start()
	session.SubmitAnswer(0)
	session.Advance()

	before := session.Snapshot()
	session.Tick()
	session.Start()
	if _, ok := session.SubmitAnswer(1); ok {
		t.Fatalf("submission accepted after finish")
	}
	if _, finished := session.Advance(); finished {
		t.Fatalf("second finish reported")
	}
	after := session.Snapshot()
	if after.Status != domain.StatusFinished || after.Score != before.Score || after.RemainingSeconds != before.RemainingSeconds {
		t.Fatalf("finished session changed: before %+v after %+v", before, after)
	}
}

func TestSnapshotDoesNotAliasOptions(t *testing.T) {
	items := twoQuestions()
	session := newManualSession(t, items)
	session.Start()

	items[0].Options[1] = "mutated"
	snap := session.Snapshot()
	snap.Options[0] = "also mutated"

	again := session.Snapshot()
	if again.Options[0] != "3" || again.Options[1] != "4" {
		t.Fatalf("session state aliased: %v", again.Options)
	}
}

func TestScheduledSessionRunsItself(t *testing.T) {
	sched := countdown.NewManualScheduler()
	cfg := app.DefaultSessionConfig()
	cfg.Scheduler = sched
	session, err := app.NewSession("attempt-1", twoQuestions(), cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Start()

	sched.Advance(3 * time.Second)
	if got := session.Snapshot().RemainingSeconds; got != 7 {
		t.Fatalf("expected 7s left, got %d", got)
	}

	session.SubmitAnswer(1)
	if sched.Pending() != 1 {
		t.Fatalf("expected only the feedback timer to be live, got %d", sched.Pending())
	}
	sched.Advance(1999 * time.Millisecond)
	if got := session.Snapshot().Status; got != domain.StatusShowingFeedback {
		t.Fatalf("advanced before feedback delay elapsed: %s", got)
	}
	sched.Advance(time.Millisecond)
	snap := session.Snapshot()
	if snap.QuestionIndex != 1 || snap.RemainingSeconds != 10 || snap.Status != domain.StatusAwaitingAnswer {
		t.Fatalf("expected second question with fresh countdown, got %+v", snap)
	}

	// let the second question time out and the feedback elapse
	sched.Advance(12 * time.Second)
	res, ok := session.Result()
	if !ok || res.Score != 1 || res.Total != 2 {
		t.Fatalf("expected 1/2, got %+v ok=%v", res, ok)
	}
	if sched.Pending() != 0 {
		t.Fatalf("timers left running after finish: %d", sched.Pending())
	}
}

func TestStaleTickAfterManualAnswerIsIgnored(t *testing.T) {
	sched := &capturingScheduler{}
	cfg := app.DefaultSessionConfig()
	cfg.Scheduler = sched
	session, err := app.NewSession("attempt-1", twoQuestions(), cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Start()
	tick := sched.every

	session.SubmitAnswer(1)
	feedbackDone := sched.after

	// ticker callback that was already in flight when the answer landed
	tick()
	snap := session.Snapshot()
	if snap.RemainingSeconds != 10 || snap.Score != 1 || snap.Status != domain.StatusShowingFeedback {
		t.Fatalf("stale tick mutated state: %+v", snap)
	}

	session.Advance()
	// feedback callback racing with a manual advance
	feedbackDone()
	if got := session.Snapshot().QuestionIndex; got != 1 {
		t.Fatalf("stale feedback callback advanced twice, index %d", got)
	}
	if got := session.Snapshot().Status; got != domain.StatusAwaitingAnswer {
		t.Fatalf("expected awaiting answer, got %s", got)
	}
}

func TestCloseStopsTimersAndSubscribers(t *testing.T) {
	sched := countdown.NewManualScheduler()
	cfg := app.DefaultSessionConfig()
	cfg.Scheduler = sched
	session, err := app.NewSession("attempt-1", twoQuestions(), cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	events, cancel := session.Subscribe()
	defer cancel()
	session.Start()

	session.Close()
	session.Close()
	if sched.Pending() != 0 {
		t.Fatalf("expected no live timers after close, got %d", sched.Pending())
	}
	for range events {
	}
	sched.Advance(time.Minute)
	if got := session.Snapshot().RemainingSeconds; got != 10 {
		t.Fatalf("closed session kept ticking: %d", got)
	}
	if _, ok := session.SubmitAnswer(1); ok {
		t.Fatalf("closed session accepted an answer")
	}
}

func TestSlowSubscriberSeesLatestEvent(t *testing.T) {
	session := newManualSession(t, twoQuestions())
	events, cancel := session.Subscribe()
	defer cancel()
	session.Start()
	for i := 0; i < 9; i++ {
		session.Tick()
	}

	var last domain.Event
	for len(events) > 0 {
		last = <-events
	}
	if last.Kind != domain.EventTick || last.Snapshot.RemainingSeconds != 1 {
		t.Fatalf("expected latest tick with 1s left, got %+v", last)
	}
}

// capturingScheduler hands the registered callbacks to the test so it can
// fire them after the session has stopped them.
type capturingScheduler struct {
	every func()
	after func()
}

type noopHandle struct{}

func (noopHandle) Stop() bool { return true }

func (c *capturingScheduler) Every(_ time.Duration, fn func()) countdown.Handle {
	c.every = fn
	return noopHandle{}
}

func (c *capturingScheduler) After(_ time.Duration, fn func()) countdown.Handle {
	c.after = fn
	return noopHandle{}
}
