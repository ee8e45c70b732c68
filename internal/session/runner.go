package session

import (
	"sync"
	"time"

	"github.com/abhisek/quizbox/internal/clock"
	"github.com/abhisek/quizbox/internal/feedback"
	"github.com/abhisek/quizbox/internal/quiz"
)

const (
	// DefaultAdvanceDelay is how long answer feedback stays up before the
	// next question.
	DefaultAdvanceDelay = 1500 * time.Millisecond

	// DefaultRoundTime is the reflex countdown in seconds.
	DefaultRoundTime = 10

	tickInterval = time.Second
)

// Config parameterizes a Runner.
type Config struct {
	// AdvanceDelay between an accepted answer and the next question.
	// Zero means DefaultAdvanceDelay.
	AdvanceDelay time.Duration

	// RoundTime is the per-question countdown in seconds. Zero disables it.
	RoundTime int

	// SkipReady starts runs directly in PhasePlaying, both on creation and
	// after Reset.
	SkipReady bool

	Scheduler clock.Scheduler
	Sink      feedback.Sink

	// OnEvent is called after each state change, outside the runner lock.
	OnEvent func(Event)

	// Now returns the current time for answer timing. Defaults to time.Now.
	Now func() time.Time
}

// Result describes an accepted answer.
type Result struct {
	Correct      bool
	CorrectIndex int
	Score        int
	Feedback     string
}

// Runner drives one quiz: ready -> playing -> finished. It is safe for
// concurrent use; user input and timer callbacks race on the answered flag
// and the loser is ignored.
type Runner struct {
	mu        sync.Mutex
	questions []quiz.Question
	cfg       Config
	state     State
	closed    bool

	// gen invalidates callbacks scheduled before a Reset or Close.
	gen           uint64
	advanceTimer  clock.Timer
	tickTimer     clock.Timer
	questionStart time.Time
}

type effects []func()

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}

// New creates a Runner over questions. With SkipReady the run is already
// playing and no EventStarted is emitted for it. An empty run with
// SkipReady finishes here and does emit EventFinished.
func New(questions []quiz.Question, cfg Config) *Runner {
	if cfg.AdvanceDelay <= 0 {
		cfg.AdvanceDelay = DefaultAdvanceDelay
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = clock.Real()
	}
	if cfg.Sink == nil {
		cfg.Sink = feedback.Nop{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	r := &Runner{
		questions: questions,
		cfg:       cfg,
		state:     newState(len(questions)),
	}
	if cfg.SkipReady {
		r.mu.Lock()
		fx := r.beginLocked()
		finished := r.state.Phase == PhaseFinished
		r.mu.Unlock()
		if finished {
			fx.run()
		}
	}
	return r
}

// Start moves a ready run to playing. It returns false if the run is not
// in PhaseReady.
func (r *Runner) Start() bool {
	r.mu.Lock()
	if r.closed || r.state.Phase != PhaseReady {
		r.mu.Unlock()
		return false
	}
	fx := r.beginLocked()
	r.mu.Unlock()

	fx.run()
	return true
}

// SubmitAnswer answers the current question with the option at index.
// It is ignored (returning false) unless the run is playing and the
// current question is still open.
func (r *Runner) SubmitAnswer(index int) (Result, bool) {
	r.mu.Lock()
	if r.closed || r.state.Phase != PhasePlaying || r.state.Answered {
		r.mu.Unlock()
		return Result{}, false
	}

	idx := r.state.CurrentIndex
	q := r.questions[idx]
	correct := q.IsCorrect(index)

	r.state.Answered = true
	r.state.SelectedIndex = index
	if correct {
		r.state.Score++
	}
	r.state.Answers = append(r.state.Answers, Answer{
		QuestionID: q.ID,
		Selected:   index,
		Correct:    correct,
		Elapsed:    r.cfg.Now().Sub(r.questionStart),
	})
	r.stopTickLocked()

	gen := r.gen
	r.advanceTimer = r.cfg.Scheduler.AfterFunc(r.cfg.AdvanceDelay, func() {
		r.advanceFrom(gen, idx)
	})

	res := Result{
		Correct:      correct,
		CorrectIndex: q.CorrectIndex(),
		Score:        r.state.Score,
		Feedback:     q.FeedbackFor(correct),
	}
	fx := effects{
		r.feedbackFx(correct),
		r.eventFx(Event{Type: EventAnswered, Index: idx, Correct: correct, Score: r.state.Score, TimeLeft: r.state.TimeLeft}),
	}
	r.mu.Unlock()

	fx.run()
	return res, true
}

// Advance moves to the next question, or finishes the run after the last
// one. A pending delayed advance is cancelled so a question is never
// skipped twice. An open question is recorded as a wrong answer with no
// selection, keeping Answers in question order.
func (r *Runner) Advance() bool {
	r.mu.Lock()
	if r.closed || r.state.Phase != PhasePlaying {
		r.mu.Unlock()
		return false
	}
	if !r.state.Answered {
		r.state.Answers = append(r.state.Answers, Answer{
			QuestionID: r.questions[r.state.CurrentIndex].ID,
			Selected:   -1,
			Elapsed:    r.cfg.Now().Sub(r.questionStart),
		})
	}
	fx := r.advanceLocked()
	r.mu.Unlock()

	fx.run()
	return true
}

// Reset discards the run and starts over from the first question.
func (r *Runner) Reset() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.gen++
	r.stopTimersLocked()
	r.state = newState(len(r.questions))

	sink := r.cfg.Sink
	fx := effects{
		sink.ResetFeedback,
		r.eventFx(Event{Type: EventReset}),
	}
	if r.cfg.SkipReady {
		fx = append(fx, r.beginLocked()...)
	}
	r.mu.Unlock()

	fx.run()
}

// Close stops all timers. Every later call is a no-op and late timer
// callbacks are dropped.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.gen++
	r.stopTimersLocked()
}

// Snapshot returns a copy of the current state.
func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state
	st.Answers = append([]Answer(nil), r.state.Answers...)
	return st
}

// Question returns the question at the current index.
func (r *Runner) Question() (quiz.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.questions) == 0 || r.state.CurrentIndex >= len(r.questions) {
		return quiz.Question{}, false
	}
	return r.questions[r.state.CurrentIndex], true
}

// Len returns the number of questions.
func (r *Runner) Len() int {
	return len(r.questions)
}

func (r *Runner) beginLocked() effects {
	if len(r.questions) == 0 {
		r.state.Phase = PhaseFinished
		return effects{r.eventFx(Event{Type: EventFinished})}
	}
	r.state.Phase = PhasePlaying
	r.openQuestionLocked()
	return effects{r.eventFx(Event{Type: EventStarted, TimeLeft: r.state.TimeLeft})}
}

func (r *Runner) advanceLocked() effects {
	r.stopTimersLocked()

	if r.state.CurrentIndex+1 >= len(r.questions) {
		r.state.Phase = PhaseFinished
		r.state.TimeLeft = 0
		return effects{r.eventFx(Event{Type: EventFinished, Index: r.state.CurrentIndex, Score: r.state.Score})}
	}

	r.state.CurrentIndex++
	r.state.Answered = false
	r.state.SelectedIndex = -1
	r.openQuestionLocked()
	return effects{r.eventFx(Event{Type: EventAdvanced, Index: r.state.CurrentIndex, Score: r.state.Score, TimeLeft: r.state.TimeLeft})}
}

// advanceFrom is the delayed advance scheduled by SubmitAnswer.
func (r *Runner) advanceFrom(gen uint64, idx int) {
	r.mu.Lock()
	if gen != r.gen || r.closed || r.state.Phase != PhasePlaying ||
		!r.state.Answered || r.state.CurrentIndex != idx {
		r.mu.Unlock()
		return
	}
	r.advanceTimer = nil
	fx := r.advanceLocked()
	r.mu.Unlock()

	fx.run()
}

func (r *Runner) openQuestionLocked() {
	r.questionStart = r.cfg.Now()
	if r.cfg.RoundTime <= 0 {
		return
	}
	r.state.TimeLeft = r.cfg.RoundTime
	r.scheduleTickLocked()
}

func (r *Runner) scheduleTickLocked() {
	gen, idx := r.gen, r.state.CurrentIndex
	r.tickTimer = r.cfg.Scheduler.AfterFunc(tickInterval, func() {
		r.tick(gen, idx)
	})
}

func (r *Runner) tick(gen uint64, idx int) {
	r.mu.Lock()
	if gen != r.gen || r.closed || r.state.Phase != PhasePlaying ||
		r.state.Answered || r.state.CurrentIndex != idx {
		r.mu.Unlock()
		return
	}
	r.tickTimer = nil
	r.state.TimeLeft--

	if r.state.TimeLeft > 0 {
		r.scheduleTickLocked()
		fx := effects{r.eventFx(Event{Type: EventTick, Index: idx, Score: r.state.Score, TimeLeft: r.state.TimeLeft})}
		r.mu.Unlock()
		fx.run()
		return
	}

	// Expired with no answer: counts as wrong and advances exactly once.
	q := r.questions[idx]
	r.state.Answers = append(r.state.Answers, Answer{
		QuestionID: q.ID,
		Selected:   -1,
		TimedOut:   true,
		Elapsed:    r.cfg.Now().Sub(r.questionStart),
	})
	fx := effects{
		r.feedbackFx(false),
		r.eventFx(Event{Type: EventTimedOut, Index: idx, Score: r.state.Score}),
	}
	fx = append(fx, r.advanceLocked()...)
	r.mu.Unlock()

	fx.run()
}

func (r *Runner) stopTickLocked() {
	if r.tickTimer != nil {
		r.tickTimer.Stop()
		r.tickTimer = nil
	}
}

func (r *Runner) stopTimersLocked() {
	r.stopTickLocked()
	if r.advanceTimer != nil {
		r.advanceTimer.Stop()
		r.advanceTimer = nil
	}
}

func (r *Runner) feedbackFx(correct bool) func() {
	sink := r.cfg.Sink
	if correct {
		return func() { sink.ShowCorrectAnswerFeedback(1, true) }
	}
	return func() { sink.ShowCorrectAnswerFeedback(0, false) }
}

func (r *Runner) eventFx(e Event) func() {
	cb := r.cfg.OnEvent
	if cb == nil {
		return func() {}
	}
	return func() { cb(e) }
}
