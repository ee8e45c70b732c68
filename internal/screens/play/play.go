// Package play is the screen that runs one mini-game.
package play

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/quizbox/internal/clock"
	"github.com/abhisek/quizbox/internal/feedback"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/result"
	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/shell"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// Env carries the application services a play needs.
type Env struct {
	Host         *shell.Host
	AdvanceDelay time.Duration
	RoundTime    int // fallback countdown for reflex games
	Feedback     feedback.Config
	Scheduler    clock.Scheduler
	Logger       *log.Logger
}

// Launch returns a play screen for g.
func (e *Env) Launch(g quiz.Game) screen.Screen {
	return New(e, g)
}

// PlayScreen runs one game from the intro card to the result screen.
type PlayScreen struct {
	env    *Env
	game   quiz.Game
	play   *shell.Play
	runner *session.Runner
	flash  *feedback.Flash

	events chan tea.Msg
	done   chan struct{}
	closed bool

	state     session.State
	fx        feedback.State
	options   components.OptionList
	result    *session.Result
	timedOut  bool
	confirm   bool
	finished  bool
	roundTime int
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.Closer          = (*PlayScreen)(nil)
	_ screen.BackInterceptor = (*PlayScreen)(nil)
)

// New prepares a play of g. The run waits on the intro card until the
// player starts it.
func New(env *Env, g quiz.Game) *PlayScreen {
	s := &PlayScreen{
		env:       env,
		game:      g,
		events:    make(chan tea.Msg, eventBuffer),
		done:      make(chan struct{}),
		roundTime: g.CountdownSeconds(env.RoundTime),
	}

	s.play = env.Host.Begin(context.Background(), g)
	s.flash = feedback.NewFlash(env.Feedback, env.Scheduler)
	s.flash.OnChange(func(st feedback.State) { s.send(feedbackMsg{State: st}) })
	s.runner = session.New(g.Questions, session.Config{
		AdvanceDelay: env.AdvanceDelay,
		RoundTime:    s.roundTime,
		Scheduler:    env.Scheduler,
		Sink:         s.flash,
		OnEvent:      func(e session.Event) { s.send(runnerEventMsg{Event: e}) },
	})
	s.state = s.runner.Snapshot()
	return s
}

// send forwards a message from a timer goroutine. Messages are dropped
// once the screen is closed or the buffer is full; the view re-reads the
// runner on the next message anyway.
func (s *PlayScreen) send(msg tea.Msg) {
	select {
	case <-s.done:
	case s.events <- msg:
	default:
		s.logger().Debug("play event dropped", "game", s.game.ID)
	}
}

func (s *PlayScreen) listen() tea.Cmd {
	events, done := s.events, s.done
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

func (s *PlayScreen) logger() *log.Logger {
	if s.env.Logger != nil {
		return s.env.Logger
	}
	return log.Default()
}

func (s *PlayScreen) Init() tea.Cmd {
	return s.listen()
}

func (s *PlayScreen) Title() string {
	return s.game.Title
}

// InterceptsBack keeps Esc for the quit confirmation.
func (s *PlayScreen) InterceptsBack() bool {
	return true
}

// Close stops the run's timers.
func (s *PlayScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	s.runner.Close()
	s.flash.Close()
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirm:
		return []layout.KeyHint{
			components.Hint("Y", "Leave game"),
			components.Hint("N", "Keep playing"),
		}
	case s.state.Phase == session.PhaseReady:
		return components.Hints(components.Keys.Start, components.Keys.Back)
	case s.state.Answered:
		return []layout.KeyHint{
			components.Hint("Enter", "Next question"),
			components.Hint("Esc", "Quit"),
		}
	default:
		return []layout.KeyHint{
			components.Hint("1-9", "Answer"),
			components.Hint("↑↓", "Choose"),
			components.Hint("Enter", "Submit"),
			components.Hint("Esc", "Quit"),
		}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runnerEventMsg:
		cmd := s.handleEvent(msg.Event)
		if s.finished {
			return s, cmd
		}
		return s, tea.Batch(cmd, s.listen())

	case feedbackMsg:
		s.fx = msg.State
		return s, s.listen()

	case components.ChooseMsg:
		s.submit(msg.Index)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleEvent(e session.Event) tea.Cmd {
	s.state = s.runner.Snapshot()

	switch e.Type {
	case session.EventStarted, session.EventAdvanced, session.EventReset:
		s.resetQuestion()
	case session.EventAnswered:
		s.record(e.Index)
	case session.EventTimedOut:
		s.record(e.Index)
		s.timedOut = true
	case session.EventFinished:
		return s.finish()
	}
	return nil
}

func (s *PlayScreen) resetQuestion() {
	s.result = nil
	if q, ok := s.runner.Question(); ok {
		s.options = components.NewOptionList(q)
	}
}

// record stores the answer for question idx. Answers are kept in question
// order so the index is stable even after the runner moved on.
func (s *PlayScreen) record(idx int) {
	if idx < 0 || idx >= len(s.state.Answers) {
		return
	}
	s.env.Host.RecordAnswer(context.Background(), s.play, s.state.Answers[idx])
}

func (s *PlayScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true

	done := s.env.Host.Finish(context.Background(), s.play, s.state)
	next := result.New(s.game, done, s.env.Launch)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PlayScreen) submit(i int) {
	res, ok := s.runner.SubmitAnswer(i)
	if !ok {
		return
	}
	s.result = &res
	s.timedOut = false
	s.options.Reveal(i)
	s.state = s.runner.Snapshot()
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirm {
		switch msg.String() {
		case "y", "Y":
			s.confirm = false
			return s, s.leave()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if key.Matches(msg, components.Keys.Back) {
		if s.state.Phase == session.PhaseReady || s.finished {
			return s, s.leave()
		}
		s.confirm = true
		return s, nil
	}

	switch s.state.Phase {
	case session.PhaseReady:
		if key.Matches(msg, components.Keys.Start) {
			s.runner.Start()
			s.state = s.runner.Snapshot()
			s.resetQuestion()
		}
		return s, nil

	case session.PhasePlaying:
		if s.state.Answered {
			if key.Matches(msg, components.Keys.Select) {
				s.runner.Advance()
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		return s, cmd
	}
	return s, nil
}

// leave abandons the run and returns to the previous screen.
func (s *PlayScreen) leave() tea.Cmd {
	if !s.finished {
		s.env.Host.Abandon(context.Background(), s.play, s.runner.Snapshot())
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Props returns the chrome for the current state.
func (s *PlayScreen) Props() shell.Props {
	return s.play.Props(s.state, s.fx)
}
