package feedback

import (
	"sync"
	"time"

	"github.com/abhisek/quizbox/internal/clock"
)

// Sink receives answer feedback from a running quiz.
type Sink interface {
	// ShowCorrectAnswerFeedback flashes the points earned for an answer.
	// Wrong answers report zero points.
	ShowCorrectAnswerFeedback(points int, isCorrect bool)

	// ResetFeedback clears any visible feedback.
	ResetFeedback()
}

// Nop is a Sink that discards feedback.
type Nop struct{}

func (Nop) ShowCorrectAnswerFeedback(int, bool) {}
func (Nop) ResetFeedback()                      {}

// Config controls how long feedback stays visible.
type Config struct {
	FlashDuration    time.Duration
	ConfettiDuration time.Duration

	// FlashTotalCoins also highlights the running coin total when points
	// are earned.
	FlashTotalCoins bool
}

// DefaultConfig returns the standard feedback timings.
func DefaultConfig() Config {
	return Config{
		FlashDuration:    1200 * time.Millisecond,
		ConfettiDuration: 1500 * time.Millisecond,
	}
}

// State is what the front-end renders.
type State struct {
	Flashing           bool
	FlashPoints        int
	ShowAnswerConfetti bool
	FlashTotalCoins    bool
}

// Flash is a Sink whose visible state clears itself after the configured
// durations.
type Flash struct {
	mu       sync.Mutex
	cfg      Config
	sched    clock.Scheduler
	state    State
	gen      uint64
	flashT   clock.Timer
	confT    clock.Timer
	onChange func(State)
}

var _ Sink = (*Flash)(nil)

// NewFlash creates a Flash. A nil scheduler uses real timers.
func NewFlash(cfg Config, sched clock.Scheduler) *Flash {
	if sched == nil {
		sched = clock.Real()
	}
	def := DefaultConfig()
	if cfg.FlashDuration <= 0 {
		cfg.FlashDuration = def.FlashDuration
	}
	if cfg.ConfettiDuration <= 0 {
		cfg.ConfettiDuration = def.ConfettiDuration
	}
	return &Flash{cfg: cfg, sched: sched}
}

// OnChange registers a callback invoked after every state change.
func (f *Flash) OnChange(fn func(State)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

func (f *Flash) ShowCorrectAnswerFeedback(points int, isCorrect bool) {
	f.mu.Lock()
	f.stopLocked()
	f.gen++
	gen := f.gen

	f.state = State{
		Flashing:           true,
		FlashPoints:        points,
		ShowAnswerConfetti: isCorrect,
		FlashTotalCoins:    f.cfg.FlashTotalCoins && points > 0,
	}
	f.flashT = f.sched.AfterFunc(f.cfg.FlashDuration, func() {
		f.clear(gen, func(s *State) {
			s.Flashing = false
			s.FlashPoints = 0
			s.FlashTotalCoins = false
		})
	})
	if isCorrect {
		f.confT = f.sched.AfterFunc(f.cfg.ConfettiDuration, func() {
			f.clear(gen, func(s *State) { s.ShowAnswerConfetti = false })
		})
	}
	st, cb := f.state, f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}

func (f *Flash) ResetFeedback() {
	f.mu.Lock()
	f.stopLocked()
	f.gen++
	f.state = State{}
	st, cb := f.state, f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}

// State returns the current feedback state.
func (f *Flash) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Close stops pending timers. Feedback already visible stays as is.
func (f *Flash) Close() {
	f.mu.Lock()
	f.stopLocked()
	f.gen++
	f.onChange = nil
	f.mu.Unlock()
}

func (f *Flash) clear(gen uint64, apply func(*State)) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	apply(&f.state)
	st, cb := f.state, f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}

func (f *Flash) stopLocked() {
	if f.flashT != nil {
		f.flashT.Stop()
		f.flashT = nil
	}
	if f.confT != nil {
		f.confT.Stop()
		f.confT = nil
	}
}
