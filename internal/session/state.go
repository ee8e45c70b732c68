package session

import "time"

// Phase is the lifecycle stage of a quiz run.
type Phase int

const (
	PhaseReady    Phase = iota // Waiting for Start
	PhasePlaying               // Serving questions
	PhaseFinished              // All questions done; score frozen
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Answer records how one question was resolved.
type Answer struct {
	QuestionID string
	Selected   int // -1 when the countdown expired or the question was skipped
	Correct    bool
	TimedOut   bool
	Elapsed    time.Duration
}

// State is a point-in-time copy of a run.
type State struct {
	Phase Phase

	// CurrentIndex is the question being shown, 0 <= CurrentIndex < Total.
	CurrentIndex int

	// Score counts correct answers. It never decreases within a run.
	Score int

	// Answered is true between an accepted answer and the advance.
	Answered bool

	// SelectedIndex is the chosen option, or -1 when none.
	SelectedIndex int

	// TimeLeft is the countdown in seconds for timed runs.
	TimeLeft int

	// Answers holds one entry per resolved question, in order.
	Answers []Answer

	// Total is the number of questions in the run.
	Total int
}

// Finished reports whether the run has ended.
func (s State) Finished() bool {
	return s.Phase == PhaseFinished
}

// Accuracy returns the share of questions answered correctly.
func (s State) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total)
}

func newState(total int) State {
	return State{
		Phase:         PhaseReady,
		SelectedIndex: -1,
		Total:         total,
	}
}
