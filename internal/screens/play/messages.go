package play

import (
	"github.com/abhisek/quizbox/internal/feedback"
	"github.com/abhisek/quizbox/internal/session"
)

// eventBuffer bounds the runner notifications waiting for the UI loop.
const eventBuffer = 64

// runnerEventMsg carries a runner notification into the update loop.
type runnerEventMsg struct {
	Event session.Event
}

// feedbackMsg is sent when the answer flash changes.
type feedbackMsg struct {
	State feedback.State
}
