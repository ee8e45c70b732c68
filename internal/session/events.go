package session

// EventType identifies a runner notification.
type EventType int

const (
	EventStarted EventType = iota
	EventAnswered
	EventTimedOut
	EventTick
	EventAdvanced
	EventFinished
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventAnswered:
		return "answered"
	case EventTimedOut:
		return "timed_out"
	case EventTick:
		return "tick"
	case EventAdvanced:
		return "advanced"
	case EventFinished:
		return "finished"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is delivered to Config.OnEvent after each state change.
type Event struct {
	Type     EventType
	Index    int
	Correct  bool
	Score    int
	TimeLeft int
}
