package session

import "time"

// Summary holds the data displayed on the result screen.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	TimedOut       int
	Accuracy       float64
}

// BuildSummary creates a Summary from a finished run.
func BuildSummary(st State, duration time.Duration) Summary {
	timedOut := 0
	for _, a := range st.Answers {
		if a.TimedOut {
			timedOut++
		}
	}
	return Summary{
		Duration:       duration,
		TotalQuestions: st.Total,
		TotalCorrect:   st.Score,
		TimedOut:       timedOut,
		Accuracy:       st.Accuracy(),
	}
}
