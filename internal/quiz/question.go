package quiz

// Option is one answer choice shown for a question.
type Option struct {
	Text      string `yaml:"text" json:"text"`
	Emoji     string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	IsCorrect bool   `yaml:"correct,omitempty" json:"correct,omitempty"`
}

// Label returns the option text prefixed with its emoji, if any.
func (o Option) Label() string {
	if o.Emoji == "" {
		return o.Text
	}
	return o.Emoji + "  " + o.Text
}

// Feedback holds the optional per-question messages shown after answering.
type Feedback struct {
	Correct string `yaml:"correct,omitempty" json:"correct,omitempty"`
	Wrong   string `yaml:"wrong,omitempty" json:"wrong,omitempty"`
}

// Question is a single multiple-choice item. Questions are static data and
// are never mutated once loaded.
type Question struct {
	ID       string    `yaml:"id" json:"id"`
	Text     string    `yaml:"text" json:"text"`
	Options  []Option  `yaml:"options" json:"options"`
	Feedback *Feedback `yaml:"feedback,omitempty" json:"feedback,omitempty"`
}

// CorrectIndex returns the index of the first correct option, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// IsCorrect reports whether choosing option i answers the question.
// Out-of-range indices are wrong.
func (q Question) IsCorrect(i int) bool {
	if i < 0 || i >= len(q.Options) {
		return false
	}
	return q.Options[i].IsCorrect
}

// FeedbackFor returns the message to show after an answer.
func (q Question) FeedbackFor(correct bool) string {
	if q.Feedback != nil {
		if correct && q.Feedback.Correct != "" {
			return q.Feedback.Correct
		}
		if !correct && q.Feedback.Wrong != "" {
			return q.Feedback.Wrong
		}
	}
	if correct {
		return "Correct!"
	}
	if idx := q.CorrectIndex(); idx >= 0 {
		return "Not quite. The answer was: " + q.Options[idx].Text
	}
	return "Not quite."
}
