package quiz

// Kind distinguishes the mini-game families.
type Kind string

const (
	// KindBadge games award a named badge when the player passes.
	KindBadge Kind = "badge"
	// KindReflex games put a countdown on every question.
	KindReflex Kind = "reflex"
	// KindQuiz games are plain scored quizzes.
	KindQuiz Kind = "quiz"
)

// AllKinds returns every game kind in display order.
func AllKinds() []Kind {
	return []Kind{KindBadge, KindReflex, KindQuiz}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBadge, KindReflex, KindQuiz:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindBadge:
		return "Badge Challenge"
	case KindReflex:
		return "Reflex Round"
	case KindQuiz:
		return "Quiz"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindBadge:
		return "🏅"
	case KindReflex:
		return "⚡"
	default:
		return "❓"
	}
}

// RewardSpec is the reward configuration authored alongside a game.
// Zero values fall back to the reward defaults.
type RewardSpec struct {
	Rule          string `yaml:"rule,omitempty" json:"rule,omitempty"`
	CoinsPerLevel int    `yaml:"coins_per_level,omitempty" json:"coins_per_level,omitempty"`
	Coins         int    `yaml:"coins,omitempty" json:"coins,omitempty"`
	XP            int    `yaml:"xp,omitempty" json:"xp,omitempty"`
}

// Game is one mini-game: an ordered question list plus timing and reward
// settings.
type Game struct {
	ID            string     `yaml:"id" json:"id"`
	Title         string     `yaml:"title" json:"title"`
	Subtitle      string     `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Topic         string     `yaml:"topic,omitempty" json:"topic,omitempty"`
	Kind          Kind       `yaml:"kind" json:"kind"`
	Level         int        `yaml:"level,omitempty" json:"level,omitempty"`
	Badge         string     `yaml:"badge,omitempty" json:"badge,omitempty"`
	PassThreshold int        `yaml:"pass_threshold,omitempty" json:"pass_threshold,omitempty"`
	RoundTime     int        `yaml:"round_time,omitempty" json:"round_time,omitempty"`
	Rewards       RewardSpec `yaml:"rewards,omitempty" json:"rewards,omitempty"`
	Questions     []Question `yaml:"questions" json:"questions"`
}

// Threshold returns the score needed to pass. Without an explicit
// threshold a strict majority of the questions is required.
func (g Game) Threshold() int {
	if g.PassThreshold > 0 {
		return g.PassThreshold
	}
	return len(g.Questions)/2 + 1
}

// CountdownSeconds returns the per-question countdown. Reflex games without
// an explicit round time use fallback; other kinds are untimed unless they
// set one.
func (g Game) CountdownSeconds(fallback int) int {
	if g.RoundTime > 0 {
		return g.RoundTime
	}
	if g.Kind == KindReflex {
		return fallback
	}
	return 0
}
