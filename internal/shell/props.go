// Package shell is the host around a running quiz: it derives the display
// props, keeps the reward bookkeeping for a play, and resolves where to go
// next.
package shell

import (
	"github.com/abhisek/quizbox/internal/feedback"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/rewards"
	"github.com/abhisek/quizbox/internal/session"
)

// Props is everything the front-end needs to draw the chrome around a
// game.
type Props struct {
	Title    string
	Subtitle string
	GameID   string
	GameType quiz.Kind

	Score        int
	MaxScore     int
	TotalLevels  int
	CurrentLevel int // 1-based

	CoinsPerLevel int
	TotalCoins    int // coins earned so far under the game's reward rule
	MaxCoins      int // coins a perfect run pays
	TotalXP       int

	ShowGameOver bool
	ShowConfetti bool

	// Transient answer feedback.
	FlashPoints     int
	FlashTotalCoins bool

	// TimeLeft is the countdown in seconds, zero for untimed games.
	TimeLeft int

	NextGamePath string
	NextGameID   string
	BackPath     string
}

// GamePath returns the navigation path of a game.
func GamePath(g quiz.Game) string {
	return TopicPath(g.Topic) + "/" + g.ID
}

// TopicPath returns the navigation path of a topic listing.
func TopicPath(topic string) string {
	if topic == "" {
		return "/games"
	}
	return "/games/" + topic
}

// Props derives the display props of p from a runner snapshot and the
// current feedback state.
func (p *Play) Props(st session.State, fx feedback.State) Props {
	out := rewards.Compute(p.Config, st.Score, st.Total)

	level := st.CurrentIndex + 1
	if level > st.Total {
		level = st.Total
	}

	props := Props{
		Title:         p.Game.Title,
		Subtitle:      p.Game.Subtitle,
		GameID:        p.Game.ID,
		GameType:      p.Game.Kind,
		Score:         st.Score,
		MaxScore:      st.Total,
		TotalLevels:   st.Total,
		CurrentLevel:  level,
		CoinsPerLevel: p.Config.CoinsPerLevel,
		TotalCoins:    out.Coins,
		MaxCoins:      p.Config.MaxCoins(st.Total),
		TotalXP:       p.Config.TotalXP,
		ShowGameOver:  st.Finished(),
		ShowConfetti:  fx.ShowAnswerConfetti || (st.Finished() && out.Passed),
		BackPath:      TopicPath(p.Game.Topic),
	}
	if fx.Flashing {
		props.FlashPoints = fx.FlashPoints
		props.FlashTotalCoins = fx.FlashTotalCoins
	}
	if st.Phase == session.PhasePlaying {
		props.TimeLeft = st.TimeLeft
	}
	if p.Next != nil {
		props.NextGameID = p.Next.ID
		props.NextGamePath = GamePath(*p.Next)
	}
	return props
}
