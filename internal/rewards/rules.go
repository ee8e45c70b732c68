package rewards

import (
	"fmt"

	"github.com/abhisek/quizbox/internal/quiz"
)

// Rule selects how coins are derived from a score.
type Rule string

const (
	// RulePerCorrect pays CoinsPerLevel for every correct answer.
	RulePerCorrect Rule = "per-correct"
	// RuleFlat pays TotalCoins regardless of score.
	RuleFlat Rule = "flat"
	// RuleScore pays one coin per correct answer.
	RuleScore Rule = "score"
)

const (
	DefaultCoinsPerLevel = 10
	DefaultXP            = 50
)

// ParseRule parses a rule name. The empty string is RulePerCorrect.
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case "", RulePerCorrect:
		return RulePerCorrect, nil
	case RuleFlat:
		return RuleFlat, nil
	case RuleScore:
		return RuleScore, nil
	}
	return "", fmt.Errorf("unknown reward rule %q", s)
}

// Config is the resolved reward configuration for one game.
type Config struct {
	Rule          Rule
	CoinsPerLevel int
	TotalCoins    int // most coins a run can pay
	TotalXP       int
	PassThreshold int
	Badge         string
}

// Override carries catalogue-level coin and XP values. Zero fields are
// ignored. Coins is read per rule: the per-question value for
// RulePerCorrect, the total for RuleFlat. RuleScore pays the raw score and
// has no coin value to override.
type Override struct {
	Coins int
	XP    int
}

// ConfigFor resolves the reward configuration of g. Override values win
// over the game's own reward spec, which wins over the defaults.
func ConfigFor(g quiz.Game, o Override) Config {
	rule, err := ParseRule(g.Rewards.Rule)
	if err != nil {
		rule = RulePerCorrect
	}

	cpl := g.Rewards.CoinsPerLevel
	if rule == RulePerCorrect && o.Coins > 0 {
		cpl = o.Coins
	}
	if cpl <= 0 {
		cpl = DefaultCoinsPerLevel
	}

	var coins int
	switch rule {
	case RuleFlat:
		coins = o.Coins
		if coins <= 0 {
			coins = g.Rewards.Coins
		}
		if coins <= 0 {
			coins = cpl * len(g.Questions)
		}
	case RuleScore:
		coins = len(g.Questions)
	default:
		coins = cpl * len(g.Questions)
	}

	xp := o.XP
	if xp <= 0 {
		xp = g.Rewards.XP
	}
	if xp <= 0 {
		xp = DefaultXP
	}

	return Config{
		Rule:          rule,
		CoinsPerLevel: cpl,
		TotalCoins:    coins,
		TotalXP:       xp,
		PassThreshold: g.Threshold(),
		Badge:         g.Badge,
	}
}

// MaxCoins is what a perfect run over maxScore questions pays.
func (c Config) MaxCoins(maxScore int) int {
	return Compute(c, maxScore, maxScore).Coins
}

// Outcome is the reward state derived from a score.
type Outcome struct {
	Score    int
	MaxScore int
	Coins    int
	XP       int
	Accuracy float64
	Passed   bool
	Perfect  bool
	Badge    string
	Rarity   Rarity
}

// Compute derives the outcome of a score out of maxScore.
func Compute(cfg Config, score, maxScore int) Outcome {
	var accuracy float64
	if maxScore > 0 {
		accuracy = float64(score) / float64(maxScore)
	}

	threshold := cfg.PassThreshold
	if threshold <= 0 {
		threshold = maxScore/2 + 1
	}
	passed := maxScore > 0 && score >= threshold

	var coins int
	switch cfg.Rule {
	case RuleFlat:
		coins = cfg.TotalCoins
	case RuleScore:
		coins = score
	default:
		coins = score * cfg.CoinsPerLevel
	}

	out := Outcome{
		Score:    score,
		MaxScore: maxScore,
		Coins:    coins,
		XP:       cfg.TotalXP,
		Accuracy: accuracy,
		Passed:   passed,
		Perfect:  maxScore > 0 && score == maxScore,
		Rarity:   AccuracyRarity(accuracy),
	}
	if passed {
		out.Badge = cfg.Badge
	}
	return out
}
