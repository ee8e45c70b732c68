package rewards

import "time"

// AwardType identifies the category of reward.
type AwardType string

const (
	AwardCompletion AwardType = "completion"
	AwardBadge      AwardType = "badge"
	AwardPerfect    AwardType = "perfect"
)

// AllAwardTypes returns all award types in display order.
func AllAwardTypes() []AwardType {
	return []AwardType{AwardCompletion, AwardBadge, AwardPerfect}
}

// DisplayName returns a human-readable label for the award type.
func (t AwardType) DisplayName() string {
	switch t {
	case AwardCompletion:
		return "Completion"
	case AwardBadge:
		return "Badge"
	case AwardPerfect:
		return "Perfect Score"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the award type.
func (t AwardType) Icon() string {
	switch t {
	case AwardCompletion:
		return "🪙"
	case AwardBadge:
		return "🏅"
	case AwardPerfect:
		return "🌟"
	default:
		return "✦"
	}
}

// Rarity grades an award by how well the game went.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// AccuracyRarity returns the rarity for a game accuracy (0.0-1.0).
func AccuracyRarity(accuracy float64) Rarity {
	switch {
	case accuracy >= 0.90:
		return RarityLegendary
	case accuracy >= 0.75:
		return RarityEpic
	case accuracy >= 0.50:
		return RarityRare
	default:
		return RarityCommon
	}
}

// Award is a single reward granted at the end of a game.
type Award struct {
	Type      AwardType
	Rarity    Rarity
	GameID    string
	GameTitle string
	SessionID string
	Badge     string
	Reason    string
	Coins     int
	XP        int
	AwardedAt time.Time
}

// Wallet is the running total of everything earned.
type Wallet struct {
	Coins  int
	XP     int
	Badges int
}
