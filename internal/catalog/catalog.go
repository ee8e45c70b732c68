// Package catalog is the static question-data source: topic series of
// mini-games authored as YAML, validated at load time, and looked up by id.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/quizbox/internal/quiz"
)

var (
	// ErrGameNotFound is returned when no game has the requested id.
	ErrGameNotFound = errors.New("game not found")
	// ErrNoNextGame is returned by NextGame for the last game of the catalogue.
	ErrNoNextGame = errors.New("no next game")
)

// GameData is the per-game reward lookup used to override reward defaults.
// Zero fields mean "not configured".
type GameData struct {
	Coins int `yaml:"coins,omitempty" json:"coins,omitempty"`
	XP    int `yaml:"xp,omitempty" json:"xp,omitempty"`
}

// Series is one topic's ordered list of games.
type Series struct {
	Topic   string      `yaml:"topic" json:"topic"`
	Title   string      `yaml:"title" json:"title"`
	Rewards GameData    `yaml:"rewards,omitempty" json:"rewards,omitempty"`
	Games   []quiz.Game `yaml:"games" json:"games"`
}

type gameRef struct {
	series int
	index  int
}

// Catalog is an immutable, indexed set of series.
type Catalog struct {
	series []Series
	byID   map[string]gameRef
}

// New indexes series in order. Every game's Topic is set to its series
// topic. Game ids must be unique across the whole catalogue.
func New(series []Series) (*Catalog, error) {
	c := &Catalog{
		series: make([]Series, len(series)),
		byID:   make(map[string]gameRef),
	}

	var errs []error
	for si, s := range series {
		games := make([]quiz.Game, len(s.Games))
		copy(games, s.Games)
		s.Games = games
		for gi := range s.Games {
			s.Games[gi].Topic = s.Topic
			id := s.Games[gi].ID
			if prev, ok := c.byID[id]; ok {
				errs = append(errs, fmt.Errorf("duplicate game id %q in topics %q and %q",
					id, series[prev.series].Topic, s.Topic))
				continue
			}
			c.byID[id] = gameRef{series: si, index: gi}
		}
		c.series[si] = s
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalogue built from the embedded content.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		series, err := embeddedSeries()
		if err != nil {
			defaultErr = err
			return
		}
		defaultCat, defaultErr = New(series)
	})
	return defaultCat, defaultErr
}

// Game returns the game with the given id.
func (c *Catalog) Game(id string) (quiz.Game, error) {
	ref, ok := c.byID[id]
	if !ok {
		return quiz.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return c.series[ref.series].Games[ref.index], nil
}

// All returns every game in catalogue order.
func (c *Catalog) All() []quiz.Game {
	var games []quiz.Game
	for _, s := range c.series {
		games = append(games, s.Games...)
	}
	return games
}

// Series returns the series in catalogue order.
func (c *Catalog) Series() []Series {
	out := make([]Series, len(c.series))
	copy(out, c.series)
	return out
}

// Topics returns the topic keys in catalogue order.
func (c *Catalog) Topics() []string {
	topics := make([]string, len(c.series))
	for i, s := range c.series {
		topics[i] = s.Topic
	}
	return topics
}

// TopicTitle returns the display title of a topic, or the key itself.
func (c *Catalog) TopicTitle(topic string) string {
	for _, s := range c.series {
		if s.Topic == topic {
			return s.Title
		}
	}
	return topic
}

// ByTopic returns the games of one topic, or nil for an unknown topic.
func (c *Catalog) ByTopic(topic string) []quiz.Game {
	for _, s := range c.series {
		if s.Topic == topic {
			out := make([]quiz.Game, len(s.Games))
			copy(out, s.Games)
			return out
		}
	}
	return nil
}

// GameData looks up the coin and XP overrides of a game. Values authored
// on the game win over series-wide values. How Coins pays out depends on
// the game's reward rule (see rewards.Override).
func (c *Catalog) GameData(id string) (GameData, bool) {
	ref, ok := c.byID[id]
	if !ok {
		return GameData{}, false
	}
	s := c.series[ref.series]
	g := s.Games[ref.index]

	data := s.Rewards
	if g.Rewards.Coins > 0 {
		data.Coins = g.Rewards.Coins
	}
	if g.Rewards.XP > 0 {
		data.XP = g.Rewards.XP
	}
	return data, true
}

// NextGame returns the game after id: the next one in its series, or the
// first game of the following series. The last game of the catalogue has
// no successor.
func (c *Catalog) NextGame(id string) (quiz.Game, error) {
	ref, ok := c.byID[id]
	if !ok {
		return quiz.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if ref.index+1 < len(c.series[ref.series].Games) {
		return c.series[ref.series].Games[ref.index+1], nil
	}
	for si := ref.series + 1; si < len(c.series); si++ {
		if len(c.series[si].Games) > 0 {
			return c.series[si].Games[0], nil
		}
	}
	return quiz.Game{}, ErrNoNextGame
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Count returns the number of games per kind.
func (c *Catalog) Count() map[quiz.Kind]int {
	counts := make(map[quiz.Kind]int)
	for _, s := range c.series {
		for _, g := range s.Games {
			counts[g.Kind]++
		}
	}
	return counts
}

// IDs returns every game id, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
