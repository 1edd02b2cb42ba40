package elo

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/playoff-odds/internal/models"
)

// Default rating parameters
const (
	DefaultInitialRating      = 1500.0
	DefaultKFactor            = 30.0
	DefaultHomeFieldAdvantage = 55.0
)

// Params configures a rating build
type Params struct {
	Initial float64
	K       float64
	HFA     float64
}

// DefaultParams returns the standard NFL Elo parameters
func DefaultParams() Params {
	return Params{
		Initial: DefaultInitialRating,
		K:       DefaultKFactor,
		HFA:     DefaultHomeFieldAdvantage,
	}
}

// Validate validates rating parameters
func (p Params) Validate() error {
	if !(p.K > 0) || math.IsInf(p.K, 0) {
		return fmt.Errorf("%w: k-factor must be positive, got %v", models.ErrInvalidParameter, p.K)
	}
	if math.IsNaN(p.HFA) || math.IsInf(p.HFA, 0) {
		return fmt.Errorf("%w: home field advantage must be finite, got %v", models.ErrInvalidParameter, p.HFA)
	}
	if math.IsNaN(p.Initial) || math.IsInf(p.Initial, 0) {
		return fmt.Errorf("%w: initial rating must be finite, got %v", models.ErrInvalidParameter, p.Initial)
	}
	return nil
}

// GameLogEntry records the effect of one game on both ratings
type GameLogEntry struct {
	GameDay     time.Time `json:"gameday"`
	Home        string    `json:"home_team"`
	Away        string    `json:"away_team"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`
	HomeBefore  float64   `json:"elo_home_before"`
	AwayBefore  float64   `json:"elo_away_before"`
	HomeWinProb float64   `json:"p_home_win"`
	HomeWon     bool      `json:"actual_home_win"`
	Delta       float64   `json:"delta"`
	HomeAfter   float64   `json:"elo_home_after"`
	AwayAfter   float64   `json:"elo_away_after"`
}

// Engine holds the working ratings while games are applied
type Engine struct {
	params  Params
	ratings map[string]float64
	log     []GameLogEntry
}

// NewEngine creates an engine with every roster team at the initial rating
func NewEngine(roster []string, params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ratings := make(map[string]float64, len(roster))
	for _, team := range roster {
		ratings[team] = params.Initial
	}
	return &Engine{params: params, ratings: ratings}, nil
}

// Process applies a single game. The transfer is zero-sum.
func (e *Engine) Process(game models.Game) (GameLogEntry, error) {
	home, ok := e.ratings[game.Home]
	if !ok {
		return GameLogEntry{}, fmt.Errorf("%w: home team %q (%s)", models.ErrUnknownTeam, game.Home, game.GameDay.Format("2006-01-02"))
	}
	away, ok := e.ratings[game.Away]
	if !ok {
		return GameLogEntry{}, fmt.Errorf("%w: away team %q (%s)", models.ErrUnknownTeam, game.Away, game.GameDay.Format("2006-01-02"))
	}

	expected := WinProbability(home, away, e.params.HFA, false)
	actual := 0.0
	if game.HomeWon {
		actual = 1.0
	}
	delta := e.params.K * (actual - expected)

	e.ratings[game.Home] = home + delta
	e.ratings[game.Away] = away - delta

	entry := GameLogEntry{
		GameDay:     game.GameDay,
		Home:        game.Home,
		Away:        game.Away,
		HomeScore:   game.HomeScore,
		AwayScore:   game.AwayScore,
		HomeBefore:  home,
		AwayBefore:  away,
		HomeWinProb: expected,
		HomeWon:     game.HomeWon,
		Delta:       delta,
		HomeAfter:   home + delta,
		AwayAfter:   away - delta,
	}
	e.log = append(e.log, entry)
	return entry, nil
}

// Ratings freezes the current ratings into a read-only copy
func (e *Engine) Ratings() models.Ratings {
	return models.Ratings(e.ratings).Clone()
}

// Log returns the per-game log in processing order
func (e *Engine) Log() []GameLogEntry {
	return append([]GameLogEntry(nil), e.log...)
}

// ComputeRatings processes games in the given order and returns the final ratings.
// A nil roster is derived from the teams that appear in the games.
func ComputeRatings(games []models.Game, roster []string, params Params) (models.Ratings, []GameLogEntry, error) {
	if roster == nil {
		roster = RosterFromGames(games)
	}
	engine, err := NewEngine(roster, params)
	if err != nil {
		return nil, nil, err
	}
	for _, game := range games {
		if _, err := engine.Process(game); err != nil {
			return nil, nil, err
		}
	}
	return engine.Ratings(), engine.Log(), nil
}

// RosterFromGames lists each team that appears in the games, in first-seen order
func RosterFromGames(games []models.Game) []string {
	seen := make(map[string]bool)
	roster := make([]string, 0, 32)
	for _, game := range games {
		for _, team := range []string{game.Home, game.Away} {
			if !seen[team] {
				seen[team] = true
				roster = append(roster, team)
			}
		}
	}
	return roster
}
