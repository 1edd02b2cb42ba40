package models

import "time"

// Game represents a completed regular season game
type Game struct {
	Season    int       `db:"season" json:"season"`
	Week      int       `db:"week" json:"week"`
	GameDay   time.Time `db:"gameday" json:"gameday"`
	Home      string    `db:"home_team" json:"home_team"`
	Away      string    `db:"away_team" json:"away_team"`
	HomeScore int       `db:"home_score" json:"home_score"`
	AwayScore int       `db:"away_score" json:"away_score"`
	HomeWon   bool      `db:"home_won" json:"home_won"`
}

// NewGame builds a game from a final score. A tie is not a home win.
func NewGame(season, week int, gameDay time.Time, home, away string, homeScore, awayScore int) Game {
	return Game{
		Season:    season,
		Week:      week,
		GameDay:   gameDay,
		Home:      home,
		Away:      away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		HomeWon:   homeScore > awayScore,
	}
}
