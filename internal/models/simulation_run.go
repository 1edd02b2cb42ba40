package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamOdds holds the simulated advancement rates for a single team
type TeamOdds struct {
	Team                   string     `db:"team" json:"team"`
	Conference             Conference `db:"conference" json:"conference"`
	Seed                   int        `db:"seed" json:"seed"`
	Rating                 float64    `db:"rating" json:"rating"`
	Divisional             float64    `db:"pct_make_divisional" json:"pct_make_divisional"`
	ConferenceChampionship float64    `db:"pct_make_conf_champ" json:"pct_make_conf_champ"`
	Final                  float64    `db:"pct_make_superbowl" json:"pct_make_superbowl"`
	Champion               float64    `db:"pct_win_superbowl" json:"pct_win_superbowl"`
	ChampionCI95           float64    `db:"win_superbowl_ci95" json:"win_superbowl_ci95"`
}

// SimulationRun represents one persisted Monte Carlo aggregation
type SimulationRun struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Season             int        `db:"season" json:"season"`
	Runs               int        `db:"runs" json:"runs"`
	RandomSeed         int64      `db:"random_seed" json:"random_seed"`
	HomeFieldAdvantage float64    `db:"home_field_advantage" json:"home_field_advantage"`
	Workers            int        `db:"workers" json:"workers"`
	Champion           string     `db:"champion" json:"champion,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	Odds               []TeamOdds `db:"odds" json:"odds"`
}
