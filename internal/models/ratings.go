package models

import (
	"fmt"
	"sort"
)

// Ratings maps a team to its frozen Elo rating
type Ratings map[string]float64

// TeamRating is a single row of a ratings listing
type TeamRating struct {
	Team   string  `db:"team" json:"team"`
	Rating float64 `db:"rating" json:"rating"`
}

// Get returns the rating for a team
func (r Ratings) Get(team string) (float64, error) {
	rating, ok := r[team]
	if !ok {
		return 0, fmt.Errorf("%w: no rating for %q", ErrUnknownTeam, team)
	}
	return rating, nil
}

// Clone returns an independent copy
func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for team, rating := range r {
		out[team] = rating
	}
	return out
}

// Sorted lists ratings from strongest to weakest, ties broken by team name
func (r Ratings) Sorted() []TeamRating {
	rows := make([]TeamRating, 0, len(r))
	for team, rating := range r {
		rows = append(rows, TeamRating{Team: team, Rating: rating})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}
