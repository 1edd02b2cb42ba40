// Package elo implements the Elo rating engine and the win probability model.
package elo

import (
	"fmt"
	"math"

	"github.com/yourusername/playoff-odds/internal/models"
)

// eloScale is the rating difference that corresponds to 10:1 odds
const eloScale = 400.0

// WinProbability returns the probability that the home team wins.
// On a neutral field the home-field advantage is ignored.
func WinProbability(ratingHome, ratingAway, hfa float64, neutral bool) float64 {
	diff := ratingHome + hfa - ratingAway
	if neutral {
		diff = ratingHome - ratingAway
	}
	return 1.0 / (1.0 + math.Pow(10, -diff/eloScale))
}

// CheckedWinProbability is WinProbability that rejects results outside (0,1),
// which only happens for non-finite or absurdly large ratings.
func CheckedWinProbability(ratingHome, ratingAway, hfa float64, neutral bool) (float64, error) {
	p := WinProbability(ratingHome, ratingAway, hfa, neutral)
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: win probability %v from ratings %v vs %v (hfa %v)",
			models.ErrInvalidParameter, p, ratingHome, ratingAway, hfa)
	}
	return p, nil
}
