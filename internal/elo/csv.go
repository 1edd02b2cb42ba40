package elo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/playoff-odds/internal/fsutil"
	"github.com/yourusername/playoff-odds/internal/models"
)

var ratingsHeader = []string{"team", "final_elo"}

var gameLogHeader = []string{
	"gameday", "home_team", "away_team", "home_score", "away_score",
	"elo_home_before", "elo_away_before", "p_home_win", "actual_home_win",
	"delta", "elo_home_after", "elo_away_after",
}

// WriteRatingsCSV writes ratings as team,final_elo sorted strongest first
func WriteRatingsCSV(w io.Writer, ratings models.Ratings) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ratingsHeader); err != nil {
		return err
	}
	for _, row := range ratings.Sorted() {
		if err := cw.Write([]string{row.Team, strconv.FormatFloat(row.Rating, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRatingsCSV parses a team,final_elo file
func ReadRatingsCSV(r io.Reader) (models.Ratings, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ratings: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ratings file is empty")
	}

	teamCol, ratingCol := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "team":
			teamCol = i
		case "final_elo", "rating":
			ratingCol = i
		}
	}
	if teamCol < 0 || ratingCol < 0 {
		return nil, fmt.Errorf("ratings header must contain team and final_elo, got %v", records[0])
	}

	ratings := make(models.Ratings, len(records)-1)
	for line, record := range records[1:] {
		team := strings.TrimSpace(record[teamCol])
		value, err := strconv.ParseFloat(strings.TrimSpace(record[ratingCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d rating for %q: %v", models.ErrInvalidParameter, line+2, team, err)
		}
		if _, dup := ratings[team]; dup {
			return nil, fmt.Errorf("%w: duplicate rating for %q", models.ErrInvalidParameter, team)
		}
		ratings[team] = value
	}
	return ratings, nil
}

// WriteGameLogCSV writes the per-game rating log
func WriteGameLogCSV(w io.Writer, entries []GameLogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gameLogHeader); err != nil {
		return err
	}
	for _, e := range entries {
		actual := "0"
		if e.HomeWon {
			actual = "1"
		}
		record := []string{
			e.GameDay.Format("2006-01-02"),
			e.Home,
			e.Away,
			strconv.Itoa(e.HomeScore),
			strconv.Itoa(e.AwayScore),
			formatFloat(e.HomeBefore),
			formatFloat(e.AwayBefore),
			formatFloat(e.HomeWinProb),
			actual,
			formatFloat(e.Delta),
			formatFloat(e.HomeAfter),
			formatFloat(e.AwayAfter),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveRatingsFile writes ratings to path atomically
func SaveRatingsFile(path string, ratings models.Ratings) error {
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error { return WriteRatingsCSV(w, ratings) })
}

// LoadRatingsFile reads ratings from path
func LoadRatingsFile(path string) (models.Ratings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings file: %w", err)
	}
	defer f.Close()
	return ReadRatingsCSV(f)
}

// SaveGameLogFile writes the game log to path atomically
func SaveGameLogFile(path string, entries []GameLogEntry) error {
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error { return WriteGameLogCSV(w, entries) })
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
