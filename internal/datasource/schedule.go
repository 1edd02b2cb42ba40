package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/playoff-odds/internal/models"
)

// RegularSeason is the game_type of regular-season games
const RegularSeason = "REG"

var requiredColumns = []string{
	"season", "game_type", "week", "gameday", "home_team", "away_team", "home_score", "away_score",
}

// ParseSchedule reads an nflverse-style games CSV and returns the completed
// regular-season games of season, stably sorted by game day.
func ParseSchedule(source string, r io.Reader, season int) ([]models.Game, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, NewDataSourceError(source, ErrCodeInvalidData, "failed to read header", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("missing column %q", name), ErrInvalidData)
		}
	}

	games := make([]models.Game, 0, 300)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d", line), err)
		}

		field := func(name string) string { return strings.TrimSpace(record[cols[name]]) }

		if field("game_type") != RegularSeason {
			continue
		}
		rowSeason, err := strconv.Atoi(field("season"))
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d: bad season", line), err)
		}
		if rowSeason != season {
			continue
		}
		homeRaw, awayRaw := field("home_score"), field("away_score")
		if missing(homeRaw) || missing(awayRaw) {
			continue
		}

		game, err := parseGame(rowSeason, field("week"), field("gameday"), field("home_team"), field("away_team"), homeRaw, awayRaw)
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d", line), err)
		}
		games = append(games, game)
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].GameDay.Before(games[j].GameDay)
	})
	return games, nil
}

func parseGame(season int, weekRaw, dayRaw, home, away, homeRaw, awayRaw string) (models.Game, error) {
	week, err := strconv.Atoi(weekRaw)
	if err != nil {
		return models.Game{}, fmt.Errorf("bad week %q: %w", weekRaw, err)
	}
	day, err := time.Parse("2006-01-02", dayRaw)
	if err != nil {
		return models.Game{}, fmt.Errorf("bad gameday %q: %w", dayRaw, err)
	}
	if home == "" || away == "" {
		return models.Game{}, fmt.Errorf("%w: empty team on %s", ErrInvalidData, dayRaw)
	}
	homeScore, err := parseScore(homeRaw)
	if err != nil {
		return models.Game{}, err
	}
	awayScore, err := parseScore(awayRaw)
	if err != nil {
		return models.Game{}, err
	}
	return models.NewGame(season, week, day, home, away, homeScore, awayScore), nil
}

// parseScore accepts integer scores, including the "24.0" form some exports use
func parseScore(raw string) (int, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("bad score %q: %w", raw, err)
	}
	return int(f), nil
}

func missing(v string) bool {
	return v == "" || v == "NA"
}
