package simulation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/yourusername/playoff-odds/internal/bracket"
	"github.com/yourusername/playoff-odds/internal/fsutil"
	"github.com/yourusername/playoff-odds/internal/models"
)

var oddsHeader = []string{
	"team", "conference", "seed", "rating",
	"pct_make_divisional", "pct_make_conf_champ", "pct_make_superbowl", "pct_win_superbowl",
}

var stageTitles = map[bracket.Stage]string{
	bracket.StageWildCard:               "WILD CARD ROUND",
	bracket.StageDivisional:             "DIVISIONAL ROUND",
	bracket.StageConferenceChampionship: "CONFERENCE CHAMPIONSHIP",
}

// WriteConsoleReport renders the odds table for a terminal. top limits the
// number of rows; zero or less prints every team.
func WriteConsoleReport(w io.Writer, outcome *Outcome, top int) error {
	var builder strings.Builder
	builder.WriteString("Playoff Odds\n")
	builder.WriteString("============\n")
	builder.WriteString(fmt.Sprintf("Simulations: %d (%s, workers %d)\n", outcome.Runs, outcome.Mode, outcome.Workers))
	builder.WriteString(fmt.Sprintf("Random Seed: %d\n", outcome.Seed))
	builder.WriteString(fmt.Sprintf("Home Field Advantage: %.1f\n", outcome.HFA))
	builder.WriteString(fmt.Sprintf("Champion Entropy: %.3f bits\n", ChampionEntropy(outcome.Odds)))
	if _, err := io.WriteString(w, builder.String()); err != nil {
		return err
	}

	rows := outcome.Odds
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}

	table := tablewriter.NewWriter(w)
	table.Header("Team", "Conf", "Seed", "Elo", "Divisional", "Conf Champ", "Final", "Champion", "±95%")
	for _, o := range rows {
		if err := table.Append(
			o.Team,
			string(o.Conference),
			strconv.Itoa(o.Seed),
			decimal.NewFromFloat(o.Rating).StringFixed(1),
			percent(o.Divisional),
			percent(o.ConferenceChampionship),
			percent(o.Final),
			percent(o.Champion),
			percent(o.ChampionCI95),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteRatingsTable renders ratings strongest first
func WriteRatingsTable(w io.Writer, ratings models.Ratings) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Team", "Elo")
	for i, row := range ratings.Sorted() {
		if err := table.Append(strconv.Itoa(i+1), row.Team, decimal.NewFromFloat(row.Rating).StringFixed(1)); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteOddsCSV writes one row per team with rates fixed to four decimals
func WriteOddsCSV(w io.Writer, odds []models.TeamOdds) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(oddsHeader); err != nil {
		return err
	}
	for _, o := range odds {
		record := []string{
			o.Team,
			string(o.Conference),
			strconv.Itoa(o.Seed),
			decimal.NewFromFloat(o.Rating).StringFixed(4),
			decimal.NewFromFloat(o.Divisional).StringFixed(4),
			decimal.NewFromFloat(o.ConferenceChampionship).StringFixed(4),
			decimal.NewFromFloat(o.Final).StringFixed(4),
			decimal.NewFromFloat(o.Champion).StringFixed(4),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type outcomeJSON struct {
	Runs       int               `json:"runs"`
	Seed       int64             `json:"random_seed"`
	SeedDrawn  bool              `json:"seed_drawn"`
	Workers    int               `json:"workers"`
	Mode       string            `json:"mode"`
	HFA        float64           `json:"home_field_advantage"`
	DurationMs int64             `json:"duration_ms"`
	Entropy    float64           `json:"champion_entropy_bits"`
	Odds       []models.TeamOdds `json:"odds"`
	Trace      *bracket.Result   `json:"trace,omitempty"`
}

// WriteOddsJSON writes the outcome for external renderers
func WriteOddsJSON(w io.Writer, outcome *Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomeJSON{
		Runs:       outcome.Runs,
		Seed:       outcome.Seed,
		SeedDrawn:  outcome.SeedDrawn,
		Workers:    outcome.Workers,
		Mode:       outcome.Mode,
		HFA:        outcome.HFA,
		DurationMs: outcome.Duration.Milliseconds(),
		Entropy:    ChampionEntropy(outcome.Odds),
		Odds:       outcome.Odds,
		Trace:      outcome.Trace,
	})
}

// WriteTrace renders a single tournament round by round, including the
// divisional reseeding for each conference.
func WriteTrace(w io.Writer, trace *bracket.Result) error {
	var builder strings.Builder
	var stage bracket.Stage
	var conf models.Conference

	for _, g := range trace.Games {
		if g.Stage != stage || g.Conference != conf {
			stage, conf = g.Stage, g.Conference
			if stage == bracket.StageDivisional {
				r := trace.Reseedings[conf]
				builder.WriteString(fmt.Sprintf("\n  reseeding: survivors %v → (1) vs (%d), (%d) vs (%d)\n",
					r.Survivors, r.TopSeedOpponent, r.OtherPair[0], r.OtherPair[1]))
			}
			if stage == bracket.StageFinal {
				builder.WriteString("\n--- FINAL (Neutral Site) ---\n")
			} else {
				builder.WriteString(fmt.Sprintf("\n--- %s %s ---\n", conf, stageTitles[stage]))
			}
		}

		if stage == bracket.StageFinal {
			builder.WriteString(fmt.Sprintf("  %s (%s) vs %s (%s): P(%s wins) = %.3f → Winner: %s\n",
				g.Home, models.Conferences[0], g.Away, models.Conferences[1], g.Home, g.HomeWinProbability, g.Winner))
			continue
		}
		builder.WriteString(fmt.Sprintf("  (%d) %s vs (%d) %s: P(%s wins) = %.3f → Winner: %s\n",
			g.HomeSeed, g.Home, g.AwaySeed, g.Away, g.Home, g.HomeWinProbability, g.Winner))
	}
	builder.WriteString(fmt.Sprintf("\nChampion: %s\n", trace.Champion))

	_, err := io.WriteString(w, builder.String())
	return err
}

// SaveOddsCSV writes the odds table to path atomically
func SaveOddsCSV(path string, odds []models.TeamOdds) error {
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error { return WriteOddsCSV(w, odds) })
}

// SaveOddsJSON writes the outcome to path atomically
func SaveOddsJSON(path string, outcome *Outcome) error {
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error { return WriteOddsJSON(w, outcome) })
}

// SaveTrace writes the bracket trace to path atomically
func SaveTrace(path string, trace *bracket.Result) error {
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error { return WriteTrace(w, trace) })
}

func percent(rate float64) string {
	return decimal.NewFromFloat(rate*100).StringFixed(1) + "%"
}
