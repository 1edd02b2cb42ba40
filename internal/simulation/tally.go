package simulation

import (
	"sort"

	"github.com/yourusername/playoff-odds/internal/bracket"
	"github.com/yourusername/playoff-odds/internal/models"
)

// StageCounts counts how often a team reached each stage
type StageCounts struct {
	Divisional             int `json:"divisional"`
	ConferenceChampionship int `json:"conference_championship"`
	Final                  int `json:"final"`
	Champion               int `json:"champion"`
}

// Tally accumulates tournament outcomes. It is not safe for concurrent use;
// workers keep their own and merge after joining.
type Tally struct {
	runs   int
	counts map[string]*StageCounts
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{counts: make(map[string]*StageCounts)}
}

// Record counts one tournament. A team is counted at most once per stage.
func (t *Tally) Record(result *bracket.Result) {
	t.runs++

	reached := map[bracket.Stage]map[string]bool{
		bracket.StageDivisional:             {},
		bracket.StageConferenceChampionship: {},
		bracket.StageFinal:                  {},
	}
	for _, game := range result.Games {
		if seen, ok := reached[game.Stage]; ok {
			seen[game.Home] = true
			seen[game.Away] = true
		}
	}

	for team := range reached[bracket.StageDivisional] {
		t.entry(team).Divisional++
	}
	for team := range reached[bracket.StageConferenceChampionship] {
		t.entry(team).ConferenceChampionship++
	}
	for team := range reached[bracket.StageFinal] {
		t.entry(team).Final++
	}
	if result.Champion != "" {
		t.entry(result.Champion).Champion++
	}
}

// Merge adds another tally's counts into t
func (t *Tally) Merge(other *Tally) {
	t.runs += other.runs
	for team, c := range other.counts {
		e := t.entry(team)
		e.Divisional += c.Divisional
		e.ConferenceChampionship += c.ConferenceChampionship
		e.Final += c.Final
		e.Champion += c.Champion
	}
}

// Runs returns the number of recorded tournaments
func (t *Tally) Runs() int {
	return t.runs
}

// Counts returns the raw counts for a team
func (t *Tally) Counts(team string) StageCounts {
	if c, ok := t.counts[team]; ok {
		return *c
	}
	return StageCounts{}
}

// Odds converts counts into rates for every seeded team, sorted by
// championship rate with conference and seed order breaking ties.
func (t *Tally) Odds(seeds models.SeedTable, ratings models.Ratings) []models.TeamOdds {
	odds := make([]models.TeamOdds, 0, len(models.Conferences)*models.SeedsPerConference)
	for _, conf := range models.Conferences {
		for seed := 1; seed <= models.SeedsPerConference; seed++ {
			team, ok := seeds[conf][seed]
			if !ok {
				continue
			}
			c := t.Counts(team)
			champion := t.rate(c.Champion)
			odds = append(odds, models.TeamOdds{
				Team:                   team,
				Conference:             conf,
				Seed:                   seed,
				Rating:                 ratings[team],
				Divisional:             t.rate(c.Divisional),
				ConferenceChampionship: t.rate(c.ConferenceChampionship),
				Final:                  t.rate(c.Final),
				Champion:               champion,
				ChampionCI95:           ConfidenceHalfWidth(champion, t.runs, 0.95),
			})
		}
	}
	sort.SliceStable(odds, func(i, j int) bool {
		return odds[i].Champion > odds[j].Champion
	})
	return odds
}

func (t *Tally) rate(count int) float64 {
	if t.runs == 0 {
		return 0
	}
	return float64(count) / float64(t.runs)
}

func (t *Tally) entry(team string) *StageCounts {
	c, ok := t.counts[team]
	if !ok {
		c = &StageCounts{}
		t.counts[team] = c
	}
	return c
}
