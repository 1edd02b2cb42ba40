// Package bracket simulates a single reseeding NFL playoff tournament.
package bracket

import (
	"fmt"
	"sort"

	"github.com/yourusername/playoff-odds/internal/elo"
	"github.com/yourusername/playoff-odds/internal/models"
)

// Draw returns a uniform random number in [0,1). rand.Rand.Float64 satisfies it.
type Draw func() float64

// Stage identifies a playoff round
type Stage string

// Stage values
const (
	StageWildCard               Stage = "wild_card"
	StageDivisional             Stage = "divisional"
	StageConferenceChampionship Stage = "conference_championship"
	StageFinal                  Stage = "final"
)

// GamesPerTournament is the number of games in a full bracket
const GamesPerTournament = 13

// wildCardPairings are the fixed (home, away) seed pairs; seed 1 has a bye
var wildCardPairings = [3][2]int{{2, 7}, {3, 6}, {4, 5}}

// Matchup is a single simulated game
type Matchup struct {
	Stage              Stage             `json:"stage"`
	Conference         models.Conference `json:"conference,omitempty"`
	Home               string            `json:"home"`
	Away               string            `json:"away"`
	HomeSeed           int               `json:"home_seed"`
	AwaySeed           int               `json:"away_seed"`
	HomeWinProbability float64           `json:"home_win_probability"`
	Neutral            bool              `json:"neutral"`
	Winner             string            `json:"winner"`
}

// Loser returns the team that did not win
func (m Matchup) Loser() string {
	if m.Winner == m.Home {
		return m.Away
	}
	return m.Home
}

// Reseeding records how the divisional round was paired
type Reseeding struct {
	Survivors       []int  `json:"survivors"`
	TopSeedOpponent int    `json:"top_seed_opponent"`
	OtherPair       [2]int `json:"other_pair"`
}

// Result is the full trace of one tournament
type Result struct {
	Games               []Matchup                       `json:"games"`
	WildCardWinners     map[models.Conference][]string  `json:"wild_card_winners"`
	DivisionalWinners   map[models.Conference][]string  `json:"divisional_winners"`
	ConferenceChampions map[models.Conference]string    `json:"conference_champions"`
	Reseedings          map[models.Conference]Reseeding `json:"reseedings"`
	Champion            string                          `json:"champion"`
}

// Reseed pairs the divisional round from the four surviving seeds. The top seed
// hosts the worst surviving seed; of the other two the better seed hosts.
func Reseed(seeds []int) (Reseeding, error) {
	if len(seeds) != 4 {
		return Reseeding{}, fmt.Errorf("%w: reseeding needs 4 surviving seeds, got %d", models.ErrInvalidParameter, len(seeds))
	}
	sorted := append([]int(nil), seeds...)
	sort.Ints(sorted)
	for i, s := range sorted {
		if s < 1 || s > models.SeedsPerConference {
			return Reseeding{}, fmt.Errorf("%w: seed %d out of range", models.ErrInvalidParameter, s)
		}
		if i > 0 && sorted[i-1] == s {
			return Reseeding{}, fmt.Errorf("%w: seed %d survives twice", models.ErrInvalidParameter, s)
		}
	}
	if sorted[0] != 1 {
		return Reseeding{}, fmt.Errorf("%w: top seed missing from survivors %v", models.ErrInvalidParameter, sorted)
	}

	return Reseeding{
		Survivors:       sorted,
		TopSeedOpponent: sorted[3],
		OtherPair:       [2]int{sorted[1], sorted[2]},
	}, nil
}

// Simulate plays one tournament. Each game consumes exactly one draw.
func Simulate(seeds models.SeedTable, ratings models.Ratings, draw Draw, hfa float64) (*Result, error) {
	if err := seeds.Validate(); err != nil {
		return nil, err
	}
	for _, team := range seeds.Teams() {
		if _, err := ratings.Get(team); err != nil {
			return nil, err
		}
	}

	s := &simulator{
		seeds:   seeds,
		ratings: ratings,
		draw:    draw,
		hfa:     hfa,
		result: &Result{
			Games:               make([]Matchup, 0, GamesPerTournament),
			WildCardWinners:     make(map[models.Conference][]string, len(models.Conferences)),
			DivisionalWinners:   make(map[models.Conference][]string, len(models.Conferences)),
			ConferenceChampions: make(map[models.Conference]string, len(models.Conferences)),
			Reseedings:          make(map[models.Conference]Reseeding, len(models.Conferences)),
		},
	}

	champions := make([]string, 0, len(models.Conferences))
	champSeeds := make([]int, 0, len(models.Conferences))
	for _, conf := range models.Conferences {
		champ, seed, err := s.conference(conf)
		if err != nil {
			return nil, err
		}
		champions = append(champions, champ)
		champSeeds = append(champSeeds, seed)
	}

	// the first conference's champion is listed as home on a neutral field
	final, err := s.play(StageFinal, "", champions[0], champions[1], champSeeds[0], champSeeds[1], true)
	if err != nil {
		return nil, err
	}
	s.result.Champion = final.Winner
	return s.result, nil
}

type simulator struct {
	seeds   models.SeedTable
	ratings models.Ratings
	draw    Draw
	hfa     float64
	result  *Result
}

func (s *simulator) conference(conf models.Conference) (string, int, error) {
	survivors := []int{1}
	wildCard := make([]string, 0, len(wildCardPairings))
	for _, pair := range wildCardPairings {
		m, err := s.playSeeds(StageWildCard, conf, pair[0], pair[1])
		if err != nil {
			return "", 0, err
		}
		wildCard = append(wildCard, m.Winner)
		survivors = append(survivors, s.winnerSeed(m))
	}
	s.result.WildCardWinners[conf] = wildCard

	reseeding, err := Reseed(survivors)
	if err != nil {
		return "", 0, err
	}
	s.result.Reseedings[conf] = reseeding

	first, err := s.playSeeds(StageDivisional, conf, 1, reseeding.TopSeedOpponent)
	if err != nil {
		return "", 0, err
	}
	second, err := s.playSeeds(StageDivisional, conf, reseeding.OtherPair[0], reseeding.OtherPair[1])
	if err != nil {
		return "", 0, err
	}
	s.result.DivisionalWinners[conf] = []string{first.Winner, second.Winner}

	a, b := s.winnerSeed(first), s.winnerSeed(second)
	if b < a {
		a, b = b, a
	}
	champ, err := s.playSeeds(StageConferenceChampionship, conf, a, b)
	if err != nil {
		return "", 0, err
	}
	s.result.ConferenceChampions[conf] = champ.Winner
	return champ.Winner, s.winnerSeed(champ), nil
}

// playSeeds plays a non-neutral game hosted by homeSeed
func (s *simulator) playSeeds(stage Stage, conf models.Conference, homeSeed, awaySeed int) (Matchup, error) {
	home := s.seeds[conf][homeSeed]
	away := s.seeds[conf][awaySeed]
	return s.play(stage, conf, home, away, homeSeed, awaySeed, false)
}

func (s *simulator) play(stage Stage, conf models.Conference, home, away string, homeSeed, awaySeed int, neutral bool) (Matchup, error) {
	p, err := elo.CheckedWinProbability(s.ratings[home], s.ratings[away], s.hfa, neutral)
	if err != nil {
		return Matchup{}, fmt.Errorf("%s %s vs %s: %w", stage, home, away, err)
	}

	m := Matchup{
		Stage:              stage,
		Conference:         conf,
		Home:               home,
		Away:               away,
		HomeSeed:           homeSeed,
		AwaySeed:           awaySeed,
		HomeWinProbability: p,
		Neutral:            neutral,
		Winner:             away,
	}
	if s.draw() < p {
		m.Winner = home
	}
	s.result.Games = append(s.result.Games, m)
	return m, nil
}

func (s *simulator) winnerSeed(m Matchup) int {
	if m.Winner == m.Home {
		return m.HomeSeed
	}
	return m.AwaySeed
}
