package models

import (
	"fmt"
	"sort"
)

// Conference identifies one half of the playoff bracket
type Conference string

// Conference values
const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

// Conferences is the fixed order in which conferences are simulated.
// The first conference's champion is listed as home in the final.
var Conferences = []Conference{ConferenceAFC, ConferenceNFC}

// SeedsPerConference is the number of playoff teams per conference
const SeedsPerConference = 7

// ConferenceSeeds maps seed number (1 best) to team
type ConferenceSeeds map[int]string

// SeedTable holds the fixed playoff field for both conferences
type SeedTable map[Conference]ConferenceSeeds

// NewConferenceSeeds builds seeds from an ordered list where index 0 is seed 1
func NewConferenceSeeds(teams []string) ConferenceSeeds {
	seeds := make(ConferenceSeeds, len(teams))
	for i, team := range teams {
		seeds[i+1] = team
	}
	return seeds
}

// Validate checks that each conference has exactly seeds 1..7 with distinct teams
func (s SeedTable) Validate() error {
	if len(s) != len(Conferences) {
		return fmt.Errorf("%w: expected %d conferences, got %d", ErrIncompleteSeedTable, len(Conferences), len(s))
	}

	seen := make(map[string]Conference)
	for _, conf := range Conferences {
		seeds, ok := s[conf]
		if !ok {
			return fmt.Errorf("%w: missing conference %s", ErrIncompleteSeedTable, conf)
		}
		if len(seeds) != SeedsPerConference {
			return fmt.Errorf("%w: %s has %d seeds, want %d", ErrIncompleteSeedTable, conf, len(seeds), SeedsPerConference)
		}
		for seed := 1; seed <= SeedsPerConference; seed++ {
			team, ok := seeds[seed]
			if !ok || team == "" {
				return fmt.Errorf("%w: %s seed %d is not assigned", ErrIncompleteSeedTable, conf, seed)
			}
			if other, dup := seen[team]; dup {
				return fmt.Errorf("%w: team %q seeded twice (%s and %s)", ErrIncompleteSeedTable, team, other, conf)
			}
			seen[team] = conf
		}
	}
	return nil
}

// Team returns the team holding a seed
func (s SeedTable) Team(conf Conference, seed int) (string, error) {
	team, ok := s[conf][seed]
	if !ok {
		return "", fmt.Errorf("%w: %s seed %d is not assigned", ErrIncompleteSeedTable, conf, seed)
	}
	return team, nil
}

// SeedOf returns the conference and seed of a team
func (s SeedTable) SeedOf(team string) (Conference, int, error) {
	for _, conf := range Conferences {
		for seed, t := range s[conf] {
			if t == team {
				return conf, seed, nil
			}
		}
	}
	return "", 0, fmt.Errorf("%w: %q is not seeded", ErrUnknownTeam, team)
}

// Teams lists every seeded team in conference then seed order
func (s SeedTable) Teams() []string {
	teams := make([]string, 0, len(Conferences)*SeedsPerConference)
	for _, conf := range Conferences {
		seeds := make([]int, 0, len(s[conf]))
		for seed := range s[conf] {
			seeds = append(seeds, seed)
		}
		sort.Ints(seeds)
		for _, seed := range seeds {
			teams = append(teams, s[conf][seed])
		}
	}
	return teams
}
