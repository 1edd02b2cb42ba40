package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeedTable() SeedTable {
	return SeedTable{
		ConferenceAFC: NewConferenceSeeds([]string{"DEN", "NE", "JAX", "PIT", "HOU", "BUF", "LAC"}),
		ConferenceNFC: NewConferenceSeeds([]string{"SEA", "CHI", "PHI", "CAR", "LA", "SF", "GB"}),
	}
}

func TestSeedTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(SeedTable)
		wantErr bool
	}{
		{name: "complete table", mutate: func(SeedTable) {}},
		{name: "missing conference", mutate: func(s SeedTable) { delete(s, ConferenceNFC) }, wantErr: true},
		{name: "six seeds", mutate: func(s SeedTable) { delete(s[ConferenceAFC], 7) }, wantErr: true},
		{name: "seed out of range", mutate: func(s SeedTable) {
			delete(s[ConferenceAFC], 7)
			s[ConferenceAFC][8] = "LAC"
		}, wantErr: true},
		{name: "duplicate team within conference", mutate: func(s SeedTable) { s[ConferenceAFC][7] = "DEN" }, wantErr: true},
		{name: "duplicate team across conferences", mutate: func(s SeedTable) { s[ConferenceNFC][7] = "DEN" }, wantErr: true},
		{name: "empty team", mutate: func(s SeedTable) { s[ConferenceNFC][3] = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seeds := testSeedTable()
			tt.mutate(seeds)
			err := seeds.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrIncompleteSeedTable))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSeedTableLookups(t *testing.T) {
	seeds := testSeedTable()

	conf, seed, err := seeds.SeedOf("PHI")
	require.NoError(t, err)
	assert.Equal(t, ConferenceNFC, conf)
	assert.Equal(t, 3, seed)

	_, _, err = seeds.SeedOf("KC")
	assert.ErrorIs(t, err, ErrUnknownTeam)

	team, err := seeds.Team(ConferenceAFC, 5)
	require.NoError(t, err)
	assert.Equal(t, "HOU", team)

	teams := seeds.Teams()
	require.Len(t, teams, 14)
	assert.Equal(t, "DEN", teams[0])
	assert.Equal(t, "GB", teams[13])
}

func TestRatingsSortedAndGet(t *testing.T) {
	ratings := Ratings{"A": 1500, "B": 1600, "C": 1500}

	rows := ratings.Sorted()
	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[0].Team)
	assert.Equal(t, "A", rows[1].Team)
	assert.Equal(t, "C", rows[2].Team)

	_, err := ratings.Get("Z")
	assert.ErrorIs(t, err, ErrUnknownTeam)
}

func TestNewGameTieIsNotHomeWin(t *testing.T) {
	tie := NewGame(2025, 1, testDay(), "A", "B", 20, 20)
	assert.False(t, tie.HomeWon)

	win := NewGame(2025, 1, testDay(), "A", "B", 21, 20)
	assert.True(t, win.HomeWon)
}

func testDay() time.Time {
	return time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC)
}
