package bracket

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/playoff-odds/internal/models"
)

func testSeeds() models.SeedTable {
	return models.SeedTable{
		models.ConferenceAFC: models.NewConferenceSeeds([]string{"DEN", "NE", "JAX", "PIT", "HOU", "BUF", "LAC"}),
		models.ConferenceNFC: models.NewConferenceSeeds([]string{"SEA", "CHI", "PHI", "CAR", "LA", "SF", "GB"}),
	}
}

func equalRatings(seeds models.SeedTable) models.Ratings {
	ratings := make(models.Ratings)
	for _, team := range seeds.Teams() {
		ratings[team] = 1500
	}
	return ratings
}

// scripted replays fixed draws and then keeps returning zero (home wins)
func scripted(values ...float64) (Draw, *int) {
	calls := 0
	return func() float64 {
		calls++
		if calls <= len(values) {
			return values[calls-1]
		}
		return 0
	}, &calls
}

func constant(v float64) Draw {
	return func() float64 { return v }
}

func TestReseed(t *testing.T) {
	tests := []struct {
		name      string
		survivors []int
		wantTop   int
		wantPair  [2]int
	}{
		{name: "chalk", survivors: []int{1, 2, 3, 4}, wantTop: 4, wantPair: [2]int{2, 3}},
		{name: "mixed", survivors: []int{1, 7, 6, 4}, wantTop: 7, wantPair: [2]int{4, 6}},
		{name: "all upsets", survivors: []int{1, 5, 6, 7}, wantTop: 7, wantPair: [2]int{5, 6}},
		{name: "unsorted input", survivors: []int{3, 1, 5, 2}, wantTop: 5, wantPair: [2]int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Reseed(tt.survivors)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTop, r.TopSeedOpponent)
			assert.Equal(t, tt.wantPair, r.OtherPair)
			assert.Len(t, r.Survivors, 4)
		})
	}
}

func TestReseedRejectsBadSurvivors(t *testing.T) {
	tests := []struct {
		name      string
		survivors []int
	}{
		{name: "three seeds", survivors: []int{1, 2, 3}},
		{name: "no top seed", survivors: []int{2, 3, 4, 5}},
		{name: "duplicate", survivors: []int{1, 2, 2, 4}},
		{name: "out of range", survivors: []int{1, 2, 3, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reseed(tt.survivors)
			assert.ErrorIs(t, err, models.ErrInvalidParameter)
		})
	}
}

func TestSimulateHomeAlwaysWins(t *testing.T) {
	seeds := testSeeds()
	draw, calls := scripted()

	result, err := Simulate(seeds, equalRatings(seeds), draw, 55)
	require.NoError(t, err)

	assert.Equal(t, GamesPerTournament, *calls)
	require.Len(t, result.Games, GamesPerTournament)
	assert.Equal(t, []string{"NE", "JAX", "PIT"}, result.WildCardWinners[models.ConferenceAFC])
	assert.Equal(t, Reseeding{Survivors: []int{1, 2, 3, 4}, TopSeedOpponent: 4, OtherPair: [2]int{2, 3}},
		result.Reseedings[models.ConferenceAFC])
	assert.Equal(t, []string{"DEN", "NE"}, result.DivisionalWinners[models.ConferenceAFC])
	assert.Equal(t, "DEN", result.ConferenceChampions[models.ConferenceAFC])
	assert.Equal(t, "SEA", result.ConferenceChampions[models.ConferenceNFC])
	assert.Equal(t, "DEN", result.Champion)

	final := result.Games[12]
	assert.Equal(t, StageFinal, final.Stage)
	assert.True(t, final.Neutral)
	assert.Equal(t, "DEN", final.Home)
	assert.Equal(t, "SEA", final.Away)
	assert.InDelta(t, 0.5, final.HomeWinProbability, 1e-12)
}

func TestSimulateAwayAlwaysWins(t *testing.T) {
	seeds := testSeeds()

	result, err := Simulate(seeds, equalRatings(seeds), constant(0.99), 55)
	require.NoError(t, err)

	assert.Equal(t, []string{"LAC", "BUF", "HOU"}, result.WildCardWinners[models.ConferenceAFC])
	assert.Equal(t, 7, result.Reseedings[models.ConferenceAFC].TopSeedOpponent)
	assert.Equal(t, [2]int{5, 6}, result.Reseedings[models.ConferenceAFC].OtherPair)

	// divisional: 1 hosts 7, 5 hosts 6
	div := result.Games[3:5]
	assert.Equal(t, "DEN", div[0].Home)
	assert.Equal(t, "LAC", div[0].Away)
	assert.Equal(t, "HOU", div[1].Home)
	assert.Equal(t, "BUF", div[1].Away)

	// conference championship hosted by the better surviving seed
	cc := result.Games[5]
	assert.Equal(t, StageConferenceChampionship, cc.Stage)
	assert.Equal(t, "BUF", cc.Home)
	assert.Equal(t, "LAC", cc.Away)
	assert.Equal(t, "LAC", result.ConferenceChampions[models.ConferenceAFC])
	assert.Equal(t, "GB", result.ConferenceChampions[models.ConferenceNFC])
	assert.Equal(t, "GB", result.Champion)
}

func TestSimulateReseedingPairsTopSeedWithWorstSurvivor(t *testing.T) {
	seeds := testSeeds()
	// AFC wild card: 7 upsets 2, 6 upsets 3, 4 beats 5
	draw, _ := scripted(0.99, 0.99, 0.0)

	result, err := Simulate(seeds, equalRatings(seeds), draw, 55)
	require.NoError(t, err)

	r := result.Reseedings[models.ConferenceAFC]
	assert.Equal(t, []int{1, 4, 6, 7}, r.Survivors)
	assert.Equal(t, 7, r.TopSeedOpponent)
	assert.Equal(t, [2]int{4, 6}, r.OtherPair)

	assert.Equal(t, "DEN", result.Games[3].Home)
	assert.Equal(t, "LAC", result.Games[3].Away)
	assert.Equal(t, "PIT", result.Games[4].Home)
	assert.Equal(t, 4, result.Games[4].HomeSeed)
	assert.Equal(t, "BUF", result.Games[4].Away)
	assert.Equal(t, 6, result.Games[4].AwaySeed)
}

func TestSimulateStructure(t *testing.T) {
	seeds := testSeeds()
	ratings := equalRatings(seeds)
	ratings["SEA"] = 1700
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		result, err := Simulate(seeds, ratings, rng.Float64, 55)
		require.NoError(t, err)
		require.Len(t, result.Games, GamesPerTournament)

		stages := map[Stage]int{}
		for _, g := range result.Games {
			stages[g.Stage]++
			assert.Contains(t, []string{g.Home, g.Away}, g.Winner)
			assert.Greater(t, g.HomeWinProbability, 0.0)
			assert.Less(t, g.HomeWinProbability, 1.0)
			if g.Stage != StageFinal {
				assert.Less(t, g.HomeSeed, g.AwaySeed)
				assert.False(t, g.Neutral)
			}
		}
		assert.Equal(t, 6, stages[StageWildCard])
		assert.Equal(t, 4, stages[StageDivisional])
		assert.Equal(t, 2, stages[StageConferenceChampionship])
		assert.Equal(t, 1, stages[StageFinal])

		assert.Contains(t, []string{
			result.ConferenceChampions[models.ConferenceAFC],
			result.ConferenceChampions[models.ConferenceNFC],
		}, result.Champion)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	seeds := testSeeds()
	ratings := equalRatings(seeds)

	first, err := Simulate(seeds, ratings, rand.New(rand.NewSource(2025)).Float64, 55)
	require.NoError(t, err)
	second, err := Simulate(seeds, ratings, rand.New(rand.NewSource(2025)).Float64, 55)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateErrors(t *testing.T) {
	seeds := testSeeds()

	ratings := equalRatings(seeds)
	delete(ratings, "GB")
	_, err := Simulate(seeds, ratings, constant(0), 55)
	assert.ErrorIs(t, err, models.ErrUnknownTeam)

	incomplete := testSeeds()
	delete(incomplete[models.ConferenceNFC], 7)
	_, err = Simulate(incomplete, equalRatings(seeds), constant(0), 55)
	assert.ErrorIs(t, err, models.ErrIncompleteSeedTable)
}

func TestMatchupLoser(t *testing.T) {
	m := Matchup{Home: "A", Away: "B", Winner: "A"}
	assert.Equal(t, "B", m.Loser())
	m.Winner = "B"
	assert.Equal(t, "A", m.Loser())
}
