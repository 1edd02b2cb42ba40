package simulation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/playoff-odds/internal/bracket"
	"github.com/yourusername/playoff-odds/internal/models"
)

func homeWins() float64 { return 0 }

func TestTallyRecordChalkBracket(t *testing.T) {
	seeds := testSeeds()
	result, err := bracket.Simulate(seeds, equalRatings(seeds), homeWins, 55)
	require.NoError(t, err)

	tally := NewTally()
	tally.Record(result)

	assert.Equal(t, 1, tally.Runs())
	assert.Equal(t, StageCounts{Divisional: 1, ConferenceChampionship: 1, Final: 1, Champion: 1}, tally.Counts("A"))
	assert.Equal(t, StageCounts{Divisional: 1, ConferenceChampionship: 1}, tally.Counts("B"))
	assert.Equal(t, StageCounts{Divisional: 1}, tally.Counts("D"))
	assert.Equal(t, StageCounts{}, tally.Counts("G"))
	assert.Equal(t, StageCounts{Divisional: 1, ConferenceChampionship: 1, Final: 1}, tally.Counts("H"))
}

func TestTallyConservation(t *testing.T) {
	seeds := testSeeds()
	ratings := equalRatings(seeds)
	ratings["C"] = 1620
	ratings["M"] = 1410
	rng := rand.New(rand.NewSource(11))

	const runs = 2000
	tally := NewTally()
	for i := 0; i < runs; i++ {
		result, err := bracket.Simulate(seeds, ratings, rng.Float64, 55)
		require.NoError(t, err)
		tally.Record(result)
	}

	champions := 0
	for _, conf := range models.Conferences {
		divisional, confChamp, final := 0, 0, 0
		for seed := 1; seed <= models.SeedsPerConference; seed++ {
			c := tally.Counts(seeds[conf][seed])
			divisional += c.Divisional
			confChamp += c.ConferenceChampionship
			final += c.Final
			champions += c.Champion
		}
		assert.Equal(t, 4*runs, divisional, conf)
		assert.Equal(t, 2*runs, confChamp, conf)
		assert.Equal(t, runs, final, conf)
	}
	assert.Equal(t, runs, champions)

	// seed 1 always reaches the divisional round
	assert.Equal(t, runs, tally.Counts("A").Divisional)
	assert.Equal(t, runs, tally.Counts("H").Divisional)
}

func TestTallyMergeMatchesSingleTally(t *testing.T) {
	seeds := testSeeds()
	ratings := equalRatings(seeds)
	rng := rand.New(rand.NewSource(3))

	whole := NewTally()
	left, right := NewTally(), NewTally()
	for i := 0; i < 300; i++ {
		result, err := bracket.Simulate(seeds, ratings, rng.Float64, 55)
		require.NoError(t, err)
		whole.Record(result)
		if i < 120 {
			left.Record(result)
		} else {
			right.Record(result)
		}
	}

	left.Merge(right)
	assert.Equal(t, whole.Runs(), left.Runs())
	for _, team := range seeds.Teams() {
		assert.Equal(t, whole.Counts(team), left.Counts(team), team)
	}
}

func TestTallyOdds(t *testing.T) {
	seeds := testSeeds()
	ratings := equalRatings(seeds)
	result, err := bracket.Simulate(seeds, ratings, homeWins, 55)
	require.NoError(t, err)

	tally := NewTally()
	tally.Record(result)
	tally.Record(result)

	odds := tally.Odds(seeds, ratings)
	require.Len(t, odds, 14)
	assert.Equal(t, "A", odds[0].Team)
	assert.Equal(t, 1.0, odds[0].Champion)
	assert.Equal(t, models.ConferenceAFC, odds[0].Conference)
	assert.Equal(t, 1, odds[0].Seed)
	assert.Equal(t, 1500.0, odds[0].Rating)

	// ties keep conference then seed order
	assert.Equal(t, "B", odds[1].Team)
	assert.Equal(t, "N", odds[13].Team)

	for _, o := range odds {
		for _, rate := range []float64{o.Divisional, o.ConferenceChampionship, o.Final, o.Champion} {
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.LessOrEqual(t, rate, 1.0)
		}
	}
}

func TestEmptyTallyOdds(t *testing.T) {
	seeds := testSeeds()
	odds := NewTally().Odds(seeds, equalRatings(seeds))
	require.Len(t, odds, 14)
	for _, o := range odds {
		assert.Zero(t, o.Champion)
		assert.Zero(t, o.ChampionCI95)
	}
}
