package simulation

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/playoff-odds/internal/models"
)

func testSeeds() models.SeedTable {
	return models.SeedTable{
		models.ConferenceAFC: models.NewConferenceSeeds([]string{"A", "B", "C", "D", "E", "F", "G"}),
		models.ConferenceNFC: models.NewConferenceSeeds([]string{"H", "I", "J", "K", "L", "M", "N"}),
	}
}

func equalRatings(seeds models.SeedTable) models.Ratings {
	ratings := make(models.Ratings)
	for _, team := range seeds.Teams() {
		ratings[team] = 1500
	}
	return ratings
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func int64Ptr(v int64) *int64 {
	return &v
}
