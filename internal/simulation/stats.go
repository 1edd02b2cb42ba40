package simulation

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/playoff-odds/internal/models"
)

// ConfidenceHalfWidth returns the normal-approximation half-width of a
// confidence interval for a rate p observed over n trials.
func ConfidenceHalfWidth(p float64, n int, level float64) float64 {
	if n <= 0 || level <= 0 || level >= 1 {
		return 0
	}
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	return z * math.Sqrt(p*(1-p)/float64(n))
}

// CompareRates runs a pooled two-proportion z-test of p1 > p2 and returns
// the z statistic and the one-sided p-value.
func CompareRates(p1 float64, n1 int, p2 float64, n2 int) (float64, float64) {
	if n1 <= 0 || n2 <= 0 {
		return 0, 1
	}
	pooled := (p1*float64(n1) + p2*float64(n2)) / float64(n1+n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(n1) + 1/float64(n2)))
	if se == 0 {
		return 0, 0.5
	}
	z := (p1 - p2) / se
	return z, 1 - distuv.UnitNormal.CDF(z)
}

// ChampionEntropy is the Shannon entropy in bits of the championship
// distribution. Zero means one team always wins.
func ChampionEntropy(odds []models.TeamOdds) float64 {
	ps := make([]float64, 0, len(odds))
	for _, o := range odds {
		ps = append(ps, o.Champion)
	}
	return stat.Entropy(ps) / math.Ln2
}
