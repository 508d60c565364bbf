package analyze

import (
	"math"

	"github.com/vayuview/vayuview/internal/dataset"
)

// CorrMatrix is a symmetric Pearson correlation matrix over the full
// pollutant set. Values[i][j] corresponds to Pollutants[i] vs Pollutants[j].
type CorrMatrix struct {
	Pollutants []dataset.Pollutant
	Values     [][]float64
}

// pairAcc accumulates the sums needed for an exact Pearson r between two
// columns, counting only rows where both values are present.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (a *pairAcc) add(x, y float64) {
	a.n++
	a.sumX += x
	a.sumY += y
	a.sumXX += x * x
	a.sumYY += y * y
	a.sumXY += x * y
}

func (a pairAcc) r() float64 {
	if a.n < 2 {
		return 0
	}
	denom := math.Sqrt((a.n*a.sumXX - a.sumX*a.sumX) * (a.n*a.sumYY - a.sumY*a.sumY))
	if denom == 0 {
		return 0
	}
	r := (a.n*a.sumXY - a.sumX*a.sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Correlations computes the pairwise Pearson correlation matrix across all
// pollutant columns, with a unit diagonal.
func Correlations(daily dataset.Table) *CorrMatrix {
	n := dataset.NumPollutants
	pairs := make([]pairAcc, n*n)
	for _, rec := range daily.Rows {
		for i := 1; i < n; i++ {
			x, ok := rec.Value(dataset.Pollutants[i])
			if !ok {
				continue
			}
			for j := 0; j < i; j++ {
				y, ok := rec.Value(dataset.Pollutants[j])
				if !ok {
					continue
				}
				pairs[i*n+j].add(x, y)
			}
		}
	}

	m := &CorrMatrix{
		Pollutants: dataset.Pollutants[:],
		Values:     make([][]float64, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			r := pairs[i*n+j].r()
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}
