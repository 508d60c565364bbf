// Package analyze computes the aggregate views the dashboard renders. Every
// function is a pure function of its input tables; there is no shared state
// between views.
package analyze

import (
	"fmt"
	"sort"

	"github.com/vayuview/vayuview/internal/dataset"
)

// TrendSeries is one city's yearly PM2.5 means, years ascending.
type TrendSeries struct {
	City  string
	Years []int
	Means []float64
}

// CategoryCount is the row count for one AQI category.
type CategoryCount struct {
	Category dataset.Category
	Count    int
}

// PollutantMean pairs a pollutant with its table-wide mean concentration.
type PollutantMean struct {
	Pollutant dataset.Pollutant
	Mean      float64
}

// SeasonMean pairs a season with its mean PM2.5.
type SeasonMean struct {
	Season dataset.Season
	Mean   float64
}

// HourMean pairs an hour of day with its mean PM2.5.
type HourMean struct {
	Hour int
	Mean float64
}

// CityPollutants holds one city's mean PM2.5, PM10 and NO2.
type CityPollutants struct {
	City string
	PM25 float64
	PM10 float64
	NO2  float64
}

// StationMean pairs a monitoring station with its mean PM2.5.
type StationMean struct {
	Station string
	Mean    float64
}

// Headline carries the scalar statistics shown at the top of the report.
type Headline struct {
	AvgPM25   float64
	MaxPM25   float64
	CityCount int
	DateRange string
}

// meanAcc is a simple sum/count accumulator.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) { a.sum += v; a.n++ }

func (a meanAcc) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// topCitiesByPM25 returns the topN cities ranked by overall mean PM2.5,
// descending. Ties keep alphabetical order, which is the stable iteration
// order of the grouping.
func topCitiesByPM25(t dataset.Table, topN int) []string {
	acc := map[string]*meanAcc{}
	for _, r := range t.Rows {
		if v, ok := r.Value(dataset.PM25); ok {
			a := acc[r.City]
			if a == nil {
				a = &meanAcc{}
				acc[r.City] = a
			}
			a.add(v)
		}
	}
	cities := make([]string, 0, len(acc))
	for city := range acc {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	sort.SliceStable(cities, func(i, j int) bool {
		return acc[cities[i]].mean() > acc[cities[j]].mean()
	})
	if len(cities) > topN {
		cities = cities[:topN]
	}
	return cities
}

// YearlyTrends computes per-city-per-year PM2.5 means for the topN cities
// by overall mean, ordered most polluted first.
func YearlyTrends(daily dataset.Table, topN int) []TrendSeries {
	cities := topCitiesByPM25(daily, topN)
	keep := make(map[string]int, len(cities))
	for i, c := range cities {
		keep[c] = i
	}

	type yearAcc map[int]*meanAcc
	perCity := make([]yearAcc, len(cities))
	for i := range perCity {
		perCity[i] = yearAcc{}
	}
	for _, r := range daily.Rows {
		i, ok := keep[r.City]
		if !ok {
			continue
		}
		v, ok := r.Value(dataset.PM25)
		if !ok {
			continue
		}
		a := perCity[i][r.Year]
		if a == nil {
			a = &meanAcc{}
			perCity[i][r.Year] = a
		}
		a.add(v)
	}

	out := make([]TrendSeries, 0, len(cities))
	for i, city := range cities {
		years := make([]int, 0, len(perCity[i]))
		for y := range perCity[i] {
			years = append(years, y)
		}
		sort.Ints(years)
		means := make([]float64, len(years))
		for j, y := range years {
			means[j] = perCity[i][y].mean()
		}
		out = append(out, TrendSeries{City: city, Years: years, Means: means})
	}
	return out
}

// CategoryDistribution counts rows per AQI category in the fixed category
// order, zero-filled for categories with no rows. The counts sum to the
// table's row count.
func CategoryDistribution(daily dataset.Table) []CategoryCount {
	counts := make([]CategoryCount, len(dataset.Categories))
	for i, c := range dataset.Categories {
		counts[i].Category = c
	}
	for _, r := range daily.Rows {
		counts[r.Category].Count++
	}
	return counts
}

// PollutantComposition computes the mean of every pollutant over the table,
// sorted descending, for the composition breakdown pie.
func PollutantComposition(daily dataset.Table) []PollutantMean {
	out := make([]PollutantMean, 0, dataset.NumPollutants)
	for _, p := range dataset.Pollutants {
		a := meanAcc{}
		for _, r := range daily.Rows {
			if v, ok := r.Value(p); ok {
				a.add(v)
			}
		}
		out = append(out, PollutantMean{Pollutant: p, Mean: a.mean()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out
}

// SeasonalMeans computes the mean PM2.5 per season, sorted descending.
func SeasonalMeans(daily dataset.Table) []SeasonMean {
	accs := make([]meanAcc, len(dataset.Seasons))
	for _, r := range daily.Rows {
		if v, ok := r.Value(dataset.PM25); ok {
			accs[r.Season].add(v)
		}
	}
	out := make([]SeasonMean, 0, len(dataset.Seasons))
	for _, s := range dataset.Seasons {
		if accs[s].n > 0 {
			out = append(out, SeasonMean{Season: s, Mean: accs[s].mean()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out
}

// HourlyMeans computes the mean PM2.5 per hour of day for one city, hours
// ascending. Rows without a parsed hour are skipped.
func HourlyMeans(hourly dataset.Table, city string) []HourMean {
	var accs [24]meanAcc
	for _, r := range hourly.Rows {
		if r.City != city || r.Hour < 0 || r.Hour > 23 {
			continue
		}
		if v, ok := r.Value(dataset.PM25); ok {
			accs[r.Hour].add(v)
		}
	}
	out := make([]HourMean, 0, 24)
	for h := range accs {
		if accs[h].n > 0 {
			out = append(out, HourMean{Hour: h, Mean: accs[h].mean()})
		}
	}
	return out
}

// CityComparison computes per-city means of PM2.5, PM10 and NO2 for the
// topN cities by PM2.5 mean, most polluted first.
func CityComparison(daily dataset.Table, topN int) []CityPollutants {
	cities := topCitiesByPM25(daily, topN)
	keep := make(map[string]int, len(cities))
	for i, c := range cities {
		keep[c] = i
	}
	accs := make([][3]meanAcc, len(cities))
	tracked := [3]dataset.Pollutant{dataset.PM25, dataset.PM10, dataset.NO2}
	for _, r := range daily.Rows {
		i, ok := keep[r.City]
		if !ok {
			continue
		}
		for k, p := range tracked {
			if v, ok := r.Value(p); ok {
				accs[i][k].add(v)
			}
		}
	}
	out := make([]CityPollutants, len(cities))
	for i, city := range cities {
		out[i] = CityPollutants{
			City: city,
			PM25: accs[i][0].mean(),
			PM10: accs[i][1].mean(),
			NO2:  accs[i][2].mean(),
		}
	}
	return out
}

// StationMeans computes per-station mean PM2.5 within one city, top topN by
// value descending. An empty station table yields nil, which drops the
// station section from the report.
func StationMeans(station dataset.Table, city string, topN int) []StationMean {
	acc := map[string]*meanAcc{}
	for _, r := range station.Rows {
		if r.City != city || r.Station == "" {
			continue
		}
		if v, ok := r.Value(dataset.PM25); ok {
			a := acc[r.Station]
			if a == nil {
				a = &meanAcc{}
				acc[r.Station] = a
			}
			a.add(v)
		}
	}
	if len(acc) == 0 {
		return nil
	}
	out := make([]StationMean, 0, len(acc))
	for name, a := range acc {
		out = append(out, StationMean{Station: name, Mean: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean == out[j].Mean {
			return out[i].Station < out[j].Station
		}
		return out[i].Mean > out[j].Mean
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// HeadlineStats computes the scalar summary over the cleaned daily table.
func HeadlineStats(daily dataset.Table) Headline {
	h := Headline{}
	cities := map[string]struct{}{}
	a := meanAcc{}
	var minYear, maxYear int
	for _, r := range daily.Rows {
		cities[r.City] = struct{}{}
		if v, ok := r.Value(dataset.PM25); ok {
			a.add(v)
			if v > h.MaxPM25 {
				h.MaxPM25 = v
			}
		}
		if !r.Timestamp.IsZero() {
			if minYear == 0 || r.Year < minYear {
				minYear = r.Year
			}
			if r.Year > maxYear {
				maxYear = r.Year
			}
		}
	}
	h.AvgPM25 = a.mean()
	h.CityCount = len(cities)
	if minYear != 0 {
		h.DateRange = fmt.Sprintf("%d - %d", minYear, maxYear)
	}
	return h
}
