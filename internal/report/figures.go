package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/vayuview/vayuview/internal/analyze"
	"github.com/vayuview/vayuview/internal/dataset"
)

// Fixed palette choices for the dashboard figures.
var (
	seasonColors = map[dataset.Season]string{
		dataset.Winter:  "#3498db",
		dataset.Summer:  "#f39c12",
		dataset.Monsoon: "#2ecc71",
		dataset.Autumn:  "#e74c3c",
	}
	comparisonColors = [3]string{"#e74c3c", "#3498db", "#2ecc71"}

	// viridis samples for the composition pie.
	compositionPalette = []string{
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	}
)

// TrendFigure renders the yearly PM2.5 trend lines for the top polluted
// cities over the union of their observed years.
func TrendFigure(trends []analyze.TrendSeries) string {
	cfg := DefaultChartConfig()
	cfg.Width = 1000
	cfg.Title = fmt.Sprintf("PM2.5 Trends in Top %d Polluted Cities", len(trends))

	yearSet := map[int]struct{}{}
	for _, t := range trends {
		for _, y := range t.Years {
			yearSet[y] = struct{}{}
		}
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	labels := make([]string, len(years))
	index := make(map[int]int, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
		index[y] = i
	}

	series := make([]Series, len(trends))
	for i, t := range trends {
		vals := make([]float64, len(years))
		for j := range vals {
			vals[j] = math.NaN()
		}
		for k, y := range t.Years {
			vals[index[y]] = t.Means[k]
		}
		series[i] = Series{Name: t.City, Values: vals}
	}
	return LineChart(series, labels, cfg)
}

// DistributionFigure renders the AQI category pie and the pollutant
// composition pie side by side.
func DistributionFigure(dist []analyze.CategoryCount, comp []analyze.PollutantMean) string {
	cfg := DefaultChartConfig()
	cfg.Width = 560
	cfg.Height = 460

	left := cfg
	left.Title = "Air Quality Distribution"
	catSlices := make([]PieSlice, 0, len(dist))
	for _, d := range dist {
		catSlices = append(catSlices, PieSlice{
			Label: d.Category.String(),
			Value: float64(d.Count),
			Color: d.Category.Color(),
		})
	}

	right := cfg
	right.Title = "Pollutant Composition Breakdown"
	compSlices := make([]PieSlice, 0, len(comp))
	for i, c := range comp {
		compSlices = append(compSlices, PieSlice{
			Label: c.Pollutant.String(),
			Value: c.Mean,
			Color: compositionPalette[i%len(compositionPalette)],
		})
	}
	return ComposePair(PieChart(catSlices, left), PieChart(compSlices, right), cfg.Width, cfg.Height)
}

// SeasonalFigure renders the seasonal PM2.5 bars next to the focus city's
// 24-hour pattern.
func SeasonalFigure(seasons []analyze.SeasonMean, hours []analyze.HourMean, city string) string {
	cfg := DefaultChartConfig()
	cfg.Width = 560

	left := cfg
	left.Title = "Average PM2.5 by Season"
	bars := make([]BarItem, 0, len(seasons))
	for _, s := range seasons {
		bars = append(bars, BarItem{Label: s.Season.String(), Value: s.Mean, Color: seasonColors[s.Season]})
	}

	right := cfg
	right.Title = fmt.Sprintf("24-Hour PM2.5 Pattern in %s", city)
	vals := make([]float64, len(hours))
	labels := make([]string, len(hours))
	for i, h := range hours {
		vals[i] = h.Mean
		labels[i] = strconv.Itoa(h.Hour)
	}
	hourly := AreaChart(Series{Name: city, Values: vals, Color: "#e74c3c"}, labels, right)
	return ComposePair(BarChart(bars, left), hourly, cfg.Width, cfg.Height)
}

// ComparisonFigure renders grouped PM2.5/PM10/NO2 bars for the top polluted
// cities.
func ComparisonFigure(cities []analyze.CityPollutants) string {
	cfg := DefaultChartConfig()
	cfg.Width = 1000
	cfg.Height = 460
	cfg.Title = fmt.Sprintf("Top %d Cities - Major Pollutant Comparison", len(cities))

	groups := make([]string, len(cities))
	pm25 := make([]float64, len(cities))
	pm10 := make([]float64, len(cities))
	no2 := make([]float64, len(cities))
	for i, c := range cities {
		groups[i] = c.City
		pm25[i] = c.PM25
		pm10[i] = c.PM10
		no2[i] = c.NO2
	}
	series := []Series{
		{Name: dataset.PM25.String(), Values: pm25, Color: comparisonColors[0]},
		{Name: dataset.PM10.String(), Values: pm10, Color: comparisonColors[1]},
		{Name: dataset.NO2.String(), Values: no2, Color: comparisonColors[2]},
	}
	return GroupedBarChart(groups, series, cfg)
}

// StationFigure renders the focus city's most polluted stations as
// horizontal bars shaded from amber to deep red by rank.
func StationFigure(stations []analyze.StationMean, city string) string {
	cfg := DefaultChartConfig()
	cfg.Width = 1000
	cfg.Height = 480
	cfg.Title = fmt.Sprintf("Top %d Most Polluted Monitoring Stations in %s", len(stations), city)

	items := make([]BarItem, len(stations))
	for i, s := range stations {
		t := 0.0
		if len(stations) > 1 {
			t = float64(i) / float64(len(stations)-1)
		}
		items[i] = BarItem{Label: s.Station, Value: s.Mean, Color: rankColor(t)}
	}
	return HorizontalBarChart(items, cfg)
}

// CorrelationFigure renders the pollutant correlation heatmap.
func CorrelationFigure(m *analyze.CorrMatrix) string {
	cfg := DefaultChartConfig()
	cfg.Width = 760
	cfg.Height = 640
	cfg.Title = "Pollutant Correlation Matrix"
	if m == nil {
		return emptySVG(cfg, "No data")
	}

	labels := make([]string, len(m.Pollutants))
	for i, p := range m.Pollutants {
		labels[i] = p.String()
	}
	return Heatmap(labels, m.Values, cfg)
}

// rankColor shades from deep red (t=0, worst) to amber (t=1).
func rankColor(t float64) string {
	from := [3]float64{192, 30, 30}
	to := [3]float64{240, 170, 60}
	var c [3]float64
	for i := range c {
		c[i] = from[i] + (to[i]-from[i])*t
	}
	return fmt.Sprintf("#%02x%02x%02x", int(c[0]), int(c[1]), int(c[2]))
}
