// Package pipeline wires the stages together: load, normalize, clean,
// aggregate, render. Each stage hands an immutable table to the next; the
// whole run is a single synchronous pass.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/vayuview/vayuview/internal/analyze"
	"github.com/vayuview/vayuview/internal/clean"
	"github.com/vayuview/vayuview/internal/config"
	"github.com/vayuview/vayuview/internal/dataset"
	"github.com/vayuview/vayuview/internal/loader"
	"github.com/vayuview/vayuview/internal/report"
)

// Result is everything one run produces: the cleaned tables, the aggregate
// views, and the assembled dashboard.
type Result struct {
	Daily   dataset.Table
	Hourly  dataset.Table
	Station dataset.Table

	Aggregates report.Input
	HTML       string
}

// Pipeline runs the end-to-end dashboard generation.
type Pipeline struct {
	cfg    *config.Config
	loader *loader.Loader
	logger *slog.Logger
	clock  clockwork.Clock
}

// New creates a Pipeline over the configured data directory.
func New(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		loader: loader.New(cfg.DataDir, logger),
		logger: logger,
		clock:  clock,
	}
}

// Run loads and cleans the sources, computes every aggregate view, and
// renders the dashboard HTML. Missing sources degrade the report; any other
// failure aborts.
func (p *Pipeline) Run() (*Result, error) {
	res, err := p.Analyze()
	if err != nil {
		return nil, err
	}
	html, err := report.NewBuilder(p.clock, p.logger).Build(res.Aggregates)
	if err != nil {
		return nil, err
	}
	res.HTML = html
	return res, nil
}

// Analyze runs everything up to (and including) aggregation, without
// rendering. The summary subcommand uses it directly.
func (p *Pipeline) Analyze() (*Result, error) {
	daily, err := p.loadDaily()
	if err != nil {
		return nil, err
	}
	hourly, err := p.loadHourly()
	if err != nil {
		return nil, err
	}
	station, err := p.loadStation()
	if err != nil {
		return nil, err
	}

	agg := report.Input{
		Headline:     analyze.HeadlineStats(daily),
		Trends:       analyze.YearlyTrends(daily, p.cfg.TrendCities),
		Distribution: analyze.CategoryDistribution(daily),
		Composition:  analyze.PollutantComposition(daily),
		Seasonal:     analyze.SeasonalMeans(daily),
		Hourly:       analyze.HourlyMeans(hourly, p.cfg.FocusCity),
		Comparison:   analyze.CityComparison(daily, p.cfg.ComparisonCities),
		Correlations: analyze.Correlations(daily),
		FocusCity:    p.cfg.FocusCity,
	}
	if !station.Empty() {
		agg.Stations = analyze.StationMeans(station, p.cfg.FocusCity, p.cfg.StationCount)
	}

	return &Result{
		Daily:      daily,
		Hourly:     hourly,
		Station:    station,
		Aggregates: agg,
	}, nil
}

// loadDaily runs the full cleaning sequence on the daily source:
// normalize, parse timestamps (dropping unparseable rows), impute, trim
// outliers, categorize. The order is fixed; imputation runs before trimming.
func (p *Pipeline) loadDaily() (dataset.Table, error) {
	t, err := p.loader.Load(p.cfg.CityDayFile)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("load daily source: %w", err)
	}
	t = clean.Normalize(t)
	t, bad := clean.ParseTimes(t, true)
	if bad > 0 {
		p.logger.Debug("dropped rows with unparseable timestamps", "file", t.Name, "rows", bad)
	}
	t = clean.Impute(t)
	before := t.Len()
	t = clean.TrimOutliers(t)
	if trimmed := before - t.Len(); trimmed > 0 {
		p.logger.Debug("trimmed outlier rows", "file", t.Name, "rows", trimmed)
	}
	return clean.Categorize(t), nil
}

// loadHourly normalizes the hourly source and derives the hour of day,
// keeping rows with bad timestamps out of hourly grouping without dropping
// them.
func (p *Pipeline) loadHourly() (dataset.Table, error) {
	t, err := p.loader.Load(p.cfg.CityHourFile)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("load hourly source: %w", err)
	}
	t = clean.Normalize(t)
	t, _ = clean.ParseTimes(t, false)
	return t, nil
}

// loadStation only needs normalized city and station names.
func (p *Pipeline) loadStation() (dataset.Table, error) {
	t, err := p.loader.Load(p.cfg.StationDayFile)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("load station source: %w", err)
	}
	return clean.Normalize(t), nil
}
