package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/vayuview/vayuview/internal/analyze"
	"github.com/vayuview/vayuview/internal/utils"
)

// Input bundles the aggregate views the dashboard renders. Stations may be
// nil, in which case the station section is omitted from the report.
type Input struct {
	Headline     analyze.Headline
	Trends       []analyze.TrendSeries
	Distribution []analyze.CategoryCount
	Composition  []analyze.PollutantMean
	Seasonal     []analyze.SeasonMean
	Hourly       []analyze.HourMean
	Comparison   []analyze.CityPollutants
	Stations     []analyze.StationMean
	Correlations *analyze.CorrMatrix
	FocusCity    string
}

// Builder assembles the HTML dashboard from aggregate views.
type Builder struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewBuilder creates a Builder. The clock stamps the report footer and is
// injectable for tests.
func NewBuilder(clock clockwork.Clock, logger *slog.Logger) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{clock: clock, logger: logger}
}

// Build renders the figures and assembles the dashboard HTML.
func (b *Builder) Build(in Input) (string, error) {
	charts := []chartCard{
		{Title: "PM2.5 Trends Across Major Cities", URI: svgDataURI(TrendFigure(in.Trends))},
		{Title: "Air Quality & Pollutant Distribution", URI: svgDataURI(DistributionFigure(in.Distribution, in.Composition))},
		{Title: "Seasonal & Hourly Analysis", URI: svgDataURI(SeasonalFigure(in.Seasonal, in.Hourly, in.FocusCity))},
		{Title: "City-wise Pollutant Comparison", URI: svgDataURI(ComparisonFigure(in.Comparison))},
	}
	if len(in.Stations) > 0 {
		charts = append(charts, chartCard{
			Title: fmt.Sprintf("%s Station-wise Analysis", in.FocusCity),
			URI:   svgDataURI(StationFigure(in.Stations, in.FocusCity)),
		})
	} else {
		b.logger.Warn("station data unavailable, omitting station section")
	}
	charts = append(charts, chartCard{
		Title: "Pollutant Correlation Matrix",
		URI:   svgDataURI(CorrelationFigure(in.Correlations)),
	})

	dateRange := in.Headline.DateRange
	if dateRange == "" {
		dateRange = "no data"
	}
	data := pageData{
		DateRange:   dateRange,
		AvgPM25:     fmt.Sprintf("%.1f", in.Headline.AvgPM25),
		MaxPM25:     fmt.Sprintf("%.0f", in.Headline.MaxPM25),
		CityCount:   in.Headline.CityCount,
		Charts:      charts,
		Bands:       aqiBands,
		GeneratedAt: b.clock.Now().Format("January 2, 2006 at 3:04 PM"),
		ReportID:    uuid.NewString(),
	}
	return renderHTML(data)
}

// WriteFile writes the dashboard atomically to path.
func (b *Builder) WriteFile(path, html string) error {
	if err := utils.SafeWriteFile(path, []byte(html)); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	b.logger.Info("dashboard written", "path", path, "bytes", len(html))
	return nil
}

// PrintSummary writes the console digest shown after a run.
func PrintSummary(w io.Writer, outPath string, h analyze.Headline) {
	if outPath != "" {
		fmt.Fprintf(w, "Dashboard generated: %s\n", outPath)
	}
	fmt.Fprintf(w, "Analyzed %d cities from %s\n", h.CityCount, h.DateRange)
	fmt.Fprintf(w, "Average PM2.5: %.1f ug/m3\n", h.AvgPM25)
	fmt.Fprintf(w, "Peak PM2.5: %.0f ug/m3\n", h.MaxPM25)
}
