package pipeline

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vayuview/vayuview/internal/config"
	"github.com/vayuview/vayuview/internal/dataset"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// fixtureConfig points a default config at a temp data dir holding a small
// daily and hourly source, and no station source.
func fixtureConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "city_day.csv",
		"City,Date,PM2.5\n"+
			"delhi,2020-01-01,10\n"+
			"delhi,2020-01-02,\n"+
			"delhi,2020-01-03,400\n")
	writeFixture(t, dir, "city_hour.csv",
		"City,Datetime,PM2.5\n"+
			"Delhi,2020-01-01 08:00:00,100\n"+
			"Delhi,2020-01-01 08:00:00,200\n"+
			"Delhi,2020-01-01 20:00:00,300\n")
	cfg := config.Default()
	cfg.DataDir = dir
	return cfg
}

func TestAnalyzeCleansDailySource(t *testing.T) {
	p := New(fixtureConfig(t), clockwork.NewFakeClock(), discard())
	res, err := p.Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// The blank cell is imputed with the column mean (205); the 99th
	// percentile trim then removes the 400 row.
	if res.Daily.Len() != 2 {
		t.Fatalf("daily rows = %d, want 2", res.Daily.Len())
	}
	wantCat := []dataset.Category{dataset.Good, dataset.VeryPoor}
	for i, r := range res.Daily.Rows {
		if r.City != "Delhi" {
			t.Fatalf("row %d city = %q, want title-cased Delhi", i, r.City)
		}
		if r.Category != wantCat[i] {
			t.Fatalf("row %d category = %s, want %s", i, r.Category, wantCat[i])
		}
	}

	h := res.Aggregates.Headline
	if math.Abs(h.AvgPM25-107.5) > 1e-9 {
		t.Fatalf("AvgPM25 = %v, want 107.5", h.AvgPM25)
	}
	if h.MaxPM25 != 205 {
		t.Fatalf("MaxPM25 = %v, want 205", h.MaxPM25)
	}
	if h.CityCount != 1 || h.DateRange != "2020 - 2020" {
		t.Fatalf("headline = %+v", h)
	}
}

func TestAnalyzeHourlyMeans(t *testing.T) {
	p := New(fixtureConfig(t), clockwork.NewFakeClock(), discard())
	res, err := p.Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	hours := res.Aggregates.Hourly
	if len(hours) != 2 {
		t.Fatalf("got %d hours, want 2", len(hours))
	}
	if hours[0].Hour != 8 || hours[0].Mean != 150 {
		t.Fatalf("hour 8 mean = %v", hours[0].Mean)
	}
	if hours[1].Hour != 20 || hours[1].Mean != 300 {
		t.Fatalf("hour 20 mean = %v", hours[1].Mean)
	}
}

func TestRunWithoutStationSource(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2020, time.July, 1, 12, 0, 0, 0, time.UTC))
	p := New(fixtureConfig(t), clock, discard())

	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Aggregates.Stations != nil {
		t.Fatal("station aggregates should be absent")
	}
	if n := strings.Count(res.HTML, "data:image/svg+xml;base64,"); n != 5 {
		t.Fatalf("got %d embedded charts, want 5", n)
	}
	if !strings.Contains(res.HTML, "107.5") {
		t.Fatal("headline average missing from dashboard")
	}
}

func TestRunWithStationSource(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFixture(t, cfg.DataDir, "station_day.csv",
		"StationId,StationName,City,Date,PM2.5\n"+
			"DL001,Anand Vihar,Delhi,2020-01-01,250\n"+
			"DL002,Lodhi Road,Delhi,2020-01-01,90\n")

	res, err := New(cfg, clockwork.NewFakeClock(), discard()).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Aggregates.Stations) != 2 {
		t.Fatalf("got %d stations, want 2", len(res.Aggregates.Stations))
	}
	if n := strings.Count(res.HTML, "data:image/svg+xml;base64,"); n != 6 {
		t.Fatalf("got %d embedded charts, want 6", n)
	}
	if !strings.Contains(res.HTML, "Delhi Station-wise Analysis") {
		t.Fatal("station section missing")
	}
}
