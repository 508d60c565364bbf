// Package loader reads the raw CSV sources into dataset tables. A source
// that does not exist on disk yields an empty table and a warning rather
// than an error, so the pipeline can run on whatever subset of inputs is
// available.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/vayuview/vayuview/internal/dataset"
)

// Loader reads named CSV sources from a data directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// New creates a Loader rooted at dir.
func New(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// Load reads the named CSV file into a table. A missing file is tolerated:
// the result is an empty table carrying the source name. Any other read or
// parse failure is an error.
func (l *Loader) Load(name string) (dataset.Table, error) {
	path := filepath.Join(l.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("source file not found, continuing with empty dataset", "file", path)
			return dataset.Table{Name: name}, nil
		}
		return dataset.Table{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	// Type detection is disabled so every cell round-trips verbatim; the
	// cleaning stage owns all numeric and timestamp parsing policy.
	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataset.Table{}, fmt.Errorf("read %s: %w", name, df.Err)
	}

	t, err := fromFrame(name, df)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("decode %s: %w", name, err)
	}
	l.logger.Debug("source loaded", "file", name, "rows", t.Len())
	return t, nil
}

// fromFrame converts a raw string frame into typed records. Pollutant cells
// that are blank or non-numeric stay missing; timestamp cells are carried
// raw for the normalizer.
func fromFrame(name string, df dataframe.DataFrame) (dataset.Table, error) {
	records := df.Records()
	if len(records) == 0 {
		return dataset.Table{Name: name}, nil
	}
	header := records[0]

	cityIdx, stationIdx, timeIdx := -1, -1, -1
	pollutantIdx := map[int]dataset.Pollutant{}
	for i, col := range header {
		col = strings.TrimSpace(col)
		switch col {
		case "City":
			cityIdx = i
		case "Station", "StationId", "StationName":
			if stationIdx == -1 {
				stationIdx = i
			}
		case "Datetime", "Date":
			if timeIdx == -1 {
				timeIdx = i
			}
		default:
			if p, ok := dataset.PollutantByColumn(col); ok {
				pollutantIdx[i] = p
			}
		}
	}

	rows := make([]dataset.Record, 0, len(records)-1)
	for _, cells := range records[1:] {
		r := dataset.NewRecord()
		if cityIdx >= 0 && cityIdx < len(cells) {
			r.City = cells[cityIdx]
		}
		if stationIdx >= 0 && stationIdx < len(cells) {
			r.Station = cells[stationIdx]
		}
		if timeIdx >= 0 && timeIdx < len(cells) {
			r.RawTime = cells[timeIdx]
		}
		for i, p := range pollutantIdx {
			if i >= len(cells) {
				continue
			}
			cell := strings.TrimSpace(cells[i])
			if cell == "" || cell == "NaN" || cell == "NA" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			r.SetValue(p, v)
		}
		rows = append(rows, r)
	}
	return dataset.Table{Name: name, Rows: rows}, nil
}
