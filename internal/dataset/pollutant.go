// Package dataset defines the record model shared by every pipeline stage:
// the fixed pollutant set, derived calendar attributes, and the ordered AQI
// category scale.
package dataset

import "math"

// Pollutant identifies one of the tracked chemical species. The numeric
// order is normative: outlier trimming is applied column by column in this
// order, and the correlation matrix iterates it.
type Pollutant int

const (
	PM25 Pollutant = iota
	PM10
	NO2
	NH3
	SO2
	CO
	O3
	Benzene
	Toluene
	Xylene

	// NumPollutants sizes per-record value vectors.
	NumPollutants = int(Xylene) + 1
)

// Pollutants lists every tracked species in trimming order.
var Pollutants = [NumPollutants]Pollutant{
	PM25, PM10, NO2, NH3, SO2, CO, O3, Benzene, Toluene, Xylene,
}

var pollutantNames = [NumPollutants]string{
	"PM2.5", "PM10", "NO2", "NH3", "SO2", "CO", "O3", "Benzene", "Toluene", "Xylene",
}

// String returns the CSV column header for the pollutant.
func (p Pollutant) String() string {
	if p < 0 || int(p) >= NumPollutants {
		return "unknown"
	}
	return pollutantNames[p]
}

// PollutantByColumn resolves a CSV column header to a Pollutant.
func PollutantByColumn(name string) (Pollutant, bool) {
	for i, n := range pollutantNames {
		if n == name {
			return Pollutant(i), true
		}
	}
	return 0, false
}

// Missing is the sentinel stored for absent pollutant values.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }
