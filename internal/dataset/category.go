package dataset

// Category is the six-step AQI severity scale derived from the PM2.5
// concentration alone.
type Category int

const (
	Good Category = iota
	Satisfactory
	Moderate
	Poor
	VeryPoor
	Severe
)

// Categories lists every category from least to most severe. The order is
// shared by the cleaner and the aggregator so that distribution counts come
// out in a fixed, zero-filled sequence.
var Categories = [...]Category{Good, Satisfactory, Moderate, Poor, VeryPoor, Severe}

var categoryNames = [...]string{"Good", "Satisfactory", "Moderate", "Poor", "Very Poor", "Severe"}

// CPCB band colors, used by the distribution pie and the AQI reference
// table in the dashboard.
var categoryColors = [...]string{"#00E400", "#FFFF00", "#FF7E00", "#FF0000", "#8F3F97", "#7E0023"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Color returns the category's display color as a hex string.
func (c Category) Color() string {
	if c < 0 || int(c) >= len(categoryColors) {
		return "#999999"
	}
	return categoryColors[c]
}

// CategoryOf bins a PM2.5 concentration into its AQI category. Bounds are
// inclusive on the upper edge. Values below zero fall into Good; NaN falls
// through every comparison into Severe.
func CategoryOf(pm25 float64) Category {
	switch {
	case pm25 <= 30:
		return Good
	case pm25 <= 60:
		return Satisfactory
	case pm25 <= 90:
		return Moderate
	case pm25 <= 120:
		return Poor
	case pm25 <= 250:
		return VeryPoor
	default:
		return Severe
	}
}
