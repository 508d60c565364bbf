package report

import (
	"math"
	"strings"
	"testing"
)

func TestLineChartSkipsGaps(t *testing.T) {
	s := []Series{{
		Name:   "Delhi",
		Values: []float64{100, math.NaN(), 140},
	}}
	svg := LineChart(s, []string{"2018", "2019", "2020"}, DefaultChartConfig())
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not a well-formed svg document")
	}
	// Two markers, not three: the gap point is not drawn.
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Fatalf("got %d markers, want 2", n)
	}
	if !strings.Contains(svg, "Delhi") {
		t.Fatal("legend label missing")
	}
}

func TestLineChartEmpty(t *testing.T) {
	svg := LineChart(nil, nil, DefaultChartConfig())
	if !strings.Contains(svg, "No data") {
		t.Fatal("empty chart should carry a placeholder message")
	}
}

func TestBarChartDrawsEveryItem(t *testing.T) {
	items := []BarItem{
		{Label: "Winter", Value: 190},
		{Label: "Summer", Value: 110},
		{Label: "Monsoon", Value: 60},
	}
	svg := BarChart(items, DefaultChartConfig())
	if n := strings.Count(svg, "<rect"); n != len(items)+1 { // background + bars
		t.Fatalf("got %d rects, want %d", n, len(items)+1)
	}
	for _, it := range items {
		if !strings.Contains(svg, it.Label) {
			t.Fatalf("label %q missing", it.Label)
		}
	}
}

func TestPieChartPercentages(t *testing.T) {
	svg := PieChart([]PieSlice{
		{Label: "Good", Value: 75},
		{Label: "Severe", Value: 25},
	}, DefaultChartConfig())
	if !strings.Contains(svg, "75.0%") || !strings.Contains(svg, "25.0%") {
		t.Fatal("percentage labels missing")
	}
}

func TestPieChartSingleSlice(t *testing.T) {
	svg := PieChart([]PieSlice{{Label: "Good", Value: 10}}, DefaultChartConfig())
	// A 100% share draws a full circle instead of a degenerate arc.
	if !strings.Contains(svg, "<circle") {
		t.Fatal("full-share slice should be a circle")
	}
}

func TestDivergingColorEndpoints(t *testing.T) {
	cases := []struct {
		r    float64
		want string
	}{
		{-1, "#3b4cc0"},
		{0, "#f5f5f5"},
		{1, "#b40426"},
		{2, "#b40426"}, // clamped
	}
	for _, c := range cases {
		if got := divergingColor(c.r); got != c.want {
			t.Fatalf("divergingColor(%v) = %s, want %s", c.r, got, c.want)
		}
	}
}

func TestComposePair(t *testing.T) {
	left := PieChart([]PieSlice{{Label: "a", Value: 1}}, DefaultChartConfig())
	right := BarChart([]BarItem{{Label: "b", Value: 1}}, DefaultChartConfig())
	svg := ComposePair(left, right, 760, 420)
	if !strings.Contains(svg, `width="1520"`) {
		t.Fatal("composed width should double")
	}
	if !strings.Contains(svg, `translate(760,0)`) {
		t.Fatal("right pane should be translated")
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXML(`<a & "b">`); got != "&lt;a &amp; &quot;b&quot;&gt;" {
		t.Fatalf("escapeXML = %q", got)
	}
}
