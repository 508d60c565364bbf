// Package report renders the aggregate views into SVG charts and assembles
// the final HTML dashboard. Chart builders are pure string producers with
// no dependency on the pipeline.
package report

import (
	"fmt"
	"math"
	"strings"
)

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	BgColor      string
	GridColor    string
	TextColor    string
	FontSize     int
	Title        string
}

// DefaultChartConfig returns the defaults shared by all dashboard figures.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        760,
		Height:       420,
		MarginTop:    44,
		MarginRight:  32,
		MarginBottom: 56,
		MarginLeft:   64,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// plotArea returns the usable drawing area.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// Series is one named line or bar group in a multi-series chart. NaN values
// mark gaps and are skipped when drawing.
type Series struct {
	Name   string
	Values []float64
	Color  string
}

// BarItem is a single labelled bar.
type BarItem struct {
	Label string
	Value float64
	Color string
}

// PieSlice is a single labelled pie segment.
type PieSlice struct {
	Label string
	Value float64
	Color string
}

var defaultPalette = []string{"#2196f3", "#ff9800", "#4caf50", "#e91e63", "#9c27b0", "#00bcd4", "#795548", "#607d8b"}

// LineChart draws one or more series over shared x-axis labels, with point
// markers and a legend.
func LineChart(series []Series, labels []string, cfg ChartConfig) string {
	if len(series) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	px, py, pw, ph := cfg.plotArea()

	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	maxLen := 0
	for _, s := range series {
		if len(s.Values) > maxLen {
			maxLen = len(s.Values)
		}
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxLen == 0 || minVal > maxVal {
		return emptySVG(cfg, "No data points")
	}
	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	minVal -= vRange * 0.05
	maxVal += vRange * 0.05
	vRange = maxVal - minVal

	xAt := func(i int) float64 {
		if maxLen == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(maxLen-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v-minVal)/vRange*float64(ph)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))
	writeYGrid(&sb, cfg, minVal, vRange, 5)

	for si, s := range series {
		color := s.Color
		if color == "" {
			color = defaultPalette[si%len(defaultPalette)]
		}
		var path []string
		for i, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			cmd := "L"
			if len(path) == 0 {
				cmd = "M"
			}
			path = append(path, fmt.Sprintf("%s%.1f,%.1f", cmd, xAt(i), yAt(v)))
		}
		if len(path) > 1 {
			sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`,
				strings.Join(path, " "), color))
		}
		for i, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`, xAt(i), yAt(v), color))
		}
		ly := py + 10 + si*15
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`,
			px+8, ly, px+26, ly, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
			px+31, ly+4, cfg.TextColor, escapeXML(s.Name)))
	}

	writeXLabels(&sb, cfg, labels, maxLen, xAt)
	sb.WriteString("</svg>")
	return sb.String()
}

// AreaChart draws a single series as a line with a translucent fill down to
// the baseline.
func AreaChart(s Series, labels []string, cfg ChartConfig) string {
	if len(s.Values) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	px, py, pw, ph := cfg.plotArea()

	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal > maxVal {
		return emptySVG(cfg, "No data points")
	}
	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	minVal -= vRange * 0.05
	maxVal += vRange * 0.05
	vRange = maxVal - minVal

	n := len(s.Values)
	xAt := func(i int) float64 {
		if n == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(n-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v-minVal)/vRange*float64(ph)
	}

	color := s.Color
	if color == "" {
		color = defaultPalette[0]
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))
	writeYGrid(&sb, cfg, minVal, vRange, 5)

	var line []string
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		cmd := "L"
		if len(line) == 0 {
			cmd = "M"
		}
		line = append(line, fmt.Sprintf("%s%.1f,%.1f", cmd, xAt(i), yAt(v)))
	}
	if len(line) > 1 {
		first, last := -1, -1
		for i, v := range s.Values {
			if !math.IsNaN(v) {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		fill := strings.Join(line, " ") +
			fmt.Sprintf(" L%.1f,%d L%.1f,%d Z", xAt(last), py+ph, xAt(first), py+ph)
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" opacity="0.3" stroke="none"/>`, fill, color))
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="2.5"/>`,
			strings.Join(line, " "), color))
	}
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3.5" fill="%s"/>`, xAt(i), yAt(v), color))
	}

	writeXLabels(&sb, cfg, labels, n, xAt)
	sb.WriteString("</svg>")
	return sb.String()
}

// BarChart draws labelled vertical bars.
func BarChart(items []BarItem, cfg ChartConfig) string {
	if len(items) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	px, py, pw, ph := cfg.plotArea()

	maxVal := 0.0
	for _, it := range items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))
	writeYGrid(&sb, cfg, 0, maxVal, 5)

	slot := float64(pw) / float64(len(items))
	barW := slot * 0.6
	for i, it := range items {
		color := it.Color
		if color == "" {
			color = defaultPalette[i%len(defaultPalette)]
		}
		bh := it.Value / maxVal * float64(ph)
		bx := float64(px) + float64(i)*slot + (slot-barW)/2
		by := float64(py+ph) - bh
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="0.8"/>`,
			bx, by, barW, bh, color))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%.1f</text>`,
			bx+barW/2, by-5, cfg.FontSize, cfg.TextColor, it.Value))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			bx+barW/2, py+ph+16, cfg.FontSize, cfg.TextColor, escapeXML(it.Label)))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// GroupedBarChart draws one bar per series within each group slot, with a
// legend.
func GroupedBarChart(groups []string, series []Series, cfg ChartConfig) string {
	if len(groups) == 0 || len(series) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	px, py, pw, ph := cfg.plotArea()

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if !math.IsNaN(v) && v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))
	writeYGrid(&sb, cfg, 0, maxVal, 5)

	slot := float64(pw) / float64(len(groups))
	barW := slot * 0.8 / float64(len(series))
	for si, s := range series {
		color := s.Color
		if color == "" {
			color = defaultPalette[si%len(defaultPalette)]
		}
		for gi := range groups {
			if gi >= len(s.Values) || math.IsNaN(s.Values[gi]) {
				continue
			}
			bh := s.Values[gi] / maxVal * float64(ph)
			bx := float64(px) + float64(gi)*slot + slot*0.1 + float64(si)*barW
			by := float64(py+ph) - bh
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="0.6"/>`,
				bx, by, barW, bh, color))
		}
		ly := py + 10 + si*15
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="9" fill="%s"/>`, px+8, ly-7, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
			px+25, ly+1, cfg.TextColor, escapeXML(s.Name)))
	}
	for gi, g := range groups {
		gx := float64(px) + float64(gi)*slot + slot/2
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="end" transform="rotate(-45,%.1f,%d)">%s</text>`,
			gx, py+ph+14, cfg.FontSize, cfg.TextColor, gx, py+ph+14, escapeXML(g)))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// HorizontalBarChart draws labelled horizontal bars with the value printed
// at the bar end.
func HorizontalBarChart(items []BarItem, cfg ChartConfig) string {
	if len(items) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	cfg.MarginLeft = 170
	px, py, pw, ph := cfg.plotArea()

	maxVal := 0.0
	for _, it := range items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))

	barH := float64(ph) / float64(len(items)) * 0.7
	if barH > 26 {
		barH = 26
	}
	gap := (float64(ph) - barH*float64(len(items))) / float64(len(items)+1)
	for i, it := range items {
		color := it.Color
		if color == "" {
			color = defaultPalette[i%len(defaultPalette)]
		}
		by := float64(py) + gap + float64(i)*(barH+gap)
		bw := it.Value / maxVal * float64(pw) * 0.92
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="0.8" rx="2"/>`,
			px, by, bw, barH, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-6, by+barH/2+4, cfg.FontSize, cfg.TextColor, escapeXML(it.Label)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" font-weight="bold" fill="%s">%.1f</text>`,
			float64(px)+bw+5, by+barH/2+4, cfg.FontSize, cfg.TextColor, it.Value))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// PieChart draws labelled slices clockwise from twelve o'clock, with the
// percentage share inside each slice.
func PieChart(slices []PieSlice, cfg ChartConfig) string {
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	total := 0.0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return emptySVG(cfg, "No data")
	}

	px, py, pw, ph := cfg.plotArea()
	cx := float64(px) + float64(pw)/2
	cy := float64(py) + float64(ph)/2
	radius := math.Min(float64(pw), float64(ph))/2 - 26

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))

	angle := -math.Pi / 2
	for i, s := range slices {
		if s.Value <= 0 {
			continue
		}
		frac := s.Value / total
		end := angle + frac*2*math.Pi
		color := s.Color
		if color == "" {
			color = defaultPalette[i%len(defaultPalette)]
		}
		x1 := cx + radius*math.Cos(angle)
		y1 := cy + radius*math.Sin(angle)
		x2 := cx + radius*math.Cos(end)
		y2 := cy + radius*math.Sin(end)
		largeArc := 0
		if frac > 0.5 {
			largeArc = 1
		}
		if frac >= 0.999999 {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#fff" stroke-width="1.5"/>`,
				cx, cy, radius, color))
		} else {
			sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d,1 %.1f,%.1f Z" fill="%s" stroke="#fff" stroke-width="1.5"/>`,
				cx, cy, x1, y1, radius, radius, largeArc, x2, y2, color))
		}

		mid := (angle + end) / 2
		if frac >= 0.03 {
			lx := cx + radius*0.62*math.Cos(mid)
			ly := cy + radius*0.62*math.Sin(mid)
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" font-weight="bold" fill="#222" text-anchor="middle">%.1f%%</text>`,
				lx, ly, cfg.FontSize, frac*100))
		}
		tx := cx + (radius+14)*math.Cos(mid)
		ty := cy + (radius+14)*math.Sin(mid)
		anchor := "start"
		if math.Cos(mid) < -0.1 {
			anchor = "end"
		} else if math.Abs(math.Cos(mid)) <= 0.1 {
			anchor = "middle"
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="%s">%s</text>`,
			tx, ty, cfg.FontSize, cfg.TextColor, anchor, escapeXML(s.Label)))
		angle = end
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// Heatmap draws the lower triangle (diagonal included) of a symmetric
// matrix as annotated colored cells, with a blue-white-red scale over
// [-1, 1].
func Heatmap(labels []string, values [][]float64, cfg ChartConfig) string {
	n := len(labels)
	if n == 0 || len(values) != n {
		return emptySVG(cfg, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	cfg.MarginLeft = 76
	px, py, pw, ph := cfg.plotArea()
	cell := math.Min(float64(pw), float64(ph)) / float64(n)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			x := float64(px) + float64(j)*cell
			y := float64(py) + float64(i)*cell
			v := values[i][j]
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#fff" stroke-width="1.5"/>`,
				x, y, cell, cell, divergingColor(v)))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="#222" text-anchor="middle">%.2f</text>`,
				x+cell/2, y+cell/2+3, cfg.FontSize-2, v))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-6, float64(py)+float64(i)*cell+cell/2+3, cfg.FontSize, cfg.TextColor, escapeXML(labels[i])))
		bx := float64(px) + float64(i)*cell + cell/2
		by := float64(py) + float64(n)*cell + 12
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="end" transform="rotate(-45,%.1f,%.1f)">%s</text>`,
			bx, by, cfg.FontSize, cfg.TextColor, bx, by, escapeXML(labels[i])))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// divergingColor maps r in [-1,1] to a blue-white-red scale.
func divergingColor(r float64) string {
	if r < -1 {
		r = -1
	} else if r > 1 {
		r = 1
	}
	// Coolwarm endpoints.
	blue := [3]float64{59, 76, 192}
	white := [3]float64{245, 245, 245}
	red := [3]float64{180, 4, 38}
	var c [3]float64
	if r < 0 {
		t := r + 1 // 0 at -1, 1 at 0
		for i := range c {
			c[i] = blue[i] + (white[i]-blue[i])*t
		}
	} else {
		for i := range c {
			c[i] = white[i] + (red[i]-white[i])*r
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", int(c[0]), int(c[1]), int(c[2]))
}

// ComposePair places two rendered SVGs side by side in one figure.
func ComposePair(left, right string, w, h int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		2*w, h, 2*w, h))
	sb.WriteString(left)
	sb.WriteString(fmt.Sprintf(`<g transform="translate(%d,0)">`, w))
	sb.WriteString(right)
	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// emptySVG renders a placeholder panel carrying only a message, used when a
// chart has nothing to draw.
func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(backgroundRect(cfg))
	sb.WriteString(titleText(cfg))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="13" fill="#999999" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.Height/2, escapeXML(msg)))
	sb.WriteString("</svg>")
	return sb.String()
}

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func backgroundRect(cfg ChartConfig) string {
	return fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor)
}

func titleText(cfg ChartConfig) string {
	if cfg.Title == "" {
		return ""
	}
	return fmt.Sprintf(`<text x="%d" y="22" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title))
}

func writeYGrid(sb *strings.Builder, cfg ChartConfig, minVal, vRange float64, lines int) {
	px, py, pw, ph := cfg.plotArea()
	for i := 0; i <= lines; i++ {
		val := minVal + vRange*float64(i)/float64(lines)
		y := py + ph - int(float64(ph)*float64(i)/float64(lines))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.1f</text>`,
			px-5, y+4, cfg.FontSize, cfg.TextColor, val))
	}
}

func writeXLabels(sb *strings.Builder, cfg ChartConfig, labels []string, n int, xAt func(int) float64) {
	if len(labels) == 0 {
		return
	}
	_, py, _, ph := cfg.plotArea()
	interval := n / 12
	if interval < 1 {
		interval = 1
	}
	for i := 0; i < len(labels) && i < n; i += interval {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			xAt(i), py+ph+16, cfg.FontSize, cfg.TextColor, escapeXML(labels[i])))
	}
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
