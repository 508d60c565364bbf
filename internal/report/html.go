package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
)

// chartCard is one rendered figure with its section heading.
type chartCard struct {
	Title string
	URI   template.URL
}

// aqiBand is one row of the AQI reference table.
type aqiBand struct {
	Name  string
	Range string
	Desc  string
	Color string
	Light bool
}

var aqiBands = []aqiBand{
	{"Good", "0-50", "Air quality is satisfactory, minimal health impact", "#00E400", true},
	{"Satisfactory", "51-100", "Acceptable air quality, sensitive people may experience minor issues", "#FFFF00", true},
	{"Moderate", "101-200", "May cause breathing discomfort to sensitive groups", "#FF7E00", false},
	{"Poor", "201-300", "Breathing discomfort to most people on prolonged exposure", "#FF0000", false},
	{"Very Poor", "301-400", "Respiratory illness on prolonged exposure", "#8F3F97", false},
	{"Severe", "401+", "Affects healthy people and seriously impacts those with existing diseases", "#7E0023", false},
}

// pageData feeds the dashboard template.
type pageData struct {
	DateRange   string
	AvgPM25     string
	MaxPM25     string
	CityCount   int
	Charts      []chartCard
	Bands       []aqiBand
	GeneratedAt string
	ReportID    string
}

// svgDataURI encodes a rendered SVG as an inline image source.
func svgDataURI(svg string) template.URL {
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg)))
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Air Quality Dashboard India</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    padding: 20px;
    min-height: 100vh;
}
.container { max-width: 1400px; margin: 0 auto; }
header {
    background: white;
    padding: 30px;
    border-radius: 15px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.2);
    margin-bottom: 30px;
    text-align: center;
}
h1 { color: #2c3e50; font-size: 2.5em; margin-bottom: 10px; }
.subtitle { color: #7f8c8d; font-size: 1.2em; margin-bottom: 20px; }
.stats-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
    gap: 20px;
    margin-bottom: 30px;
}
.stat-card {
    background: white;
    padding: 25px;
    border-radius: 15px;
    box-shadow: 0 5px 15px rgba(0,0,0,0.1);
    text-align: center;
}
.stat-value { font-size: 2.5em; font-weight: bold; color: #3498db; margin: 10px 0; }
.stat-label { color: #7f8c8d; font-size: 1em; text-transform: uppercase; letter-spacing: 1px; }
.card {
    background: white;
    padding: 30px;
    margin: 20px 0;
    border-radius: 15px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.15);
}
.card h2 {
    color: #2c3e50;
    margin-bottom: 20px;
    font-size: 1.8em;
    border-left: 5px solid #3498db;
    padding-left: 15px;
}
img { width: 100%; border-radius: 10px; }
.info-card {
    background: white;
    padding: 30px;
    margin: 20px 0;
    border-radius: 15px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.15);
}
.info-card h3 {
    color: #2c3e50;
    font-size: 1.6em;
    margin-bottom: 15px;
    border-left: 5px solid #e74c3c;
    padding-left: 15px;
}
.info-card p { color: #34495e; line-height: 1.8; margin-bottom: 20px; font-size: 1.1em; }
.info-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(280px, 1fr));
    gap: 20px;
}
.info-item {
    background: #f8f9fa;
    padding: 20px;
    border-radius: 10px;
    border-left: 4px solid #3498db;
    line-height: 1.7;
    color: #2c3e50;
}
.info-item strong { color: #e74c3c; display: block; margin-bottom: 8px; font-size: 1.1em; }
.aqi-table { display: grid; gap: 12px; }
.aqi-row {
    padding: 15px 20px;
    border-radius: 8px;
    display: flex;
    justify-content: space-between;
    align-items: center;
}
.aqi-category { font-weight: bold; font-size: 1.1em; min-width: 200px; }
.aqi-desc { flex: 1; text-align: right; font-size: 0.95em; }
footer {
    background: white;
    padding: 20px;
    border-radius: 15px;
    text-align: center;
    margin-top: 30px;
    color: #7f8c8d;
}
.timestamp { font-size: 0.9em; color: #95a5a6; margin-top: 10px; }
</style>
</head>
<body>
<div class="container">
    <header>
        <h1>Air Quality Analysis Dashboard</h1>
        <div class="subtitle">Indian Cities Environmental Monitoring ({{.DateRange}})</div>
    </header>

    <div class="info-card">
        <h3>About PM2.5</h3>
        <p><strong>PM2.5</strong> refers to fine particulate matter with a diameter of 2.5 micrometers or less - about 30 times smaller than a human hair.</p>
        <div class="info-grid">
            <div class="info-item"><strong>Sources:</strong> Vehicle emissions, industrial processes, construction activities, biomass burning, and natural sources like dust storms</div>
            <div class="info-item"><strong>Health Impact:</strong> Can penetrate deep into lungs and bloodstream, causing respiratory diseases, cardiovascular problems, and premature death</div>
            <div class="info-item"><strong>Safe Limit:</strong> WHO guideline: 15 &micro;g/m&sup3; (annual average) | Indian Standard: 40 &micro;g/m&sup3; (annual average)</div>
        </div>
    </div>

    <div class="info-card">
        <h3>About PM10</h3>
        <p><strong>PM10</strong> refers to coarse particulate matter with a diameter of 10 micrometers or less - about the width of a single human hair.</p>
        <div class="info-grid">
            <div class="info-item"><strong>Sources:</strong> Road dust, construction sites, agricultural activities, pollen, mold spores, and industrial emissions</div>
            <div class="info-item"><strong>Health Impact:</strong> Affects upper respiratory tract, causes asthma, bronchitis, and aggravates existing lung conditions</div>
            <div class="info-item"><strong>Safe Limit:</strong> WHO guideline: 45 &micro;g/m&sup3; (annual average) | Indian Standard: 60 &micro;g/m&sup3; (annual average)</div>
        </div>
    </div>

    <div class="info-card">
        <h3>AQI Categories &amp; Health Implications</h3>
        <div class="aqi-table">
            {{- range .Bands}}
            <div class="aqi-row" style="background: {{.Color}};{{if not .Light}} color: white;{{end}}">
                <span class="aqi-category">{{.Name}} ({{.Range}})</span>
                <span class="aqi-desc">{{.Desc}}</span>
            </div>
            {{- end}}
        </div>
    </div>

    <div class="stats-grid">
        <div class="stat-card">
            <div class="stat-label">Average PM2.5</div>
            <div class="stat-value">{{.AvgPM25}}</div>
            <div class="stat-label">&micro;g/m&sup3;</div>
        </div>
        <div class="stat-card">
            <div class="stat-label">Peak PM2.5</div>
            <div class="stat-value">{{.MaxPM25}}</div>
            <div class="stat-label">&micro;g/m&sup3;</div>
        </div>
        <div class="stat-card">
            <div class="stat-label">Cities Monitored</div>
            <div class="stat-value">{{.CityCount}}</div>
            <div class="stat-label">Locations</div>
        </div>
    </div>

    {{- range .Charts}}
    <div class="card">
        <h2>{{.Title}}</h2>
        <img src="{{.URI}}" alt="{{.Title}}">
    </div>
    {{- end}}

    <footer>
        <strong>Air Quality Dashboard</strong> | Data Analysis &amp; Visualization
        <div class="timestamp">Generated on {{.GeneratedAt}} &middot; Report {{.ReportID}}</div>
    </footer>
</div>
</body>
</html>
`))

// renderHTML executes the dashboard template into a string.
func renderHTML(data pageData) (string, error) {
	var sb strings.Builder
	if err := dashboardTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	return sb.String(), nil
}
