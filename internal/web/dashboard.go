package web

import (
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"

	"langreport/internal/engine"
	"langreport/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
)

const (
	chartWidth  = "900px"
	chartHeight = "480px"
)

// DataSource hands out the published aggregate, nil while the background
// ETL is still running. *api.Handler satisfies this.
type DataSource interface {
	Data() *models.DashboardData
}

// Handler renders the dashboard: the control/table page at / and the two
// chart documents it embeds.
type Handler struct {
	source DataSource
}

func NewHandler(source DataSource) *Handler {
	return &Handler{source: source}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetDashboard)
	e.GET("/charts/trend", h.GetTrendChart)
	e.GET("/charts/ranked", h.GetRankedChart)
}

// pageData feeds the dashboard template.
type pageData struct {
	Year        int
	MinYear     int
	MaxYear     int
	Countries   []string
	Selected    map[string]bool
	Table       models.WideTable
	RankedEmpty bool
	RankedURL   string
}

// GetDashboard renders the controls, the chart frames and the filtered
// table. The year selector and country filter are plain GET params; every
// request is a pure read over the immutable aggregate.
func (h *Handler) GetDashboard(c echo.Context) error {
	data := h.source.Data()
	if data == nil {
		return c.HTML(http.StatusServiceUnavailable, loadingPage)
	}

	year := selectedYear(c, data)
	countries := c.QueryParams()["country"]

	selected := make(map[string]bool, len(countries))
	for _, ct := range countries {
		selected[ct] = true
	}

	pd := pageData{
		Year:        year,
		MinYear:     data.MinYear,
		MaxYear:     data.MaxYear,
		Countries:   data.Countries,
		Selected:    selected,
		Table:       engine.FilterTable(data.Table, countries),
		RankedEmpty: len(engine.SliceByYear(data.Ranked, year)) == 0,
		RankedURL:   fmt.Sprintf("/charts/ranked?year=%d", year),
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return dashboardTmpl.Execute(c.Response(), pd)
}

// GetTrendChart renders the countries-per-language line chart over all
// years, one series per top language.
func (h *Handler) GetTrendChart(c echo.Context) error {
	data := h.source.Data()
	if data == nil {
		return c.HTML(http.StatusServiceUnavailable, loadingPage)
	}

	line := buildTrendLine(data)
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return line.Render(c.Response())
}

// GetRankedChart renders the stacked rank bar for one year. A year with
// no data gets the placeholder page, not an empty chart.
func (h *Handler) GetRankedChart(c echo.Context) error {
	data := h.source.Data()
	if data == nil {
		return c.HTML(http.StatusServiceUnavailable, loadingPage)
	}

	year := selectedYear(c, data)
	slice := engine.SliceByYear(data.Ranked, year)
	if len(slice) == 0 {
		return c.HTML(http.StatusOK, fmt.Sprintf(noDataPage, year))
	}

	bar := buildRankedBar(data, slice, year)
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return bar.Render(c.Response())
}

// selectedYear parses ?year=, clamped to nothing: an out-of-range or
// absent year falls back to the latest one in the data.
func selectedYear(c echo.Context, data *models.DashboardData) int {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return data.MaxYear
	}
	return year
}

func buildTrendLine(data *models.DashboardData) *charts.Line {
	years := trendYears(data.Trend)

	type key struct {
		year     int
		language string
	}
	lookup := make(map[key]int, len(data.Trend))
	for _, p := range data.Trend {
		lookup[key{p.Year, p.Language}] = p.CountryCount
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Number of Countries Teaching Each Language Over Time",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "10",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Countries"}),
	)

	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	line.SetXAxis(labels)

	for _, lang := range data.TopLanguages {
		series := make([]opts.LineData, len(years))
		for i, y := range years {
			if count, ok := lookup[key{y, lang}]; ok {
				series[i] = opts.LineData{Value: count}
			} else {
				// No observation that year: leave a gap, don't plot zero.
				series[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(lang, series)
	}

	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
	)
	return line
}

func buildRankedBar(data *models.DashboardData, slice []models.RankedCount, year int) *charts.Bar {
	type key struct {
		language string
		rank     string
	}
	lookup := make(map[key]int, len(slice))
	for _, rc := range slice {
		lookup[key{rc.Language, rc.Rank}] = rc.CountryCount
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Top Languages by Popularity Rank, %d", year),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Language"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Countries"}),
	)
	bar.SetXAxis(data.TopLanguages)

	for _, rank := range []string{models.RankFirst, models.RankSecond} {
		series := make([]opts.BarData, len(data.TopLanguages))
		for i, lang := range data.TopLanguages {
			if count, ok := lookup[key{lang, rank}]; ok {
				series[i] = opts.BarData{Value: count}
			} else {
				series[i] = opts.BarData{Value: nil}
			}
		}
		bar.AddSeries(models.RankLabels[rank], series)
	}

	bar.SetSeriesOptions(
		charts.WithBarChartOpts(opts.BarChart{Stack: "rank"}),
	)
	return bar
}

// trendYears lists the distinct years of the trend series, ascending.
func trendYears(trend []models.TrendPoint) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, p := range trend {
		if _, ok := seen[p.Year]; ok {
			continue
		}
		seen[p.Year] = struct{}{}
		years = append(years, p.Year)
	}
	sort.Ints(years)
	return years
}

const loadingPage = `<!DOCTYPE html>
<html><body><p>Data is still loading, refresh in a moment.</p></body></html>`

const noDataPage = `<!DOCTYPE html>
<html><body><p>No data for %d.</p></body></html>`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Language Report Dashboard</title></head>
<body>
<h1>Language Report Dashboard</h1>

<iframe src="/charts/trend" width="960" height="520" frameborder="0"></iframe>

<form method="GET" action="/">
  <label>Year:
    <input type="number" name="year" value="{{.Year}}" min="{{.MinYear}}" max="{{.MaxYear}}" step="1">
  </label>
  <label>Countries:
    <select name="country" multiple size="6">
      {{- range .Countries}}
      <option value="{{.}}"{{if index $.Selected .}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  <button type="submit">Apply</button>
</form>

{{if .RankedEmpty}}
<p>No data for {{.Year}}.</p>
{{else}}
<iframe src="{{.RankedURL}}" width="960" height="520" frameborder="0"></iframe>
{{end}}

<table border="1" cellpadding="4">
  <thead>
    <tr>{{range .Table.Headers}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
    {{- range .Table.Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{- end}}
  </tbody>
</table>
</body>
</html>
`))
