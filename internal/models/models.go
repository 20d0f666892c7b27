package models

// Rank values as they appear in the source column names.
const (
	RankFirst  = "pop1"
	RankSecond = "pop2"
)

// RankLabels maps source rank codes to the labels shown in charts and
// table headers.
var RankLabels = map[string]string{
	RankFirst:  "Most Popular",
	RankSecond: "Second Most Popular",
}

// LongRecord is one (country, rank, year) observation from the report.
// Language is always non-empty; cells with missing values never become
// records.
type LongRecord struct {
	Country  string `json:"country"`
	Rank     string `json:"rank"`
	Year     int    `json:"year"`
	Language string `json:"language"`
}

// TrendPoint counts the distinct countries teaching a language in a year,
// across both ranks.
type TrendPoint struct {
	Year         int    `json:"year"`
	Language     string `json:"language"`
	CountryCount int    `json:"country_count"`
}

// RankedCount counts the distinct countries where a language held a
// specific rank in a year.
type RankedCount struct {
	Year         int    `json:"year"`
	Language     string `json:"language"`
	Rank         string `json:"rank"`
	CountryCount int    `json:"country_count"`
}

// WideTable is the cleaned wide-form table backing the dashboard's table
// view. Headers are already relabeled ("Most Popular 2021").
type WideTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// DashboardData is the immutable bundle of derived tables built once at
// startup and shared read-only by every handler.
type DashboardData struct {
	TopLanguages []string      `json:"top_languages"`
	Trend        []TrendPoint  `json:"trend"`
	Ranked       []RankedCount `json:"ranked"`
	Table        WideTable     `json:"table"`
	Countries    []string      `json:"countries"`
	MinYear      int           `json:"min_year"`
	MaxYear      int           `json:"max_year"`
}
