package engine

import (
	"fmt"
	"sort"
	"strings"

	"langreport/internal/models"
)

// Store is the in-memory dataset built once at startup: the long-form
// records plus the cleaned wide table. Immutable after construction; the
// aggregator only reads from it.
type Store struct {
	Records []models.LongRecord
	Table   models.WideTable
}

// NewStore normalizes the raw sheet and builds the cleaned wide table.
// Fails when the sheet has no usable rank-year columns.
func NewStore(raw *RawTable) (*Store, error) {
	records, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	return &Store{
		Records: records,
		Table:   cleanTable(raw),
	}, nil
}

// cleanTable keeps the country column plus the usable pop columns,
// relabels headers ("pop12021" -> "Most Popular 2021") and trims country
// labels. Cell content is preserved as-is.
func cleanTable(raw *RawTable) models.WideTable {
	cols := discoverColumns(raw.Headers)

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "Country")
	for _, c := range cols {
		headers = append(headers, fmt.Sprintf("%s %d", models.RankLabels[c.rank], c.year))
	}

	rows := make([][]string, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		if len(row) == 0 {
			continue
		}
		out := make([]string, 0, len(cols)+1)
		out = append(out, strings.TrimSpace(row[0]))
		for _, c := range cols {
			if c.index < len(row) {
				out = append(out, row[c.index])
			} else {
				out = append(out, "")
			}
		}
		rows = append(rows, out)
	}
	return models.WideTable{Headers: headers, Rows: rows}
}

// Aggregate derives every table the dashboard needs. topN picks how many
// languages survive into the charts (5 or 10 depending on the report
// variant).
func (s *Store) Aggregate(topN int) *models.DashboardData {
	top := TopLanguages(s.Records, topN)
	trend := TrendSeries(s.Records, top)
	ranked := RankedSeries(s.Records, top)

	data := &models.DashboardData{
		TopLanguages: top,
		Trend:        trend,
		Ranked:       ranked,
		Table:        s.Table,
		Countries:    s.countries(),
	}

	for i, p := range trend {
		if i == 0 || p.Year < data.MinYear {
			data.MinYear = p.Year
		}
		if p.Year > data.MaxYear {
			data.MaxYear = p.Year
		}
	}
	return data
}

// countries lists the distinct country labels of the wide table, sorted,
// for the dashboard's filter control.
func (s *Store) countries() []string {
	seen := make(map[string]struct{}, len(s.Table.Rows))
	out := make([]string, 0, len(s.Table.Rows))
	for _, row := range s.Table.Rows {
		if _, ok := seen[row[0]]; ok {
			continue
		}
		seen[row[0]] = struct{}{}
		out = append(out, row[0])
	}
	sort.Strings(out)
	return out
}

// FilterTable subsets a wide table by exact country-label membership. An
// empty filter returns the table unchanged.
func FilterTable(table models.WideTable, countries []string) models.WideTable {
	if len(countries) == 0 {
		return table
	}
	keep := toSet(countries)
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if keep[row[0]] {
			rows = append(rows, row)
		}
	}
	return models.WideTable{Headers: table.Headers, Rows: rows}
}
