package engine

import (
	"fmt"
	"regexp"
	"strings"

	"langreport/internal/models"
)

// popColumn is one discovered rank-year column, e.g. pop12021.
type popColumn struct {
	index int
	rank  string
	year  int
}

var yearPattern = regexp.MustCompile(`[0-9]{4}`)

// parsePopColumn reads the rank and year out of a column name. The rank is
// the leading "pop1"/"pop2"; the year is the first 4-digit run after that
// prefix (so pop12021, pop1_2021 and "pop1 2021" all parse to 2021).
// Returns false for anything that doesn't fit, including bare "pop"
// columns with some other rank.
func parsePopColumn(name string) (rank string, year int, ok bool) {
	if len(name) < 4 {
		return "", 0, false
	}
	rank = name[:4]
	if rank != models.RankFirst && rank != models.RankSecond {
		return "", 0, false
	}
	m := yearPattern.FindString(name[4:])
	if m == "" {
		return "", 0, false
	}
	for _, c := range m {
		year = year*10 + int(c-'0')
	}
	return rank, year, true
}

// discoverColumns selects the pop-prefixed columns from the header row.
// The first column is always the country label and is never a candidate.
func discoverColumns(headers []string) []popColumn {
	var cols []popColumn
	for i, h := range headers {
		if i == 0 {
			continue
		}
		name := strings.TrimSpace(h)
		if !strings.HasPrefix(name, "pop") {
			continue
		}
		rank, year, ok := parsePopColumn(name)
		if !ok {
			continue
		}
		cols = append(cols, popColumn{index: i, rank: rank, year: year})
	}
	return cols
}

// Normalize reshapes the wide per-country table into long-form records:
// one record per (country, rank-year column) pair with a non-empty cell.
// Malformed columns and empty cells are dropped silently; a table with no
// usable pop columns at all is a configuration error, not an empty result.
func Normalize(raw *RawTable) ([]models.LongRecord, error) {
	cols := discoverColumns(raw.Headers)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no pop-prefixed rank-year columns found in header %v", raw.Headers)
	}

	records := make([]models.LongRecord, 0, len(raw.Rows)*len(cols))
	for _, row := range raw.Rows {
		if len(row) == 0 {
			continue
		}
		country := strings.TrimSpace(row[0])
		for _, col := range cols {
			if col.index >= len(row) {
				continue // ragged row, trailing cells missing
			}
			language := row[col.index]
			if strings.TrimSpace(language) == "" {
				continue
			}
			records = append(records, models.LongRecord{
				Country:  country,
				Rank:     col.rank,
				Year:     col.year,
				Language: language,
			})
		}
	}
	return records, nil
}
