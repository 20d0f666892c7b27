package engine

import (
	"sort"

	"langreport/internal/models"
)

// TopLanguages ranks languages by how many distinct countries taught them
// across all years and both ranks, and returns the first n. Ties order
// alphabetically so the cut at n is deterministic.
func TopLanguages(records []models.LongRecord, n int) []string {
	countries := make(map[string]map[string]struct{})
	for _, r := range records {
		set := countries[r.Language]
		if set == nil {
			set = make(map[string]struct{})
			countries[r.Language] = set
		}
		set[r.Country] = struct{}{}
	}

	langs := make([]string, 0, len(countries))
	for l := range countries {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		ci, cj := len(countries[langs[i]]), len(countries[langs[j]])
		if ci != cj {
			return ci > cj
		}
		return langs[i] < langs[j]
	})

	if n < len(langs) {
		langs = langs[:n]
	}
	return langs
}

// TrendSeries counts distinct countries per (year, language) over the top
// set, both ranks combined. Years with no matching records produce no
// point; the chart layer leaves gaps rather than plotting zeroes.
func TrendSeries(records []models.LongRecord, top []string) []models.TrendPoint {
	inTop := toSet(top)

	type key struct {
		year     int
		language string
	}
	groups := make(map[key]map[string]struct{})
	for _, r := range records {
		if !inTop[r.Language] {
			continue
		}
		k := key{r.Year, r.Language}
		set := groups[k]
		if set == nil {
			set = make(map[string]struct{})
			groups[k] = set
		}
		set[r.Country] = struct{}{}
	}

	points := make([]models.TrendPoint, 0, len(groups))
	for k, set := range groups {
		points = append(points, models.TrendPoint{
			Year:         k.year,
			Language:     k.language,
			CountryCount: len(set),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Language < points[j].Language
	})
	return points
}

// RankedSeries counts distinct countries per (year, language, rank) over
// the top set. Same no-zero-fill policy as TrendSeries.
func RankedSeries(records []models.LongRecord, top []string) []models.RankedCount {
	inTop := toSet(top)

	type key struct {
		year     int
		language string
		rank     string
	}
	groups := make(map[key]map[string]struct{})
	for _, r := range records {
		if !inTop[r.Language] {
			continue
		}
		k := key{r.Year, r.Language, r.Rank}
		set := groups[k]
		if set == nil {
			set = make(map[string]struct{})
			groups[k] = set
		}
		set[r.Country] = struct{}{}
	}

	counts := make([]models.RankedCount, 0, len(groups))
	for k, set := range groups {
		counts = append(counts, models.RankedCount{
			Year:         k.year,
			Language:     k.language,
			Rank:         k.rank,
			CountryCount: len(set),
		})
	}
	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		return a.Rank < b.Rank
	})
	return counts
}

// SliceByYear filters an already-aggregated ranked series down to one
// year. A year with no data yields an empty, non-nil slice so JSON
// consumers see [] and render their placeholder.
func SliceByYear(ranked []models.RankedCount, year int) []models.RankedCount {
	out := make([]models.RankedCount, 0)
	for _, rc := range ranked {
		if rc.Year == year {
			out = append(out, rc)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
