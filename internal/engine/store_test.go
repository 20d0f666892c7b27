package engine

import (
	"reflect"
	"testing"
)

func testRawTable() *RawTable {
	return &RawTable{
		Headers: []string{"Country", "pop12021", "pop22021", "pop12023"},
		Rows: [][]string{
			{" France", "English", "Spanish", "English"},
			{"Spain", "English", "", "English"},
			{"Italy", "English", "Spanish"},
		},
	}
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(testRawTable())
	if err != nil {
		t.Fatal(err)
	}

	wantHeaders := []string{"Country", "Most Popular 2021", "Second Most Popular 2021", "Most Popular 2023"}
	if !reflect.DeepEqual(store.Table.Headers, wantHeaders) {
		t.Errorf("headers: expected %v, got %v", wantHeaders, store.Table.Headers)
	}

	if len(store.Table.Rows) != 3 {
		t.Fatalf("expected 3 table rows, got %d", len(store.Table.Rows))
	}
	if store.Table.Rows[0][0] != "France" {
		t.Errorf("country not trimmed: %q", store.Table.Rows[0][0])
	}
	// Ragged source row is padded so every table row is rectangular.
	if len(store.Table.Rows[2]) != 4 || store.Table.Rows[2][3] != "" {
		t.Errorf("ragged row not padded: %v", store.Table.Rows[2])
	}

	// 3 + 2 + 2 records (empty pop22021 cell for Spain dropped, Italy has
	// no 2023 cell).
	if len(store.Records) != 7 {
		t.Errorf("expected 6 records, got %d: %v", len(store.Records), store.Records)
	}
}

func TestStoreAggregate(t *testing.T) {
	store, err := NewStore(testRawTable())
	if err != nil {
		t.Fatal(err)
	}

	data := store.Aggregate(5)

	// English covers 3 countries, Spanish 2.
	if len(data.TopLanguages) != 2 || data.TopLanguages[0] != "English" {
		t.Errorf("unexpected top languages: %v", data.TopLanguages)
	}
	if data.MinYear != 2021 || data.MaxYear != 2023 {
		t.Errorf("year domain: expected [2021, 2023], got [%d, %d]", data.MinYear, data.MaxYear)
	}

	wantCountries := []string{"France", "Italy", "Spain"}
	if !reflect.DeepEqual(data.Countries, wantCountries) {
		t.Errorf("countries: expected %v, got %v", wantCountries, data.Countries)
	}

	// No 2022 columns in the source, so no 2022 points anywhere.
	for _, p := range data.Trend {
		if p.Year == 2022 {
			t.Errorf("unexpected zero-fill year in trend: %v", p)
		}
	}
}

func TestFilterTable(t *testing.T) {
	store, err := NewStore(testRawTable())
	if err != nil {
		t.Fatal(err)
	}

	filtered := FilterTable(store.Table, []string{"Spain", "Italy"})
	if len(filtered.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", filtered.Rows)
	}
	if filtered.Rows[0][0] != "Spain" || filtered.Rows[1][0] != "Italy" {
		t.Errorf("unexpected filter result: %v", filtered.Rows)
	}

	// Empty filter means no filter.
	all := FilterTable(store.Table, nil)
	if len(all.Rows) != 3 {
		t.Errorf("expected all rows back, got %v", all.Rows)
	}

	// Matching is by exact label.
	none := FilterTable(store.Table, []string{"spain"})
	if len(none.Rows) != 0 {
		t.Errorf("expected no rows for non-matching label, got %v", none.Rows)
	}
}
