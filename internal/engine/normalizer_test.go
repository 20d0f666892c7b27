package engine

import (
	"testing"

	"langreport/internal/models"
)

func TestNormalize(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"Country", "pop12021", "pop22021"},
		Rows: [][]string{
			{"  France ", "English", "Spanish"},
			{"Spain", "English", ""},
		},
	}

	records, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}

	want := []models.LongRecord{
		{Country: "France", Rank: "pop1", Year: 2021, Language: "English"},
		{Country: "France", Rank: "pop2", Year: 2021, Language: "Spanish"},
		{Country: "Spain", Rank: "pop1", Year: 2021, Language: "English"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i, w := range want {
		if records[i] != w {
			t.Errorf("record %d: expected %v, got %v", i, w, records[i])
		}
	}
}

func TestNormalizeDropsMalformedColumns(t *testing.T) {
	raw := &RawTable{
		// pop32021 has an unknown rank, pop1notes has no year, population
		// is a pop-prefixed column that is neither.
		Headers: []string{"Country", "pop12022", "pop32021", "pop1notes", "population"},
		Rows: [][]string{
			{"France", "English", "German", "misc", "67m"},
		},
	}

	records, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %v", len(records), records)
	}
	if records[0].Language != "English" || records[0].Year != 2022 {
		t.Errorf("unexpected record: %v", records[0])
	}
}

func TestNormalizeRaggedAndEmptyRows(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"Country", "pop12021", "pop22021"},
		Rows: [][]string{
			{"Spain", "English"}, // trailing cells missing
			{},
			{"Italy", "", "  "}, // whitespace-only cell is missing
		},
	}

	records, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %v", len(records), records)
	}
	if records[0].Country != "Spain" || records[0].Rank != "pop1" {
		t.Errorf("unexpected record: %v", records[0])
	}
}

func TestNormalizeNoPopColumns(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"Country", "capital", "population"},
		Rows:    [][]string{{"France", "Paris", "67m"}},
	}

	if _, err := Normalize(raw); err == nil {
		t.Fatal("expected error for a sheet with no rank-year columns")
	}
}

func TestParsePopColumn(t *testing.T) {
	cases := []struct {
		name string
		rank string
		year int
		ok   bool
	}{
		{"pop12021", "pop1", 2021, true},
		{"pop22023", "pop2", 2023, true},
		{"pop1_2024", "pop1", 2024, true},
		{"pop1 2020", "pop1", 2020, true},
		{"pop32021", "", 0, false},
		{"pop1abc", "", 0, false},
		{"pop", "", 0, false},
		{"country", "", 0, false},
	}
	for _, tc := range cases {
		rank, year, ok := parsePopColumn(tc.name)
		if ok != tc.ok || rank != tc.rank || year != tc.year {
			t.Errorf("parsePopColumn(%q) = (%q, %d, %v), expected (%q, %d, %v)",
				tc.name, rank, year, ok, tc.rank, tc.year, tc.ok)
		}
	}
}
