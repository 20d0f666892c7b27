package engine

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// RawTable is one sheet of the report as loaded: a header row and the data
// rows below it. The first column is the country label whatever its header
// says.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// LoadSheet reads one sheet of the report workbook. The first skipRows
// rows are discarded (the sheet starts with a banner row), the next row is
// the header. A .csv path takes the CSV branch with the same semantics,
// ignoring the sheet name.
func LoadSheet(path, sheet string, skipRows int) (*RawTable, error) {
	start := time.Now()

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(path)
	} else {
		rows, err = readWorkbook(path, sheet)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) <= skipRows {
		return nil, fmt.Errorf("sheet %q: no header row after skipping %d rows", sheet, skipRows)
	}
	rows = rows[skipRows:]

	table := &RawTable{Headers: rows[0], Rows: rows[1:]}
	log.Printf("Loaded %q: %d data rows, %d columns. Time: %v",
		filepath.Base(path), len(table.Rows), len(table.Headers), time.Since(start))
	return table, nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // report exports have ragged rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}
