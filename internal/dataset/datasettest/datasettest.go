// Package datasettest writes small workbooks for tests.
package datasettest

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the column layout of a complete dataset.
var Header = []string{"Location_Region", "Selling_Location", "Area_Name", "product_id", "Part_Category"}

// SampleRows covers four regions, duplicate tuples and blank cells.
var SampleRows = [][]string{
	{"WEST", "Reno Hub", "Nevada North", "P-100", "Brakes"},
	{"WEST", "Fresno Depot", "Central Valley", "P-101", "Filters"},
	{"WEST", "Reno Hub", "Nevada North", "P-102", "Brakes"},
	{"CENTRAL", "Omaha Yard", "Plains", "P-100", "Engine"},
	{"CENTRAL", "Omaha Yard", "", "P-103", "Engine"},
	{"NORTHEAST", "Albany Store", "Hudson", "P-104", "Lighting"},
	{"SOUTHEAST", "Macon Outlet", "Georgia South", "P-105", ""},
	{"", "Orphan Lot", "Nowhere", "P-106", "Brakes"},
}

// WriteWorkbook saves header and rows to a new workbook in a temp dir and returns its path.
func WriteWorkbook(t *testing.T, sheet string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}

	all := append([][]string{header}, rows...)
	for i, r := range all {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "raw_data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
