// Package dataset reads the product/location workbook the calculator is built on.
package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers the workbook must provide.
const (
	ColumnRegion          = "Location_Region"
	ColumnSellingLocation = "Selling_Location"
	ColumnAreaName        = "Area_Name"
	ColumnProductID       = "product_id"
	ColumnPartCategory    = "Part_Category"
)

var requiredColumns = []string{
	ColumnRegion,
	ColumnSellingLocation,
	ColumnAreaName,
	ColumnProductID,
	ColumnPartCategory,
}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptySheet    = errors.New("sheet has no header row")
)

// Row is one record of the dataset. Blank cells are empty strings.
type Row struct {
	Region          string
	SellingLocation string
	AreaName        string
	ProductID       string
	PartCategory    string
}

// Load opens the workbook at path and reads every data row of sheet.
// An empty sheet name selects the first sheet.
func Load(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, sheet)
}

// Read extracts rows from an already opened workbook.
func Read(f *excelize.File, sheet string) ([]Row, error) {
	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, ErrSheetNotFound
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	it, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("iterate sheet %s: %w", sheet, err)
	}
	defer it.Close()

	if !it.Next() {
		if err := it.Error(); err != nil {
			return nil, fmt.Errorf("read header of %s: %w", sheet, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, sheet)
	}
	header, err := it.Columns()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", sheet, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0)
	for it.Next() {
		cols, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row %d of %s: %w", len(rows)+2, sheet, err)
		}
		row := Row{
			Region:          cell(cols, idx[ColumnRegion]),
			SellingLocation: cell(cols, idx[ColumnSellingLocation]),
			AreaName:        cell(cols, idx[ColumnAreaName]),
			ProductID:       cell(cols, idx[ColumnProductID]),
			PartCategory:    cell(cols, idx[ColumnPartCategory]),
		}
		if row == (Row{}) {
			continue
		}
		rows = append(rows, row)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate sheet %s: %w", sheet, err)
	}

	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns the trimmed value at i; rows are often shorter than the header
// because trailing blank cells are not stored.
func cell(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}
