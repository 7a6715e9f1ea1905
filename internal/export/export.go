// Package export writes the long-format dataset and charts to downloadable
// files: CSV, Excel workbooks and PNG line charts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jpalmerr/pwsboard/internal/dataset"
)

// Header is the column layout of every tabular export.
var Header = []string{dataset.StateColumn, dataset.CodeColumn, "Year", "Population"}

const sheetName = "Population"

// WriteCSV writes all long-format records as CSV. Missing populations are
// written as empty cells.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range ds.Records() {
		pop := ""
		if r.HasPopulation() {
			pop = strconv.FormatFloat(r.Population, 'f', -1, 64)
		}
		if err := cw.Write([]string{r.State, r.Code, strconv.Itoa(r.Year), pop}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes all long-format records to a single-sheet workbook.
func WriteXLSX(w io.Writer, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range ds.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var pop any
		if r.HasPopulation() {
			pop = r.Population
		}
		row := []any{r.State, r.Code, r.Year, pop}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
