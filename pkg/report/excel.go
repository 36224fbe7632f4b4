package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Default output file names, overwritten on each run.
const (
	SummaryFile = "local_units_summary.xlsx"
	TreemapFile = "local_units_treemap.xlsx"
)

// summarySheet is the single sheet of the summary workbook.
const summarySheet = "Local Unit Types"

// WriteSummary writes the merged summary table to a single-sheet workbook at
// path, overwriting any existing file.
//
// Column order: categories, one count_<env> column per environment, then
// pct_<env> and waffle_cells_<env> per environment.
func WriteSummary(path string, table *SummaryTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"categories"}
	for _, env := range table.Envs {
		header = append(header, "count_"+env)
	}
	for _, env := range table.Envs {
		header = append(header, "pct_"+env, "waffle_cells_"+env)
	}
	if err := writeRow(f, summarySheet, 1, header); err != nil {
		return err
	}

	for i, category := range table.Categories {
		row := []any{category}
		for _, env := range table.Envs {
			row = append(row, table.Counts[env][i])
		}
		for _, env := range table.Envs {
			row = append(row, table.Pct[env][i], table.Waffle[env][i])
		}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteTreemap writes one sheet per environment to a workbook at path,
// overwriting any existing file. Sheets keep the given order.
func WriteTreemap(path string, sheets []TreemapSheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.Name, err)
			}
		}

		if err := writeRow(f, sheet.Name, 1, []any{"categories", "Region", "count"}); err != nil {
			return err
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, r+2, []any{row.Category, row.Region, row.Count}); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeRow writes values left to right starting at column A of the given row.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
