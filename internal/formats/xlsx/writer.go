package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/officeskills/internal/skillerr"
)

// SheetData describes a sheet to generate with WriteFile. Row values may be
// any type excelize accepts (string, int, float64, bool, time.Time, nil).
type SheetData struct {
	Name string
	Rows [][]any
}

// SetCell assigns v to an A1 coordinate on the named sheet.
func (wb *Workbook) SetCell(sheet, cell string, v Value) error {
	col, row, err := ParseCell(cell)
	if err != nil {
		return err
	}
	ref, _ := excelize.CoordinatesToCellName(col, row)
	if err := wb.f.SetCellValue(sheet, ref, v.Interface()); err != nil {
		return skillerr.IOFailure(fmt.Errorf("could not set cell %s: %w", cell, err))
	}
	return nil
}

// Save writes the workbook back to its own path.
func (wb *Workbook) Save() error {
	if err := wb.f.SaveAs(wb.Path); err != nil {
		return skillerr.IOFailure(fmt.Errorf("could not save %s: %w", wb.Path, err))
	}
	return nil
}

// WriteFile creates a new .xlsx file at path from the given sheets. The
// first sheet is active.
func WriteFile(path string, sheets ...SheetData) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		sheetName := sheet.Name
		if sheetName == "" {
			sheetName = fmt.Sprintf("Sheet%d", i+1)
		}

		if i == 0 {
			// Rename default sheet
			defaultSheet := f.GetSheetName(0)
			if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
				return fmt.Errorf("could not rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheetName); err != nil {
				return fmt.Errorf("could not create sheet %q: %w", sheetName, err)
			}
		}

		for rowIdx, row := range sheet.Rows {
			for colIdx, cell := range row {
				if cell == nil {
					continue
				}
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return fmt.Errorf("invalid cell coordinates: %w", err)
				}
				if err := f.SetCellValue(sheetName, cellName, cell); err != nil {
					return fmt.Errorf("could not set cell %s: %w", cellName, err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}

	return nil
}
