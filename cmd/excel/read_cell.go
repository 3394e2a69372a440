package excel

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

type cellResult struct {
	Cell  string  `json:"cell"`
	Value *string `json:"value"`
}

func newReadCellCommand() *cobra.Command {
	var sheet string

	c := &cobra.Command{
		Use:   "read-cell <file.xlsx> <cell>",
		Short: "Read a single cell such as B3",
		Args:  cmd.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			result, err := runReadCell(args[0], args[1], sheet)
			if err != nil {
				return err
			}
			return cmd.Print(c, result)
		},
	}

	addSheetFlag(c.Flags(), &sheet)
	return c
}

func runReadCell(path, cell, sheet string) (*cellResult, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	name, err := wb.ResolveSheet(sheet)
	if err != nil {
		return nil, err
	}
	v, err := wb.CellValue(name, cell)
	if err != nil {
		return nil, err
	}

	result := &cellResult{Cell: cell}
	if !v.IsNone() {
		s := v.String()
		result.Value = &s
	}
	return result, nil
}
