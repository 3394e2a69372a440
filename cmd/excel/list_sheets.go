package excel

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

type listSheetsResult struct {
	Sheets []string `json:"sheets"`
}

func newListSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-sheets <file.xlsx>",
		Short: "List sheet names in workbook order",
		Args:  cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			names := wb.SheetNames()
			wb.Close()

			if names == nil {
				names = []string{}
			}
			return cmd.Print(c, listSheetsResult{Sheets: names})
		},
	}
}
