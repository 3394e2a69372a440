package word

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

type tableResult struct {
	Index int        `json:"index"`
	Rows  [][]string `json:"rows"`
}

type readTablesResult struct {
	Tables []tableResult `json:"tables"`
}

func newReadTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read-tables <file.docx>",
		Short: "Dump every body table as rows of cell text",
		Args:  cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, _, err := openDocument(args[0])
			if err != nil {
				return err
			}

			result := readTablesResult{Tables: make([]tableResult, 0, len(doc.Tables))}
			for i, t := range doc.Tables {
				result.Tables = append(result.Tables, tableResult{Index: i, Rows: t.RowTexts()})
			}
			return cmd.Print(c, result)
		},
	}
}
