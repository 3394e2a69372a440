package word

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

type tableInfo struct {
	Index   int      `json:"index"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Headers []string `json:"headers"`
}

type infoResult struct {
	File         string      `json:"file"`
	Paragraphs   int         `json:"paragraphs"`
	Tables       []tableInfo `json:"tables"`
	Placeholders []string    `json:"placeholders"`
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.docx>",
		Short: "Count paragraphs, describe tables and list placeholders",
		Long: `Reports the body paragraph count, each table's size and header row, and
the distinct <<...>> and {{...}} placeholders found in body paragraphs.`,
		Args: cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, resolved, err := openDocument(args[0])
			if err != nil {
				return err
			}

			result := infoResult{
				File:         resolved,
				Paragraphs:   len(doc.Paragraphs),
				Tables:       make([]tableInfo, 0, len(doc.Tables)),
				Placeholders: doc.Placeholders(),
			}
			for i, t := range doc.Tables {
				result.Tables = append(result.Tables, tableInfo{
					Index:   i,
					Rows:    len(t.Rows),
					Cols:    t.ColumnCount(),
					Headers: t.Headers(),
				})
			}
			return cmd.Print(c, result)
		},
	}
}
