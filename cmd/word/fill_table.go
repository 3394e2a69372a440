package word

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/internal/pathutil"
)

type fillTableResult struct {
	TableIndex int    `json:"table_index"`
	RowsFilled int    `json:"rows_filled"`
	Saved      string `json:"saved"`
}

type fillTableOptions struct {
	tableIndex int
	data       string
	file       string
	output     string
}

func newFillTableCommand() *cobra.Command {
	var opts fillTableOptions

	c := &cobra.Command{
		Use:   "fill-table <file.docx>",
		Short: "Write rows of data into a table below its header",
		Long: `Writes data row i into table row i+1, leaving the header row untouched.
Existing rows are overwritten cell by cell; rows beyond the end of the table
are appended. Values past a row's last cell are ignored.`,
		Example: `  word-skill fill-table invoice.docx --table-index 0 --data '[["Widget", 3, 9.5], ["Gadget", 1, 20]]'
  word-skill fill-table invoice.docx --table-index 1 --data-file lines.yaml --output invoice-filled.docx`,
		Args: cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			resolved, err := pathutil.ResolveExisting(args[0])
			if err != nil {
				return err
			}

			rows, err := loadTableData(opts)
			if err != nil {
				return err
			}

			doc, _, err := openDocument(resolved)
			if err != nil {
				return err
			}
			if err := doc.FillTable(opts.tableIndex, rows); err != nil {
				return err
			}
			log.Debug().Int("table", opts.tableIndex).Int("rows", len(rows)).Msg("filled table")

			saved, err := saveDocument(doc, resolved, opts.output)
			if err != nil {
				return err
			}
			return cmd.Print(c, fillTableResult{TableIndex: opts.tableIndex, RowsFilled: len(rows), Saved: saved})
		},
	}

	c.Flags().IntVar(&opts.tableIndex, "table-index", 0, "0-based index of the body table to fill")
	c.Flags().StringVar(&opts.data, "data", "", `JSON array of row arrays, e.g. '[["A", 1], ["B", 2]]'`)
	c.Flags().StringVar(&opts.file, "data-file", "", "JSON or YAML file holding the row arrays")
	addOutputFlag(c.Flags(), &opts.output)
	_ = c.MarkFlagRequired("table-index")
	c.MarkFlagsOneRequired("data", "data-file")
	c.MarkFlagsMutuallyExclusive("data", "data-file")

	return c
}

func loadTableData(opts fillTableOptions) ([][]string, error) {
	if opts.file == "" {
		return parseTableDataJSON(opts.data)
	}
	data, isYAML, err := readSideFile(opts.file)
	if err != nil {
		return nil, err
	}
	if isYAML {
		return parseTableDataYAML(data)
	}
	return parseTableDataJSON(string(data))
}
