package excel

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/internal/formats/xlsx"
	"github.com/klytics/officeskills/internal/skillerr"
)

type readOptions struct {
	sheet   string
	ref     string
	maxRows int
}

type readResult struct {
	Headers   []string      `json:"headers"`
	Data      []xlsx.Record `json:"data"`
	RowCount  int           `json:"rowCount"`
	TotalRows int           `json:"totalRows"`
	Truncated bool          `json:"truncated,omitempty"`
	Note      string        `json:"note,omitempty"`
}

func newReadCommand() *cobra.Command {
	var opts readOptions

	c := &cobra.Command{
		Use:   "read <file.xlsx>",
		Short: "Read a sheet or range as header-keyed rows",
		Long: `Reads the active sheet (or --sheet) and returns row 1 as headers and every
later row as an object keyed by those headers. --range limits the read to a
rectangle such as A1:D20. At most --max-rows data rows are returned; 0 means
no limit.`,
		Args: cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("max-rows") {
				opts.maxRows = cmd.SettingsFrom(c).Config.Excel.MaxRows
			}
			if opts.maxRows < 0 {
				return skillerr.MalformedInput("--max-rows must be 0 or greater, got %d", opts.maxRows)
			}

			result, err := runRead(args[0], opts)
			if err != nil {
				return err
			}
			return cmd.Print(c, result)
		},
	}

	addSheetFlag(c.Flags(), &opts.sheet)
	c.Flags().StringVar(&opts.ref, "range", "", "Cell range to read, e.g. A1:B10")
	c.Flags().IntVar(&opts.maxRows, "max-rows", 100, "Max data rows to return (0 for unlimited)")

	return c
}

func runRead(path string, opts readOptions) (*readResult, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.ResolveSheet(opts.sheet)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if opts.ref != "" {
		values, err := wb.ReadRange(sheet, opts.ref)
		if err != nil {
			return nil, err
		}
		rows = xlsx.Strings(values)
	} else {
		s, err := wb.ReadSheet(sheet)
		if err != nil {
			return nil, err
		}
		rows = s.StringRows()
	}

	return buildReadResult(rows, opts.maxRows), nil
}

// buildReadResult splits rows into headers and header-keyed records,
// truncating the records to maxRows when maxRows is positive.
func buildReadResult(rows [][]string, maxRows int) *readResult {
	if len(rows) == 0 {
		return &readResult{Headers: []string{}, Data: []xlsx.Record{}}
	}

	headers := rows[0]
	dataRows := rows[1:]
	total := len(dataRows)

	result := &readResult{Headers: headers, TotalRows: total}
	if maxRows > 0 && total > maxRows {
		dataRows = dataRows[:maxRows]
		result.Truncated = true
		result.Note = fmt.Sprintf("Showing %d of %d rows. Use --max-rows 0 for all, or --range A1:Z%d for a specific range.",
			maxRows, total, maxRows+1)
		log.Debug().Int("total", total).Int("shown", maxRows).Msg("read truncated")
	}

	result.Data = make([]xlsx.Record, 0, len(dataRows))
	for _, row := range dataRows {
		result.Data = append(result.Data, xlsx.Zip(headers, row))
	}
	result.RowCount = len(result.Data)
	return result
}
