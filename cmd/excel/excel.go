// Package excel provides the excel-skill commands for .xlsx workbooks.
package excel

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/cmd/completion"
	"github.com/klytics/officeskills/cmd/version"
	"github.com/klytics/officeskills/internal/formats/xlsx"
	"github.com/klytics/officeskills/internal/pathutil"
)

// NewRootCommand returns the excel-skill root command.
func NewRootCommand() *cobra.Command {
	root := cmd.NewRootCommand(
		"excel-skill",
		"Read, search and write Excel spreadsheets (.xlsx)",
		`Direct access to .xlsx workbooks. Every command prints one JSON object on
stdout; failures print {"error": "..."} and exit 1.`,
	)

	root.AddCommand(newInfoCommand())
	root.AddCommand(newListSheetsCommand())
	root.AddCommand(newReadCommand())
	root.AddCommand(newReadCellCommand())
	root.AddCommand(newWriteCellCommand())
	root.AddCommand(newSearchCommand())
	root.AddCommand(version.NewCommand())
	root.AddCommand(completion.NewCommand(root))

	return root
}

// openWorkbook resolves path, checks it exists and opens it.
func openWorkbook(path string) (*xlsx.Workbook, error) {
	resolved, err := pathutil.ResolveExisting(path)
	if err != nil {
		return nil, err
	}
	wb, err := xlsx.Open(resolved)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", resolved).Msg("opened workbook")
	return wb, nil
}

// addSheetFlag registers the --sheet flag shared by most commands.
func addSheetFlag(fs *pflag.FlagSet, sheet *string) {
	fs.StringVar(sheet, "sheet", "", "Sheet name (default: the active sheet)")
}
