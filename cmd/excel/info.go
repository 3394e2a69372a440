package excel

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

type sheetInfo struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Headers []string `json:"headers"`
}

type infoResult struct {
	File   string      `json:"file"`
	Sheets []sheetInfo `json:"sheets"`
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.xlsx>",
		Short: "Show sheet names, dimensions and header rows",
		Args:  cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			result, err := runInfo(args[0])
			if err != nil {
				return err
			}
			return cmd.Print(c, result)
		},
	}
}

func runInfo(path string) (*infoResult, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	result := &infoResult{File: wb.Path, Sheets: []sheetInfo{}}
	for _, name := range wb.SheetNames() {
		s, err := wb.ReadSheet(name)
		if err != nil {
			return nil, err
		}
		headers := s.Headers()
		if headers == nil {
			headers = []string{}
		}
		result.Sheets = append(result.Sheets, sheetInfo{
			Name:    name,
			Rows:    s.MaxRow,
			Cols:    s.MaxCol,
			Headers: headers,
		})
	}
	return result, nil
}
