package excel

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/internal/formats/xlsx"
)

type searchMatch struct {
	Row  int         `json:"row"`
	Data xlsx.Record `json:"data"`
}

type searchResult struct {
	Query      string        `json:"query"`
	Matches    []searchMatch `json:"matches"`
	MatchCount int           `json:"matchCount"`
}

func newSearchCommand() *cobra.Command {
	var sheet string

	c := &cobra.Command{
		Use:   "search <file.xlsx> <query>",
		Short: "Find rows containing a value (case-insensitive)",
		Args:  cmd.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			result, err := runSearch(args[0], args[1], sheet)
			if err != nil {
				return err
			}
			return cmd.Print(c, result)
		},
	}

	addSheetFlag(c.Flags(), &sheet)
	return c
}

func runSearch(path, query, sheet string) (*searchResult, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	name, err := wb.ResolveSheet(sheet)
	if err != nil {
		return nil, err
	}
	s, err := wb.ReadSheet(name)
	if err != nil {
		return nil, err
	}

	headers := s.Headers()
	result := &searchResult{Query: query, Matches: []searchMatch{}}
	for _, m := range s.Search(query) {
		result.Matches = append(result.Matches, searchMatch{Row: m.Row, Data: xlsx.Zip(headers, m.Values)})
	}
	result.MatchCount = len(result.Matches)
	return result, nil
}
