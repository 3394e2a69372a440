package word

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/internal/formats/docx"
	"github.com/klytics/officeskills/internal/skillerr"
)

type replaceResult struct {
	Replaced string `json:"replaced"`
	With     string `json:"with"`
	Count    int    `json:"count"`
	Saved    string `json:"saved"`
}

func newReplaceCommand() *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "replace <file.docx> <placeholder> <value>",
		Short: "Replace a placeholder in paragraphs and table cells",
		Long: `Replaces every occurrence of placeholder inside each run of the body
paragraphs and table cells, then saves. count is the number of runs changed,
not the number of occurrences.`,
		Args: cmd.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			placeholder, value := args[1], args[2]
			if placeholder == "" {
				return skillerr.MalformedInput("placeholder must not be empty")
			}

			doc, resolved, err := openDocument(args[0])
			if err != nil {
				return err
			}

			if err := docx.CheckText(value); err != nil {
				return err
			}

			count := doc.ReplaceInRuns(placeholder, value)
			log.Debug().Str("placeholder", placeholder).Int("runs", count).Msg("replaced")

			saved, err := saveDocument(doc, resolved, output)
			if err != nil {
				return err
			}
			return cmd.Print(c, replaceResult{Replaced: placeholder, With: value, Count: count, Saved: saved})
		},
	}

	addOutputFlag(c.Flags(), &output)
	return c
}
