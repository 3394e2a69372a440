package word

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

type paragraphResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Style string `json:"style"`
}

type readResult struct {
	Paragraphs []paragraphResult `json:"paragraphs"`
}

func newReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <file.docx>",
		Short: "List non-empty body paragraphs with their styles",
		Long: `Lists every body paragraph that contains non-whitespace text. index is the
paragraph's position among all body paragraphs, including empty ones.`,
		Args: cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, _, err := openDocument(args[0])
			if err != nil {
				return err
			}

			result := readResult{Paragraphs: []paragraphResult{}}
			for i, p := range doc.Paragraphs {
				text := p.Text()
				if strings.TrimSpace(text) == "" {
					continue
				}
				result.Paragraphs = append(result.Paragraphs, paragraphResult{Index: i, Text: text, Style: p.Style()})
			}
			return cmd.Print(c, result)
		},
	}
}
