// Package word provides the word-skill commands for .docx documents.
package word

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/cmd/completion"
	"github.com/klytics/officeskills/cmd/version"
	"github.com/klytics/officeskills/internal/formats/docx"
	"github.com/klytics/officeskills/internal/pathutil"
)

// NewRootCommand returns the word-skill root command.
func NewRootCommand() *cobra.Command {
	root := cmd.NewRootCommand(
		"word-skill",
		"Read, fill and edit Word documents (.docx)",
		`Direct access to .docx documents: paragraphs, tables, placeholder
replacement and table filling. Every command prints one JSON object on
stdout; failures print {"error": "..."} and exit 1.

Replacement works inside single runs. A placeholder whose characters are
split across differently formatted runs is not found.`,
	)

	root.AddCommand(newInfoCommand())
	root.AddCommand(newReadCommand())
	root.AddCommand(newReadTablesCommand())
	root.AddCommand(newReplaceCommand())
	root.AddCommand(newReplaceBatchCommand())
	root.AddCommand(newFillTableCommand())
	root.AddCommand(version.NewCommand())
	root.AddCommand(completion.NewCommand(root))

	return root
}

// openDocument resolves path, checks it exists and parses it. It returns the
// document together with the resolved path.
func openDocument(path string) (*docx.Document, string, error) {
	resolved, err := pathutil.ResolveExisting(path)
	if err != nil {
		return nil, "", err
	}
	doc, err := docx.Open(resolved)
	if err != nil {
		return nil, "", err
	}
	log.Debug().Str("file", resolved).Int("paragraphs", len(doc.Paragraphs)).Int("tables", len(doc.Tables)).Msg("opened document")
	return doc, resolved, nil
}

// saveDocument writes doc to output, or over the input when output is
// empty. It returns the path to report: output as given, or the resolved
// input path.
func saveDocument(doc *docx.Document, resolved, output string) (string, error) {
	target, saved := resolved, resolved
	if output != "" {
		target, saved = pathutil.Expand(output), output
	}
	if err := doc.Save(target); err != nil {
		return "", err
	}
	log.Debug().Str("file", target).Msg("saved document")
	return saved, nil
}

func addOutputFlag(fs *pflag.FlagSet, output *string) {
	fs.StringVar(output, "output", "", "Write the result here instead of overwriting the input")
}
