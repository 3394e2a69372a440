package word

import (
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/internal/formats/docx"
	"github.com/klytics/officeskills/internal/pathutil"
	"github.com/klytics/officeskills/internal/skillerr"
)

type replacementCount struct {
	key   string
	count int
}

// replacementCounts encodes as a JSON object in application order.
type replacementCounts []replacementCount

func (rc replacementCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, c := range rc {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(c.key); err != nil {
			return nil, err
		}
		// Encode terminates each value with a newline.
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(c.count); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type replaceBatchResult struct {
	Replacements replacementCounts `json:"replacements"`
	Saved        string            `json:"saved"`
}

type replaceBatchOptions struct {
	replacements string
	file         string
	output       string
}

func newReplaceBatchCommand() *cobra.Command {
	var opts replaceBatchOptions

	c := &cobra.Command{
		Use:   "replace-batch <file.docx>",
		Short: "Apply several placeholder replacements and save once",
		Long: `Applies each placeholder/value pair in the order given, with the same
run-scoped matching as replace. Pairs come from --replacements (a JSON object)
or --replacements-file (a .json file, or YAML for any other extension).
Values that are not strings are rendered as text: true as True, null as None.`,
		Example: `  word-skill replace-batch offer.docx --replacements '{"<<Name>>": "Ada", "{{Salary}}": 120000}'
  word-skill replace-batch offer.docx --replacements-file values.yaml --output offer-ada.docx`,
		Args: cmd.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			resolved, err := pathutil.ResolveExisting(args[0])
			if err != nil {
				return err
			}

			pairs, err := loadReplacements(opts)
			if err != nil {
				return err
			}

			doc, _, err := openDocument(resolved)
			if err != nil {
				return err
			}

			counts := make(replacementCounts, 0, len(pairs))
			for _, p := range pairs {
				n := doc.ReplaceInRuns(p.key, p.value)
				log.Debug().Str("placeholder", p.key).Int("runs", n).Msg("replaced")
				counts = append(counts, replacementCount{key: p.key, count: n})
			}

			saved, err := saveDocument(doc, resolved, opts.output)
			if err != nil {
				return err
			}
			return cmd.Print(c, replaceBatchResult{Replacements: counts, Saved: saved})
		},
	}

	c.Flags().StringVar(&opts.replacements, "replacements", "", `JSON object, e.g. '{"<<Name>>": "Ada"}'`)
	c.Flags().StringVar(&opts.file, "replacements-file", "", "JSON or YAML file holding the replacements object")
	addOutputFlag(c.Flags(), &opts.output)
	c.MarkFlagsOneRequired("replacements", "replacements-file")
	c.MarkFlagsMutuallyExclusive("replacements", "replacements-file")

	return c
}

func loadReplacements(opts replaceBatchOptions) ([]replacement, error) {
	var (
		pairs []replacement
		err   error
	)
	if opts.file != "" {
		data, isYAML, readErr := readSideFile(opts.file)
		if readErr != nil {
			return nil, readErr
		}
		if isYAML {
			pairs, err = parseReplacementsYAML(data)
		} else {
			pairs, err = parseReplacementsJSON(string(data))
		}
	} else {
		pairs, err = parseReplacementsJSON(opts.replacements)
	}
	if err != nil {
		return nil, err
	}

	for _, p := range pairs {
		if p.key == "" {
			return nil, skillerr.MalformedInput("placeholder must not be empty")
		}
		if err := docx.CheckText(p.value); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}
