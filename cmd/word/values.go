package word

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klytics/officeskills/internal/formats/xlsx"
	"github.com/klytics/officeskills/internal/pathutil"
	"github.com/klytics/officeskills/internal/skillerr"
)

// replacement is one placeholder/value pair in input order.
type replacement struct {
	key   string
	value string
}

// parseReplacementsJSON decodes a JSON object into ordered pairs. A repeated
// key keeps its first position and takes the last value.
func parseReplacementsJSON(raw string) ([]replacement, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, skillerr.MalformedInput("invalid replacements JSON: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, skillerr.MalformedInput("replacements must be a JSON object of placeholder to value")
	}

	var pairs []replacement
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, skillerr.MalformedInput("invalid replacements JSON: %v", err)
		}
		key := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, skillerr.MalformedInput("invalid replacements JSON: %v", err)
		}
		pairs = setReplacement(pairs, key, stringify(v))
	}
	if _, err := dec.Token(); err != nil {
		return nil, skillerr.MalformedInput("invalid replacements JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, skillerr.MalformedInput("invalid replacements JSON: unexpected data after object")
	}
	return pairs, nil
}

// parseReplacementsYAML decodes a YAML mapping into ordered pairs.
func parseReplacementsYAML(data []byte) ([]replacement, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, skillerr.MalformedInput("invalid replacements YAML: %v", err)
	}
	node := documentRoot(&doc)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, skillerr.MalformedInput("replacements must be a mapping of placeholder to value")
	}

	var pairs []replacement
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = setReplacement(pairs, node.Content[i].Value, nodeString(node.Content[i+1]))
	}
	return pairs, nil
}

func setReplacement(pairs []replacement, key, value string) []replacement {
	for i := range pairs {
		if pairs[i].key == key {
			pairs[i].value = value
			return pairs
		}
	}
	return append(pairs, replacement{key: key, value: value})
}

// parseTableDataJSON decodes a JSON array of arrays into cell strings.
func parseTableDataJSON(raw string) ([][]string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, skillerr.MalformedInput("invalid table data JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, skillerr.MalformedInput("invalid table data JSON: unexpected data after array")
	}
	rows, ok := decoded.([]any)
	if !ok {
		return nil, skillerr.MalformedInput("table data must be a JSON array of row arrays")
	}

	data := make([][]string, 0, len(rows))
	for i, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			return nil, skillerr.MalformedInput("table data row %d is not an array", i)
		}
		row := make([]string, 0, len(cells))
		for _, v := range cells {
			row = append(row, stringify(v))
		}
		data = append(data, row)
	}
	return data, nil
}

// parseTableDataYAML decodes a YAML sequence of sequences into cell strings.
func parseTableDataYAML(data []byte) ([][]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, skillerr.MalformedInput("invalid table data YAML: %v", err)
	}
	node := documentRoot(&doc)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, skillerr.MalformedInput("table data must be a sequence of rows")
	}

	rows := make([][]string, 0, len(node.Content))
	for i, r := range node.Content {
		r = resolveAlias(r)
		if r.Kind != yaml.SequenceNode {
			return nil, skillerr.MalformedInput("table data row %d is not a sequence", i)
		}
		row := make([]string, 0, len(r.Content))
		for _, v := range r.Content {
			row = append(row, nodeString(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readSideFile loads a --*-file argument. isYAML is false for .json files.
func readSideFile(path string) (data []byte, isYAML bool, err error) {
	resolved, err := pathutil.ResolveExisting(path)
	if err != nil {
		return nil, false, err
	}
	data, err = os.ReadFile(resolved)
	if err != nil {
		return nil, false, skillerr.IOFailure(fmt.Errorf("could not read %s: %w", resolved, err))
	}
	return data, !strings.EqualFold(filepath.Ext(resolved), ".json"), nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	return resolveAlias(doc.Content[0])
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// stringify renders a decoded JSON value the way the value would print in a
// document: strings verbatim, booleans as True/False, null as None and
// numbers with floats always carrying a fractional part.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case json.Number:
		return numberString(t.String())
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	}
}

func numberString(s string) string {
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return xlsx.Float(f).String()
}

// nodeString renders a YAML value with the same rules as stringify.
func nodeString(n *yaml.Node) string {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return stringify(v)
	}

	switch n.ShortTag() {
	case "!!null":
		return "None"
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return stringify(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return strconv.FormatInt(i, 10)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return xlsx.Float(f).String()
		}
	}
	return n.Value
}
