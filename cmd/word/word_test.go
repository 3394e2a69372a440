package word

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/internal/formats/docx"
)

func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--no-color"}, args...))
	code := cmd.Run(root)
	return out.String(), code
}

func run(t *testing.T, args ...string) (map[string]any, int) {
	t.Helper()
	raw, code := execute(t, args...)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got), "stdout was %q", raw)
	return got, code
}

// letterPath writes a document exercising placeholders, styles, split runs
// and two tables.
func letterPath(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	data, err := docx.WriteDocument([]docx.Block{
		{Type: docx.BlockParagraph, Style: "Title", Text: "Order Update"},
		{Type: docx.BlockParagraph, Text: "Dear <<Name>>, your order {{OrderID}} shipped."},
		{Type: docx.BlockParagraph},
		{Type: docx.BlockParagraph, Runs: []docx.RunSpec{{Text: "Signed: <<Sig"}, {Text: "ner>>", Bold: true}}},
		{Type: docx.BlockParagraph, Style: "Heading1", Text: "Thanks <<Name>>"},
		{Type: docx.BlockTable, Rows: [][]string{{"Item", "Qty"}}},
		{Type: docx.BlockTable, Rows: [][]string{{"Name", "Role"}, {"<<Name>>", "Lead"}}},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "letter.docx")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func openDoc(t *testing.T, path string) *docx.Document {
	t.Helper()
	doc, err := docx.Open(path)
	require.NoError(t, err)
	return doc
}

func TestInfo(t *testing.T) {
	path := letterPath(t)

	raw, code := execute(t, "info", path)
	require.Equal(t, 0, code)
	assert.Contains(t, raw, `"placeholders":["<<Name>>","{{OrderID}}","<<Signer>>"]`)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, path, got["file"])
	assert.EqualValues(t, 5, got["paragraphs"])

	tables := got["tables"].([]any)
	require.Len(t, tables, 2)
	assert.Equal(t, map[string]any{"index": 0.0, "rows": 1.0, "cols": 2.0, "headers": []any{"Item", "Qty"}}, tables[0])
	assert.Equal(t, map[string]any{"index": 1.0, "rows": 2.0, "cols": 2.0, "headers": []any{"Name", "Role"}}, tables[1])
}

func TestInfoPlaceholdersDeduplicated(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	data, err := docx.WriteDocument([]docx.Block{
		{Type: docx.BlockParagraph, Text: "Dear <<Name>>, your order {{OrderID}} shipped."},
		{Type: docx.BlockParagraph, Text: "<<Name>> again"},
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plain.docx")
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, code := run(t, "info", path)
	require.Equal(t, 0, code)
	assert.Equal(t, []any{"<<Name>>", "{{OrderID}}"}, got["placeholders"])
	assert.Equal(t, []any{}, got["tables"])
}

func TestRead(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "read", path)
	require.Equal(t, 0, code)

	paragraphs := got["paragraphs"].([]any)
	require.Len(t, paragraphs, 4)
	assert.Equal(t, map[string]any{"index": 0.0, "text": "Order Update", "style": "Title"}, paragraphs[0])
	assert.Equal(t, map[string]any{"index": 1.0, "text": "Dear <<Name>>, your order {{OrderID}} shipped.", "style": "Normal"}, paragraphs[1])
	// The empty paragraph at index 2 is skipped but still counted.
	assert.EqualValues(t, 3, paragraphs[2].(map[string]any)["index"])
	assert.Equal(t, "Heading 1", paragraphs[3].(map[string]any)["style"])
}

func TestReadTables(t *testing.T) {
	path := letterPath(t)

	raw, code := execute(t, "read-tables", path)
	require.Equal(t, 0, code)
	assert.Equal(t,
		`{"tables":[{"index":0,"rows":[["Item","Qty"]]},{"index":1,"rows":[["Name","Role"],["<<Name>>","Lead"]]}]}`+"\n",
		raw)
}

func TestReplaceCountsRuns(t *testing.T) {
	path := letterPath(t)
	out := filepath.Join(t.TempDir(), "out.docx")

	got, code := run(t, "replace", path, "<<Name>>", "Ada", "--output", out)
	require.Equal(t, 0, code)
	assert.Equal(t, map[string]any{"replaced": "<<Name>>", "with": "Ada", "count": 3.0, "saved": out}, got)

	doc := openDoc(t, out)
	assert.Equal(t, "Dear Ada, your order {{OrderID}} shipped.", doc.Paragraphs[1].Text())
	assert.Equal(t, "Thanks Ada", doc.Paragraphs[4].Text())
	assert.Equal(t, "Ada", doc.Tables[1].RowTexts()[1][0])

	// --output leaves the input alone.
	assert.Equal(t, "Thanks <<Name>>", openDoc(t, path).Paragraphs[4].Text())
}

func TestReplaceSplitPlaceholder(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "replace", path, "<<Signer>>", "Grace")
	require.Equal(t, 0, code)
	assert.EqualValues(t, 0, got["count"])
	assert.Equal(t, path, got["saved"])
	assert.Equal(t, "Signed: <<Signer>>", openDoc(t, path).Paragraphs[3].Text())
}

func TestReplaceInPlace(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "replace", path, "{{OrderID}}", "A-17")
	require.Equal(t, 0, code)
	assert.Equal(t, path, got["saved"])
	assert.Equal(t, "Dear <<Name>>, your order A-17 shipped.", openDoc(t, path).Paragraphs[1].Text())
}

func TestReplaceOutputKeepsTilde(t *testing.T) {
	path := letterPath(t)
	home := os.Getenv("HOME")

	got, code := run(t, "replace", path, "<<Name>>", "Ada", "--output", "~/copy.docx")
	require.Equal(t, 0, code)
	assert.Equal(t, "~/copy.docx", got["saved"])
	assert.FileExists(t, filepath.Join(home, "copy.docx"))
}

func TestReplaceEmptyPlaceholder(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "replace", path, "", "x")
	assert.Equal(t, 1, code)
	assert.Equal(t, "placeholder must not be empty", got["error"])
}

func TestReplaceBatch(t *testing.T) {
	path := letterPath(t)

	raw, code := execute(t, "replace-batch", path,
		"--replacements", `{"<<Name>>": "Ada", "{{OrderID}}": 1234, "<<Missing>>": true}`)
	require.Equal(t, 0, code)
	assert.Equal(t, `{"replacements":{"<<Name>>":3,"{{OrderID}}":1,"<<Missing>>":0},"saved":"`+path+`"}`+"\n", raw)

	doc := openDoc(t, path)
	assert.Equal(t, "Dear Ada, your order 1234 shipped.", doc.Paragraphs[1].Text())
}

func TestReplaceBatchAppliesInOrder(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "replace-batch", path,
		"--replacements", `{"{{OrderID}}": "<<Name>>", "<<Name>>": 2.50}`)
	require.Equal(t, 0, code)
	assert.Equal(t, map[string]any{"{{OrderID}}": 1.0, "<<Name>>": 3.0}, got["replacements"])
	assert.Equal(t, "Dear 2.5, your order 2.5 shipped.", openDoc(t, path).Paragraphs[1].Text())
}

func TestReplaceBatchFromYAMLFile(t *testing.T) {
	path := letterPath(t)
	values := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(values, []byte("\"<<Name>>\": Ada\n\"{{OrderID}}\": 7.0\n"), 0644))

	got, code := run(t, "replace-batch", path, "--replacements-file", values)
	require.Equal(t, 0, code)
	assert.EqualValues(t, 3, got["replacements"].(map[string]any)["<<Name>>"])
	assert.Equal(t, "Dear Ada, your order 7.0 shipped.", openDoc(t, path).Paragraphs[1].Text())
}

func TestReplaceBatchBadInput(t *testing.T) {
	path := letterPath(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, args := range [][]string{
		{"replace-batch", path, "--replacements", `{"<<Name>>": `},
		{"replace-batch", path, "--replacements", `["not", "an", "object"]`},
		{"replace-batch", path},
		{"replace-batch", path, "--replacements", `{}`, "--replacements-file", "x.json"},
	} {
		got, code := run(t, args...)
		assert.Equal(t, 1, code, "args %v", args)
		assert.Contains(t, got, "error")
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed commands must not touch the file")
}

func TestControlCharactersLeaveFileUntouched(t *testing.T) {
	path := letterPath(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "out.docx")

	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"replace", path, "<<Name>>", "A\x01B", "--output", out}, "U+0001"},
		{[]string{"replace-batch", path, "--replacements", `{"<<Name>>": "Ada", "{{OrderID}}": "7\u0008"}`}, "U+0008"},
		{[]string{"fill-table", path, "--table-index", "0", "--data", `[["A", "tab\there"], ["B\u000b", 1]]`}, "U+000B"},
	} {
		got, code := run(t, tc.args...)
		assert.Equal(t, 1, code, "args %q", tc.args)
		assert.Contains(t, got["error"], tc.want)
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, out)
	assert.Equal(t, []string{"<<Name>>", "{{OrderID}}", "<<Signer>>"}, openDoc(t, path).Placeholders())
}

func TestFillTableAppendsRows(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "fill-table", path, "--table-index", "0", "--data", `[["A","1"],["B","2"]]`)
	require.Equal(t, 0, code)
	assert.Equal(t, map[string]any{"table_index": 0.0, "rows_filled": 2.0, "saved": path}, got)

	rows := openDoc(t, path).Tables[0].RowTexts()
	assert.Equal(t, [][]string{{"Item", "Qty"}, {"A", "1"}, {"B", "2"}}, rows)
}

func TestFillTableOverwritesAndStringifies(t *testing.T) {
	path := letterPath(t)
	out := filepath.Join(t.TempDir(), "filled.docx")

	got, code := run(t, "fill-table", path, "--table-index", "1",
		"--data", `[["Grace", 3.0, "extra"], [null, false]]`, "--output", out)
	require.Equal(t, 0, code)
	assert.EqualValues(t, 2, got["rows_filled"])

	rows := openDoc(t, out).Tables[1].RowTexts()
	assert.Equal(t, [][]string{{"Name", "Role"}, {"Grace", "3.0"}, {"None", "False"}}, rows)
}

func TestFillTableFromYAMLFile(t *testing.T) {
	path := letterPath(t)
	lines := filepath.Join(t.TempDir(), "lines.yaml")
	require.NoError(t, os.WriteFile(lines, []byte("- [Widget, 3]\n- [Gadget, 10]\n"), 0644))

	_, code := run(t, "fill-table", path, "--table-index", "0", "--data-file", lines)
	require.Equal(t, 0, code)
	assert.Equal(t, [][]string{{"Item", "Qty"}, {"Widget", "3"}, {"Gadget", "10"}}, openDoc(t, path).Tables[0].RowTexts())
}

func TestFillTableErrors(t *testing.T) {
	path := letterPath(t)

	got, code := run(t, "fill-table", path, "--table-index", "5", "--data", `[["x"]]`)
	assert.Equal(t, 1, code)
	assert.Equal(t, "table index 5 out of range (document has 2 tables)", got["error"])

	got, code = run(t, "fill-table", path, "--table-index", "-1", "--data", `[["x"]]`)
	assert.Equal(t, 1, code)
	assert.Contains(t, got["error"], "out of range")

	got, code = run(t, "fill-table", path, "--table-index", "first", "--data", `[["x"]]`)
	assert.Equal(t, 1, code)
	assert.Contains(t, got["error"], "--table-index")

	got, code = run(t, "fill-table", path, "--table-index", "0", "--data", `{"a": 1}`)
	assert.Equal(t, 1, code)
	assert.Contains(t, got["error"], "array")

	got, code = run(t, "fill-table", path, "--table-index", "0", "--data", `["flat"]`)
	assert.Equal(t, 1, code)
	assert.Equal(t, "table data row 0 is not an array", got["error"])

	got, code = run(t, "fill-table", path, "--data", `[["x"]]`)
	assert.Equal(t, 1, code)
	assert.Contains(t, got["error"], "table-index")
}

func TestFileNotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "missing.docx")

	for _, args := range [][]string{
		{"info", missing},
		{"replace", missing, "<<A>>", "b"},
		// The path is checked before the data is parsed.
		{"fill-table", missing, "--table-index", "0", "--data", "not json"},
	} {
		got, code := run(t, args...)
		assert.Equal(t, 1, code)
		assert.Equal(t, "File not found: "+missing, got["error"])
	}
	assert.NoFileExists(t, missing)
}

func TestInvalidDocument(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	got, code := run(t, "read", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, got["error"], "invalid .docx file")
}

func TestUsage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	raw, code := execute(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, raw, "Usage:")
	assert.Contains(t, raw, "replace-batch")
}
