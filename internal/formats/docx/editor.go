package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/klytics/officeskills/internal/skillerr"
)

// CheckText reports a MalformedInput error when s cannot be stored in
// document XML: invalid UTF-8, or a control character other than tab, line
// feed and carriage return, or a noncharacter such as U+FFFE.
func CheckText(s string) error {
	if !utf8.ValidString(s) {
		return skillerr.MalformedInput("value is not valid UTF-8: %q", s)
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return skillerr.MalformedInput("value contains U+%04X, which a document cannot hold: %q", r, s)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// ReplaceInRuns replaces every occurrence of find with replace inside each
// run of the body paragraphs and of every table cell paragraph. A match that
// straddles two runs is not found. It returns the number of runs changed.
// replace is written as is; callers check it with CheckText first.
func (doc *Document) ReplaceInRuns(find, replace string) int {
	if find == "" {
		return 0
	}

	count := 0
	for _, p := range doc.Paragraphs {
		count += p.replaceInRuns(find, replace)
	}
	for _, t := range doc.Tables {
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				for _, p := range cell.Paragraphs {
					count += p.replaceInRuns(find, replace)
				}
			}
		}
	}
	return count
}

func (p *Paragraph) replaceInRuns(find, replace string) int {
	count := 0
	for _, r := range p.Runs {
		if strings.Contains(r.text, find) {
			r.text = strings.ReplaceAll(r.text, find, replace)
			r.dirty = true
			count++
		}
	}
	return count
}

// FillTable writes data into table index, one data row per table row after
// the header. Rows past the end of the table are appended. Values beyond a
// row's cell count are dropped. Nothing changes when any value fails
// CheckText.
func (doc *Document) FillTable(index int, data [][]string) error {
	if index < 0 || index >= len(doc.Tables) {
		return skillerr.InvalidReference("table index %d out of range (document has %d tables)", index, len(doc.Tables))
	}
	for _, values := range data {
		for _, v := range values {
			if err := CheckText(v); err != nil {
				return err
			}
		}
	}
	t := doc.Tables[index]

	for i, values := range data {
		rowIdx := i + 1
		var row *Row
		if rowIdx < len(t.Rows) {
			row = t.Rows[rowIdx]
		} else {
			row = t.AddRow()
		}
		for j, v := range values {
			if j < len(row.Cells) {
				row.Cells[j].SetText(v)
			}
		}
	}
	return nil
}

// AddRow appends an empty row with one cell per grid column.
func (t *Table) AddRow() *Row {
	row := &Row{added: true}
	for i := 0; i < t.ColumnCount(); i++ {
		row.Cells = append(row.Cells, &Cell{})
	}
	t.Rows = append(t.Rows, row)
	return row
}

// SetText replaces the cell content with a single paragraph holding text.
func (c *Cell) SetText(text string) {
	c.newText = &text
}

type splice struct {
	start, end int
	text       string
}

// Bytes renders the document, including pending edits, as .docx bytes.
func (doc *Document) Bytes() ([]byte, error) {
	body := doc.renderBody()

	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)

	for _, f := range doc.parts {
		if f.Name != documentPart {
			if err := writer.Copy(f); err != nil {
				return nil, fmt.Errorf("could not copy %s: %w", f.Name, err)
			}
			continue
		}

		header := f.FileHeader
		w, err := writer.CreateHeader(&zip.FileHeader{
			Name:     header.Name,
			Method:   header.Method,
			Modified: header.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create %s in output: %w", f.Name, err)
		}
		if _, err := w.Write(body); err != nil {
			return nil, fmt.Errorf("could not write %s: %w", f.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize output archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path.
func (doc *Document) Save(path string) error {
	data, err := doc.Bytes()
	if err != nil {
		return skillerr.IOFailure(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return skillerr.IOFailure(fmt.Errorf("could not write %s: %w", path, err))
	}
	return nil
}

func (doc *Document) renderBody() []byte {
	var edits []splice

	for _, p := range doc.Paragraphs {
		edits = doc.paragraphEdits(edits, p)
	}
	for _, t := range doc.Tables {
		var added strings.Builder
		seen := make(map[*Cell]bool)
		for _, row := range t.Rows {
			if row.added {
				doc.writeRow(&added, t, row)
				continue
			}
			for _, cell := range row.Cells {
				if seen[cell] {
					continue
				}
				seen[cell] = true
				if cell.newText != nil {
					edits = append(edits, splice{cell.start, cell.end, doc.cellContent(*cell.newText)})
					continue
				}
				for _, p := range cell.Paragraphs {
					edits = doc.paragraphEdits(edits, p)
				}
			}
		}
		if added.Len() > 0 {
			edits = append(edits, splice{t.end, t.end, added.String()})
		}
	}

	if len(edits) == 0 {
		return doc.body
	}

	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	out := make([]byte, 0, len(doc.body))
	pos := 0
	for _, e := range edits {
		out = append(out, doc.body[pos:e.start]...)
		out = append(out, e.text...)
		pos = e.end
	}
	return append(out, doc.body[pos:]...)
}

func (doc *Document) paragraphEdits(edits []splice, p *Paragraph) []splice {
	for _, r := range p.Runs {
		if r.dirty && r.start >= 0 {
			edits = append(edits, splice{r.start, r.end, doc.runContent(r.text)})
		}
	}
	return edits
}

// tag qualifies a main-namespace element name with the document's prefix.
func (doc *Document) tag(local string) string {
	if doc.prefix == "" {
		return local
	}
	return doc.prefix + ":" + local
}

// runContent renders text as run children: <w:t> segments with <w:tab/> for
// tabs and <w:br/> for newlines.
func (doc *Document) runContent(text string) string {
	t := doc.tag("t")
	var b strings.Builder
	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		fmt.Fprintf(&b, `<%s xml:space="preserve">%s</%s>`, t, xmlEscape(seg.String()), t)
		seg.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			fmt.Fprintf(&b, `<%s/>`, doc.tag("tab"))
		case '\n', '\r':
			flush()
			fmt.Fprintf(&b, `<%s/>`, doc.tag("br"))
		default:
			seg.WriteRune(ch)
		}
	}
	flush()
	return b.String()
}

func (doc *Document) cellContent(text string) string {
	p, r := doc.tag("p"), doc.tag("r")
	return fmt.Sprintf(`<%s><%s>%s</%s></%s>`, p, r, doc.runContent(text), r, p)
}

// widthAttrs renders the w:w and w:type attributes of a tcW element. Default
// namespaces do not apply to attributes, so an unprefixed document gets a
// local w binding.
func (doc *Document) widthAttrs(width string) string {
	if doc.prefix == "" {
		return fmt.Sprintf(`xmlns:w="%s" w:w="%s" w:type="dxa"`, doc.namespace, xmlEscape(width))
	}
	w := doc.prefix
	return fmt.Sprintf(`%s:w="%s" %s:type="dxa"`, w, xmlEscape(width), w)
}

func (doc *Document) writeRow(b *strings.Builder, t *Table, row *Row) {
	tr, tc := doc.tag("tr"), doc.tag("tc")
	fmt.Fprintf(b, `<%s>`, tr)
	for i, cell := range row.Cells {
		fmt.Fprintf(b, `<%s>`, tc)
		if i < len(t.GridWidth) && t.GridWidth[i] != "" {
			tcPr := doc.tag("tcPr")
			fmt.Fprintf(b, `<%s><%s %s/></%s>`, tcPr, doc.tag("tcW"), doc.widthAttrs(t.GridWidth[i]), tcPr)
		}
		if cell.newText != nil {
			b.WriteString(doc.cellContent(*cell.newText))
		} else {
			fmt.Fprintf(b, `<%s/>`, doc.tag("p"))
		}
		fmt.Fprintf(b, `</%s>`, tc)
	}
	fmt.Fprintf(b, `</%s>`, tr)
}

func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
