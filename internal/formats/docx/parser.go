// Package docx provides a run-level model of .docx (OOXML) documents.
//
// The model keeps the byte position of every run, table cell and table end
// inside word/document.xml. Edits are spliced into the original XML on save,
// so any markup the model does not describe is written back unchanged.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/klytics/officeskills/internal/skillerr"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// Document is an opened .docx file.
type Document struct {
	Paragraphs []*Paragraph
	Tables     []*Table

	parts []*zip.File
	body  []byte
	// prefix is bound to the main namespace in document.xml; "" when that
	// namespace is the default one.
	prefix    string
	namespace string
	styles    *styleSheet
}

// Paragraph is a body or table-cell paragraph.
type Paragraph struct {
	StyleID string
	Runs    []*Run

	styles *styleSheet
}

// Run is a span of uniformly formatted text. Its boundaries never move:
// replacements happen inside a single run.
type Run struct {
	text  string
	start int
	end   int
	dirty bool
}

// Table is a body-level table.
type Table struct {
	Rows      []*Row
	GridWidth []string

	end int
}

// Row is a table row. Cells repeats a cell once per grid column it spans.
type Row struct {
	Cells []*Cell

	added bool
}

// Cell is a table cell.
type Cell struct {
	Paragraphs []*Paragraph

	start   int
	end     int
	newText *string
}

// Open reads and parses a .docx file from the given path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, skillerr.FileNotFound(path)
		}
		return nil, skillerr.IOFailure(fmt.Errorf("could not read %s: %w", path, err))
	}
	return Parse(data)
}

// Parse reads and parses a .docx file from the given byte slice.
func Parse(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, skillerr.IOFailure(fmt.Errorf("invalid .docx file: the file does not appear to be a valid ZIP archive: %w", err))
	}

	doc := &Document{parts: reader.File, prefix: "w", namespace: mainNamespace}

	var body, styles []byte
	for _, f := range reader.File {
		switch f.Name {
		case documentPart:
			if body, err = readPart(f); err != nil {
				return nil, skillerr.IOFailure(fmt.Errorf("could not read document.xml: %w", err))
			}
		case stylesPart:
			// Style names are cosmetic; a broken styles part is ignored.
			styles, _ = readPart(f)
		}
	}
	if body == nil {
		return nil, skillerr.IOFailure(fmt.Errorf("invalid .docx file: missing %s", documentPart))
	}

	doc.body = body
	doc.styles = parseStyles(styles)
	if err := doc.parseBody(); err != nil {
		return nil, skillerr.IOFailure(err)
	}
	return doc, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// decoder wraps xml.Decoder and reports the byte range of each token.
type decoder struct {
	d *xml.Decoder
}

func (d *decoder) next() (xml.Token, int, int, error) {
	start := int(d.d.InputOffset())
	tok, err := d.d.Token()
	if err != nil {
		return nil, start, start, err
	}
	return tok, start, int(d.d.InputOffset()), nil
}

func (doc *Document) parseBody() error {
	d := &decoder{d: xml.NewDecoder(bytes.NewReader(doc.body))}

	// Find the body element, noting the prefix bound to the main namespace.
	for {
		tok, _, _, err := d.next()
		if err == io.EOF {
			return fmt.Errorf("invalid .docx file: no body element found in document.xml")
		}
		if err != nil {
			return fmt.Errorf("XML parse error in document.xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "document" {
			doc.prefix, doc.namespace = mainPrefix(se)
		}
		if se.Name.Local == "body" {
			break
		}
	}

	for {
		tok, _, _, err := d.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("XML parse error: %w", err)
		}

		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := doc.parseParagraph(d)
				if err != nil {
					return err
				}
				doc.Paragraphs = append(doc.Paragraphs, p)
			case "tbl":
				tbl, err := doc.parseTable(d)
				if err != nil {
					return err
				}
				doc.Tables = append(doc.Tables, tbl)
			default:
				if err := d.d.Skip(); err != nil {
					return err
				}
			}
		}
	}
}

const mainNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var wordNamespaces = map[string]bool{
	mainNamespace: true,
	"http://purl.oclc.org/ooxml/wordprocessingml/main": true,
}

// mainPrefix returns the prefix and URI of the main namespace declared on the
// document element. A prefixed binding wins over a default one.
func mainPrefix(se xml.StartElement) (string, string) {
	prefix, ns := "w", mainNamespace
	found := false
	for _, a := range se.Attr {
		switch {
		case a.Name.Space == "xmlns" && wordNamespaces[a.Value]:
			return a.Name.Local, a.Value
		case a.Name.Space == "" && a.Name.Local == "xmlns" && wordNamespaces[a.Value] && !found:
			prefix, ns, found = "", a.Value, true
		}
	}
	return prefix, ns
}

type xmlParagraphProps struct {
	Style struct {
		Val string `xml:"val,attr"`
	} `xml:"pStyle"`
}

type xmlCellProps struct {
	GridSpan struct {
		Val int `xml:"val,attr"`
	} `xml:"gridSpan"`
}

// parseParagraph consumes a <w:p> whose start tag has just been read.
func (doc *Document) parseParagraph(d *decoder) (*Paragraph, error) {
	p := &Paragraph{styles: doc.styles}
	for {
		tok, _, _, err := d.next()
		if err != nil {
			return nil, fmt.Errorf("could not parse paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "p" {
				return p, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props xmlParagraphProps
				if err := d.d.DecodeElement(&props, &t); err != nil {
					return nil, fmt.Errorf("could not parse paragraph properties: %w", err)
				}
				p.StyleID = props.Style.Val
			case "r":
				r, err := parseRun(d)
				if err != nil {
					return nil, err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink":
				// Hyperlink runs belong to the paragraph text; descend.
			default:
				if err := d.d.Skip(); err != nil {
					return nil, err
				}
			}
		}
	}
}

// parseRun consumes a <w:r>. The run's editable span covers its first to
// last text-bearing child (t, tab, br, cr).
func parseRun(d *decoder) (*Run, error) {
	r := &Run{start: -1}
	var b strings.Builder
	inText := false

	mark := func(start, end int) {
		if r.start < 0 {
			r.start = start
		}
		r.end = end
	}

	for {
		tok, start, end, err := d.next()
		if err != nil {
			return nil, fmt.Errorf("could not parse run: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				r.text = b.String()
				return r, nil
			case "t":
				inText = false
				mark(start, end)
			case "tab", "br", "cr":
				mark(start, end)
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
				mark(start, end)
			case "tab":
				b.WriteByte('\t')
				mark(start, end)
			case "cr":
				b.WriteByte('\n')
				mark(start, end)
			case "br":
				if breakType(t) == "" || breakType(t) == "textWrapping" {
					b.WriteByte('\n')
				}
				mark(start, end)
			default:
				if err := d.d.Skip(); err != nil {
					return nil, err
				}
			}
		}
	}
}

func breakType(se xml.StartElement) string {
	for _, a := range se.Attr {
		if a.Name.Local == "type" {
			return a.Value
		}
	}
	return ""
}

// parseTable consumes a <w:tbl>. Nested tables inside cells are skipped.
func (doc *Document) parseTable(d *decoder) (*Table, error) {
	tbl := &Table{}
	for {
		tok, start, _, err := d.next()
		if err != nil {
			return nil, fmt.Errorf("could not parse table: %w", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "tbl" {
				tbl.end = start
				return tbl, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "tblGrid":
				// Descend to collect gridCol widths.
			case "gridCol":
				tbl.GridWidth = append(tbl.GridWidth, attrValue(t, "w"))
				if err := d.d.Skip(); err != nil {
					return nil, err
				}
			case "tr":
				row, err := doc.parseRow(d)
				if err != nil {
					return nil, err
				}
				tbl.Rows = append(tbl.Rows, row)
			default:
				if err := d.d.Skip(); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (doc *Document) parseRow(d *decoder) (*Row, error) {
	row := &Row{}
	for {
		tok, _, end, err := d.next()
		if err != nil {
			return nil, fmt.Errorf("could not parse table row: %w", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "tr" {
				return row, nil
			}
		case xml.StartElement:
			if t.Name.Local != "tc" {
				if err := d.d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			cell, span, err := doc.parseCell(d, end)
			if err != nil {
				return nil, err
			}
			for i := 0; i < span; i++ {
				row.Cells = append(row.Cells, cell)
			}
		}
	}
}

// parseCell consumes a <w:tc> whose start tag ended at offset open. It
// returns the number of grid columns the cell spans.
func (doc *Document) parseCell(d *decoder, open int) (*Cell, int, error) {
	cell := &Cell{start: open}
	span := 1
	for {
		tok, start, _, err := d.next()
		if err != nil {
			return nil, 0, fmt.Errorf("could not parse table cell: %w", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "tc" {
				cell.end = start
				return cell, span, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				var props xmlCellProps
				if err := d.d.DecodeElement(&props, &t); err != nil {
					return nil, 0, fmt.Errorf("could not parse cell properties: %w", err)
				}
				if props.GridSpan.Val > 1 {
					span = props.GridSpan.Val
				}
				cell.start = int(d.d.InputOffset())
			case "p":
				p, err := doc.parseParagraph(d)
				if err != nil {
					return nil, 0, err
				}
				cell.Paragraphs = append(cell.Paragraphs, p)
			default:
				if err := d.d.Skip(); err != nil {
					return nil, 0, err
				}
			}
		}
	}
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// Text returns the run text with tabs as "\t" and line breaks as "\n".
func (r *Run) Text() string {
	return r.text
}

// Text concatenates the paragraph's run texts.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.text)
	}
	return b.String()
}

// Style returns the paragraph's style name, falling back to the document's
// default paragraph style.
func (p *Paragraph) Style() string {
	return p.styles.paragraphStyleName(p.StyleID)
}

// Text joins the cell's paragraph texts with newlines.
func (c *Cell) Text() string {
	if c.newText != nil {
		return *c.newText
	}
	texts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\n")
}

// ColumnCount returns the number of grid columns, or the widest row when
// the table has no grid.
func (t *Table) ColumnCount() int {
	if len(t.GridWidth) > 0 {
		return len(t.GridWidth)
	}
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

// RowTexts returns each row's cell texts, trimmed of surrounding whitespace.
func (t *Table) RowTexts() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Texts())
	}
	return out
}

// Headers returns the trimmed texts of row 0, or an empty slice.
func (t *Table) Headers() []string {
	if len(t.Rows) == 0 {
		return []string{}
	}
	return t.Rows[0].Texts()
}

// Texts returns the row's trimmed cell texts.
func (r *Row) Texts() []string {
	cells := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		cells = append(cells, strings.TrimSpace(c.Text()))
	}
	return cells
}

var placeholderPattern = regexp.MustCompile(`<<[^>]+>>|\{\{[^}]+\}\}`)

// Placeholders returns the distinct <<...>> and {{...}} markers found in the
// newline-joined body paragraph text, in order of first appearance. Table
// cells are not scanned.
func (doc *Document) Placeholders() []string {
	texts := make([]string, 0, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		texts = append(texts, p.Text())
	}

	seen := make(map[string]bool)
	found := []string{}
	for _, m := range placeholderPattern.FindAllString(strings.Join(texts, "\n"), -1) {
		if !seen[m] {
			seen[m] = true
			found = append(found, m)
		}
	}
	return found
}
