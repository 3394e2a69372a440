// Package output renders command results for the skill tools.
package output

import (
	"encoding/json"
	"io"
)

// Writer encodes results to a destination, one JSON document per call.
type Writer struct {
	dest   io.Writer
	pretty bool
}

// NewWriter creates a Writer. When pretty is set, JSON is indented.
func NewWriter(dest io.Writer, pretty bool) *Writer {
	return &Writer{
		dest:   dest,
		pretty: pretty,
	}
}

// WriteJSON encodes v as a single JSON value followed by a newline.
// HTML escaping is off so placeholders like <<Name>> stay readable.
func (w *Writer) WriteJSON(v any) error {
	enc := json.NewEncoder(w.dest)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
