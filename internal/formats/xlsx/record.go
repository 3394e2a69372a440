package xlsx

import (
	"bytes"
	"encoding/json"
)

// Record maps header names to cell strings while keeping header order.
// A repeated header keeps its first position and takes the later value.
type Record struct {
	keys   []string
	values map[string]string
}

// Zip pairs headers with row values position by position, stopping at the
// shorter of the two.
func Zip(headers, row []string) Record {
	n := len(headers)
	if len(row) < n {
		n = len(row)
	}
	r := Record{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
	for i := 0; i < n; i++ {
		r.Set(headers[i], row[i])
	}
	return r
}

// Set assigns value to key, appending key if it is new.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored for key.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r Record) Keys() []string {
	return r.keys
}

// Len returns the number of distinct keys.
func (r Record) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the record as an object with keys in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, r.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
