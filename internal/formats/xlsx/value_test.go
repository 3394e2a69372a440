package xlsx

import (
	"encoding/json"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		out  string
	}{
		{"42", KindInt, "42"},
		{"3.14", KindFloat, "3.14"},
		{"hello", KindText, "hello"},
		{"1e3", KindInt, "1000"},
		{" 7 ", KindInt, "7"},
		{"-2.50", KindFloat, "-2.5"},
		{"nan", KindText, "nan"},
		{"inf", KindText, "inf"},
		{"0x10", KindText, "0x10"},
		{"1_000", KindInt, "1000"},
		{"1__0", KindText, "1__0"},
		{"_1", KindText, "_1"},
		{"", KindText, ""},
		{"1e-7", KindFloat, "1e-07"},
		{"12345678901234567890", KindInt, "12345678901234567168"},
		{"-1e20", KindInt, "-100000000000000000000"},
		{"9223372036854775807", KindInt, "9223372036854775808"},
	}
	for _, tc := range cases {
		v := ParseLiteral(tc.in)
		if v.Kind() != tc.kind {
			t.Errorf("ParseLiteral(%q) kind = %d, want %d", tc.in, v.Kind(), tc.kind)
		}
		if v.String() != tc.out {
			t.Errorf("ParseLiteral(%q) = %q, want %q", tc.in, v.String(), tc.out)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		2:       "2.0",
		0.5:     "0.5",
		1e16:    "1e+16",
		1e-5:    "1e-05",
		0.0001:  "0.0001",
		-12.25:  "-12.25",
		1234567: "1234567.0",
	}
	for in, want := range cases {
		if got := formatFloat(in); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseStoredNumber(t *testing.T) {
	v, ok := parseStoredNumber("42")
	if !ok || v.Kind() != KindInt || v.String() != "42" {
		t.Errorf("42 parsed as %d %q", v.Kind(), v.String())
	}
	v, ok = parseStoredNumber("1.5E+2")
	if !ok || v.Kind() != KindFloat || v.String() != "150.0" {
		t.Errorf("1.5E+2 parsed as %d %q", v.Kind(), v.String())
	}
	if _, ok := parseStoredNumber("abc"); ok {
		t.Error("expected failure for non-numeric input")
	}
}

func TestNoneRendersEmpty(t *testing.T) {
	if None().String() != "" {
		t.Error("None should render as empty string")
	}
	if Bool(false).String() != "False" {
		t.Error("false should render as False")
	}
}

func TestRecordKeepsHeaderOrder(t *testing.T) {
	r := Zip([]string{"Zeta", "Alpha", "Mid"}, []string{"1", "2", "3"})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"Zeta":"1","Alpha":"2","Mid":"3"}` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestRecordZipTruncatesAndCollapses(t *testing.T) {
	r := Zip([]string{"A", "B", "A"}, []string{"1", "2", "3", "4"})
	if r.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", r.Len())
	}
	if v, _ := r.Get("A"); v != "3" {
		t.Errorf("duplicate header should take the later value, got %q", v)
	}
	if r.Keys()[0] != "A" {
		t.Errorf("duplicate header should keep its first position, got %v", r.Keys())
	}

	short := Zip([]string{"A", "B", "C"}, []string{"x"})
	if short.Len() != 1 {
		t.Errorf("expected zip to stop at the shorter side, got %d keys", short.Len())
	}
}

func TestRecordDoesNotEscapeHTML(t *testing.T) {
	r := Zip([]string{"Company"}, []string{"Smith & Co <main>"})
	data, err := r.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"Company":"Smith & Co <main>"}` {
		t.Errorf("unexpected JSON %s", data)
	}
}
