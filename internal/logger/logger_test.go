package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":         zerolog.WarnLevel,
		"debug":    zerolog.DebugLevel,
		"INFO":     zerolog.InfoLevel,
		"bogus":    zerolog.WarnLevel,
		"disabled": zerolog.Disabled,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Level: "error", Verbose: true, NoColor: true})
	l.Debug().Str("file", "a.xlsx").Msg("opened workbook")
	if !strings.Contains(buf.String(), "opened workbook") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Level: "warn", NoColor: true})
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}
