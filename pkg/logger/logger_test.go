package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitTagsServiceField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Info().Msg("hello")

	line := buf.String()
	if !strings.Contains(line, `"service":"tracking-api"`) {
		t.Errorf("log line missing service field: %s", line)
	}
	if !strings.Contains(line, `"message":"hello"`) {
		t.Errorf("log line missing message: %s", line)
	}
}

func TestInitIsSingleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first bytes.Buffer
	Init(Options{Level: "info", Output: &first})

	var second bytes.Buffer
	log := Init(Options{Level: "debug", Output: &second})
	log.Info().Msg("routed")

	if second.Len() != 0 {
		t.Error("second Init must not rebuild the logger")
	}
	if !strings.Contains(first.String(), "routed") {
		t.Error("log output must go to the first writer")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
