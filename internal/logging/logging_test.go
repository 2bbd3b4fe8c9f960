package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"Error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var out bytes.Buffer
	log := New("warn", &out, nil)

	log.Info().Msg("quiet")
	log.Warn().Str("module", "harbor").Msg("loud")

	assert.NotContains(t, out.String(), "quiet")
	assert.Contains(t, out.String(), "loud")
	assert.Contains(t, out.String(), "harbor")
}

func TestNew_FileCopyHasNoColour(t *testing.T) {
	var console, file bytes.Buffer
	log := New("debug", &console, &file)

	log.Debug().Int("frames", 1).Msg("module mounted")

	assert.Contains(t, console.String(), "module mounted")
	assert.Contains(t, file.String(), "module mounted")
	assert.Contains(t, file.String(), "frames=1")
	assert.NotContains(t, file.String(), "\x1b[")
}
