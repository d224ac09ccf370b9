package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureEmitsServiceTag(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Output: nil})

	Info().Str("key", "value").Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "unilink", line["service"])
	assert.Equal(t, "value", line["key"])
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestConfigureFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Output: nil})

	Debug().Msg("dropped")
	Info().Msg("dropped too")
	assert.Empty(t, buf.Bytes())

	Warn().Msg("kept")
	assert.NotEmpty(t, buf.Bytes())
}

func TestConfigureUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: LogLevel("verbose"), Output: &buf})
	defer Configure(Config{Level: InfoLevel, Output: nil})

	Debug().Msg("dropped")
	assert.Empty(t, buf.Bytes())

	Info().Msg("kept")
	assert.NotEmpty(t, buf.Bytes())
}
