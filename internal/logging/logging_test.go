package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", false, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("file", "ride.gpx").Msg("processed")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "processed", event["message"])
	assert.Equal(t, "ride.gpx", event["file"])
	assert.Equal(t, "info", event["level"])
	assert.Contains(t, event, "time")
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", true, &buf)
	require.NoError(t, err)

	log.Debug().Msg("console line")
	assert.Contains(t, buf.String(), "console line")
	assert.NotContains(t, buf.String(), "{")
}

func TestNewBadLevel(t *testing.T) {
	log, err := New("chatty", false, &bytes.Buffer{})
	assert.Error(t, err)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
