//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "WARNING", want: zerolog.WarnLevel},
		{level: " error ", want: zerolog.ErrorLevel},
		{level: "invalid", want: zerolog.InfoLevel},
		{level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestInit(t *testing.T) {
	defer Init("info", false)

	Init("debug", false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("error", true)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestInitWithWriter(t *testing.T) {
	defer Init("info", false)

	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)

	l := Logger()
	l.Debug().Msg("hidden")
	l.Info().Str("quantity", "5000").Msg("priced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "priced", entry["message"])
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "5000", entry["quantity"])
	assert.Contains(t, entry, "time")
}

func TestInitWithWriter_Pretty(t *testing.T) {
	defer Init("info", false)

	var buf bytes.Buffer
	InitWithWriter(&buf, "info", true)
	l := Logger()
	l.Info().Msg("console")

	assert.Contains(t, buf.String(), "console")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestWithContext(t *testing.T) {
	defer Init("info", false)

	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)

	l := WithContext(map[string]interface{}{"share_id": "abc", "views": 3})
	l.Info().Msg("opened")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["share_id"])
	assert.EqualValues(t, 3, entry["views"])
}
