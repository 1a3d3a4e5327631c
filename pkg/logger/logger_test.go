package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "fulfillment-api", Out: &buf})

	comp := l.Component("import")
	comp.Info().Int("groups", 2).Msg("importación finalizada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fulfillment-api", line["service"])
	assert.Equal(t, "import", line["component"])
	assert.Equal(t, "info", line["level"])
	assert.EqualValues(t, 2, line["groups"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("ruidoso"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
}
