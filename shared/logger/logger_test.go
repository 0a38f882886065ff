package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/config"
	"shareit/shared/constant"
	"shareit/shared/logger"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "shareit"

	var buf bytes.Buffer

	l := logger.New(cfg, &buf)
	l.Info().Str("booking_id", "b-1").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shareit", line["app"])
	assert.Equal(t, "b-1", line["booking_id"])
	assert.Equal(t, "booking created", line["message"])
}

func TestNew_DevelopmentIsHumanReadable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	var buf bytes.Buffer

	l := logger.New(cfg, &buf)
	l.Info().Msg("booking created")

	assert.Contains(t, buf.String(), "booking created")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"
	logger.SetLogLevel(cfg)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	cfg.Server.LogLevel = "nonsense"
	logger.SetLogLevel(cfg)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}
