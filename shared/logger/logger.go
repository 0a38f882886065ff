package logger

import (
	"io"
	"os"
	"shareit/config"
	"shareit/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure switches the global logger to JSON in production and tags every line with the app name.
func Configure(cfg *config.Config) {
	log.Logger = New(cfg, os.Stdout)

	SetLogLevel(cfg)
}

func New(cfg *config.Config, out io.Writer) zerolog.Logger {
	var writer io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if cfg.Server.Env == constant.ServerEnvProduction {
		writer = out
	}

	ctx := zerolog.New(writer).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("app", cfg.App.Name)
	}

	return ctx.Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
