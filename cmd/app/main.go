package main

import (
	"shareit/config"
	"shareit/di"
	"shareit/helper"
	"shareit/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title ShareIt API
// @version 1.0
// @description Item sharing marketplace: booking lifecycle and owner views.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
