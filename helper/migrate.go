package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"shareit/config"
	"shareit/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

var ErrUnknownAction = errors.New("invalid direction, use 'up', 'down', 'drop' or 'step-up'")

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// ConnectionString targets the write database; migrations never run against a replica.
func ConnectionString(config *config.Config) string {
	query := url.Values{}
	query.Set("sslmode", config.DB.Postgres.Write.SSLMode)

	if config.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.DB.Postgres.Write.Username, config.DB.Postgres.Write.Password),
		Host:     net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		Path:     "/" + getDBName(config, config.DB.Postgres.Write.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, ConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action Action) error {
	var run func(*migrate.Migrate) error

	switch action {
	case ActionUp:
		run = (*migrate.Migrate).Up
	case ActionDown:
		run = func(m *migrate.Migrate) error { return m.Steps(-1) }
	case ActionStepUp:
		run = func(m *migrate.Migrate) error { return m.Steps(1) }
	case ActionDrop:
		run = (*migrate.Migrate).Down
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migrations completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
