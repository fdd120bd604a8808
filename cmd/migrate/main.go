package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/internal/pkg/env"
	"github.com/treido/treido-go/internal/pkg/logging"
)

func main() {
	// Load environment variables from .env
	env.SetupEnvFile()
	cfg, err := env.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel, "console")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	log.Info().Str("user", cfg.DB.User).Str("host", cfg.DB.Host).Str("port", cfg.DB.Port).Str("db", cfg.DB.Name).Msg("connecting to database")

	source := env.GetEnv("MIGRATIONS_PATH", "file://migrations")
	m, err := migrate.New(source, cfg.DB.MigrateURL())
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize migrations")
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Error().AnErr("source", sourceErr).AnErr("db", dbErr).Msg("closing migration resources failed")
		}
	}()

	switch command {
	case "up":
		// Run all pending migrations
		if err := m.Up(); errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no change: database is up to date")
		} else if err != nil {
			log.Fatal().Err(err).Msg("running migrations failed")
		} else {
			log.Info().Msg("migrations applied")
		}

	case "down":
		// Roll back the last migration
		if err := m.Steps(-1); err != nil {
			log.Fatal().Err(err).Msg("rolling back the last migration failed")
		}
		log.Info().Msg("last migration rolled back")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal().Msg("please pass a version number")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid version number")
		}

		if err := m.Migrate(uint(version)); errors.Is(err, migrate.ErrNoChange) {
			log.Info().Uint64("version", version).Msg("no change: database is already at version")
		} else if err != nil {
			log.Fatal().Err(err).Uint64("version", version).Msg("migrating to version failed")
		} else {
			log.Info().Uint64("version", version).Msg("migrated to version")
		}

	case "status":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("no migrations have been applied yet")
		} else if err != nil {
			log.Fatal().Err(err).Msg("reading migration version failed")
		} else {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current migration version")
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/migrate/main.go [command]")
	fmt.Println("Commands:")
	fmt.Println("  up          - apply all pending migrations")
	fmt.Println("  down        - roll back the last migration")
	fmt.Println("  goto [ver]  - migrate to a specific version")
	fmt.Println("  status      - show the current migration version")
}
