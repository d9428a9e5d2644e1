package commands

import (
	"github.com/rs/zerolog/log"

	"github.com/golang-migrate/migrate/v4"

	// import support for file mime type
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"gitlab.com/paramountdax-exchange/site_maintenance/settings"
)

// MigrationsPath holds the sql files applied by Migrate
var MigrationsPath = "file://./db/migrations"

// Migrate the current database schema to the new version
func Migrate(dbConf settings.DatabaseConfig) {
	m, err := migrate.New(MigrationsPath, dbConf.URI())
	if err != nil {
		log.Fatal().Err(err).Str("section", "migrate").Msg("Unable to connect to database")
		return
	}
	defer m.Close()

	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		if errMapped, ok := err.(migrate.ErrDirty); ok {
			log.Fatal().Err(err).Str("section", "migrate").Int("version", errMapped.Version).Msg("Unable to execute migration")
		} else {
			log.Fatal().Err(err).Str("section", "migrate").Msg("Unable to execute unknown migration")
		}
		return
	}
	log.Info().Str("section", "migrate").Msg("Migrations executed successfully")
}
