package sqlfx

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/ekiara/windows-utils/pkg/domain"
	"github.com/ekiara/windows-utils/pkg/storage"
	"github.com/ekiara/windows-utils/pkg/util"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	ConfigHistoryDSN        = "history.dsn"
	ConfigHistoryMigrations = "history.migrations"
)

type SqliteConfig struct {
	DSN            string
	DatabaseName   string
	MigrationsPath string
}

func SqliteConfigProvider(v *viper.Viper) (*SqliteConfig, error) {
	config := &SqliteConfig{
		DSN:            v.GetString(ConfigHistoryDSN),
		DatabaseName:   "olbackup",
		MigrationsPath: v.GetString(ConfigHistoryMigrations),
	}

	if config.MigrationsPath == "" {
		config.MigrationsPath = "file://migrations/"
	}

	return config, nil
}

// RunsRepository provides the run history journal. An empty DSN (the
// default) disables history: the backup itself then leaves no state behind.
func RunsRepository(lc fx.Lifecycle, config *SqliteConfig, logger *logrus.Logger) (domain.RunRepository, error) {
	if config.DSN == "" {
		logger.Debug("Run history is disabled")
		return storage.NopRunRepository{}, nil
	}

	logger.WithField("dsn", config.DSN).Debug("Connecting to DB with DSN")

	db, err := sqlx.Open("sqlite3", config.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to connect to DB")
	}

	db.MapperFunc(util.CamelToSnakeCase)

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create instance of migrate")
	}

	m, err := migrate.NewWithDatabaseInstance(config.MigrationsPath, config.DatabaseName, driver)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create migrator")
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return nil, errors.Wrap(err, "Unable to migrate DB")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return storage.NewRunRepository(db), nil
}
