package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"clinical-study/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migrateMysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratePgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migrateSqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrationsFS embed.FS

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies or reverts the embedded schema migrations on a dedicated
// connection, closed before returning.
func Migrate(cfg config.DBConfig, log *logrus.Logger, direction Direction) error {
	m, err := newMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Database schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", direction, err)
	}

	version, dirty, _ := m.Version()
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Infof("Migrated database %s", direction)
	return nil
}

func newMigrator(cfg config.DBConfig, log *logrus.Logger) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	sqlDB, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	driver, err := migrationDriver(cfg.Driver, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	m.Log = &migrateLogger{log: log}
	return m, nil
}

func openSQL(cfg config.DBConfig) (*sql.DB, error) {
	var (
		driverName string
		dsn        string
	)
	switch cfg.Driver {
	case config.DriverMySQL:
		driverName, dsn = "mysql", mysqlDSN(cfg)
	case config.DriverPostgres:
		driverName, dsn = "pgx", postgresDSN(cfg)
	case config.DriverSQLite:
		driverName, dsn = sqliteDriverName, sqliteDSN(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return sqlDB, nil
}

func migrationDriver(name string, sqlDB *sql.DB) (database.Driver, error) {
	switch name {
	case config.DriverMySQL:
		return migrateMysql.WithInstance(sqlDB, &migrateMysql.Config{})
	case config.DriverPostgres:
		return migratePgx.WithInstance(sqlDB, &migratePgx.Config{})
	case config.DriverSQLite:
		return migrateSqlite.WithInstance(sqlDB, &migrateSqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", name)
	}
}

// migrateLogger routes golang-migrate output through logrus.
type migrateLogger struct {
	log *logrus.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}
