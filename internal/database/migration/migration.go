package migration

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const pgDriverName = "postgres"

func open(dsn, folderPath string) (*migrate.Migrate, *sql.DB, error) {
	db, err := sql.Open(pgDriverName, dsn)
	if err != nil {
		return nil, nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+folderPath,
		"postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return m, db, nil
}

// Up applies all pending migrations. An already up-to-date database is not an
// error.
func Up(dsn, folderPath string) error {
	m, db, err := open(dsn, folderPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Reset reverts every migration and applies them again from scratch. All data
// is lost.
func Reset(dsn, folderPath string) error {
	m, db, err := open(dsn, folderPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
