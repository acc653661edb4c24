package store

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
)

// Migrator handles schema migrations for the run archive using
// golang-migrate with the local db/migrations directory as the source.
type Migrator struct {
	dsn string
}

func NewMigrator(dsn string) (*Migrator, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	return &Migrator{dsn: dsn}, nil
}

func (m *Migrator) sourceURL() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.Join(wd, "db", "migrations")}
	return u.String(), nil
}

// Up applies all pending migrations. A fully migrated schema returns
// ErrNoChange.
func (m *Migrator) Up() error {
	mig, closer, err := m.instance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Up(); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return errors.Wrap(err, "migrate up")
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down() error {
	mig, closer, err := m.instance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Steps(-1); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return errors.Wrap(err, "migrate down")
	}
	return nil
}

func (m *Migrator) instance() (*migrate.Migrate, func(), error) {
	src, err := m.sourceURL()
	if err != nil {
		return nil, nil, err
	}
	mig, err := migrate.New(src, m.dsn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "migrate init")
	}
	return mig, func() { mig.Close() }, nil
}
