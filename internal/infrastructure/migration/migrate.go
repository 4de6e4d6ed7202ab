package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for SQLite driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/exp/slog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator: интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Version() (uint, bool, error)
	Close() (error, error)
}

// MigrationEngine фабрика мигратора, в тестах подменяется моком
type MigrationEngine func(databaseURL string) (Migrator, error)

type Migration struct {
	dbPath string
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(dbPath string, engine MigrationEngine, log *slog.Logger) *Migration {
	return &Migration{
		dbPath: dbPath,
		engine: engine,
		log:    log,
	}
}

// DefaultEngine: реальная реализация: миграции из embedded FS
func DefaultEngine(databaseURL string) (Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations source: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", source, databaseURL)
}

// DatabaseURL адрес базы для golang-migrate
func DatabaseURL(dbPath string) string {
	return "sqlite3://" + dbPath
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(DatabaseURL(mg.dbPath))
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		mg.log.Debug("Migrations applied", "version", version, "dirty", dirty)
	}
	return nil
}
