package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockMigrator: мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)

	// Настраиваем поведение
	mockM.On("Up").Return(nil)
	mockM.On("Version").Return(uint(2), false, nil)
	mockM.On("Close").Return(nil, nil)

	var gotURL string
	// Инжектим мок через фабрику
	engine := func(db string) (Migrator, error) {
		gotURL = db
		return mockM, nil
	}

	mg := NewMigration("houou.db", engine, slog.Default())
	err := mg.Up()

	assert.NoError(t, err)
	assert.Equal(t, "sqlite3://houou.db", gotURL)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Version").Return(uint(2), false, nil)
	mockM.On("Close").Return(nil, nil)

	engine := func(db string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration("houou.db", engine, slog.Default())
	err := mg.Up()

	assert.NoError(t, err)
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := NewMigration("houou.db", engine, slog.Default())
	err := mg.Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Up_CloseError(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Version").Return(uint(2), false, nil)
	mockM.On("Close").Return(nil, errors.New("database is locked"))

	engine := func(db string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration("houou.db", engine, slog.Default()).Up()
	assert.EqualError(t, err, "database is locked")
}

func TestMigration_Up_DefaultEngine(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	mg := NewMigration(dbPath, DefaultEngine, slog.Default())
	require.NoError(t, mg.Up())
	// повторный запуск ничего не меняет
	require.NoError(t, mg.Up())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"logs", "last_fetch_time", "file_index"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM last_fetch_time`).Scan(&rows))
	assert.Equal(t, 1, rows)
}
