package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"hououlogs/internal/model"
)

// GetFileIndex имя файла -> размер для уже прочитанных файлов каталога
func (s *Storage) GetFileIndex(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT file, size FROM file_index`)
	if err != nil {
		return nil, fmt.Errorf("failed to get file index: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var f model.RemoteFile
		if err := rows.Scan(&f.Name, &f.Size); err != nil {
			return nil, fmt.Errorf("failed to scan file index: %w", err)
		}
		index[f.Name] = f.Size
	}
	return index, rows.Err()
}

// UpsertRemoteFile записывает размер файла каталога
func (s *Storage) UpsertRemoteFile(ctx context.Context, file model.RemoteFile) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return upsertRemoteFile(ctx, tx, file)
	})
}

// SaveFileEntries в одной транзакции добавляет новые логи файла и
// обновляет его размер в индексе. Уже известные логи не изменяются.
func (s *Storage) SaveFileEntries(ctx context.Context, file model.RemoteFile, entries []model.LogRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if len(entries) > 0 {
			if _, err := execLogs(ctx, tx, insertNewLogQuery, entries); err != nil {
				return err
			}
		}
		return upsertRemoteFile(ctx, tx, file)
	})
}

func upsertRemoteFile(ctx context.Context, tx *sql.Tx, file model.RemoteFile) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO file_index (file, size) VALUES (?, ?)
		ON CONFLICT(file) DO UPDATE SET size = excluded.size
	`, file.Name, file.Size)
	if err != nil {
		return fmt.Errorf("failed to save file %s: %w", file.Name, err)
	}
	return nil
}

// GetLastFetchTime время последней синхронизации, Unix epoch если её не было
func (s *Storage) GetLastFetchTime(ctx context.Context) (time.Time, error) {
	var seconds sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT time FROM last_fetch_time LIMIT 1`).Scan(&seconds)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("failed to get last fetch time: %w", err)
	}

	return fromUnixSeconds(seconds.Float64), nil
}

// SetLastFetchTime таблица всегда содержит ровно одну строку
func (s *Storage) SetLastFetchTime(ctx context.Context, t time.Time) error {
	seconds := toUnixSeconds(t)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE last_fetch_time SET time = ?`, seconds)
		if err != nil {
			return fmt.Errorf("failed to set last fetch time: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO last_fetch_time (time) VALUES (?)`, seconds); err != nil {
			return fmt.Errorf("failed to set last fetch time: %w", err)
		}
		return nil
	})
}

func toUnixSeconds(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

func fromUnixSeconds(seconds float64) time.Time {
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(math.Round(frac*1e6))*1000).UTC()
}
