package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hououlogs/internal/infrastructure/storage"
	"hououlogs/internal/model"
)

const upsertLogQuery = `
	INSERT INTO logs (id, date, num_players, is_tonpu, is_processed, was_error, log)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		date = excluded.date,
		num_players = excluded.num_players,
		is_tonpu = excluded.is_tonpu,
		is_processed = excluded.is_processed,
		was_error = excluded.was_error,
		log = excluded.log
`

const insertNewLogQuery = `
	INSERT INTO logs (id, date, num_players, is_tonpu, is_processed, was_error, log)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING
`

const selectLogColumns = `id, date, num_players, is_tonpu, is_processed, was_error, log`

// UpsertLogs вставляет или полностью перезаписывает записи по id
func (s *Storage) UpsertLogs(ctx context.Context, entries []model.LogRecord) error {
	if len(entries) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := execLogs(ctx, tx, upsertLogQuery, entries)
		return err
	})
}

// InsertNewLogs вставляет только новые id, существующие записи не трогает.
// Возвращает количество вставленных записей.
func (s *Storage) InsertNewLogs(ctx context.Context, entries []model.LogRecord) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var inserted int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := execLogs(ctx, tx, insertNewLogQuery, entries)
		inserted = n
		return err
	})
	return inserted, err
}

func execLogs(ctx context.Context, tx *sql.Tx, query string, entries []model.LogRecord) (int, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var affected int
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx,
			e.ID,
			e.Date,
			e.NumPlayers,
			boolToInt(e.IsTonpu),
			boolToInt(e.IsProcessed),
			boolToInt(e.WasError),
			e.Log,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save log %s: %w", e.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			affected += int(n)
		}
	}
	return affected, nil
}

// GetLog возвращает запись по id
func (s *Storage) GetLog(ctx context.Context, id string) (*model.LogRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectLogColumns+` FROM logs WHERE id = ?`, id)

	rec, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get log %s: %w", id, err)
	}
	return rec, nil
}

// ListUndownloadedIDs id записей в состоянии Discovered, по возрастанию id
func (s *Storage) ListUndownloadedIDs(ctx context.Context, filter model.Filter) ([]string, error) {
	where, args := filterClause(filter)
	query := `SELECT id FROM logs WHERE is_processed = 0 AND was_error = 0` + where + ` ORDER BY id` + limitClause(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list undownloaded logs: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan log id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListDownloaded скачанные записи с фильтром и пагинацией
func (s *Storage) ListDownloaded(ctx context.Context, filter model.Filter) ([]model.LogRecord, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + selectLogColumns + ` FROM logs WHERE ` + downloadedCond + where + ` ORDER BY id` + limitClause(filter)
	return s.queryLogs(ctx, query, args...)
}

// ListDownloadedAfter страница скачанных записей с id > afterID
func (s *Storage) ListDownloadedAfter(ctx context.Context, afterID string, limit int) ([]model.LogRecord, error) {
	query := `SELECT ` + selectLogColumns + ` FROM logs WHERE ` + downloadedCond + ` AND id > ? ORDER BY id LIMIT ?`
	return s.queryLogs(ctx, query, afterID, limit)
}

const downloadedCond = `is_processed = 1 AND was_error = 0 AND log IS NOT NULL`

// MarkDownloaded сохраняет сжатое содержимое лога
func (s *Storage) MarkDownloaded(ctx context.Context, id string, content []byte) error {
	rec := model.LogRecord{ID: id}
	rec.MarkDownloaded(content)
	return s.saveState(ctx, rec)
}

// MarkErrored отмечает неудачную загрузку
func (s *Storage) MarkErrored(ctx context.Context, id string) error {
	rec := model.LogRecord{ID: id}
	rec.MarkErrored()
	return s.saveState(ctx, rec)
}

// ResetLog возвращает запись в очередь на скачивание
func (s *Storage) ResetLog(ctx context.Context, id string) error {
	rec := model.LogRecord{ID: id}
	rec.Reset()
	return s.saveState(ctx, rec)
}

// Count счетчики для отчета о прогрессе
func (s *Storage) Count(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_processed = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_processed = 1 AND was_error = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN was_error = 1 THEN 1 ELSE 0 END), 0),
			(SELECT COUNT(*) FROM file_index)
		FROM logs
	`).Scan(&stats.Total, &stats.Discovered, &stats.Downloaded, &stats.Errored, &stats.Files)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to count logs: %w", err)
	}
	return stats, nil
}

// saveState пишет флаги состояния и содержимое, остальные колонки не меняются
func (s *Storage) saveState(ctx context.Context, rec model.LogRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE logs SET is_processed = ?, was_error = ?, log = ? WHERE id = ?`,
			boolToInt(rec.IsProcessed), boolToInt(rec.WasError), rec.Log, rec.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update log %s: %w", rec.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update log %s: %w", rec.ID, err)
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Storage) queryLogs(ctx context.Context, query string, args ...any) ([]model.LogRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	records := make([]model.LogRecord, 0)
	for rows.Next() {
		rec, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(row scanner) (*model.LogRecord, error) {
	var (
		rec                            model.LogRecord
		isTonpu, isProcessed, wasError int
	)

	err := row.Scan(
		&rec.ID,
		&rec.Date,
		&rec.NumPlayers,
		&isTonpu,
		&isProcessed,
		&wasError,
		&rec.Log,
	)
	if err != nil {
		return nil, err
	}

	rec.IsTonpu = isTonpu == 1
	rec.IsProcessed = isProcessed == 1
	rec.WasError = wasError == 1
	return &rec, nil
}

func filterClause(f model.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Players != 0 {
		conds = append(conds, "num_players = ?")
		args = append(args, f.Players)
	}
	if f.Tonpu != nil {
		conds = append(conds, "is_tonpu = ?")
		args = append(args, boolToInt(*f.Tonpu))
	}
	if f.AfterID != "" {
		conds = append(conds, "id > ?")
		args = append(args, f.AfterID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(conds, " AND "), args
}

// limitClause в SQLite OFFSET допустим только вместе с LIMIT, -1: без ограничения
func limitClause(f model.Filter) string {
	if f.Limit <= 0 && f.Offset <= 0 {
		return ""
	}
	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, max(f.Offset, 0))
}
