package storage

import (
	"context"
	"errors"
	"time"

	"hououlogs/internal/model"
)

var ErrNotFound = errors.New("log not found")

type Storage interface {
	// Логи
	UpsertLogs(ctx context.Context, entries []model.LogRecord) error
	InsertNewLogs(ctx context.Context, entries []model.LogRecord) (int, error)
	GetLog(ctx context.Context, id string) (*model.LogRecord, error)
	ListUndownloadedIDs(ctx context.Context, filter model.Filter) ([]string, error)
	ListDownloaded(ctx context.Context, filter model.Filter) ([]model.LogRecord, error)
	ListDownloadedAfter(ctx context.Context, afterID string, limit int) ([]model.LogRecord, error)
	MarkDownloaded(ctx context.Context, id string, content []byte) error
	MarkErrored(ctx context.Context, id string) error
	ResetLog(ctx context.Context, id string) error
	Count(ctx context.Context) (model.Stats, error)

	// Индекс удалённых файлов и время синхронизации
	GetFileIndex(ctx context.Context) (map[string]int64, error)
	UpsertRemoteFile(ctx context.Context, file model.RemoteFile) error
	SaveFileEntries(ctx context.Context, file model.RemoteFile, entries []model.LogRecord) error
	GetLastFetchTime(ctx context.Context) (time.Time, error)
	SetLastFetchTime(ctx context.Context, t time.Time) error

	Close() error
}
