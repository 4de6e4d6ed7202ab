package index

import (
	"context"
	"time"

	"hououlogs/internal/model"
)

// Repository хранилище состояния синхронизации
type Repository interface {
	GetLastFetchTime(ctx context.Context) (time.Time, error)
	SetLastFetchTime(ctx context.Context, t time.Time) error
	GetFileIndex(ctx context.Context) (map[string]int64, error)
	// SaveFileEntries сохраняет записи файла и его размер одной транзакцией
	SaveFileEntries(ctx context.Context, file model.RemoteFile, entries []model.LogRecord) error
}

// Fetcher источник каталога и файлов
type Fetcher interface {
	FetchListing(ctx context.Context, archive bool) (string, error)
	FetchArchiveFile(ctx context.Context, path string) ([]byte, error)
}
