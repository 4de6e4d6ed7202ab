package download

import (
	"context"

	"hououlogs/internal/model"
)

// Repository очередь логов на скачивание
type Repository interface {
	ListUndownloadedIDs(ctx context.Context, filter model.Filter) ([]string, error)
	MarkDownloaded(ctx context.Context, id string, content []byte) error
	MarkErrored(ctx context.Context, id string) error
}

// Fetcher загрузка одного лога с сервера
type Fetcher interface {
	FetchLog(ctx context.Context, id string) ([]byte, error)
}
