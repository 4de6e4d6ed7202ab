package validate

import (
	"context"

	"hououlogs/internal/model"
)

// Repository доступ к скачанным логам
type Repository interface {
	ListDownloadedAfter(ctx context.Context, afterID string, limit int) ([]model.LogRecord, error)
	ResetLog(ctx context.Context, id string) error
}
