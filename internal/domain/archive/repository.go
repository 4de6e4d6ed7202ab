package archive

import (
	"context"

	"hououlogs/internal/model"
)

// Repository сохранение найденных логов
type Repository interface {
	InsertNewLogs(ctx context.Context, entries []model.LogRecord) (int, error)
}
