package app

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"hououlogs/internal/config"
	"hououlogs/internal/domain/archive"
	"hououlogs/internal/domain/download"
	"hououlogs/internal/domain/export"
	"hououlogs/internal/domain/index"
	"hououlogs/internal/domain/validate"
	"hououlogs/internal/domain/yakuman"
	"hououlogs/internal/infrastructure/storage"
	"hououlogs/internal/infrastructure/storage/sqlite"
	"hououlogs/internal/infrastructure/tenhou"
	"hououlogs/internal/model"
)

// App связывает хранилище, HTTP-клиент и сервисы одного запуска
type App struct {
	config  *config.Config
	log     *slog.Logger
	storage storage.Storage

	index    *index.Service
	archive  *archive.Service
	yakuman  *yakuman.Service
	download *download.Service
	validate *validate.Service
	export   *export.Service
}

// New открывает базу (с миграциями) и создает сервисы
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := sqlite.New(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage %s: %w", cfg.DBPath, err)
	}

	client := tenhou.NewClient(&tenhou.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	}, log)

	return NewWithDeps(cfg, log, store, client), nil
}

// NewWithDeps собирает приложение из готовых зависимостей
func NewWithDeps(cfg *config.Config, log *slog.Logger, store storage.Storage, client *tenhou.Client) *App {
	return &App{
		config:  cfg,
		log:     log,
		storage: store,
		index: index.NewService(store, client, log, &index.ServiceConfig{
			MinInterval: cfg.MinFetchInterval,
		}),
		archive:  archive.NewService(store, log),
		yakuman:  yakuman.NewService(store, client, log, nil),
		download: download.NewService(store, client, log, &download.ServiceConfig{Delay: cfg.RequestDelay}),
		validate: validate.NewService(store, log, nil),
		export:   export.NewService(store, log, nil),
	}
}

func (a *App) Close() error {
	return a.storage.Close()
}

// Import импорт годового архива
func (a *App) Import(ctx context.Context, archivePath string, anchors bool) (*archive.Result, error) {
	return a.archive.Import(ctx, archivePath, anchors)
}

// Fetch синхронизация с каталогом сервера
func (a *App) Fetch(ctx context.Context, archive bool) (*index.Result, error) {
	return a.index.Fetch(ctx, archive)
}

// Yakuman импорт списка якуманов за месяц
func (a *App) Yakuman(ctx context.Context, year, month int) (*yakuman.Result, error) {
	return a.yakuman.Import(ctx, year, month)
}

// Download скачивание логов из очереди
func (a *App) Download(ctx context.Context, filter model.Filter) (*download.Result, error) {
	return a.download.Download(ctx, filter)
}

// Validate проверка скачанных логов
func (a *App) Validate(ctx context.Context) (*validate.Result, error) {
	return a.validate.Validate(ctx)
}

// Export выгрузка логов в директорию
func (a *App) Export(ctx context.Context, dir string, filter model.Filter) (*export.Result, error) {
	return a.export.Export(ctx, dir, filter)
}

// Status счетчики базы
func (a *App) Status(ctx context.Context) (model.Stats, error) {
	return a.storage.Count(ctx)
}
