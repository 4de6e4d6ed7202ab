package index

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"hououlogs/internal/domain/catalog"
	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

// Servicer синхронизация локального индекса с удалённым каталогом
type Servicer interface {
	// Fetch загружает изменившиеся файлы каталога и сохраняет найденные логи
	Fetch(ctx context.Context, archive bool) (*Result, error)
}

// ServiceConfig настройки синхронизации
type ServiceConfig struct {
	MinInterval time.Duration
	Prefix      string
	Now         func() time.Time
}

// Result итог одной синхронизации
type Result struct {
	Listed  int `json:"listed"`  // файлов в каталоге после фильтра
	Changed int `json:"changed"` // файлов, прочитанных заново
	Logs    int `json:"logs"`    // извлечено записей
}

// Service реализация синхронизации
type Service struct {
	repo    Repository
	fetcher Fetcher
	log     *slog.Logger
	config  *ServiceConfig
}

// NewService создает сервис синхронизации
func NewService(repo Repository, fetcher Fetcher, log *slog.Logger, config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{}
	}
	if config.MinInterval <= 0 {
		config.MinInterval = DefaultMinInterval
	}
	if config.Prefix == "" {
		config.Prefix = catalog.ArchivePrefix
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Service{
		repo:    repo,
		fetcher: fetcher,
		log:     log,
		config:  config,
	}
}

// Fetch синхронизирует каталог. Для последних 7 дней (archive == false)
// действует минимальный интервал между запусками: ErrTooSoon.
// Сетевые ошибки и ошибки формата прерывают синхронизацию, уже сохраненные
// файлы остаются в индексе.
func (s *Service) Fetch(ctx context.Context, archive bool) (*Result, error) {
	now := s.config.Now()

	if !archive {
		last, err := s.repo.GetLastFetchTime(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get last fetch time: %w", err)
		}
		if !ShouldFetch(last, now, s.config.MinInterval) {
			s.log.Info("Fetch skipped", "last_fetch", last, "min_interval", s.config.MinInterval)
			return nil, ErrTooSoon
		}
	}

	text, err := s.fetcher.FetchListing(ctx, archive)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file index: %w", err)
	}

	remote := FilterByPrefix(ParseListing(text), s.config.Prefix)

	known, err := s.repo.GetFileIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get file index: %w", err)
	}

	changed := Diff(remote, known)
	result := &Result{Listed: len(remote), Changed: len(changed)}

	s.log.Info("File index loaded",
		"archive", archive,
		"listed", result.Listed,
		"changed", result.Changed,
	)

	names := make([]string, 0, len(changed))
	for name := range changed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		n, err := s.syncFile(ctx, name, changed[name])
		if err != nil {
			return result, err
		}
		result.Logs += n
	}

	if !archive {
		if err := s.repo.SetLastFetchTime(ctx, now); err != nil {
			return result, fmt.Errorf("failed to update last fetch time: %w", err)
		}
	}

	return result, nil
}

// syncFile загружает один файл каталога и фиксирует его записи
func (s *Service) syncFile(ctx context.Context, name string, file RemoteFile) (int, error) {
	data, err := s.fetcher.FetchArchiveFile(ctx, file.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", file.Path, err)
	}

	if strings.HasSuffix(name, ".gz") {
		data, err = gz.Decompress(data)
		if err != nil {
			return 0, fmt.Errorf("failed to decompress %s: %w", name, err)
		}
	}

	entries, err := catalog.Extract(catalog.LinePayload{Text: string(data)})
	if err != nil {
		return 0, fmt.Errorf("failed to extract %s: %w", name, err)
	}

	if err := s.repo.SaveFileEntries(ctx, model.RemoteFile{Name: name, Size: file.Size}, entries); err != nil {
		return 0, fmt.Errorf("failed to save %s: %w", name, err)
	}

	s.log.Debug("File synced", "file", name, "size", file.Size, "logs", len(entries))
	return len(entries), nil
}
