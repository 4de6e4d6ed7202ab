package download

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

// Servicer скачивание логов из очереди
type Servicer interface {
	// Download скачивает логи в состоянии Discovered, подходящие под фильтр
	Download(ctx context.Context, filter model.Filter) (*Result, error)
}

// ServiceConfig настройки скачивания
type ServiceConfig struct {
	// Delay пауза между запросами к серверу
	Delay time.Duration
}

// Result итог скачивания
type Result struct {
	Downloaded int `json:"downloaded"`
	Failed     int `json:"failed"`
}

// Service реализация скачивания
type Service struct {
	repo    Repository
	fetcher Fetcher
	log     *slog.Logger
	config  *ServiceConfig
}

// NewService создает сервис скачивания
func NewService(repo Repository, fetcher Fetcher, log *slog.Logger, config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	return &Service{
		repo:    repo,
		fetcher: fetcher,
		log:     log,
		config:  config,
	}
}

// Download обрабатывает очередь по одному id, каждый результат сохраняется сразу.
// Ошибка загрузки переводит лог в Errored и не прерывает обработку.
func (s *Service) Download(ctx context.Context, filter model.Filter) (*Result, error) {
	ids, err := s.repo.ListUndownloadedIDs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list undownloaded logs: %w", err)
	}

	s.log.Info("Download started", "logs", len(ids))

	result := &Result{}
	for i, id := range ids {
		if i > 0 && s.config.Delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.config.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ok, err := s.downloadOne(ctx, id)
		if err != nil {
			return result, err
		}
		if ok {
			result.Downloaded++
		} else {
			result.Failed++
		}
	}

	s.log.Info("Download finished", "downloaded", result.Downloaded, "failed", result.Failed)
	return result, nil
}

// downloadOne возвращает false, если лог отмечен как Errored.
// Ошибка возвращается только при сбое хранилища.
func (s *Service) downloadOne(ctx context.Context, id string) (bool, error) {
	content, err := s.fetcher.FetchLog(ctx, id)
	if err == nil {
		content, err = gz.Compress(content)
	}

	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		s.log.Warn("Failed to download log", "id", id, "error", err)
		if err := s.repo.MarkErrored(ctx, id); err != nil {
			return false, fmt.Errorf("failed to mark log %s as errored: %w", id, err)
		}
		return false, nil
	}

	if err := s.repo.MarkDownloaded(ctx, id, content); err != nil {
		return false, fmt.Errorf("failed to save log %s: %w", id, err)
	}

	s.log.Debug("Log downloaded", "id", id, "size", len(content))
	return true, nil
}
