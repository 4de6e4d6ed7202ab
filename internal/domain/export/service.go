// Package export выгрузка скачанных логов в файлы XML.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

const defaultPageSize = 500

// Repository чтение скачанных логов
type Repository interface {
	ListDownloaded(ctx context.Context, filter model.Filter) ([]model.LogRecord, error)
}

// ServiceConfig настройки выгрузки
type ServiceConfig struct {
	PageSize int
}

// Result итог выгрузки
type Result struct {
	Exported int `json:"exported"`
	Failed   int `json:"failed"`
}

// Service реализация выгрузки
type Service struct {
	repo   Repository
	log    *slog.Logger
	config *ServiceConfig
}

// NewService создает сервис выгрузки
func NewService(repo Repository, log *slog.Logger, config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{}
	}
	if config.PageSize <= 0 {
		config.PageSize = defaultPageSize
	}

	return &Service{
		repo:   repo,
		log:    log,
		config: config,
	}
}

// Export пишет каждый подходящий лог в <dir>/<id>.xml.
// Записи читаются страницами по id внутри окна offset/limit фильтра.
// Лог, который не удалось распаковать, пропускается.
func (s *Service) Export(ctx context.Context, dir string, filter model.Filter) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{}
	page := filter
	remaining := filter.Limit
	for {
		page.Limit = s.config.PageSize
		if filter.Limit > 0 {
			page.Limit = min(page.Limit, remaining)
		}

		records, err := s.repo.ListDownloaded(ctx, page)
		if err != nil {
			return result, fmt.Errorf("failed to list downloaded logs: %w", err)
		}

		for _, rec := range records {
			if err := s.write(ctx, dir, rec, result); err != nil {
				return result, err
			}
		}

		remaining -= len(records)
		if len(records) < page.Limit || (filter.Limit > 0 && remaining <= 0) {
			break
		}
		// offset уже применен к первой странице
		page.Offset = 0
		page.AfterID = records[len(records)-1].ID
	}

	s.log.Info("Export finished", "dir", dir, "exported", result.Exported, "failed", result.Failed)
	return result, nil
}

func (s *Service) write(ctx context.Context, dir string, rec model.LogRecord, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := gz.Decompress(rec.Log)
	if err != nil {
		s.log.Warn("Failed to decompress log", "id", rec.ID, "error", err)
		result.Failed++
		return nil
	}

	if err := os.WriteFile(FilePath(dir, rec.ID), doc, 0o644); err != nil {
		return fmt.Errorf("failed to write log %s: %w", rec.ID, err)
	}
	result.Exported++
	return nil
}

// FilePath путь файла для лога
func FilePath(dir, id string) string {
	return filepath.Join(dir, id+".xml")
}
