package validate

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

const defaultPageSize = 500

// Servicer проверка скачанных логов
type Servicer interface {
	// Validate разбирает каждый скачанный лог, битые возвращает в очередь
	Validate(ctx context.Context) (*Result, error)
}

// ServiceConfig настройки проверки
type ServiceConfig struct {
	PageSize int
}

// Result итог проверки
type Result struct {
	Valid  int `json:"valid"`
	Failed int `json:"failed"`
}

// Service реализация проверки
type Service struct {
	repo   Repository
	log    *slog.Logger
	config *ServiceConfig
}

// NewService создает сервис проверки
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

// Validate проходит по всем скачанным логам в порядке id.
// Ошибка одного лога не прерывает проверку: лог сбрасывается в Discovered.
func (s *Service) Validate(ctx context.Context) (*Result, error) {
	result := &Result{}
	after := ""

	for {
		page, err := s.repo.ListDownloadedAfter(ctx, after, s.config.PageSize)
		if err != nil {
			return result, fmt.Errorf("failed to list downloaded logs: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for _, rec := range page {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			if _, err := Check(rec); err != nil {
				s.log.Warn("Log content is corrupted", "id", rec.ID, "error", err)
				if err := s.repo.ResetLog(ctx, rec.ID); err != nil {
					return result, fmt.Errorf("failed to reset log %s: %w", rec.ID, err)
				}
				result.Failed++
				continue
			}
			result.Valid++
		}

		after = page[len(page)-1].ID
		if len(page) < s.config.PageSize {
			break
		}
	}

	s.log.Info("Validation finished", "valid", result.Valid, "failed", result.Failed)
	return result, nil
}

// Check распаковывает и разбивает на раздачи содержимое одной записи
func Check(rec model.LogRecord) ([]Round, error) {
	doc, err := gz.Decompress(rec.Log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	rounds, err := SplitRounds(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	return rounds, nil
}
