// Package yakuman импорт логов из ежемесячного списка якуманов (ykm.js).
package yakuman

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"hououlogs/internal/domain/catalog"
	"hououlogs/internal/domain/input"
	"hououlogs/internal/model"
)

// AvailableFrom первый месяц, за который публикуется список
var AvailableFrom = time.Date(2006, time.October, 1, 0, 0, 0, 0, time.UTC)

// Repository сохранение найденных логов
type Repository interface {
	InsertNewLogs(ctx context.Context, entries []model.LogRecord) (int, error)
}

// Fetcher загрузка ykm.js за месяц
type Fetcher interface {
	FetchYakuman(ctx context.Context, year, month int) (string, error)
}

// Result итог импорта
type Result struct {
	Logs     int `json:"logs"`
	Inserted int `json:"inserted"`
}

// Service реализация импорта списка якуманов
type Service struct {
	repo    Repository
	fetcher Fetcher
	log     *slog.Logger
	now     func() time.Time
}

// NewService создает сервис. now == nil означает time.Now.
func NewService(repo Repository, fetcher Fetcher, log *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, fetcher: fetcher, log: log, now: now}
}

// ValidateDate месяц 1..12, не раньше 2006/10 и не в будущем
func ValidateDate(year, month int, now time.Time) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", input.ErrInvalidInput)
	}

	target := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if target.Before(AvailableFrom) {
		return fmt.Errorf("%w: yakuman logs are available starting from %d/%d",
			input.ErrInvalidInput, AvailableFrom.Year(), int(AvailableFrom.Month()))
	}
	if target.After(now) {
		return fmt.Errorf("%w: future dates are not allowed", input.ErrInvalidInput)
	}
	return nil
}

// Import загружает список за месяц и добавляет новые логи
func (s *Service) Import(ctx context.Context, year, month int) (*Result, error) {
	if err := ValidateDate(year, month, s.now()); err != nil {
		return nil, err
	}

	text, err := s.fetcher.FetchYakuman(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch yakuman list: %w", err)
	}

	entries, err := catalog.Extract(catalog.LiteralPayload{Text: text, Var: catalog.YakumanVar, Year: year})
	if err != nil {
		return nil, fmt.Errorf("failed to extract yakuman list: %w", err)
	}

	inserted, err := s.repo.InsertNewLogs(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to save yakuman logs: %w", err)
	}

	s.log.Info("Yakuman list imported", "year", year, "month", month, "logs", len(entries), "inserted", inserted)
	return &Result{Logs: len(entries), Inserted: inserted}, nil
}
