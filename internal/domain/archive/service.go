// Package archive импорт логов из годового zip-архива tenhou (scrawYYYY.zip).
package archive

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/exp/slog"

	"hououlogs/internal/domain/catalog"
	"hououlogs/internal/domain/input"
)

// Servicer импорт архива
type Servicer interface {
	Import(ctx context.Context, archivePath string, anchors bool) (*Result, error)
}

// Result итог импорта
type Result struct {
	Files    int `json:"files"`    // прочитано файлов scc
	Logs     int `json:"logs"`     // извлечено записей
	Inserted int `json:"inserted"` // из них новых
}

// Service реализация импорта
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает сервис импорта
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Import читает файлы scc архива и добавляет их записи в базу.
// anchors включает старый формат ссылок без минут (архивы 2006-2008).
// Записи сохраняются отдельно для каждого файла архива.
func (s *Service) Import(ctx context.Context, archivePath string, anchors bool) (*Result, error) {
	if err := input.ValidateArchive(archivePath); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	result := &Result{}
	for _, f := range Members(zr.File) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		n, inserted, err := s.importMember(ctx, f, anchors)
		if err != nil {
			return result, err
		}
		result.Files++
		result.Logs += n
		result.Inserted += inserted
	}

	s.log.Info("Archive imported",
		"archive", archivePath,
		"files", result.Files,
		"logs", result.Logs,
		"inserted", result.Inserted,
	)
	return result, nil
}

func (s *Service) importMember(ctx context.Context, f *zip.File, anchors bool) (int, int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	entries, err := catalog.ExtractMember(f.Name, rc, anchors)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}

	inserted, err := s.repo.InsertNewLogs(ctx, entries)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to save %s: %w", f.Name, err)
	}

	s.log.Debug("Archive file imported", "file", f.Name, "logs", len(entries), "inserted", inserted)
	return len(entries), inserted, nil
}

// Members файлы архива, имя которых начинается с префикса scc
func Members(files []*zip.File) []*zip.File {
	out := make([]*zip.File, 0, len(files))
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(path.Base(f.Name), catalog.ArchivePrefix) {
			out = append(out, f)
		}
	}
	return out
}
