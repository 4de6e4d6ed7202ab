package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

// MockRepository мок Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListDownloaded(ctx context.Context, filter model.Filter) ([]model.LogRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogRecord), args.Error(1)
}

func TestService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := `<mjloggm ver="2.3"></mjloggm>`

	packed, err := gz.Compress([]byte(doc))
	require.NoError(t, err)

	good := model.NewDiscovered("2025010100gm-00a9-0000-00000001", "2025-01-01T00:00", 4, false)
	good.MarkDownloaded(packed)
	bad := model.NewDiscovered("2025010100gm-00a9-0000-00000002", "2025-01-01T00:00", 4, false)
	bad.MarkDownloaded([]byte("broken"))

	filter := model.Filter{Players: 4, Limit: 2, Offset: 1}
	mockRepo := new(MockRepository)
	mockRepo.On("ListDownloaded", mock.Anything, filter).Return([]model.LogRecord{good, bad}, nil)

	result, err := NewService(mockRepo, slog.Default(), nil).Export(context.Background(), dir, filter)
	require.NoError(t, err)
	assert.Equal(t, &Result{Exported: 1, Failed: 1}, result)

	data, err := os.ReadFile(FilePath(dir, good.ID))
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
	assert.NoFileExists(t, FilePath(dir, bad.ID))
}

func TestService_Export_ListError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("ListDownloaded", mock.Anything, model.Filter{Limit: defaultPageSize}).Return(nil, errors.New("no such table"))

	_, err := NewService(mockRepo, slog.Default(), nil).Export(context.Background(), t.TempDir(), model.Filter{})
	assert.ErrorContains(t, err, "no such table")
}

func downloadedRecord(t *testing.T, id string) model.LogRecord {
	t.Helper()
	packed, err := gz.Compress([]byte(`<mjloggm ver="2.3"></mjloggm>`))
	require.NoError(t, err)

	rec := model.NewDiscovered(id, "2025-01-01T00:00", 4, false)
	rec.MarkDownloaded(packed)
	return rec
}

func TestService_Export_Pages(t *testing.T) {
	recs := []model.LogRecord{
		downloadedRecord(t, "2025010100gm-00a9-0000-00000001"),
		downloadedRecord(t, "2025010100gm-00a9-0000-00000002"),
		downloadedRecord(t, "2025010100gm-00a9-0000-00000003"),
		downloadedRecord(t, "2025010100gm-00a9-0000-00000004"),
		downloadedRecord(t, "2025010100gm-00a9-0000-00000005"),
	}

	tests := []struct {
		name   string
		filter model.Filter
		calls  []model.Filter
		pages  [][]model.LogRecord
		want   int
	}{
		{
			name:   "no limit ends on short page",
			filter: model.Filter{Players: 4, Offset: 1},
			calls: []model.Filter{
				{Players: 4, Offset: 1, Limit: 2},
				{Players: 4, Limit: 2, AfterID: recs[2].ID},
			},
			pages: [][]model.LogRecord{recs[1:3], recs[3:4]},
			want:  3,
		},
		{
			name:   "no limit ends on empty page",
			filter: model.Filter{},
			calls: []model.Filter{
				{Limit: 2},
				{Limit: 2, AfterID: recs[1].ID},
				{Limit: 2, AfterID: recs[3].ID},
			},
			pages: [][]model.LogRecord{recs[0:2], recs[2:4], {}},
			want:  4,
		},
		{
			name:   "limit spans pages",
			filter: model.Filter{Limit: 3},
			calls: []model.Filter{
				{Limit: 2},
				{Limit: 1, AfterID: recs[1].ID},
			},
			pages: [][]model.LogRecord{recs[0:2], recs[2:3]},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			mockRepo := new(MockRepository)
			for i, call := range tt.calls {
				mockRepo.On("ListDownloaded", mock.Anything, call).Return(tt.pages[i], nil).Once()
			}

			svc := NewService(mockRepo, slog.Default(), &ServiceConfig{PageSize: 2})
			result, err := svc.Export(context.Background(), dir, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, &Result{Exported: tt.want}, result)
			mockRepo.AssertExpectations(t)

			files, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, files, tt.want)
		})
	}
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "2025010100gm-00a9-0000-00000001.xml"), FilePath("out", "2025010100gm-00a9-0000-00000001"))
}
