package service

import (
	"context"
	"testing"
	"time"

	"finsight/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommendationRepo struct {
	dateCounts  []repository.RecommendationDateRow
	latestDate  time.Time
	latestErr   error
	byDate      []repository.RecommendationRow
	history     []repository.StockHistoryRow
	gotLimit    int
	gotComplete bool
}

func (f *fakeRecommendationRepo) GetDateCounts(_ context.Context, _ string) ([]repository.RecommendationDateRow, error) {
	return f.dateCounts, nil
}

func (f *fakeRecommendationRepo) GetLatestDate(_ context.Context, _ string, completeOnly bool) (time.Time, error) {
	f.gotComplete = completeOnly
	return f.latestDate, f.latestErr
}

func (f *fakeRecommendationRepo) GetByDate(_ context.Context, _ string, _ time.Time, limit int) ([]repository.RecommendationRow, error) {
	f.gotLimit = limit
	return f.byDate, nil
}

func (f *fakeRecommendationRepo) GetStockHistory(_ context.Context, _ uint, _ string, limit int) ([]repository.StockHistoryRow, error) {
	f.gotLimit = limit
	return f.history, nil
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, clampLimit(0, 200))
	assert.Equal(t, 1, clampLimit(-5, 200))
	assert.Equal(t, 20, clampLimit(20, 200))
	assert.Equal(t, 200, clampLimit(200, 200))
	assert.Equal(t, 200, clampLimit(10000, 200))
}

func TestGetLatestClampsLimit(t *testing.T) {
	repo := &fakeRecommendationRepo{latestDate: time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)}
	svc := NewRecommendationService(repo, "NAVER")

	resp, err := svc.GetLatest(context.Background(), 99999, true)
	require.NoError(t, err)
	assert.Equal(t, maxLatestLimit, repo.gotLimit)
	assert.True(t, repo.gotComplete)
	assert.Equal(t, "2025-12-05", resp.SignalDate)
	assert.Empty(t, resp.Items)
}

func TestGetLatestPropagatesNoData(t *testing.T) {
	repo := &fakeRecommendationRepo{latestErr: repository.ErrNoRecommendationData}
	svc := NewRecommendationService(repo, "NAVER")

	_, err := svc.GetLatest(context.Background(), 20, false)
	assert.ErrorIs(t, err, repository.ErrNoRecommendationData)
}

func TestGetStockHistoryEmptyIsNotFound(t *testing.T) {
	svc := NewRecommendationService(&fakeRecommendationRepo{}, "NAVER")

	_, err := svc.GetStockHistory(context.Background(), 12, 60)
	assert.ErrorIs(t, err, repository.ErrNoRecommendationData)
}

func TestGetStockHistoryClampsLimit(t *testing.T) {
	repo := &fakeRecommendationRepo{history: []repository.StockHistoryRow{{
		SignalDate: time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), PositiveRatio: 0.4,
	}}}
	svc := NewRecommendationService(repo, "NAVER")

	resp, err := svc.GetStockHistory(context.Background(), 12, 99999)
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, repo.gotLimit)
	assert.Equal(t, uint(12), resp.StockID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2025-12-05", resp.Items[0].SignalDate)
}

func TestGetDatesFormatsRows(t *testing.T) {
	repo := &fakeRecommendationRepo{dateCounts: []repository.RecommendationDateRow{
		{SignalDate: time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), LoadedCnt: 79, TotalStocks: 80, MissingCnt: 1},
	}}
	svc := NewRecommendationService(repo, "NAVER")

	resp, err := svc.GetDates(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2025-12-05", resp.Items[0].SignalDate)
	assert.Equal(t, 79, resp.Items[0].LoadedCount)
	assert.Equal(t, 1, resp.Items[0].MissingCnt)
}

type fakeHotTopicRepo struct {
	sourceExists bool
	latestDate   time.Time
	latestErr    error
	rows         []repository.HotTopicRow
	gotSource    string
	gotLimit     int
}

func (f *fakeHotTopicRepo) SourceExists(_ context.Context, code string) (bool, error) {
	f.gotSource = code
	return f.sourceExists, nil
}

func (f *fakeHotTopicRepo) GetLatestDate(_ context.Context, code string) (time.Time, error) {
	f.gotSource = code
	return f.latestDate, f.latestErr
}

func (f *fakeHotTopicRepo) GetByDate(_ context.Context, code string, _ time.Time, limit int) ([]repository.HotTopicRow, error) {
	f.gotSource = code
	f.gotLimit = limit
	return f.rows, nil
}

func TestHotTopicLatestEmptyTableIsNotFound(t *testing.T) {
	repo := &fakeHotTopicRepo{latestErr: repository.ErrNoHotTopicData}
	svc := NewHotTopicService(repo, "NAVER")

	_, err := svc.GetLatest(context.Background(), 20, "")
	assert.ErrorIs(t, err, repository.ErrNoHotTopicData)
	assert.Equal(t, "NAVER", repo.gotSource, "empty source code falls back to the default")
}

func TestHotTopicByDateUnknownSourceIsNotFound(t *testing.T) {
	repo := &fakeHotTopicRepo{sourceExists: false}
	svc := NewHotTopicService(repo, "NAVER")

	_, err := svc.GetByDate(context.Background(), time.Now(), 20, "NOPE")
	assert.ErrorIs(t, err, repository.ErrSourceNotFound)
	assert.Equal(t, "NOPE", repo.gotSource)
}

func TestHotTopicByDateEmptyRowsIsOK(t *testing.T) {
	repo := &fakeHotTopicRepo{sourceExists: true}
	svc := NewHotTopicService(repo, "NAVER")

	resp, err := svc.GetByDate(context.Background(), time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-05", resp.TopicDate)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, repo.gotLimit, "limit is clamped up to one")
}
