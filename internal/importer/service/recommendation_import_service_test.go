package service

import (
	"context"
	"testing"

	"finsight/internal/importer/stockcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recommendationCSV = `Date,Code,Positive_Ratio,Prediction_Success
2025-12-05,5930,0.40,success
2025-12-05,660,0.20,success
2025-12-05,35720,0.55,
2025-12-05,999999,0.80,success
2025-12-05,5930,not-a-number,success
bad-date,5930,0.40,success
`

func TestRecommendationImport(t *testing.T) {
	stocksRepo := newFakeStocksRepository("005930", "000660", "035720")
	recRepo := newFakeRecommendationsRepository()
	svc := NewRecommendationImportService(recRepo, &fakeSourcesRepository{code: "NAVER", id: 3},
		stockcache.New(stocksRepo), testConfig(), testLogger(t))

	summary, err := svc.Run(context.Background(), writeCSV(t, recommendationCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Upserted)
	assert.Equal(t, 1, summary.SkippedStock)
	assert.Equal(t, 2, summary.SkippedRow, "bad ratio and bad date rows are skipped")
	require.Len(t, recRepo.rows, 3)

	byStock := make(map[uint]struct {
		isRecommended bool
		actualIsUp    *bool
		isHit         *bool
		ratio         float64
	}, len(recRepo.rows))
	for _, row := range recRepo.rows {
		assert.Equal(t, uint(3), row.SourceID)
		assert.Equal(t, 0.35, row.ThresholdUsed)
		byStock[row.StockID] = struct {
			isRecommended bool
			actualIsUp    *bool
			isHit         *bool
			ratio         float64
		}{row.IsRecommended, row.ActualIsUp, row.IsHit, row.PositiveRatio}
	}

	// 005930: recommended and successful.
	samsung := byStock[1]
	assert.True(t, samsung.isRecommended)
	require.NotNil(t, samsung.actualIsUp)
	assert.True(t, *samsung.actualIsUp)
	require.NotNil(t, samsung.isHit)
	assert.True(t, *samsung.isHit)

	// 000660: not recommended; success means the down-call was right.
	hynix := byStock[2]
	assert.False(t, hynix.isRecommended)
	require.NotNil(t, hynix.actualIsUp)
	assert.False(t, *hynix.actualIsUp)
	assert.Nil(t, hynix.isHit)

	// 035720: recommended but outcome unknown.
	kakao := byStock[3]
	assert.True(t, kakao.isRecommended)
	assert.Nil(t, kakao.actualIsUp)
	assert.Nil(t, kakao.isHit)
}

func TestRecommendationImportRerunIsIdempotent(t *testing.T) {
	stocksRepo := newFakeStocksRepository("005930", "000660", "035720")
	recRepo := newFakeRecommendationsRepository()
	svc := NewRecommendationImportService(recRepo, &fakeSourcesRepository{code: "NAVER", id: 3},
		stockcache.New(stocksRepo), testConfig(), testLogger(t))
	path := writeCSV(t, recommendationCSV)

	_, err := svc.Run(context.Background(), path)
	require.NoError(t, err)
	firstCount := len(recRepo.rows)

	summary, err := svc.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, firstCount, len(recRepo.rows), "second run adds no rows")
	assert.Equal(t, 3, summary.Upserted)
}

func TestRecommendationImportMissingSourceIsFatal(t *testing.T) {
	svc := NewRecommendationImportService(newFakeRecommendationsRepository(), &fakeSourcesRepository{code: "OTHER", id: 1},
		stockcache.New(newFakeStocksRepository()), testConfig(), testLogger(t))

	_, err := svc.Run(context.Background(), writeCSV(t, recommendationCSV))
	require.Error(t, err)
}
