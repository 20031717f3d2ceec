package service

import (
	"context"
	"errors"
	"testing"

	"finsight/internal/importer/stockcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceCSV = `Date,Stock,Code,Open,High,Low,Close,Volume
2025-12-05 10:00:00+00:00,SamsungElec,5930,71000,71500,70800,71200,1234567
2025-12-05T11:00:00Z,SamsungElec,5930,71200,71800,71100,71650.555,oops
2025-12-05 10:00:00,SKHynix,660,132000,133000,131500,132500,987654
`

func TestPriceImportMalformedVolumeIsNotFatal(t *testing.T) {
	stocksRepo := newFakeStocksRepository()
	candleRepo := newFakeCandlesRepository()
	svc := NewPriceImportService(candleRepo, stockcache.New(stocksRepo), testConfig(), testLogger(t))

	summary, err := svc.Run(context.Background(), writeCSV(t, priceCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Upserted)
	assert.Equal(t, 0, summary.SkippedRow)
	assert.Len(t, candleRepo.rows, 3)

	// The bad volume coerces to zero instead of dropping the row.
	row, ok := candleRepo.rows["1|1H|2025-12-05 11:00:00"]
	require.True(t, ok)
	assert.Equal(t, int64(0), row.Volume)
	assert.Equal(t, "71650.56", row.ClosePrice.StringFixed(2))
}

func TestPriceImportCreatesAndPadsStocks(t *testing.T) {
	stocksRepo := newFakeStocksRepository()
	svc := NewPriceImportService(newFakeCandlesRepository(), stockcache.New(stocksRepo), testConfig(), testLogger(t))

	_, err := svc.Run(context.Background(), writeCSV(t, priceCSV))
	require.NoError(t, err)

	require.Contains(t, stocksRepo.byTick, "005930")
	require.Contains(t, stocksRepo.byTick, "000660")
	require.NotNil(t, stocksRepo.byTick["005930"].NameKo)
	assert.Equal(t, "SamsungElec", *stocksRepo.byTick["005930"].NameKo)
}

func TestPriceImportSkipsUnparseableCandleTime(t *testing.T) {
	csv := "Date,Stock,Code,Open,High,Low,Close,Volume\n" +
		"garbage,S,5930,1,1,1,1,1\n" +
		"2025-12-05 10:00:00,S,5930,1,1,1,1,1\n"
	candleRepo := newFakeCandlesRepository()
	svc := NewPriceImportService(candleRepo, stockcache.New(newFakeStocksRepository()), testConfig(), testLogger(t))

	summary, err := svc.Run(context.Background(), writeCSV(t, csv))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Upserted)
	assert.Equal(t, 1, summary.SkippedRow)
	assert.Len(t, candleRepo.rows, 1)
}

func TestPriceImportRerunIsIdempotent(t *testing.T) {
	stocksRepo := newFakeStocksRepository()
	candleRepo := newFakeCandlesRepository()
	svc := NewPriceImportService(candleRepo, stockcache.New(stocksRepo), testConfig(), testLogger(t))
	path := writeCSV(t, priceCSV)

	_, err := svc.Run(context.Background(), path)
	require.NoError(t, err)
	first := make(map[string]string, len(candleRepo.rows))
	for key, row := range candleRepo.rows {
		first[key] = row.ClosePrice.StringFixed(2)
	}

	_, err = svc.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, candleRepo.rows, len(first))
	for key, row := range candleRepo.rows {
		assert.Equal(t, first[key], row.ClosePrice.StringFixed(2))
	}
}

func TestPriceImportFlushesInBatches(t *testing.T) {
	cfg := testConfig()
	cfg.Importer.BatchSize = 2
	candleRepo := newFakeCandlesRepository()
	svc := NewPriceImportService(candleRepo, stockcache.New(newFakeStocksRepository()), cfg, testLogger(t))

	summary, err := svc.Run(context.Background(), writeCSV(t, priceCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Upserted)
	assert.Equal(t, []int{2, 1}, candleRepo.batchSizes)
}

func TestPriceImportAbortsOnBatchWriteFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Importer.BatchSize = 2
	wantErr := errors.New("connection reset")
	candleRepo := newFakeCandlesRepository()
	candleRepo.failOnBatch = 2
	candleRepo.failErr = wantErr
	svc := NewPriceImportService(candleRepo, stockcache.New(newFakeStocksRepository()), cfg, testLogger(t))

	summary, err := svc.Run(context.Background(), writeCSV(t, priceCSV))
	require.ErrorIs(t, err, wantErr)

	// The first batch committed before the failure; the second never landed.
	assert.Equal(t, 2, summary.Upserted)
	assert.Len(t, candleRepo.rows, 2)
	assert.Equal(t, []int{2, 1}, candleRepo.batchSizes)
}
