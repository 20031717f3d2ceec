package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"finsight/internal/entity"
	"finsight/internal/importer/config"
	"finsight/internal/importer/repository"
	"finsight/pkg/logger"

	"github.com/stretchr/testify/require"
)

// fakeStocksRepository keeps stock rows in memory keyed by ticker.
type fakeStocksRepository struct {
	nextID uint
	byTick map[string]*entity.Stock
}

func newFakeStocksRepository(tickers ...string) *fakeStocksRepository {
	repo := &fakeStocksRepository{byTick: make(map[string]*entity.Stock)}
	for _, ticker := range tickers {
		repo.nextID++
		repo.byTick[ticker] = &entity.Stock{ID: repo.nextID, Ticker: ticker}
	}
	return repo
}

func (f *fakeStocksRepository) UpsertByTicker(_ context.Context, ticker, nameKo string) (uint, error) {
	if stock, ok := f.byTick[ticker]; ok {
		if nameKo != "" {
			stock.NameKo = &nameKo
		}
		return stock.ID, nil
	}
	f.nextID++
	stock := &entity.Stock{ID: f.nextID, Ticker: ticker}
	if nameKo != "" {
		stock.NameKo = &nameKo
	}
	f.byTick[ticker] = stock
	return stock.ID, nil
}

func (f *fakeStocksRepository) FindIDByTicker(_ context.Context, ticker string) (uint, error) {
	if stock, ok := f.byTick[ticker]; ok {
		return stock.ID, nil
	}
	return 0, repository.ErrStockNotFound
}

func (f *fakeStocksRepository) GetAll(_ context.Context) ([]entity.Stock, error) {
	stocks := make([]entity.Stock, 0, len(f.byTick))
	for _, stock := range f.byTick {
		stocks = append(stocks, *stock)
	}
	return stocks, nil
}

// fakeSourcesRepository serves one known source code.
type fakeSourcesRepository struct {
	code string
	id   uint
}

func (f *fakeSourcesRepository) FindIDByCode(_ context.Context, code string) (uint, error) {
	if code != f.code {
		return 0, repository.ErrSourceNotFound
	}
	return f.id, nil
}

func (f *fakeSourcesRepository) Upsert(_ context.Context, source *entity.Source) error {
	f.code = source.Code
	if f.id == 0 {
		f.id = 1
	}
	source.ID = f.id
	return nil
}

// fakeCandlesRepository applies the natural-key upsert contract in memory,
// so re-running an import exercises real idempotence.
type fakeCandlesRepository struct {
	rows       map[string]entity.StockPriceCandle
	batchSizes []int

	// failOnBatch makes the Nth UpsertBatch call (1-based) fail without
	// storing its rows, the way a rolled-back transaction would.
	failOnBatch int
	failErr     error
}

func newFakeCandlesRepository() *fakeCandlesRepository {
	return &fakeCandlesRepository{rows: make(map[string]entity.StockPriceCandle)}
}

func (f *fakeCandlesRepository) UpsertBatch(_ context.Context, candles []entity.StockPriceCandle) error {
	if len(candles) == 0 {
		return nil
	}
	f.batchSizes = append(f.batchSizes, len(candles))
	if f.failOnBatch > 0 && len(f.batchSizes) == f.failOnBatch {
		return f.failErr
	}
	for _, candle := range candles {
		key := fmt.Sprintf("%d|%s|%s", candle.StockID, candle.Timeframe, candle.CandleTime.Format("2006-01-02 15:04:05"))
		f.rows[key] = candle
	}
	return nil
}

type fakeHotTopicsRepository struct {
	rows map[string]entity.HotTopic
}

func newFakeHotTopicsRepository() *fakeHotTopicsRepository {
	return &fakeHotTopicsRepository{rows: make(map[string]entity.HotTopic)}
}

func (f *fakeHotTopicsRepository) UpsertBatch(_ context.Context, topics []entity.HotTopic) error {
	for _, topic := range topics {
		key := fmt.Sprintf("%d|%v|%d", topic.SourceID, topic.TopicDate, topic.StockID)
		f.rows[key] = topic
	}
	return nil
}

type fakeRecommendationsRepository struct {
	rows map[string]entity.StockDailyRecommendation
}

func newFakeRecommendationsRepository() *fakeRecommendationsRepository {
	return &fakeRecommendationsRepository{rows: make(map[string]entity.StockDailyRecommendation)}
}

func (f *fakeRecommendationsRepository) UpsertBatch(_ context.Context, recommendations []entity.StockDailyRecommendation) error {
	for _, rec := range recommendations {
		key := fmt.Sprintf("%d|%d|%v", rec.StockID, rec.SourceID, rec.SignalDate)
		f.rows[key] = rec
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Importer: config.Importer{
			SourceCode: "NAVER",
			Timeframe:  "1H",
			MarketType: "DOMESTIC",
			Threshold:  0.35,
			BatchSize:  5000,
		},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
