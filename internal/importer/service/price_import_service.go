package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"finsight/internal/entity"
	"finsight/internal/importer/config"
	"finsight/internal/importer/csvfile"
	"finsight/internal/importer/normalize"
	"finsight/internal/importer/repository"
	"finsight/internal/importer/stockcache"
	"finsight/pkg/logger"
)

const (
	colDate   = "Date"
	colName   = "Stock"
	colCode   = "Code"
	colOpen   = "Open"
	colHigh   = "High"
	colLow    = "Low"
	colClose  = "Close"
	colVolume = "Volume"
)

// candleTimeLayouts accepted after Timestamp normalization.
var candleTimeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// PriceImportService streams one price CSV into the candle table.
type PriceImportService interface {
	Run(ctx context.Context, path string) (Summary, error)
}

// NewPriceImportService creates a new price import service.
func NewPriceImportService(
	candleRepo repository.PriceCandlesRepository,
	stocks *stockcache.Cache,
	cfg *config.Config,
	logger *logger.Logger,
) PriceImportService {
	return &priceImportService{
		candleRepo: candleRepo,
		stocks:     stocks,
		cfg:        cfg,
		logger:     logger,
	}
}

type priceImportService struct {
	candleRepo repository.PriceCandlesRepository
	stocks     *stockcache.Cache
	cfg        *config.Config
	logger     *logger.Logger
}

// Run performs a single sequential pass over the CSV. Row-scoped failures
// (bad candle time) skip the row and continue; batch write failures abort
// the run, leaving previously committed batches intact.
func (s *priceImportService) Run(ctx context.Context, path string) (Summary, error) {
	reader, err := csvfile.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer reader.Close()

	if err := reader.RequireColumns(colDate, colCode); err != nil {
		return Summary{}, err
	}

	var summary Summary
	batch := make([]entity.StockPriceCandle, 0, s.cfg.Importer.BatchSize)

	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.SkippedRow++
			continue
		}

		ticker := normalize.Ticker(record.Get(colCode))
		candleTime, ok := parseCandleTime(normalize.Timestamp(record.Get(colDate)))
		if !ok {
			summary.SkippedRow++
			continue
		}

		stockID, err := s.stocks.LookupOrCreate(ctx, ticker, strings.TrimSpace(record.Get(colName)))
		if err != nil {
			return summary, err
		}

		batch = append(batch, entity.StockPriceCandle{
			StockID:    stockID,
			Timeframe:  s.cfg.Importer.Timeframe,
			CandleTime: candleTime,
			OpenPrice:  normalize.Decimal2(record.Get(colOpen)),
			HighPrice:  normalize.Decimal2(record.Get(colHigh)),
			LowPrice:   normalize.Decimal2(record.Get(colLow)),
			ClosePrice: normalize.Decimal2(record.Get(colClose)),
			Volume:     normalize.Int(record.Get(colVolume)),
		})

		if len(batch) >= s.cfg.Importer.BatchSize {
			if err := s.candleRepo.UpsertBatch(ctx, batch); err != nil {
				return summary, err
			}
			summary.Upserted += len(batch)
			batch = batch[:0]
		}
	}

	if err := s.candleRepo.UpsertBatch(ctx, batch); err != nil {
		return summary, err
	}
	summary.Upserted += len(batch)

	s.logger.Info("Imported price data",
		logger.StringField("market_type", s.cfg.Importer.MarketType),
		logger.StringField("timeframe", s.cfg.Importer.Timeframe),
		logger.IntField("upserted", summary.Upserted),
		logger.IntField("skipped_row", summary.SkippedRow),
	)
	return summary, nil
}

func parseCandleTime(normalized string) (time.Time, bool) {
	for _, layout := range candleTimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
