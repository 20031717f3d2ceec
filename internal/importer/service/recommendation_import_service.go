package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"finsight/internal/entity"
	"finsight/internal/importer/config"
	"finsight/internal/importer/csvfile"
	"finsight/internal/importer/label"
	"finsight/internal/importer/normalize"
	"finsight/internal/importer/repository"
	"finsight/internal/importer/stockcache"
	"finsight/pkg/logger"

	"gorm.io/datatypes"
)

const (
	colPositiveRatio     = "Positive_Ratio"
	colPredictionSuccess = "Prediction_Success"
)

// RecommendationImportService streams one recommendation CSV into the
// stock_daily_recommendations table.
type RecommendationImportService interface {
	Run(ctx context.Context, path string) (Summary, error)
}

// NewRecommendationImportService creates a new recommendation import service.
func NewRecommendationImportService(
	recommendationRepo repository.RecommendationsRepository,
	sourceRepo repository.SourcesRepository,
	stocks *stockcache.Cache,
	cfg *config.Config,
	logger *logger.Logger,
) RecommendationImportService {
	return &recommendationImportService{
		recommendationRepo: recommendationRepo,
		sourceRepo:         sourceRepo,
		stocks:             stocks,
		cfg:                cfg,
		logger:             logger,
	}
}

type recommendationImportService struct {
	recommendationRepo repository.RecommendationsRepository
	sourceRepo         repository.SourcesRepository
	stocks             *stockcache.Cache
	cfg                *config.Config
	logger             *logger.Logger
}

// Run imports one CSV. A row needs a parseable signal date and positive
// ratio and a resolvable ticker; anything else skips the row. Signals never
// synthesize stock rows.
func (s *recommendationImportService) Run(ctx context.Context, path string) (Summary, error) {
	sourceID, err := s.sourceRepo.FindIDByCode(ctx, s.cfg.Importer.SourceCode)
	if err != nil {
		if errors.Is(err, repository.ErrSourceNotFound) {
			return Summary{}, fmt.Errorf("no source row with code %q: %w", s.cfg.Importer.SourceCode, err)
		}
		return Summary{}, err
	}

	reader, err := csvfile.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer reader.Close()

	if err := reader.RequireColumns(colDate, colCode, colPositiveRatio); err != nil {
		return Summary{}, err
	}

	var summary Summary
	batch := make([]entity.StockDailyRecommendation, 0, s.cfg.Importer.BatchSize)

	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.SkippedRow++
			continue
		}

		signalDate, ok := normalize.Date(record.Get(colDate))
		if !ok {
			summary.SkippedRow++
			continue
		}

		// The positive ratio is required; unlike the other numeric fields
		// it does not coerce to zero.
		positiveRatio, err := strconv.ParseFloat(strings.TrimSpace(record.Get(colPositiveRatio)), 64)
		if err != nil {
			summary.SkippedRow++
			continue
		}

		ticker := normalize.Ticker(record.Get(colCode))
		stockID, err := s.stocks.Lookup(ctx, ticker)
		if errors.Is(err, stockcache.ErrUnresolvedTicker) {
			summary.SkippedStock++
			continue
		}
		if err != nil {
			return summary, err
		}

		labels := label.Derive(positiveRatio, s.cfg.Importer.Threshold, label.ParseSuccessFlag(record.Get(colPredictionSuccess)))

		batch = append(batch, entity.StockDailyRecommendation{
			StockID:       stockID,
			SourceID:      sourceID,
			SignalDate:    datatypes.Date(signalDate),
			PositiveRatio: positiveRatio,
			ThresholdUsed: s.cfg.Importer.Threshold,
			IsRecommended: labels.IsRecommended,
			ActualIsUp:    labels.ActualIsUp,
			IsHit:         labels.IsHit,
		})

		if len(batch) >= s.cfg.Importer.BatchSize {
			if err := s.recommendationRepo.UpsertBatch(ctx, batch); err != nil {
				return summary, err
			}
			summary.Upserted += len(batch)
			batch = batch[:0]
		}
	}

	if err := s.recommendationRepo.UpsertBatch(ctx, batch); err != nil {
		return summary, err
	}
	summary.Upserted += len(batch)

	s.logger.Info("Imported recommendation data",
		logger.StringField("source_code", s.cfg.Importer.SourceCode),
		logger.Field("threshold", s.cfg.Importer.Threshold),
		logger.IntField("upserted", summary.Upserted),
		logger.IntField("skipped_stock", summary.SkippedStock),
		logger.IntField("skipped_row", summary.SkippedRow),
	)
	return summary, nil
}
