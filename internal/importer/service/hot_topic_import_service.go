package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"finsight/internal/entity"
	"finsight/internal/importer/config"
	"finsight/internal/importer/csvfile"
	"finsight/internal/importer/normalize"
	"finsight/internal/importer/repository"
	"finsight/internal/importer/stockcache"
	"finsight/pkg/logger"

	"gorm.io/datatypes"
)

const (
	colMentions     = "mentions"
	colDailyGrowth  = "daily_growth"
	colWeeklyGrowth = "weekly_growth"
	colPopularity   = "popularity"
	colMentions7dMA = "mentions_7d_ma"
)

// HotTopicImportService streams one hot-topic CSV into the hot_topics table.
type HotTopicImportService interface {
	Run(ctx context.Context, path string) (Summary, error)
}

// NewHotTopicImportService creates a new hot-topic import service.
func NewHotTopicImportService(
	topicRepo repository.HotTopicsRepository,
	sourceRepo repository.SourcesRepository,
	stocks *stockcache.Cache,
	cfg *config.Config,
	logger *logger.Logger,
) HotTopicImportService {
	return &hotTopicImportService{
		topicRepo:  topicRepo,
		sourceRepo: sourceRepo,
		stocks:     stocks,
		cfg:        cfg,
		logger:     logger,
	}
}

type hotTopicImportService struct {
	topicRepo  repository.HotTopicsRepository
	sourceRepo repository.SourcesRepository
	stocks     *stockcache.Cache
	cfg        *config.Config
	logger     *logger.Logger
}

// Run imports one CSV. The configured source code must already exist and
// the file must carry every required column; either failing aborts the run.
// Hot-topic rows never synthesize stock rows: unresolved tickers are
// skipped and counted.
func (s *hotTopicImportService) Run(ctx context.Context, path string) (Summary, error) {
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

	if err := reader.RequireColumns(
		colDate, colCode, colMentions, colDailyGrowth, colWeeklyGrowth, colPopularity, colMentions7dMA,
	); err != nil {
		return Summary{}, err
	}

	if err := s.stocks.Preload(ctx); err != nil {
		return Summary{}, err
	}

	var summary Summary
	batch := make([]entity.HotTopic, 0, s.cfg.Importer.BatchSize)

	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.SkippedRow++
			continue
		}

		topicDate, ok := normalize.Date(record.Get(colDate))
		if !ok {
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

		batch = append(batch, entity.HotTopic{
			SourceID:     sourceID,
			TopicDate:    datatypes.Date(topicDate),
			StockID:      stockID,
			Mentions:     int(normalize.Int(record.Get(colMentions))),
			Mentions7dMA: normalize.Float(record.Get(colMentions7dMA), 0),
			// The source encodes growth as a fraction; storage wants
			// percentage points. Converted exactly once, here.
			DailyGrowthPct:  normalize.Float(record.Get(colDailyGrowth), 0) * 100.0,
			WeeklyGrowthPct: normalize.Float(record.Get(colWeeklyGrowth), 0) * 100.0,
			Popularity:      normalize.Float(record.Get(colPopularity), 0),
		})

		if len(batch) >= s.cfg.Importer.BatchSize {
			if err := s.topicRepo.UpsertBatch(ctx, batch); err != nil {
				return summary, err
			}
			summary.Upserted += len(batch)
			batch = batch[:0]
		}
	}

	if err := s.topicRepo.UpsertBatch(ctx, batch); err != nil {
		return summary, err
	}
	summary.Upserted += len(batch)

	s.logger.Info("Imported hot topic data",
		logger.StringField("source_code", s.cfg.Importer.SourceCode),
		logger.IntField("upserted", summary.Upserted),
		logger.IntField("skipped_stock", summary.SkippedStock),
		logger.IntField("skipped_row", summary.SkippedRow),
	)
	return summary, nil
}
