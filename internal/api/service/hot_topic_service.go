package service

import (
	"context"
	"time"

	"finsight/internal/api/dto"
	"finsight/internal/api/repository"
)

const maxHotTopicLimit = 200

// HotTopicService defines the read operations behind the hot-topic
// endpoints.
type HotTopicService interface {
	GetLatest(ctx context.Context, limit int, sourceCode string) (*dto.HotTopicsResponse, error)
	GetByDate(ctx context.Context, topicDate time.Time, limit int, sourceCode string) (*dto.HotTopicsResponse, error)
}

// NewHotTopicService creates a new hot-topic service.
func NewHotTopicService(repo repository.HotTopicReadRepository, defaultSourceCode string) HotTopicService {
	return &hotTopicService{repo: repo, defaultSourceCode: defaultSourceCode}
}

type hotTopicService struct {
	repo              repository.HotTopicReadRepository
	defaultSourceCode string
}

// GetLatest returns the top-N hot topics for the most recent loaded date.
// An empty table is a missing resource, not an empty 200.
func (s *hotTopicService) GetLatest(ctx context.Context, limit int, sourceCode string) (*dto.HotTopicsResponse, error) {
	sourceCode = s.resolveSource(sourceCode)

	topicDate, err := s.repo.GetLatestDate(ctx, sourceCode)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, topicDate, limit, sourceCode)
}

// GetByDate returns the top-N hot topics for an explicit date. A valid date
// with zero rows yields an empty item list; an unknown source code is a
// missing resource.
func (s *hotTopicService) GetByDate(ctx context.Context, topicDate time.Time, limit int, sourceCode string) (*dto.HotTopicsResponse, error) {
	sourceCode = s.resolveSource(sourceCode)

	exists, err := s.repo.SourceExists(ctx, sourceCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrSourceNotFound
	}
	return s.fetch(ctx, topicDate, limit, sourceCode)
}

func (s *hotTopicService) fetch(ctx context.Context, topicDate time.Time, limit int, sourceCode string) (*dto.HotTopicsResponse, error) {
	limit = clampLimit(limit, maxHotTopicLimit)

	rows, err := s.repo.GetByDate(ctx, sourceCode, topicDate, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.HotTopicsResponse{
		TopicDate: topicDate.Format(dateLayout),
		Items:     make([]dto.HotTopicItem, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.HotTopicItem{
			StockID:         row.StockID,
			TopicDate:       row.TopicDate.Format(dateLayout),
			Mentions:        row.Mentions,
			Mentions7dMA:    row.Mentions7dMA,
			DailyGrowthPct:  row.DailyGrowthPct,
			WeeklyGrowthPct: row.WeeklyGrowthPct,
			Popularity:      row.Popularity,
			StockTicker:     row.StockTicker,
			StockNameKo:     row.StockNameKo,
			StockNameEn:     row.StockNameEn,
		})
	}
	return resp, nil
}

func (s *hotTopicService) resolveSource(sourceCode string) string {
	if sourceCode == "" {
		return s.defaultSourceCode
	}
	return sourceCode
}
