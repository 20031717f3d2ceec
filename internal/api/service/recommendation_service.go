package service

import (
	"context"

	"finsight/internal/api/dto"
	"finsight/internal/api/repository"
)

const dateLayout = "2006-01-02"

const (
	maxLatestLimit  = 200
	maxHistoryLimit = 500
)

// clampLimit bounds a client-supplied row limit into [1, max].
func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

// RecommendationService defines the read operations behind the
// recommendation endpoints.
type RecommendationService interface {
	GetDates(ctx context.Context) (*dto.RecommendationDatesResponse, error)
	GetLatest(ctx context.Context, limit int, completeOnly bool) (*dto.LatestRecommendationsResponse, error)
	GetStockHistory(ctx context.Context, stockID uint, limit int) (*dto.StockRecommendationsResponse, error)
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(repo repository.RecommendationReadRepository, sourceCode string) RecommendationService {
	return &recommendationService{repo: repo, sourceCode: sourceCode}
}

type recommendationService struct {
	repo       repository.RecommendationReadRepository
	sourceCode string
}

// GetDates lists every signal date with loaded and missing counts.
func (s *recommendationService) GetDates(ctx context.Context) (*dto.RecommendationDatesResponse, error) {
	rows, err := s.repo.GetDateCounts(ctx, s.sourceCode)
	if err != nil {
		return nil, err
	}

	resp := &dto.RecommendationDatesResponse{Items: make([]dto.RecommendationDateCount, 0, len(rows))}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.RecommendationDateCount{
			SignalDate:  row.SignalDate.Format(dateLayout),
			LoadedCount: row.LoadedCnt,
			TotalStocks: row.TotalStocks,
			MissingCnt:  row.MissingCnt,
		})
	}
	return resp, nil
}

// GetLatest returns the top-N recommendations for the most recent date.
// With completeOnly, only dates where every stock has a signal qualify.
func (s *recommendationService) GetLatest(ctx context.Context, limit int, completeOnly bool) (*dto.LatestRecommendationsResponse, error) {
	limit = clampLimit(limit, maxLatestLimit)

	signalDate, err := s.repo.GetLatestDate(ctx, s.sourceCode, completeOnly)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetByDate(ctx, s.sourceCode, signalDate, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.LatestRecommendationsResponse{
		SignalDate: signalDate.Format(dateLayout),
		Items:      make([]dto.RecommendationItem, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.RecommendationItem{
			StockID:       row.StockID,
			SourceID:      row.SourceID,
			SignalDate:    row.SignalDate.Format(dateLayout),
			PositiveRatio: row.PositiveRatio,
			ThresholdUsed: row.ThresholdUsed,
			IsRecommended: row.IsRecommended,
			ActualIsUp:    row.ActualIsUp,
			IsHit:         row.IsHit,
			StockTicker:   row.StockTicker,
			StockNameKo:   row.StockNameKo,
			StockNameEn:   row.StockNameEn,
		})
	}
	return resp, nil
}

// GetStockHistory returns one stock's signals, newest first. A stock with
// no signals at all is a missing resource.
func (s *recommendationService) GetStockHistory(ctx context.Context, stockID uint, limit int) (*dto.StockRecommendationsResponse, error) {
	limit = clampLimit(limit, maxHistoryLimit)

	rows, err := s.repo.GetStockHistory(ctx, stockID, s.sourceCode, limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNoRecommendationData
	}

	resp := &dto.StockRecommendationsResponse{
		StockID: stockID,
		Items:   make([]dto.StockRecommendationItem, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.StockRecommendationItem{
			SignalDate:    row.SignalDate.Format(dateLayout),
			PositiveRatio: row.PositiveRatio,
			ThresholdUsed: row.ThresholdUsed,
			IsRecommended: row.IsRecommended,
			ActualIsUp:    row.ActualIsUp,
			IsHit:         row.IsHit,
		})
	}
	return resp, nil
}
