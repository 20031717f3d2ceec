package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNoRecommendationData is returned when no signal rows exist for the
// requested source or key.
var ErrNoRecommendationData = errors.New("no recommendation data")

// RecommendationDateRow is one per-date row of loaded/expected counts.
type RecommendationDateRow struct {
	SignalDate  time.Time
	LoadedCnt   int
	TotalStocks int
	MissingCnt  int
}

// RecommendationRow is one signal row joined with stock display fields.
type RecommendationRow struct {
	StockID       uint
	SourceID      uint
	SignalDate    time.Time
	PositiveRatio float64
	ThresholdUsed float64
	IsRecommended bool
	ActualIsUp    *bool
	IsHit         *bool
	StockTicker   string
	StockNameKo   *string
	StockNameEn   *string
}

// StockHistoryRow is one row of a single stock's signal history.
type StockHistoryRow struct {
	SignalDate    time.Time
	PositiveRatio float64
	ThresholdUsed float64
	IsRecommended bool
	ActualIsUp    *bool
	IsHit         *bool
}

// RecommendationReadRepository runs the parameterized read queries behind
// the recommendation endpoints.
type RecommendationReadRepository interface {
	GetDateCounts(ctx context.Context, sourceCode string) ([]RecommendationDateRow, error)
	// GetLatestDate returns the most recent signal date for the source;
	// completeOnly restricts it to dates where every stock has a row.
	GetLatestDate(ctx context.Context, sourceCode string, completeOnly bool) (time.Time, error)
	GetByDate(ctx context.Context, sourceCode string, signalDate time.Time, limit int) ([]RecommendationRow, error)
	GetStockHistory(ctx context.Context, stockID uint, sourceCode string, limit int) ([]StockHistoryRow, error)
}

type recommendationReadRepository struct {
	db *gorm.DB
}

// NewRecommendationReadRepository creates a new RecommendationReadRepository.
func NewRecommendationReadRepository(db *gorm.DB) RecommendationReadRepository {
	return &recommendationReadRepository{db: db}
}

func (r *recommendationReadRepository) GetDateCounts(ctx context.Context, sourceCode string) ([]RecommendationDateRow, error) {
	var rows []RecommendationDateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  r.signal_date,
		  COUNT(*) AS loaded_cnt,
		  (SELECT COUNT(*) FROM stocks) AS total_stocks,
		  (SELECT COUNT(*) FROM stocks) - COUNT(*) AS missing_cnt
		FROM stock_daily_recommendations r
		WHERE r.source_id = (SELECT id FROM sources WHERE code = ?)
		GROUP BY r.signal_date
		ORDER BY r.signal_date DESC`, sourceCode).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recommendationReadRepository) GetLatestDate(ctx context.Context, sourceCode string, completeOnly bool) (time.Time, error) {
	var result struct {
		SignalDate sql.NullTime
	}

	query := `
		SELECT MAX(signal_date) AS signal_date
		FROM stock_daily_recommendations
		WHERE source_id = (SELECT id FROM sources WHERE code = ?)`
	if completeOnly {
		query = `
		SELECT r.signal_date
		FROM stock_daily_recommendations r
		WHERE r.source_id = (SELECT id FROM sources WHERE code = ?)
		GROUP BY r.signal_date
		HAVING COUNT(*) = (SELECT COUNT(*) FROM stocks)
		ORDER BY r.signal_date DESC
		LIMIT 1`
	}

	if err := r.db.WithContext(ctx).Raw(query, sourceCode).Scan(&result).Error; err != nil {
		return time.Time{}, err
	}
	if !result.SignalDate.Valid {
		return time.Time{}, ErrNoRecommendationData
	}
	return result.SignalDate.Time, nil
}

func (r *recommendationReadRepository) GetByDate(ctx context.Context, sourceCode string, signalDate time.Time, limit int) ([]RecommendationRow, error) {
	var rows []RecommendationRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  r.stock_id, r.source_id, r.signal_date,
		  r.positive_ratio, r.threshold_used, r.is_recommended,
		  r.actual_is_up, r.is_hit,
		  s.ticker AS stock_ticker,
		  s.name_ko AS stock_name_ko,
		  s.name_en AS stock_name_en
		FROM stock_daily_recommendations r
		JOIN stocks s ON s.id = r.stock_id
		WHERE r.source_id = (SELECT id FROM sources WHERE code = ?)
		  AND r.signal_date = ?
		ORDER BY r.positive_ratio DESC
		LIMIT ?`, sourceCode, signalDate, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recommendationReadRepository) GetStockHistory(ctx context.Context, stockID uint, sourceCode string, limit int) ([]StockHistoryRow, error) {
	var rows []StockHistoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  r.signal_date, r.positive_ratio, r.threshold_used,
		  r.is_recommended, r.actual_is_up, r.is_hit
		FROM stock_daily_recommendations r
		WHERE r.stock_id = ?
		  AND r.source_id = (SELECT id FROM sources WHERE code = ?)
		ORDER BY r.signal_date DESC
		LIMIT ?`, stockID, sourceCode, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
