package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNoHotTopicData is returned when no hot-topic rows exist for the
// requested source.
var ErrNoHotTopicData = errors.New("no hot topic data")

// ErrSourceNotFound is returned when the requested source code has no row.
var ErrSourceNotFound = errors.New("source not found")

// HotTopicRow is one hot-topic row joined with stock display fields.
type HotTopicRow struct {
	StockID         uint
	TopicDate       time.Time
	Mentions        int
	Mentions7dMA    float64 `gorm:"column:mentions_7d_ma"`
	DailyGrowthPct  float64
	WeeklyGrowthPct float64
	Popularity      float64
	StockTicker     string
	StockNameKo     *string
	StockNameEn     *string
}

// HotTopicReadRepository runs the parameterized read queries behind the
// hot-topic endpoints.
type HotTopicReadRepository interface {
	SourceExists(ctx context.Context, sourceCode string) (bool, error)
	GetLatestDate(ctx context.Context, sourceCode string) (time.Time, error)
	GetByDate(ctx context.Context, sourceCode string, topicDate time.Time, limit int) ([]HotTopicRow, error)
}

type hotTopicReadRepository struct {
	db *gorm.DB
}

// NewHotTopicReadRepository creates a new HotTopicReadRepository.
func NewHotTopicReadRepository(db *gorm.DB) HotTopicReadRepository {
	return &hotTopicReadRepository{db: db}
}

func (r *hotTopicReadRepository) SourceExists(ctx context.Context, sourceCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM sources WHERE code = ?`, sourceCode).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *hotTopicReadRepository) GetLatestDate(ctx context.Context, sourceCode string) (time.Time, error) {
	var result struct {
		TopicDate sql.NullTime
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT MAX(topic_date) AS topic_date
		FROM hot_topics
		WHERE source_id = (SELECT id FROM sources WHERE code = ?)`, sourceCode).Scan(&result).Error
	if err != nil {
		return time.Time{}, err
	}
	if !result.TopicDate.Valid {
		return time.Time{}, ErrNoHotTopicData
	}
	return result.TopicDate.Time, nil
}

func (r *hotTopicReadRepository) GetByDate(ctx context.Context, sourceCode string, topicDate time.Time, limit int) ([]HotTopicRow, error) {
	var rows []HotTopicRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  h.stock_id, h.topic_date,
		  h.mentions, h.mentions_7d_ma,
		  h.daily_growth_pct, h.weekly_growth_pct, h.popularity,
		  s.ticker AS stock_ticker,
		  s.name_ko AS stock_name_ko,
		  s.name_en AS stock_name_en
		FROM hot_topics h
		JOIN stocks s ON s.id = h.stock_id
		WHERE h.source_id = (SELECT id FROM sources WHERE code = ?)
		  AND h.topic_date = ?
		ORDER BY h.popularity DESC
		LIMIT ?`, sourceCode, topicDate, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
