package repository

import (
	"context"

	"finsight/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HotTopicsRepository defines the interface for writing hot-topic metrics.
type HotTopicsRepository interface {
	UpsertBatch(ctx context.Context, topics []entity.HotTopic) error
}

type hotTopicsRepository struct {
	db *gorm.DB
}

// NewHotTopicsRepository creates a new instance of HotTopicsRepository.
func NewHotTopicsRepository(db *gorm.DB) HotTopicsRepository {
	return &hotTopicsRepository{db: db}
}

func (r *hotTopicsRepository) UpsertBatch(ctx context.Context, topics []entity.HotTopic) error {
	if len(topics) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "source_id"}, {Name: "topic_date"}, {Name: "stock_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mentions", "mentions_7d_ma", "daily_growth_pct", "weekly_growth_pct", "popularity", "updated_at",
			}),
		}).Create(&topics).Error
	})
}
