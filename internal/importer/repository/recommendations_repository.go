package repository

import (
	"context"

	"finsight/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationsRepository defines the interface for writing daily
// recommendation signals.
type RecommendationsRepository interface {
	UpsertBatch(ctx context.Context, recommendations []entity.StockDailyRecommendation) error
}

type recommendationsRepository struct {
	db *gorm.DB
}

// NewRecommendationsRepository creates a new instance of RecommendationsRepository.
func NewRecommendationsRepository(db *gorm.DB) RecommendationsRepository {
	return &recommendationsRepository{db: db}
}

func (r *recommendationsRepository) UpsertBatch(ctx context.Context, recommendations []entity.StockDailyRecommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stock_id"}, {Name: "source_id"}, {Name: "signal_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"positive_ratio", "threshold_used", "is_recommended", "actual_is_up", "is_hit", "updated_at",
			}),
		}).Create(&recommendations).Error
	})
}
