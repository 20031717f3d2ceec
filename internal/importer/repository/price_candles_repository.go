package repository

import (
	"context"

	"finsight/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceCandlesRepository defines the interface for writing price candles.
type PriceCandlesRepository interface {
	// UpsertBatch writes one batch in a single transaction, overwriting the
	// price and volume columns on natural-key conflict.
	UpsertBatch(ctx context.Context, candles []entity.StockPriceCandle) error
}

type priceCandlesRepository struct {
	db *gorm.DB
}

// NewPriceCandlesRepository creates a new instance of PriceCandlesRepository.
func NewPriceCandlesRepository(db *gorm.DB) PriceCandlesRepository {
	return &priceCandlesRepository{db: db}
}

func (r *priceCandlesRepository) UpsertBatch(ctx context.Context, candles []entity.StockPriceCandle) error {
	if len(candles) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stock_id"}, {Name: "timeframe"}, {Name: "candle_time"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"open_price", "high_price", "low_price", "close_price", "volume",
			}),
		}).Create(&candles).Error
	})
}
