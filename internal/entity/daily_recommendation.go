package entity

import (
	"time"

	"gorm.io/datatypes"
)

// StockDailyRecommendation is one (stock, source, signal date) buy/sell
// signal. ActualIsUp and IsHit stay null until a ground-truth outcome is
// known; IsHit additionally stays null for rows that were never recommended.
type StockDailyRecommendation struct {
	ID            uint           `gorm:"primaryKey"`
	StockID       uint           `gorm:"uniqueIndex:idx_recommendation_natural;not null"`
	SourceID      uint           `gorm:"uniqueIndex:idx_recommendation_natural;not null"`
	SignalDate    datatypes.Date `gorm:"uniqueIndex:idx_recommendation_natural;not null"`
	PositiveRatio float64        `gorm:"not null"`
	ThresholdUsed float64        `gorm:"not null"`
	IsRecommended bool           `gorm:"not null"`
	ActualIsUp    *bool
	IsHit         *bool
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (StockDailyRecommendation) TableName() string {
	return "stock_daily_recommendations"
}
