package entity

import (
	"time"

	"gorm.io/datatypes"
)

// HotTopic is one (source, topic date, stock) mention-metrics observation.
// Growth columns hold percentage points, converted from the source's
// fractional values at ingest.
type HotTopic struct {
	ID              uint           `gorm:"primaryKey"`
	SourceID        uint           `gorm:"uniqueIndex:idx_hot_topic_natural;not null"`
	TopicDate       datatypes.Date `gorm:"uniqueIndex:idx_hot_topic_natural;not null"`
	StockID         uint           `gorm:"uniqueIndex:idx_hot_topic_natural;not null"`
	Mentions        int            `gorm:"not null"`
	Mentions7dMA    float64        `gorm:"column:mentions_7d_ma;not null"`
	DailyGrowthPct  float64        `gorm:"not null"`
	WeeklyGrowthPct float64        `gorm:"not null"`
	Popularity      float64        `gorm:"not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (HotTopic) TableName() string {
	return "hot_topics"
}
