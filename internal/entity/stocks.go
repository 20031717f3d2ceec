package entity

import (
	"time"
)

// Stock is a tradable instrument keyed by its 6-character zero-padded ticker.
type Stock struct {
	ID        uint      `gorm:"primaryKey"`
	Ticker    string    `gorm:"uniqueIndex;size:16;not null"`
	NameKo    *string   `gorm:"size:128"`
	NameEn    *string   `gorm:"size:128"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Stock) TableName() string {
	return "stocks"
}
