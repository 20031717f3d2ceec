package entity

import "time"

// Source is a data provider reference row, looked up by its unique code.
type Source struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"uniqueIndex;size:32;not null"`
	Name      string    `gorm:"size:128"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Source) TableName() string {
	return "sources"
}
