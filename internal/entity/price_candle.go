package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPriceCandle is one OHLCV observation for a (stock, timeframe, candle
// time) natural key. Conflicting imports overwrite the price and volume
// columns, last write wins.
type StockPriceCandle struct {
	ID         uint            `gorm:"primaryKey"`
	StockID    uint            `gorm:"uniqueIndex:idx_candle_natural;not null"`
	Timeframe  string          `gorm:"uniqueIndex:idx_candle_natural;size:8;not null"`
	CandleTime time.Time       `gorm:"uniqueIndex:idx_candle_natural;not null"`
	OpenPrice  decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	HighPrice  decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	LowPrice   decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	ClosePrice decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Volume     int64           `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (StockPriceCandle) TableName() string {
	return "stock_price_candles"
}
