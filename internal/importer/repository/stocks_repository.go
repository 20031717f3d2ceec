package repository

import (
	"context"
	"errors"

	"finsight/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockNotFound is returned when no stock row exists for a ticker.
var ErrStockNotFound = errors.New("stock not found")

// StocksRepository defines the interface for interacting with stock rows.
type StocksRepository interface {
	// UpsertByTicker inserts the stock or refreshes its Korean display name
	// on conflict, and returns the row's id.
	UpsertByTicker(ctx context.Context, ticker, nameKo string) (uint, error)
	FindIDByTicker(ctx context.Context, ticker string) (uint, error)
	GetAll(ctx context.Context) ([]entity.Stock, error)
}

type stocksRepository struct {
	db *gorm.DB
}

// NewStocksRepository creates a new instance of StocksRepository.
func NewStocksRepository(db *gorm.DB) StocksRepository {
	return &stocksRepository{db: db}
}

func (r *stocksRepository) UpsertByTicker(ctx context.Context, ticker, nameKo string) (uint, error) {
	stock := entity.Stock{Ticker: ticker}
	if nameKo != "" {
		stock.NameKo = &nameKo
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"name_ko", "updated_at"}),
	}).Create(&stock).Error
	if err != nil {
		return 0, err
	}
	// The conflict path does not populate the generated id, so always read
	// it back by ticker.
	return r.FindIDByTicker(ctx, ticker)
}

func (r *stocksRepository) FindIDByTicker(ctx context.Context, ticker string) (uint, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrStockNotFound
	}
	if err != nil {
		return 0, err
	}
	return stock.ID, nil
}

func (r *stocksRepository) GetAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}
