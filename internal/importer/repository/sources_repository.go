package repository

import (
	"context"
	"errors"

	"finsight/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSourceNotFound is returned when no source row exists for a code.
var ErrSourceNotFound = errors.New("source not found")

// SourcesRepository defines the interface for interacting with source rows.
type SourcesRepository interface {
	FindIDByCode(ctx context.Context, code string) (uint, error)
	Upsert(ctx context.Context, source *entity.Source) error
}

type sourcesRepository struct {
	db *gorm.DB
}

// NewSourcesRepository creates a new instance of SourcesRepository.
func NewSourcesRepository(db *gorm.DB) SourcesRepository {
	return &sourcesRepository{db: db}
}

func (r *sourcesRepository) FindIDByCode(ctx context.Context, code string) (uint, error) {
	var source entity.Source
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrSourceNotFound
	}
	if err != nil {
		return 0, err
	}
	return source.ID, nil
}

func (r *sourcesRepository) Upsert(ctx context.Context, source *entity.Source) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(source).Error
}
