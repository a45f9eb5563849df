package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"adviceboard/internal/model"
)

// AdviceFilter narrows List results. The zero value matches everything.
type AdviceFilter struct {
	// VerifiedOnly restricts the result to admin-verified records.
	VerifiedOnly bool
	// AuthorID, when non-nil, restricts the result to one author's records.
	AuthorID *uint
}

// AdviceRepository defines advice persistence operations.
type AdviceRepository interface {
	Create(ctx context.Context, advice *model.Advice) error
	Save(ctx context.Context, advice *model.Advice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Advice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter AdviceFilter) ([]model.Advice, error)
}

type adviceRepository struct {
	db *gorm.DB
}

// NewAdviceRepository creates a new advice repository.
func NewAdviceRepository(db *gorm.DB) AdviceRepository {
	return &adviceRepository{db: db}
}

func (r *adviceRepository) Create(ctx context.Context, advice *model.Advice) error {
	return r.db.WithContext(ctx).Create(advice).Error
}

// Save writes all fields of an existing record.
func (r *adviceRepository) Save(ctx context.Context, advice *model.Advice) error {
	return r.db.WithContext(ctx).Save(advice).Error
}

func (r *adviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Advice, error) {
	var advice model.Advice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&advice).Error; err != nil {
		return nil, err
	}
	return &advice, nil
}

func (r *adviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Advice{}).Error
}

func (r *adviceRepository) List(ctx context.Context, filter AdviceFilter) ([]model.Advice, error) {
	query := r.db.WithContext(ctx).Model(&model.Advice{})
	if filter.VerifiedOnly {
		query = query.Where("verified = ?", true)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	var records []model.Advice
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
