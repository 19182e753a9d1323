package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.EventCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EventCategory, error)
	FindAll(ctx context.Context) ([]*model.EventCategory, error)
	Update(ctx context.Context, c *model.EventCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEventsUsing(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.EventCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EventCategory, error) {
	var c model.EventCategory
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*model.EventCategory, error) {
	var categories []*model.EventCategory
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.EventCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EventCategory{}, "id = ?", id).Error
}

func (r *categoryRepository) CountEventsUsing(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("category_id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count, err
}
